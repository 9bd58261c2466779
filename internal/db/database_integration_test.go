//go:build integration_tests
// +build integration_tests

package db

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wellywell/orderdesk/internal/prefs"
	"github.com/wellywell/orderdesk/internal/testutils"
	"github.com/wellywell/orderdesk/internal/view"
)

var DBDSN string

func TestMain(m *testing.M) {
	code, err := runMain(m)

	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

func runMain(m *testing.M) (int, error) {

	databaseDSN, cleanUp, err := testutils.RunTestDatabase()
	defer cleanUp()

	if err != nil {
		return 1, err
	}
	DBDSN = databaseDSN

	exitCode := m.Run()

	return exitCode, nil

}

func TestVisibility(t *testing.T) {

	database, err := NewDatabase(DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()
	ctx := context.Background()

	t.Run("Test defaults", func(t *testing.T) {
		v, err := database.LoadVisibility(ctx, "nobody")
		assert.NoError(t, err)
		assert.Equal(t, view.DefaultVisibility(), v)
	})

	t.Run("Test save and overwrite", func(t *testing.T) {
		hidden, err := view.DefaultVisibility().Set("tracking", false)
		assert.NoError(t, err)

		assert.NoError(t, database.SaveVisibility(ctx, "lan", hidden))
		v, err := database.LoadVisibility(ctx, "lan")
		assert.NoError(t, err)
		assert.False(t, v["tracking"])

		assert.NoError(t, database.SaveVisibility(ctx, "lan", view.DefaultVisibility()))
		v, err = database.LoadVisibility(ctx, "lan")
		assert.NoError(t, err)
		assert.True(t, v["tracking"])
	})

	t.Run("Test unreadable value", func(t *testing.T) {
		assert.NoError(t, database.SetPref(ctx, "broken", prefs.VisibilityKey, []byte(`["not", "a", "map"]`)))
		v, err := database.LoadVisibility(ctx, "broken")
		assert.NoError(t, err)
		assert.Equal(t, view.DefaultVisibility(), v)
	})

	t.Run("Test missing pref", func(t *testing.T) {
		_, err := database.GetPref(ctx, "nobody", "other")
		var notFound *PrefNotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("Test migrate twice", func(t *testing.T) {
		assert.NoError(t, Migrate(DBDSN))
	})
}
