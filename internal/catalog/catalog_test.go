package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/orderdesk/internal/catalog/mocks"
	"github.com/wellywell/orderdesk/internal/roles"
	"github.com/wellywell/orderdesk/internal/types"
)

var (
	admin = types.User{Username: "an", Role: "admin"}
	staff = types.User{Username: "zoe", Role: "staff"}
)

func loadedCatalog(t *testing.T) (*Catalog, *mocks.Source) {
	source := mocks.NewSource(t)
	source.EXPECT().GetStores(mock.Anything).Return([]types.Store{{ID: "s1", Name: "Sunny"}}, nil).Once()
	source.EXPECT().GetUnits(mock.Anything).Return([]string{"DTG"}, nil).Once()
	source.EXPECT().GetUsers(mock.Anything).Return([]types.User{admin, staff}, nil).Once()

	c := New(source)
	require.NoError(t, c.Refresh(context.Background()))
	return c, source
}

func TestRefresh(t *testing.T) {
	c, _ := loadedCatalog(t)

	snap := c.Snapshot()
	assert.Equal(t, []string{"DTG"}, snap.Units)
	assert.Len(t, snap.Users, 2)
	assert.Equal(t, "Sunny", c.StoreNames().Resolve(types.Order{StoreID: "s1"}))

	u, err := c.User("zoe")
	assert.NoError(t, err)
	assert.Equal(t, staff, u)

	_, err = c.User("ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)

	assert.Equal(t, []types.User{staff}, c.Assignable(staff))
	assert.Equal(t, []types.User{admin, staff}, c.Assignable(admin))
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	c, source := loadedCatalog(t)

	source.EXPECT().GetStores(mock.Anything).Return(nil, errors.New("offline")).Once()
	assert.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"DTG"}, c.Snapshot().Units)
}

func TestAddUnit(t *testing.T) {
	c, source := loadedCatalog(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.AddUnit(ctx, staff, "Embroidery"), roles.ErrForbidden)
	assert.ErrorIs(t, c.AddUnit(ctx, admin, "  "), ErrEmptyUnit)

	// already known, no call
	assert.NoError(t, c.AddUnit(ctx, admin, "DTG"))

	source.EXPECT().AddUnit(mock.Anything, "Embroidery").Return(nil).Once()
	assert.NoError(t, c.AddUnit(ctx, admin, " Embroidery "))
	assert.Equal(t, []string{"DTG", "Embroidery"}, c.Snapshot().Units)

	source.EXPECT().AddUnit(mock.Anything, "Print").Return(errors.New("sheet locked")).Once()
	assert.Error(t, c.AddUnit(ctx, admin, "Print"))
	assert.Equal(t, []string{"DTG", "Embroidery"}, c.Snapshot().Units)
}
