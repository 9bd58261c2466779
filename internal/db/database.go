package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/prefs"
	"github.com/wellywell/orderdesk/internal/view"
)

type Database struct {
	pool *pgxpool.Pool
}

func NewDatabase(connString string) (*Database, error) {

	err := Migrate(connString)

	if err != nil {
		return nil, fmt.Errorf("failed to migrate %w", err)
	}

	ctx := context.Background()
	p, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	return &Database{
		pool: p,
	}, nil
}

func (d *Database) Close() {
	d.pool.Close()
}

func (d *Database) GetPref(ctx context.Context, username string, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM user_pref
		WHERE username = $1 AND pref_key = $2`

	row := d.pool.QueryRow(ctx, query, username, key)

	var value []byte
	err := row.Scan(&value)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w", &PrefNotFoundError{Username: username, Key: key})
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading pref %w", err)
	}
	return value, nil
}

func (d *Database) SetPref(ctx context.Context, username string, key string, value []byte) error {
	query := `
		INSERT INTO user_pref (username, pref_key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, pref_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`
	_, err := d.pool.Exec(ctx, query, username, key, value)
	if err != nil {
		return fmt.Errorf("failed storing pref %w", err)
	}
	return nil
}

// LoadVisibility falls back to every column visible when nothing usable is
// stored. Only connection errors are returned.
func (d *Database) LoadVisibility(ctx context.Context, username string) (view.Visibility, error) {
	raw, err := d.GetPref(ctx, username, prefs.VisibilityKey)
	if err != nil {
		var notFound *PrefNotFoundError
		if errors.As(err, &notFound) {
			return view.DefaultVisibility(), nil
		}
		return nil, err
	}

	var stored view.Visibility
	if err := json.Unmarshal(raw, &stored); err != nil {
		logger.Warn(&PrefDecodeError{Username: username, Key: prefs.VisibilityKey, Err: err})
		return view.DefaultVisibility(), nil
	}
	return stored.Merge(), nil
}

func (d *Database) SaveVisibility(ctx context.Context, username string, v view.Visibility) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.SetPref(ctx, username, prefs.VisibilityKey, raw)
}
