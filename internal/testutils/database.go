package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ory/dockertest"
	logger "github.com/sirupsen/logrus"
)

const (
	dbUser     = "postgres"
	dbPassword = "secret"
	dbName     = "orderdesk"
)

// RunTestDatabase starts a disposable PostgreSQL container and returns its
// DSN. The returned cleanup function is safe to call on every path.
func RunTestDatabase() (string, func(), error) {
	noop := func() {}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", noop, fmt.Errorf("could not connect to docker %w", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=" + dbUser,
		"POSTGRES_PASSWORD=" + dbPassword,
		"POSTGRES_DB=" + dbName,
	})
	if err != nil {
		return "", noop, fmt.Errorf("could not start postgres %w", err)
	}
	cleanUp := func() {
		if err := pool.Purge(resource); err != nil {
			logger.Error(err)
		}
	}

	dsn := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable",
		dbUser, dbPassword, resource.GetPort("5432/tcp"), dbName)

	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		conn, err := pgx.Connect(context.Background(), dsn)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())
		return conn.Ping(context.Background())
	})
	if err != nil {
		return "", cleanUp, fmt.Errorf("postgres did not come up %w", err)
	}
	return dsn, cleanUp, nil
}
