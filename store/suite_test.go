package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/yabook/yabook/store"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})

	return db
}

func setupManager(t *testing.T) store.Manager {
	t.Helper()

	repos := store.NewManager(setupDB(t))
	require.NoError(t, repos.Validate())

	return repos
}

func timestamp(offset time.Duration) *time.Time {
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(offset)
	return &ts
}
