package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/medstock-be/internal/adapters/sqlite"
	"github.com/ammerola/medstock-be/internal/adapters/store"
	"github.com/ammerola/medstock-be/test/helpers"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Store.Driver = store.DriverSQLite
	cfg.Store.SQLitePath = sqlite.InMemory

	medicines, database, err := store.Open(context.Background(), cfg, helpers.TestLogger())
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, "sqlite", database.Driver())
	require.NoError(t, database.Ping(context.Background()))

	n, err := medicines.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Store.Driver = "mongodb"

	_, _, err := store.Open(context.Background(), cfg, helpers.TestLogger())
	assert.ErrorContains(t, err, `unknown store driver "mongodb"`)
}
