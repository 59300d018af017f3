package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory record store that is closed when the
// test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory record store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// NewTestUoW wraps a test store in a unit of work for seed imports.
func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(store)
}
