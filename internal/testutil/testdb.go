package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/nectime/internal/db"
)

// NewTestDB opens an in-memory database with the nectime schema applied.
// It is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open in-memory nectime database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
