package testutil

import (
	"database/sql"
	"testing"

	"github.com/rfontaine/stagegate/internal/db"
)

// NewTestDB creates an in-memory SQLite database with the work_items and
// audit_events schema applied. The database is closed when the test
// completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork over the given test database, for tests
// exercising transactional phase commits.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
