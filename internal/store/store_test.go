// store_test.go provides a shared test database helper for all store
// tests. Each test gets a fresh in-memory SQLite database migrated and
// seeded with the demo taxonomy.
package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hofhaeckerei/solr-utility/internal/database"
)

// testDB opens an in-memory database, runs migrations and seeds it. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.Seed(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}
	return db
}

// exec runs a fixture statement, failing the test on error.
func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
