package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// SetupSQLite opens an in-memory SQLite database closed at test cleanup.
// Each connection to ":memory:" is a separate database, so the pool holds
// exactly one.
func SetupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	return openSQLite(t, ":memory:")
}

// SetupSQLiteFile opens the SQLite database at path, creating it if needed.
func SetupSQLiteFile(t *testing.T, path string) *sql.DB {
	t.Helper()
	return openSQLite(t, path)
}

func openSQLite(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite %s: %v", dsn, err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// Foreign keys are off by default and the fixtures rely on them.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	return db
}

// ExecSQL runs each statement in order, failing the test on the first error.
func ExecSQL(t *testing.T, db *sql.DB, statements ...string) {
	t.Helper()
	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("statement %d failed: %v\n%s", i+1, err, stmt)
		}
	}
}
