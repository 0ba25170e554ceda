//go:build integration

package testutil

import (
	"crypto/rand"
	"database/sql"
	"net/url"
	"os"
	"strings"
	"testing"

	_ "github.com/lib/pq"
)

// PostgresURLEnv names the variable holding the integration database URL.
const PostgresURLEnv = "ALABINTRO_TEST_POSTGRES_URL"

// SetupPostgres opens the database named by ALABINTRO_TEST_POSTGRES_URL,
// skipping the test when it is unset. Every test runs in a fresh schema
// that is the connection's only search_path entry and is dropped on
// cleanup. It returns the connection and its URL.
func SetupPostgres(t *testing.T) (*sql.DB, string) {
	t.Helper()

	base := os.Getenv(PostgresURLEnv)
	if base == "" {
		t.Skip(PostgresURLEnv + " not set")
	}

	schema := "test_" + strings.ToLower(rand.Text()[:12])

	admin := openPostgres(t, base)
	if _, err := admin.Exec(`CREATE SCHEMA "` + schema + `"`); err != nil {
		admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	u, err := url.Parse(base)
	if err != nil {
		admin.Close()
		t.Fatalf("parse %s: %v", PostgresURLEnv, err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	db := openPostgres(t, u.String())

	t.Cleanup(func() {
		db.Close()
		_, _ = admin.Exec(`DROP SCHEMA IF EXISTS "` + schema + `" CASCADE`)
		admin.Close()
	})

	return db, u.String()
}

func openPostgres(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("ping postgres: %v", err)
	}
	return db
}
