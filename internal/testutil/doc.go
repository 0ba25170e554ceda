// Package testutil provides test helpers for alabintro.
//
// This package includes:
//   - SQLite database setup on modernc.org/sqlite (no cgo, no server)
//   - PostgreSQL database setup for integration tests
//   - Error assertion helpers for checking error codes
//   - Golden file testing support
//
// # Build Tags
//
// PostgreSQL tests need a running server and the integration tag:
//
//	ALABINTRO_TEST_POSTGRES_URL=postgres://... go test ./... -tags=integration
//
// SQLite tests always run.
package testutil
