// Package alabintro introspects a live PostgreSQL or SQLite database into a
// data model document. Many-to-many relations are inferred from join tables
// and their names stay stable across runs through a metadata file.
package alabintro

import (
	"errors"
	"fmt"
)

// Errors returned by New and Pull. Match them with errors.Is.
var (
	ErrMissingDatabaseURL = errors.New("alabintro: database URL required")
	ErrConnectionFailed   = errors.New("alabintro: connection failed")
	ErrUnsupportedDialect = errors.New("alabintro: unsupported dialect")
)

// ConnectionError is returned when the database cannot be reached. It
// matches ErrConnectionFailed.
type ConnectionError struct {
	URL     string // Password redacted
	Dialect string
	Cause   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("alabintro: cannot reach %s database at %s: %v", e.Dialect, e.URL, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnectionFailed }
