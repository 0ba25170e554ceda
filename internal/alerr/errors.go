// Package alerr defines the coded errors of alabintro. Every error carries
// a stable code, key/value context and an optional cause, so the CLI can
// render diagnostics and callers can match on codes with errors.Is.
package alerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a stable error code of the form E{category}{number}.
type Code string

const (
	// Configuration (E2xxx)
	ErrInvalidConfig  Code = "E2001" // Malformed or unknown setting
	ErrMissingSetting Code = "E2002" // Required setting absent

	// SQL (E4xxx)
	ErrSQLExecution  Code = "E4001"
	ErrSQLConnection Code = "E4002"

	// Introspection (E6xxx)
	ErrIntrospection    Code = "E6001"
	ErrTypeMismatch     Code = "E6002" // SQL type has no model type
	EUnsupportedDialect Code = "E6003"

	// Metadata file (E8xxx)
	ErrMetadataRead    Code = "E8002"
	ErrMetadataWrite   Code = "E8003"
	ErrMetadataCorrupt Code = "E8004"

	// Broken invariants (E9xxx)
	EInternalError Code = "E9001"
)

// Error is a coded alabintro error.
type Error struct {
	code    Code
	message string
	context map[string]any
	helps   []string
	cause   error
}

// Error renders the code, message, sorted context and cause:
//
//	[E6001] failed to introspect table
//	  table: posts
//	  cause: connection reset
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)
	for _, k := range e.contextKeys() {
		fmt.Fprintf(&b, "\n  %s: %v", k, e.context[k])
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.cause)
	}
	return b.String()
}

func (e *Error) contextKeys() []string {
	keys := make([]string, 0, len(e.context))
	for k := range e.context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.code == e.code
}

func (e *Error) GetCode() Code { return e.code }
func (e *Error) GetMessage() string { return e.message }
func (e *Error) GetContext() map[string]any { return e.context }
func (e *Error) GetCause() error { return e.cause }

// Helps returns the help lines in the order they were added.
func (e *Error) Helps() []string { return e.helps }

// With records a context value and returns e for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

func (e *Error) WithTable(table string) *Error { return e.With("table", table) }

// WithHelp appends a suggestion, rendered as "help: ..." by the CLI.
func (e *Error) WithHelp(help string) *Error {
	e.helps = append(e.helps, help)
	return e
}

// New returns an error with code and message.
func New(code Code, msg string) *Error {
	return &Error{code: code, message: msg, context: make(map[string]any)}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns an error with code and message caused by err. A nil err
// gives the same result as New.
func Wrap(code Code, err error, msg string) *Error {
	e := New(code, msg)
	e.cause = err
	return e
}

// GetErrorCode returns the code of the first *Error in err's chain, or ""
// when there is none.
func GetErrorCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is reports whether err's chain carries code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// WrapSQL wraps a database error from op, e.g. WrapSQL(err, "list tables", "").
// A non-empty table is recorded as context.
func WrapSQL(err error, op string, table string) *Error {
	e := Wrap(ErrSQLExecution, err, "failed to "+op)
	if table != "" {
		e.WithTable(table)
	}
	return e
}
