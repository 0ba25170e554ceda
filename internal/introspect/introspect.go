// Package introspect reads table, column, index and foreign key metadata
// from database system catalogs and assembles it into a sqlschema.Schema.
package introspect

import (
	"context"
	"database/sql"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Dialects lists the supported dialect names.
var Dialects = []string{DialectPostgres, DialectSQLite}

// Introspector queries database catalogs to discover schema information.
type Introspector interface {
	// Dialect returns the dialect name.
	Dialect() string

	// ListTables returns the user table names in sorted order.
	ListTables(ctx context.Context) ([]string, error)

	// IntrospectTable returns a single table definition, or nil if not found.
	IntrospectTable(ctx context.Context, tableName string) (*sqlschema.TableDef, error)

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)
}

// New creates an Introspector for the given dialect.
func New(db *sql.DB, dialect string) (Introspector, error) {
	switch dialect {
	case DialectPostgres:
		return &postgresIntrospector{db: db}, nil
	case DialectSQLite:
		return &sqliteIntrospector{db: db}, nil
	default:
		e := alerr.Newf(alerr.EUnsupportedDialect, "unsupported dialect %q", dialect).
			With("allowed", Dialects)
		if hint := alerr.SuggestSimilar(dialect, Dialects); hint != "" {
			e.WithHelp(hint)
		}
		return nil, e
	}
}

// Options controls schema introspection.
type Options struct {
	// JoinMode selects the join-table predicate of the resulting schema.
	JoinMode sqlschema.JoinTableMode

	// Concurrency is the number of tables read in parallel (default 4).
	// SQLite is always read one table at a time.
	Concurrency int

	// Exclude lists extra table names to skip.
	Exclude []string
}

// Schema reads every user table through in and builds the schema.
// Tables keep the sorted order of ListTables regardless of the order in
// which the parallel reads complete.
func Schema(ctx context.Context, in Introspector, opts Options) (*sqlschema.Schema, error) {
	tables, err := in.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	tables = slices.DeleteFunc(tables, func(name string) bool {
		return isInternalTable(name) || slices.Contains(opts.Exclude, name)
	})

	defs := make([]*sqlschema.TableDef, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyLimit(in, opts.Concurrency))
	for i, name := range tables {
		g.Go(func() error {
			def, err := in.IntrospectTable(gctx, name)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Tables dropped between listing and reading come back nil.
	defs = slices.DeleteFunc(defs, func(def *sqlschema.TableDef) bool { return def == nil })

	slog.Debug("introspected schema", "dialect", in.Dialect(), "tables", len(defs))
	return sqlschema.New(defs, opts.JoinMode), nil
}

func concurrencyLimit(in Introspector, n int) int {
	if in.Dialect() == DialectSQLite {
		return 1
	}
	if n <= 0 {
		return 4
	}
	return n
}

// RawColumn represents column metadata from database catalog.
type RawColumn struct {
	Name       string
	DataType   string // Raw SQL type (VARCHAR, INTEGER, etc.)
	IsNullable bool
	Default    sql.NullString // Raw default expression
	PKOrdinal  int            // 1-based position in the primary key, 0 if not a key column
	MaxLength  sql.NullInt64  // For VARCHAR(n)
	Precision  sql.NullInt64  // For DECIMAL(p,s)
	Scale      sql.NullInt64
}

// column converts the raw catalog row into a schema column.
func (r RawColumn) column(declaredType string) *sqlschema.Column {
	col := &sqlschema.Column{
		Name:     r.Name,
		Type:     declaredType,
		Nullable: r.IsNullable && r.PKOrdinal == 0, // PK columns are never nullable
	}
	if r.Default.Valid {
		col.HasDefault = true
		col.Default = r.Default.String
	}
	return col
}

// normalizeAction converts a referential action to its canonical form.
func normalizeAction(action string) string {
	switch strings.ToUpper(action) {
	case "CASCADE":
		return "CASCADE"
	case "SET NULL":
		return "SET NULL"
	case "SET DEFAULT":
		return "SET DEFAULT"
	case "RESTRICT":
		return "RESTRICT"
	default:
		return "" // NO ACTION, the default
	}
}

// internalTables lists migration bookkeeping tables skipped during introspection.
var internalTables = map[string]bool{
	"alab_migrations":    true,
	"_prisma_migrations": true,
	"schema_migrations":  true,
	"goose_db_version":   true,
}

// isInternalTable checks if a table should be skipped.
func isInternalTable(name string) bool {
	return internalTables[name]
}
