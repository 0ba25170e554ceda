package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/hlop3z/alabintro/internal/sqlschema"
	"github.com/hlop3z/alabintro/internal/strutil"
)

const (
	sqliteListTables = `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	sqliteTableExists = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`
)

type sqliteIntrospector struct {
	db *sql.DB
}

// pragma formats a table-valued PRAGMA call on a quoted identifier.
func pragma(name, arg string) string {
	return fmt.Sprintf("PRAGMA %s(%s)", name, strutil.QuoteSQL(arg))
}

func (s *sqliteIntrospector) Dialect() string {
	return DialectSQLite
}

func (s *sqliteIntrospector) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := queryEach(ctx, s.db, "list tables", "", sqliteListTables, nil, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
		return nil
	})
	return tables, err
}

func (s *sqliteIntrospector) IntrospectTable(ctx context.Context, tableName string) (*sqlschema.TableDef, error) {
	return introspectTableCommon(ctx, tableName, s, s, s)
}

func (s *sqliteIntrospector) TableExists(ctx context.Context, tableName string) (bool, error) {
	return tableExistsCommon(ctx, s.db, sqliteTableExists, tableName)
}

// SQLite keeps the declared type verbatim.
func (s *sqliteIntrospector) declaredType(raw RawColumn) string {
	return raw.DataType
}

// introspectColumns reads PRAGMA table_info: cid, name, type, notnull,
// dflt_value, pk (the 1-based key ordinal, 0 for non-key columns).
func (s *sqliteIntrospector) introspectColumns(ctx context.Context, tableName string) ([]RawColumn, error) {
	var columns []RawColumn
	err := queryEach(ctx, s.db, "introspect columns", tableName, pragma("table_info", tableName), nil, func(rows *sql.Rows) error {
		var (
			cid, notNull int
			raw          RawColumn
		)
		if err := rows.Scan(&cid, &raw.Name, &raw.DataType, &notNull, &raw.Default, &raw.PKOrdinal); err != nil {
			return err
		}
		raw.IsNullable = notNull == 0
		columns = append(columns, raw)
		return nil
	})
	return columns, err
}

// introspectIndexes reads PRAGMA index_list: seq, name, unique, origin,
// partial. It includes the automatic indexes behind UNIQUE table
// constraints, which sqlite_master lists without SQL.
func (s *sqliteIntrospector) introspectIndexes(ctx context.Context, tableName string) ([]*sqlschema.Index, error) {
	var entries []*sqlschema.Index
	err := queryEach(ctx, s.db, "introspect indexes", tableName, pragma("index_list", tableName), nil, func(rows *sql.Rows) error {
		var (
			seq, unique, partial int
			name, origin         string
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return err
		}
		// The primary key is read from table_info.
		if origin != "pk" {
			entries = append(entries, &sqlschema.Index{Name: name, Unique: unique == 1})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// index_list rows are closed by now; the pool may hold one connection.
	indexes := entries[:0]
	for _, idx := range entries {
		columns, err := s.indexColumns(ctx, tableName, idx.Name)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			continue // Expression index
		}
		idx.Columns = columns
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// indexColumns reads PRAGMA index_info: seqno, cid, name. It returns nil
// for expression indexes, whose column name is NULL.
func (s *sqliteIntrospector) indexColumns(ctx context.Context, tableName, indexName string) ([]string, error) {
	var (
		columns    []string
		expression bool
	)
	err := queryEach(ctx, s.db, "read index "+indexName, tableName, pragma("index_info", indexName), nil, func(rows *sql.Rows) error {
		var (
			seqno, cid int
			name       sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return err
		}
		if !name.Valid {
			expression = true
		}
		columns = append(columns, name.String)
		return nil
	})
	if err != nil || expression {
		return nil, err
	}
	return columns, nil
}

// introspectForeignKeys reads PRAGMA foreign_key_list: id, seq, table,
// from, to, on_update, on_delete, match.
func (s *sqliteIntrospector) introspectForeignKeys(ctx context.Context, tableName string) ([]*sqlschema.ForeignKeyDef, error) {
	acc := NewFKAccumulator()
	err := queryEach(ctx, s.db, "introspect foreign keys", tableName, pragma("foreign_key_list", tableName), nil, func(rows *sql.Rows) error {
		var (
			id, seq                                int
			refTable, from, onUpdate, onDelete, mt string
			to                                     sql.NullString
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &mt); err != nil {
			return err
		}
		// SQLite numbers constraints instead of naming them.
		acc.Add(fmt.Sprintf("fk_%s_%d", tableName, id), from, refTable, to.String, onDelete, onUpdate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// foreign_key_list numbers constraints in reverse declaration order.
	fks := acc.Values()
	slices.Reverse(fks)
	return fks, nil
}
