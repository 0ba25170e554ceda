package introspect

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Catalog queries are scoped to current_schema(), so a search_path in the
// connection URL selects the schema to read.
const (
	pgListTables = `
		SELECT tablename FROM pg_tables
		WHERE schemaname = current_schema()
		ORDER BY tablename`

	pgTableExists = `
		SELECT EXISTS (
			SELECT 1 FROM pg_tables
			WHERE schemaname = current_schema() AND tablename = $1
		)`

	// pk_position is the column's ordinal in the primary key, 0 when not a key column.
	pgColumns = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			COALESCE(pk.position, 0) AS pk_position
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name, kcu.ordinal_position AS position
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			WHERE tc.table_name = $1
				AND tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = current_schema()
		) pk ON c.column_name = pk.column_name
		WHERE c.table_schema = current_schema()
			AND c.table_name = $1
		ORDER BY c.ordinal_position`

	// Secondary indexes only; the primary key comes from pgColumns.
	pgIndexes = `
		SELECT
			i.relname AS index_name,
			ix.indisunique AS is_unique,
			array_to_string(array_agg(a.attname ORDER BY x.n), ',') AS columns
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS x(attnum, n) ON TRUE
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = x.attnum
		WHERE t.relname = $1
			AND t.relnamespace = (SELECT oid FROM pg_namespace WHERE nspname = current_schema())
			AND NOT ix.indisprimary
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname`

	// One row per foreign key column, in key order.
	pgForeignKeys = `
		SELECT
			tc.constraint_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name,
			rc.delete_rule,
			rc.update_rule
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints AS rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_name = $1
			AND tc.table_schema = current_schema()
		ORDER BY tc.constraint_name, kcu.ordinal_position`
)

type postgresIntrospector struct {
	db *sql.DB
}

func (p *postgresIntrospector) Dialect() string {
	return DialectPostgres
}

func (p *postgresIntrospector) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := queryEach(ctx, p.db, "list tables", "", pgListTables, nil, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
		return nil
	})
	return tables, err
}

func (p *postgresIntrospector) IntrospectTable(ctx context.Context, tableName string) (*sqlschema.TableDef, error) {
	return introspectTableCommon(ctx, tableName, p, p, p)
}

func (p *postgresIntrospector) TableExists(ctx context.Context, tableName string) (bool, error) {
	return tableExistsCommon(ctx, p.db, pgTableExists, tableName)
}

func (p *postgresIntrospector) declaredType(raw RawColumn) string {
	return pgDeclaredType(raw.DataType, raw.MaxLength, raw.Precision, raw.Scale)
}

func (p *postgresIntrospector) introspectColumns(ctx context.Context, tableName string) ([]RawColumn, error) {
	var columns []RawColumn
	err := queryEach(ctx, p.db, "introspect columns", tableName, pgColumns, []any{tableName}, func(rows *sql.Rows) error {
		var (
			raw        RawColumn
			isNullable string
		)
		if err := rows.Scan(
			&raw.Name,
			&raw.DataType,
			&isNullable,
			&raw.Default,
			&raw.MaxLength,
			&raw.Precision,
			&raw.Scale,
			&raw.PKOrdinal,
		); err != nil {
			return err
		}
		raw.IsNullable = isNullable == "YES"
		columns = append(columns, raw)
		return nil
	})
	return columns, err
}

func (p *postgresIntrospector) introspectIndexes(ctx context.Context, tableName string) ([]*sqlschema.Index, error) {
	var indexes []*sqlschema.Index
	err := queryEach(ctx, p.db, "introspect indexes", tableName, pgIndexes, []any{tableName}, func(rows *sql.Rows) error {
		var (
			name, columns string
			unique        bool
		)
		if err := rows.Scan(&name, &unique, &columns); err != nil {
			return err
		}
		indexes = append(indexes, &sqlschema.Index{
			Name:    name,
			Columns: strings.Split(columns, ","),
			Unique:  unique,
		})
		return nil
	})
	return indexes, err
}

func (p *postgresIntrospector) introspectForeignKeys(ctx context.Context, tableName string) ([]*sqlschema.ForeignKeyDef, error) {
	acc := NewFKAccumulator()
	err := queryEach(ctx, p.db, "introspect foreign keys", tableName, pgForeignKeys, []any{tableName}, func(rows *sql.Rows) error {
		var name, column, refTable, refColumn, onDelete, onUpdate string
		if err := rows.Scan(&name, &column, &refTable, &refColumn, &onDelete, &onUpdate); err != nil {
			return err
		}
		acc.Add(name, column, refTable, refColumn, onDelete, onUpdate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc.Values(), nil
}
