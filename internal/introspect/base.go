package introspect

import (
	"context"
	"database/sql"
	"sort"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// columnIntrospector reads the columns and primary key of a table.
type columnIntrospector interface {
	introspectColumns(ctx context.Context, tableName string) ([]RawColumn, error)
	declaredType(raw RawColumn) string
}

// indexIntrospector reads the secondary indexes of a table.
type indexIntrospector interface {
	introspectIndexes(ctx context.Context, tableName string) ([]*sqlschema.Index, error)
}

// foreignKeyIntrospector reads the foreign keys of a table.
type foreignKeyIntrospector interface {
	introspectForeignKeys(ctx context.Context, tableName string) ([]*sqlschema.ForeignKeyDef, error)
}

// introspectTableCommon is the shared implementation of IntrospectTable.
func introspectTableCommon(
	ctx context.Context,
	tableName string,
	colIntrospector columnIntrospector,
	idxIntrospector indexIntrospector,
	fkIntrospector foreignKeyIntrospector,
) (*sqlschema.TableDef, error) {
	raws, err := colIntrospector.introspectColumns(ctx, tableName)
	if err != nil {
		return nil, err
	}

	if len(raws) == 0 {
		return nil, nil // Table doesn't exist
	}

	indexes, err := idxIntrospector.introspectIndexes(ctx, tableName)
	if err != nil {
		return nil, err
	}

	foreignKeys, err := fkIntrospector.introspectForeignKeys(ctx, tableName)
	if err != nil {
		return nil, err
	}

	def := &sqlschema.TableDef{
		Name:        tableName,
		Columns:     make([]*sqlschema.Column, 0, len(raws)),
		PrimaryKey:  primaryKey(raws),
		Indexes:     indexes,
		ForeignKeys: foreignKeys,
	}
	for _, raw := range raws {
		def.Columns = append(def.Columns, raw.column(colIntrospector.declaredType(raw)))
	}

	return def, nil
}

// primaryKey returns the primary key columns in key order.
func primaryKey(raws []RawColumn) []string {
	var keyed []RawColumn
	for _, raw := range raws {
		if raw.PKOrdinal > 0 {
			keyed = append(keyed, raw)
		}
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].PKOrdinal < keyed[j].PKOrdinal })

	var pk []string
	for _, raw := range keyed {
		pk = append(pk, raw.Name)
	}
	return pk
}

// tableExistsCommon is the shared implementation of TableExists. query
// takes the table name as its only argument and selects one boolean.
func tableExistsCommon(ctx context.Context, db *sql.DB, query string, tableName string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, query, tableName).Scan(&exists); err != nil {
		return false, alerr.WrapSQL(err, "check table existence", tableName)
	}
	return exists, nil
}

// queryEach runs query and calls scan once per row. The rows are closed
// before it returns, so callers may issue follow-up queries on a
// single-connection pool. Errors are wrapped as SQL errors for op.
func queryEach(ctx context.Context, db *sql.DB, op, tableName, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return alerr.WrapSQL(err, op, tableName)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return alerr.WrapSQL(err, op, tableName)
		}
	}
	if err := rows.Err(); err != nil {
		return alerr.WrapSQL(err, op, tableName)
	}
	return nil
}

// FKAccumulator merges composite FK columns into single FKDef.
// It handles the common pattern where foreign key information is returned
// row-by-row from database catalogs and needs to be accumulated.
type FKAccumulator struct {
	fks   map[string]*sqlschema.ForeignKeyDef
	order []string // preserve insertion order
}

// NewFKAccumulator creates a new FKAccumulator.
func NewFKAccumulator() *FKAccumulator {
	return &FKAccumulator{
		fks:   make(map[string]*sqlschema.ForeignKeyDef),
		order: make([]string, 0),
	}
}

// Add adds or updates a foreign key entry.
// If a FK with the same name exists, it appends the column to the existing FK.
// Otherwise, it creates a new FK entry.
func (a *FKAccumulator) Add(name, column, refTable, refColumn, onDelete, onUpdate string) {
	if fk, exists := a.fks[name]; exists {
		fk.Columns = append(fk.Columns, column)
		fk.RefColumns = append(fk.RefColumns, refColumn)
		return
	}

	a.fks[name] = &sqlschema.ForeignKeyDef{
		Name:       name,
		Columns:    []string{column},
		RefTable:   refTable,
		RefColumns: []string{refColumn},
		OnDelete:   normalizeAction(onDelete),
		OnUpdate:   normalizeAction(onUpdate),
	}
	a.order = append(a.order, name)
}

// Values returns all accumulated foreign keys in insertion order.
func (a *FKAccumulator) Values() []*sqlschema.ForeignKeyDef {
	result := make([]*sqlschema.ForeignKeyDef, 0, len(a.fks))
	for _, name := range a.order {
		result = append(result, a.fks[name])
	}
	return result
}
