// Package sqlschema holds the typed description of a physical relational
// schema: tables, columns, foreign keys and indexes, addressed by index IDs.
//
// A Schema is built once (by an introspector or a Builder) and is read-only
// afterwards. Foreign keys reference tables by TableID, so walking the schema
// never needs name lookups.
package sqlschema

import (
	"slices"
	"strings"
)

// TableID identifies a table by its position in Schema.Tables.
type TableID int

// NoTable marks a foreign key whose referenced table is not part of the schema.
const NoTable TableID = -1

// JoinTableMode selects the pure-junction predicate used by Table.IsJoinTable.
type JoinTableMode int

const (
	// JoinTableStrict recognizes `_Name` tables with exactly the columns A and B.
	JoinTableStrict JoinTableMode = iota
	// JoinTableRelaxed recognizes any table made only of two foreign keys.
	JoinTableRelaxed
)

// String returns the config spelling of the mode.
func (m JoinTableMode) String() string {
	if m == JoinTableRelaxed {
		return "relaxed"
	}
	return "strict"
}

// JoinTableModes lists the accepted config spellings.
var JoinTableModes = []string{"strict", "relaxed"}

// ParseJoinTableMode parses a config value. Empty means strict.
func ParseJoinTableMode(s string) (JoinTableMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return JoinTableStrict, true
	case "relaxed":
		return JoinTableRelaxed, true
	default:
		return JoinTableStrict, false
	}
}

// Schema is the set of tables discovered in a database, in catalog order.
type Schema struct {
	Tables   []*Table
	JoinMode JoinTableMode

	byName     map[string]TableID
	referenced map[TableID]bool // Targets of another table's foreign key
}

// Table returns the table with the given ID, or nil if out of range.
func (s *Schema) Table(id TableID) *Table {
	if id < 0 || int(id) >= len(s.Tables) {
		return nil
	}
	return s.Tables[id]
}

// TableByName returns the table with the given name.
func (s *Schema) TableByName(name string) (*Table, bool) {
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.Tables[id], true
}

// TableNames returns table names in schema order.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// IsJoinTable reports whether t is a pure junction table under the schema's
// JoinMode. Only tables with exactly two resolved foreign keys qualify, and
// a table that another table's foreign key points at never does: it is
// rendered as a model so the reference has a target.
func (s *Schema) IsJoinTable(t *Table) bool {
	if s.referenced[t.ID] {
		return false
	}
	if s.JoinMode == JoinTableRelaxed {
		return t.isRelaxedJoinTable()
	}
	return t.isStrictJoinTable()
}

// Table is a physical table.
type Table struct {
	ID          TableID
	Name        string
	Columns     []*Column
	PrimaryKey  []string // Primary key column names, in key order
	Indexes     []*Index
	ForeignKeys []*ForeignKey
}

// Column returns the column with the given name, or nil if not found.
func (t *Table) Column(name string) *Column {
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// IsPrimaryKey reports whether the named column is part of the primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	return slices.Contains(t.PrimaryKey, column)
}

// Column is a table column.
type Column struct {
	Name       string
	Type       string // Declared SQL type, as reported by the catalog
	Nullable   bool
	Default    string
	HasDefault bool
}

// ForeignKey is a foreign key constraint on a table.
type ForeignKey struct {
	Name                string
	Columns             []string // Constrained columns, in constraint order
	ReferencedTable     TableID
	ReferencedTableName string
	ReferencedColumns   []string
	OnDelete            string
	OnUpdate            string
}

// FirstColumn returns the leading constrained column name, or "".
func (fk *ForeignKey) FirstColumn() string {
	if len(fk.Columns) == 0 {
		return ""
	}
	return fk.Columns[0]
}

// Resolved reports whether the referenced table is part of the schema.
func (fk *ForeignKey) Resolved() bool {
	return fk.ReferencedTable != NoTable
}

// Index is a table index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}
