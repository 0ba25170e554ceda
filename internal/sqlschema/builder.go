package sqlschema

// TableDef is the catalog-level description of a table. Foreign keys name
// their referenced table; Build resolves those names to TableIDs.
type TableDef struct {
	Name        string
	Columns     []*Column
	PrimaryKey  []string
	Indexes     []*Index
	ForeignKeys []*ForeignKeyDef
}

// ForeignKeyDef is a foreign key whose referenced table is still a name.
type ForeignKeyDef struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string
	OnUpdate   string
}

// New builds a Schema from table definitions, keeping their order.
// Foreign keys that reference a table outside defs get ReferencedTable NoTable.
func New(defs []*TableDef, mode JoinTableMode) *Schema {
	s := &Schema{
		Tables:     make([]*Table, 0, len(defs)),
		JoinMode:   mode,
		byName:     make(map[string]TableID, len(defs)),
		referenced: make(map[TableID]bool),
	}

	for i, def := range defs {
		s.byName[def.Name] = TableID(i)
	}

	for i, def := range defs {
		t := &Table{
			ID:         TableID(i),
			Name:       def.Name,
			Columns:    def.Columns,
			PrimaryKey: def.PrimaryKey,
			Indexes:    def.Indexes,
		}
		for _, fkDef := range def.ForeignKeys {
			ref, ok := s.byName[fkDef.RefTable]
			if !ok {
				ref = NoTable
			} else if ref != t.ID {
				s.referenced[ref] = true
			}
			t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
				Name:                fkDef.Name,
				Columns:             fkDef.Columns,
				ReferencedTable:     ref,
				ReferencedTableName: fkDef.RefTable,
				ReferencedColumns:   fkDef.RefColumns,
				OnDelete:            fkDef.OnDelete,
				OnUpdate:            fkDef.OnUpdate,
			})
		}
		s.Tables = append(s.Tables, t)
	}

	return s
}

// Builder assembles a Schema table by table.
//
// Example:
//
//	b := sqlschema.NewBuilder()
//	b.Table("Post").Column("id", "INTEGER").PrimaryKey("id")
//	b.Table("_PostToTag").
//	    Column("A", "INTEGER").Column("B", "INTEGER").
//	    ForeignKey("A", "Post", "id").ForeignKey("B", "Tag", "id").
//	    UniqueIndex("A", "B")
//	schema := b.Build()
type Builder struct {
	defs []*TableDef
	mode JoinTableMode
}

// NewBuilder creates an empty Builder using the strict join-table predicate.
func NewBuilder() *Builder {
	return &Builder{}
}

// JoinMode sets the join-table predicate of the built schema.
func (b *Builder) JoinMode(mode JoinTableMode) *Builder {
	b.mode = mode
	return b
}

// Table starts a new table definition.
func (b *Builder) Table(name string) *TableBuilder {
	def := &TableDef{Name: name}
	b.defs = append(b.defs, def)
	return &TableBuilder{def: def}
}

// Build resolves references and returns the schema.
func (b *Builder) Build() *Schema {
	return New(b.defs, b.mode)
}

// TableBuilder adds columns and constraints to one table.
type TableBuilder struct {
	def *TableDef
}

// Column adds a NOT NULL column.
func (tb *TableBuilder) Column(name, sqlType string) *TableBuilder {
	tb.def.Columns = append(tb.def.Columns, &Column{Name: name, Type: sqlType})
	return tb
}

// NullableColumn adds a nullable column.
func (tb *TableBuilder) NullableColumn(name, sqlType string) *TableBuilder {
	tb.def.Columns = append(tb.def.Columns, &Column{Name: name, Type: sqlType, Nullable: true})
	return tb
}

// PrimaryKey sets the primary key columns.
func (tb *TableBuilder) PrimaryKey(columns ...string) *TableBuilder {
	tb.def.PrimaryKey = columns
	return tb
}

// ForeignKey adds a single-column foreign key.
func (tb *TableBuilder) ForeignKey(column, refTable, refColumn string) *TableBuilder {
	tb.def.ForeignKeys = append(tb.def.ForeignKeys, &ForeignKeyDef{
		Name:       tb.def.Name + "_" + column + "_fkey",
		Columns:    []string{column},
		RefTable:   refTable,
		RefColumns: []string{refColumn},
		OnDelete:   "CASCADE",
	})
	return tb
}

// UniqueIndex adds a unique index over the given columns.
func (tb *TableBuilder) UniqueIndex(columns ...string) *TableBuilder {
	tb.def.Indexes = append(tb.def.Indexes, &Index{
		Name:    tb.def.Name + "_unique",
		Columns: columns,
		Unique:  true,
	})
	return tb
}
