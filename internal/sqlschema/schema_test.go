package sqlschema

import "testing"

func blogSchema(mode JoinTableMode) *Schema {
	b := NewBuilder().JoinMode(mode)
	b.Table("Category").Column("id", "INTEGER").Column("name", "TEXT").PrimaryKey("id")
	b.Table("Post").Column("id", "INTEGER").NullableColumn("title", "TEXT").PrimaryKey("id")
	b.Table("_CategoryToPost").
		Column("A", "INTEGER").Column("B", "INTEGER").
		ForeignKey("A", "Category", "id").ForeignKey("B", "Post", "id").
		UniqueIndex("A", "B")
	return b.Build()
}

func TestNew_ResolvesReferences(t *testing.T) {
	s := blogSchema(JoinTableStrict)

	if len(s.Tables) != 3 {
		t.Fatalf("len(Tables) = %d, want 3", len(s.Tables))
	}
	for i, table := range s.Tables {
		if table.ID != TableID(i) {
			t.Errorf("table %s ID = %d, want %d", table.Name, table.ID, i)
		}
	}

	join, ok := s.TableByName("_CategoryToPost")
	if !ok {
		t.Fatal("TableByName(_CategoryToPost) not found")
	}
	if got := join.ForeignKeys[0].ReferencedTable; got != 0 {
		t.Errorf("fk A references %d, want 0", got)
	}
	if got := join.ForeignKeys[1].ReferencedTable; got != 1 {
		t.Errorf("fk B references %d, want 1", got)
	}
	if got := join.ForeignKeys[0].FirstColumn(); got != "A" {
		t.Errorf("FirstColumn() = %q, want A", got)
	}
}

func TestNew_UnresolvedReference(t *testing.T) {
	b := NewBuilder()
	b.Table("orders").Column("id", "INTEGER").Column("customer_id", "INTEGER").
		ForeignKey("customer_id", "customers", "id")
	s := b.Build()

	fk := s.Tables[0].ForeignKeys[0]
	if fk.Resolved() {
		t.Error("fk to missing table should not be resolved")
	}
	if fk.ReferencedTableName != "customers" {
		t.Errorf("ReferencedTableName = %q, want customers", fk.ReferencedTableName)
	}
}

func TestSchema_Table(t *testing.T) {
	s := blogSchema(JoinTableStrict)

	if s.Table(1).Name != "Post" {
		t.Errorf("Table(1) = %s, want Post", s.Table(1).Name)
	}
	if s.Table(-1) != nil || s.Table(3) != nil {
		t.Error("out-of-range IDs should return nil")
	}
	if _, ok := s.TableByName("missing"); ok {
		t.Error("TableByName(missing) should fail")
	}
	names := s.TableNames()
	if len(names) != 3 || names[2] != "_CategoryToPost" {
		t.Errorf("TableNames() = %v", names)
	}
}

func TestTable_ColumnHelpers(t *testing.T) {
	post := blogSchema(JoinTableStrict).Tables[1]

	if post.Column("title") == nil || !post.Column("title").Nullable {
		t.Error("title should be a nullable column")
	}
	if post.Column("missing") != nil {
		t.Error("Column(missing) should be nil")
	}
	if !post.IsPrimaryKey("id") || post.IsPrimaryKey("title") {
		t.Error("IsPrimaryKey mismatch")
	}
}

func TestParseJoinTableMode(t *testing.T) {
	tests := []struct {
		in   string
		want JoinTableMode
		ok   bool
	}{
		{"", JoinTableStrict, true},
		{"strict", JoinTableStrict, true},
		{"Relaxed", JoinTableRelaxed, true},
		{"loose", JoinTableStrict, false},
	}

	for _, tt := range tests {
		got, ok := ParseJoinTableMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseJoinTableMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if JoinTableRelaxed.String() != "relaxed" || JoinTableStrict.String() != "strict" {
		t.Error("String() mismatch")
	}
}
