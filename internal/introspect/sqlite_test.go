package introspect

import (
	"context"
	"slices"
	"testing"

	"github.com/hlop3z/alabintro/internal/sqlschema"
	"github.com/hlop3z/alabintro/internal/testutil"
)

const blogDDL = `
CREATE TABLE "Category" (
	"id" INTEGER PRIMARY KEY,
	"name" TEXT NOT NULL
);
CREATE TABLE "Post" (
	"id" INTEGER PRIMARY KEY,
	"title" VARCHAR(200),
	"views" INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE "_CategoryToPost" (
	"A" INTEGER NOT NULL REFERENCES "Category"("id") ON DELETE CASCADE ON UPDATE CASCADE,
	"B" INTEGER NOT NULL REFERENCES "Post"("id") ON DELETE CASCADE ON UPDATE CASCADE
);
CREATE UNIQUE INDEX "_CategoryToPost_AB_unique" ON "_CategoryToPost"("A", "B");
CREATE INDEX "_CategoryToPost_B_index" ON "_CategoryToPost"("B");
`

func setupBlog(t *testing.T) Introspector {
	t.Helper()
	db := testutil.SetupSQLite(t)
	testutil.ExecSQL(t, db, blogDDL)

	in, err := New(db, DialectSQLite)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return in
}

func TestSQLite_ListTables(t *testing.T) {
	in := setupBlog(t)

	tables, err := in.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables() error = %v", err)
	}

	want := []string{"Category", "Post", "_CategoryToPost"}
	if !slices.Equal(tables, want) {
		t.Errorf("ListTables() = %v, want %v", tables, want)
	}
}

func TestSQLite_IntrospectTable(t *testing.T) {
	in := setupBlog(t)
	ctx := context.Background()

	t.Run("columns", func(t *testing.T) {
		def, err := in.IntrospectTable(ctx, "Post")
		if err != nil {
			t.Fatalf("IntrospectTable() error = %v", err)
		}

		if len(def.Columns) != 3 {
			t.Fatalf("len(Columns) = %d, want 3", len(def.Columns))
		}
		id, title, views := def.Columns[0], def.Columns[1], def.Columns[2]

		if id.Nullable {
			t.Error("primary key column id is nullable")
		}
		if title.Type != "VARCHAR(200)" || !title.Nullable {
			t.Errorf("title = %+v, want nullable VARCHAR(200)", title)
		}
		if !views.HasDefault || views.Default != "0" || views.Nullable {
			t.Errorf("views = %+v, want NOT NULL DEFAULT 0", views)
		}
		if !slices.Equal(def.PrimaryKey, []string{"id"}) {
			t.Errorf("PrimaryKey = %v, want [id]", def.PrimaryKey)
		}
	})

	t.Run("join table", func(t *testing.T) {
		def, err := in.IntrospectTable(ctx, "_CategoryToPost")
		if err != nil {
			t.Fatalf("IntrospectTable() error = %v", err)
		}

		if len(def.PrimaryKey) != 0 {
			t.Errorf("PrimaryKey = %v, want none", def.PrimaryKey)
		}
		if len(def.ForeignKeys) != 2 {
			t.Fatalf("len(ForeignKeys) = %d, want 2", len(def.ForeignKeys))
		}
		refs := map[string]string{}
		for _, fk := range def.ForeignKeys {
			refs[fk.Columns[0]] = fk.RefTable
			if fk.OnDelete != "CASCADE" || fk.OnUpdate != "CASCADE" {
				t.Errorf("fk %s actions = %q/%q, want CASCADE", fk.Name, fk.OnDelete, fk.OnUpdate)
			}
			if !slices.Equal(fk.RefColumns, []string{"id"}) {
				t.Errorf("fk %s RefColumns = %v, want [id]", fk.Name, fk.RefColumns)
			}
		}
		if refs["A"] != "Category" || refs["B"] != "Post" {
			t.Errorf("foreign keys = %v, want A->Category, B->Post", refs)
		}

		unique := slices.ContainsFunc(def.Indexes, func(idx *sqlschema.Index) bool {
			return idx.Unique && slices.Equal(idx.Columns, []string{"A", "B"})
		})
		if !unique {
			t.Errorf("Indexes = %+v, want unique (A, B)", def.Indexes)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		def, err := in.IntrospectTable(ctx, "nope")
		if err != nil {
			t.Fatalf("IntrospectTable() error = %v", err)
		}
		if def != nil {
			t.Errorf("IntrospectTable(nope) = %+v, want nil", def)
		}
	})
}

func TestSQLite_UniqueConstraintIndex(t *testing.T) {
	db := testutil.SetupSQLite(t)
	testutil.ExecSQL(t, db,
		`CREATE TABLE "Post" ("id" INTEGER PRIMARY KEY)`,
		`CREATE TABLE "Tag" ("id" INTEGER PRIMARY KEY)`,
		`CREATE TABLE "_PostToTag" (
			"A" INTEGER NOT NULL REFERENCES "Post"("id"),
			"B" INTEGER NOT NULL REFERENCES "Tag"("id"),
			UNIQUE ("A", "B")
		)`,
	)
	in, _ := New(db, DialectSQLite)

	schema, err := Schema(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	table, ok := schema.TableByName("_PostToTag")
	if !ok {
		t.Fatal("_PostToTag missing")
	}
	if !schema.IsJoinTable(table) {
		t.Errorf("_PostToTag with a UNIQUE table constraint is not a join table; indexes = %+v", table.Indexes)
	}
}

func TestSQLite_CompositePrimaryKey(t *testing.T) {
	db := testutil.SetupSQLite(t)
	testutil.ExecSQL(t, db,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE tags (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE post_tags (
			tag_id INTEGER NOT NULL REFERENCES tags(id),
			post_id INTEGER NOT NULL REFERENCES posts(id),
			PRIMARY KEY (post_id, tag_id)
		)`,
	)
	in, _ := New(db, DialectSQLite)

	def, err := in.IntrospectTable(context.Background(), "post_tags")
	if err != nil {
		t.Fatalf("IntrospectTable() error = %v", err)
	}

	if !slices.Equal(def.PrimaryKey, []string{"post_id", "tag_id"}) {
		t.Errorf("PrimaryKey = %v, want [post_id tag_id]", def.PrimaryKey)
	}
	for _, idx := range def.Indexes {
		if slices.Equal(idx.Columns, def.PrimaryKey) {
			t.Errorf("primary key index %s reported as a secondary index", idx.Name)
		}
	}

	schema, err := Schema(context.Background(), in, Options{JoinMode: sqlschema.JoinTableRelaxed})
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	table, _ := schema.TableByName("post_tags")
	if !schema.IsJoinTable(table) {
		t.Error("post_tags is not a relaxed join table")
	}
}

func TestSQLite_Schema(t *testing.T) {
	in := setupBlog(t)

	schema, err := Schema(context.Background(), in, Options{Concurrency: 8})
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	if got := schema.TableNames(); !slices.Equal(got, []string{"Category", "Post", "_CategoryToPost"}) {
		t.Errorf("TableNames() = %v", got)
	}

	join, _ := schema.TableByName("_CategoryToPost")
	if !schema.IsJoinTable(join) {
		t.Error("_CategoryToPost is not a join table")
	}
	for _, fk := range join.ForeignKeys {
		if !fk.Resolved() {
			t.Errorf("fk %s to %s not resolved", fk.Name, fk.ReferencedTableName)
		}
	}
}

func TestSQLite_TableExists(t *testing.T) {
	in := setupBlog(t)
	ctx := context.Background()

	tests := []struct {
		table string
		want  bool
	}{
		{"Post", true},
		{"_CategoryToPost", true},
		{"Comment", false},
	}

	for _, tt := range tests {
		got, err := in.TableExists(ctx, tt.table)
		if err != nil {
			t.Fatalf("TableExists(%s) error = %v", tt.table, err)
		}
		if got != tt.want {
			t.Errorf("TableExists(%s) = %v, want %v", tt.table, got, tt.want)
		}
	}
}

func TestSQLite_CancelledContext(t *testing.T) {
	in := setupBlog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Schema(ctx, in, Options{}); err == nil {
		t.Error("Schema() with cancelled context error = nil")
	}
}
