package introspect

import (
	"context"
	"database/sql/driver"
	"errors"
	"slices"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/testutil"
)

var (
	pgColumnCols = []string{
		"column_name", "data_type", "is_nullable", "column_default",
		"character_maximum_length", "numeric_precision", "numeric_scale", "pk_position",
	}
	pgIndexCols = []string{"index_name", "is_unique", "columns"}
	pgFKCols    = []string{
		"constraint_name", "column_name", "foreign_table_name", "foreign_column_name",
		"delete_rule", "update_rule",
	}
)

const (
	pgListQuery    = `SELECT tablename FROM pg_tables`
	pgColumnsQuery = `FROM information_schema\.columns c`
	pgIndexesQuery = `FROM pg_index ix`
	pgFKQuery      = `WHERE tc\.constraint_type = 'FOREIGN KEY'`
)

func newMockIntrospector(t *testing.T) (Introspector, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	in, err := New(db, DialectPostgres)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return in, mock
}

func expectPlainTable(mock sqlmock.Sqlmock, table string, columns ...[]driver.Value) {
	rows := sqlmock.NewRows(pgColumnCols)
	for _, c := range columns {
		rows.AddRow(c...)
	}
	mock.ExpectQuery(pgColumnsQuery).WithArgs(table).WillReturnRows(rows)
	mock.ExpectQuery(pgIndexesQuery).WithArgs(table).WillReturnRows(sqlmock.NewRows(pgIndexCols))
	mock.ExpectQuery(pgFKQuery).WithArgs(table).WillReturnRows(sqlmock.NewRows(pgFKCols))
}

func TestPostgres_Schema(t *testing.T) {
	in, mock := newMockIntrospector(t)

	mock.ExpectQuery(pgListQuery).WillReturnRows(
		sqlmock.NewRows([]string{"tablename"}).
			AddRow("Category").
			AddRow("Post").
			AddRow("_CategoryToPost").
			AddRow("_prisma_migrations"),
	)

	expectPlainTable(mock, "Category",
		[]driver.Value{"id", "integer", "NO", "nextval('\"Category_id_seq\"'::regclass)", nil, int64(32), int64(0), int64(1)},
		[]driver.Value{"name", "character varying", "NO", nil, int64(191), nil, nil, int64(0)},
	)
	expectPlainTable(mock, "Post",
		[]driver.Value{"id", "integer", "NO", nil, nil, int64(32), int64(0), int64(1)},
		[]driver.Value{"price", "numeric", "YES", nil, nil, int64(10), int64(2), int64(0)},
	)

	mock.ExpectQuery(pgColumnsQuery).WithArgs("_CategoryToPost").WillReturnRows(
		sqlmock.NewRows(pgColumnCols).
			AddRow("A", "integer", "NO", nil, nil, int64(32), int64(0), int64(0)).
			AddRow("B", "integer", "NO", nil, nil, int64(32), int64(0), int64(0)),
	)
	mock.ExpectQuery(pgIndexesQuery).WithArgs("_CategoryToPost").WillReturnRows(
		sqlmock.NewRows(pgIndexCols).
			AddRow("_CategoryToPost_AB_unique", true, "A,B").
			AddRow("_CategoryToPost_B_index", false, "B"),
	)
	mock.ExpectQuery(pgFKQuery).WithArgs("_CategoryToPost").WillReturnRows(
		sqlmock.NewRows(pgFKCols).
			AddRow("_CategoryToPost_A_fkey", "A", "Category", "id", "CASCADE", "CASCADE").
			AddRow("_CategoryToPost_B_fkey", "B", "Post", "id", "CASCADE", "NO ACTION"),
	)

	schema, err := Schema(context.Background(), in, Options{Concurrency: 1})
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	if got := schema.TableNames(); !slices.Equal(got, []string{"Category", "Post", "_CategoryToPost"}) {
		t.Errorf("TableNames() = %v, want migration table skipped", got)
	}

	category, _ := schema.TableByName("Category")
	if got := category.Columns[1].Type; got != "character varying(191)" {
		t.Errorf("Category.name type = %q, want character varying(191)", got)
	}
	if !category.Columns[0].HasDefault {
		t.Error("Category.id default not recorded")
	}
	if !slices.Equal(category.PrimaryKey, []string{"id"}) {
		t.Errorf("Category.PrimaryKey = %v, want [id]", category.PrimaryKey)
	}

	post, _ := schema.TableByName("Post")
	if got := post.Columns[1]; got.Type != "numeric(10,2)" || !got.Nullable {
		t.Errorf("Post.price = %+v, want nullable numeric(10,2)", got)
	}

	join, _ := schema.TableByName("_CategoryToPost")
	if !schema.IsJoinTable(join) {
		t.Error("_CategoryToPost is not a join table")
	}
	fkB := join.ForeignKeys[1]
	if fkB.ReferencedTable != post.ID || fkB.OnDelete != "CASCADE" || fkB.OnUpdate != "" {
		t.Errorf("fk B = %+v", fkB)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgres_CompositeForeignKey(t *testing.T) {
	in, mock := newMockIntrospector(t)

	mock.ExpectQuery(pgColumnsQuery).WithArgs("line_items").WillReturnRows(
		sqlmock.NewRows(pgColumnCols).
			AddRow("order_id", "integer", "NO", nil, nil, int64(32), int64(0), int64(2)).
			AddRow("tenant_id", "integer", "NO", nil, nil, int64(32), int64(0), int64(1)),
	)
	mock.ExpectQuery(pgIndexesQuery).WithArgs("line_items").WillReturnRows(sqlmock.NewRows(pgIndexCols))
	mock.ExpectQuery(pgFKQuery).WithArgs("line_items").WillReturnRows(
		sqlmock.NewRows(pgFKCols).
			AddRow("line_items_order_fkey", "tenant_id", "orders", "tenant_id", "RESTRICT", "NO ACTION").
			AddRow("line_items_order_fkey", "order_id", "orders", "id", "RESTRICT", "NO ACTION"),
	)

	def, err := in.IntrospectTable(context.Background(), "line_items")
	if err != nil {
		t.Fatalf("IntrospectTable() error = %v", err)
	}

	if !slices.Equal(def.PrimaryKey, []string{"tenant_id", "order_id"}) {
		t.Errorf("PrimaryKey = %v, want [tenant_id order_id]", def.PrimaryKey)
	}
	if len(def.ForeignKeys) != 1 {
		t.Fatalf("len(ForeignKeys) = %d, want 1", len(def.ForeignKeys))
	}
	fk := def.ForeignKeys[0]
	if !slices.Equal(fk.Columns, []string{"tenant_id", "order_id"}) || !slices.Equal(fk.RefColumns, []string{"tenant_id", "id"}) {
		t.Errorf("fk = %+v", fk)
	}
	if fk.OnDelete != "RESTRICT" {
		t.Errorf("OnDelete = %q, want RESTRICT", fk.OnDelete)
	}
}

func TestPostgres_QueryError(t *testing.T) {
	in, mock := newMockIntrospector(t)

	mock.ExpectQuery(pgListQuery).WillReturnError(errors.New("connection reset"))

	_, err := Schema(context.Background(), in, Options{})
	testutil.AssertError(t, err, alerr.ErrSQLExecution)
	testutil.AssertErrorContains(t, err, "connection reset")
}

func TestPostgres_TableError(t *testing.T) {
	in, mock := newMockIntrospector(t)

	mock.ExpectQuery(pgListQuery).WillReturnRows(
		sqlmock.NewRows([]string{"tablename"}).AddRow("users"),
	)
	mock.ExpectQuery(pgColumnsQuery).WithArgs("users").WillReturnError(errors.New("permission denied"))

	_, err := Schema(context.Background(), in, Options{})
	testutil.AssertError(t, err, alerr.ErrSQLExecution)
	testutil.AssertErrorContains(t, err, "permission denied")
}

func TestPostgres_TableExists(t *testing.T) {
	in, mock := newMockIntrospector(t)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("users").WillReturnRows(
		sqlmock.NewRows([]string{"exists"}).AddRow(true),
	)

	exists, err := in.TableExists(context.Background(), "users")
	if err != nil {
		t.Fatalf("TableExists() error = %v", err)
	}
	if !exists {
		t.Error("TableExists() = false, want true")
	}
}
