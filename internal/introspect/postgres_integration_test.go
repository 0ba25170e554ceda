//go:build integration

package introspect

import (
	"context"
	"slices"
	"testing"

	"github.com/hlop3z/alabintro/internal/testutil"
)

const pgBlogDDL = `
CREATE TABLE "Category" (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL
);
CREATE TABLE "Post" (
	id SERIAL PRIMARY KEY,
	title VARCHAR(200),
	price NUMERIC(10, 2)
);
CREATE TABLE "_CategoryToPost" (
	"A" INTEGER NOT NULL REFERENCES "Category"(id) ON DELETE CASCADE,
	"B" INTEGER NOT NULL REFERENCES "Post"(id) ON DELETE CASCADE
);
CREATE UNIQUE INDEX "_CategoryToPost_AB_unique" ON "_CategoryToPost"("A", "B");
`

func TestPostgres_Integration(t *testing.T) {
	db, _ := testutil.SetupPostgres(t)
	testutil.ExecSQL(t, db, pgBlogDDL)

	in, err := New(db, DialectPostgres)
	testutil.AssertNoError(t, err)

	schema, err := Schema(context.Background(), in, Options{})
	testutil.AssertNoError(t, err)

	if got := schema.TableNames(); !slices.Equal(got, []string{"Category", "Post", "_CategoryToPost"}) {
		t.Errorf("TableNames() = %v", got)
	}

	post, _ := schema.TableByName("Post")
	if got := post.Column("title").Type; got != "character varying(200)" {
		t.Errorf("title type = %q, want character varying(200)", got)
	}
	if got := post.Column("price").Type; got != "numeric(10,2)" {
		t.Errorf("price type = %q, want numeric(10,2)", got)
	}

	join, _ := schema.TableByName("_CategoryToPost")
	if !schema.IsJoinTable(join) {
		t.Error("_CategoryToPost is not a join table")
	}
	for _, fk := range join.ForeignKeys {
		if fk.OnDelete != "CASCADE" {
			t.Errorf("fk %s OnDelete = %q, want CASCADE", fk.Name, fk.OnDelete)
		}
	}
}
