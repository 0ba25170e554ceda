package sqlschema

import (
	"strings"

	"github.com/samber/lo"
)

// isStrictJoinTable matches the implicit join-table shape:
//
//	_CategoryToPost(A, B)  FK A, FK B, UNIQUE (A, B) or PRIMARY KEY (A, B)
func (t *Table) isStrictJoinTable() bool {
	if !strings.HasPrefix(t.Name, "_") || len(t.Columns) != 2 || len(t.ForeignKeys) != 2 {
		return false
	}

	var a, b string
	for _, col := range t.Columns {
		switch {
		case strings.EqualFold(col.Name, "a"):
			a = col.Name
		case strings.EqualFold(col.Name, "b"):
			b = col.Name
		}
	}
	if a == "" || b == "" {
		return false
	}

	keyCols := []string{a, b}
	for _, fk := range t.ForeignKeys {
		if !fk.Resolved() || len(fk.Columns) != 1 || !lo.Contains(keyCols, fk.Columns[0]) {
			return false
		}
	}
	if t.ForeignKeys[0].Columns[0] == t.ForeignKeys[1].Columns[0] {
		return false
	}

	if sameColumns(t.PrimaryKey, keyCols) {
		return true
	}
	return lo.ContainsBy(t.Indexes, func(idx *Index) bool {
		return idx.Unique && sameColumns(idx.Columns, keyCols)
	})
}

// isRelaxedJoinTable matches any table whose columns are all constrained by
// exactly two foreign keys, with no primary key of its own.
func (t *Table) isRelaxedJoinTable() bool {
	if len(t.ForeignKeys) != 2 {
		return false
	}
	if !lo.EveryBy(t.ForeignKeys, func(fk *ForeignKey) bool { return fk.Resolved() }) {
		return false
	}

	fkCols := lo.FlatMap(t.ForeignKeys, func(fk *ForeignKey, _ int) []string { return fk.Columns })
	colNames := lo.Map(t.Columns, func(c *Column, _ int) string { return c.Name })
	if !sameColumns(colNames, fkCols) {
		return false
	}

	return len(t.PrimaryKey) == 0 || sameColumns(t.PrimaryKey, fkCols)
}

// sameColumns reports whether two column lists name the same set.
func sameColumns(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return lo.Every(a, b) && lo.Every(b, a)
}
