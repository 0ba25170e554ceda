package m2m

import (
	"strings"

	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// IsJoinTable reports whether t takes part in many-to-many inference.
func IsJoinTable(s *sqlschema.Schema, t *sqlschema.Table) bool {
	return s.IsJoinTable(t)
}

// PairForeignKeys orders the first two foreign keys of t into endpoints A
// and B. The key whose leading column is named "a" (any case) is A; when
// neither or both match, the first-encountered key is A.
// ok is false when t has fewer than two foreign keys.
func PairForeignKeys(t *sqlschema.Table) (a, b *sqlschema.ForeignKey, ok bool) {
	if len(t.ForeignKeys) < 2 {
		return nil, nil, false
	}

	first, second := t.ForeignKeys[0], t.ForeignKeys[1]
	if !isColumnA(first) && isColumnA(second) {
		return second, first, true
	}
	return first, second, true
}

func isColumnA(fk *sqlschema.ForeignKey) bool {
	return strings.EqualFold(fk.FirstColumn(), "a")
}

// IsSelfRelation reports whether both endpoints reference the same table.
func IsSelfRelation(a, b *sqlschema.ForeignKey) bool {
	return a.ReferencedTable == b.ReferencedTable
}
