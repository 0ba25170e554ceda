package m2m

import (
	"log/slog"

	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// RelationName is the resolved naming of one many-to-many relation.
// Relation may be empty (default relation, no annotation needed); the field
// names never are.
type RelationName struct {
	Relation string
	FieldA   string // Field on endpoint A's model, pointing at B
	FieldB   string // Field on endpoint B's model, pointing at A
}

// Provenance records where a RelationName came from.
type Provenance int

const (
	// Synthesized names come entirely from the default convention.
	Synthesized Provenance = iota
	// Reused names come entirely from an existing relation.
	Reused
	// ReusedRelationName keeps an existing relation name with default field
	// names (self-relations).
	ReusedRelationName
)

// String returns a short label for listings.
func (p Provenance) String() string {
	switch p {
	case Reused:
		return "reused"
	case ReusedRelationName:
		return "reused-name"
	default:
		return "default"
	}
}

// Naming is a RelationName together with its provenance.
type Naming struct {
	RelationName
	Provenance Provenance
}

// ExistingRelation is a many-to-many relation recorded by a previous run.
type ExistingRelation struct {
	Name         string
	SelfRelation bool
	FieldA       string // Ignored for self-relations
	FieldB       string // Ignored for self-relations
}

// ExistingRelations looks up a previously recorded relation by join table name.
type ExistingRelations interface {
	ExistingM2MRelation(table string) (ExistingRelation, bool)
}

// DefaultNames synthesizes the conventional naming for a join table.
type DefaultNames interface {
	M2MRelationName(id sqlschema.TableID) RelationName
}

// Namer resolves the naming of join tables.
type Namer struct {
	Existing ExistingRelations // May be nil
	Defaults DefaultNames
}

// Name resolves the relation name and field names for join table t.
func (n Namer) Name(t *sqlschema.Table) Naming {
	var existing ExistingRelation
	found := false
	if n.Existing != nil {
		existing, found = n.Existing.ExistingM2MRelation(t.Name)
	}

	if !found {
		return Naming{RelationName: n.Defaults.M2MRelationName(t.ID), Provenance: Synthesized}
	}

	// The stored flag reflects the schema of the recording run; the current
	// keys decide too.
	if existing.SelfRelation || currentlySelf(t) {
		defaults := n.Defaults.M2MRelationName(t.ID)
		slog.Debug("self-relation keeps relation name, fields re-derived",
			"table", t.Name, "relation", existing.Name,
			"field_a", defaults.FieldA, "field_b", defaults.FieldB)
		return Naming{
			RelationName: RelationName{
				Relation: existing.Name,
				FieldA:   defaults.FieldA,
				FieldB:   defaults.FieldB,
			},
			Provenance: ReusedRelationName,
		}
	}

	name := RelationName{Relation: existing.Name, FieldA: existing.FieldA, FieldB: existing.FieldB}
	if name.FieldA == "" || name.FieldB == "" {
		defaults := n.Defaults.M2MRelationName(t.ID)
		if name.FieldA == "" {
			name.FieldA = defaults.FieldA
		}
		if name.FieldB == "" {
			name.FieldB = defaults.FieldB
		}
	}
	return Naming{RelationName: name, Provenance: Reused}
}

func currentlySelf(t *sqlschema.Table) bool {
	a, b, ok := PairForeignKeys(t)
	return ok && IsSelfRelation(a, b)
}
