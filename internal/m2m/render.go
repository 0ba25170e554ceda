package m2m

import (
	"log/slog"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Input is everything many-to-many inference reads.
type Input struct {
	Schema   *sqlschema.Schema
	Existing ExistingRelations // May be nil
	Defaults DefaultNames
}

// Relation describes one inferred many-to-many relation.
type Relation struct {
	JoinTable string
	ModelA    string
	ModelB    string
	Naming
}

// SelfRelation reports whether both endpoints are the same model.
func (r Relation) SelfRelation() bool {
	return r.ModelA == r.ModelB
}

// Render infers the many-to-many relations of in.Schema and appends their
// fields to out, in table order. It returns one Relation per join table.
func Render(in Input, out *Output) ([]Relation, error) {
	namer := Namer{Existing: in.Existing, Defaults: in.Defaults}

	var relations []Relation
	for _, table := range in.Schema.Tables {
		if !IsJoinTable(in.Schema, table) {
			continue
		}

		fkA, fkB, ok := PairForeignKeys(table)
		if !ok {
			slog.Debug("skipping join table with fewer than two foreign keys", "table", table.Name)
			continue
		}

		naming := namer.Name(table)

		if err := EmitField(out, fkA, fkB, naming.Relation, naming.FieldA); err != nil {
			return nil, alerr.Wrap(alerr.EInternalError, err, "cannot emit many-to-many field").WithTable(table.Name)
		}
		if err := EmitField(out, fkB, fkA, naming.Relation, naming.FieldB); err != nil {
			return nil, alerr.Wrap(alerr.EInternalError, err, "cannot emit many-to-many field").WithTable(table.Name)
		}

		relations = append(relations, Relation{
			JoinTable: table.Name,
			ModelA:    out.Document.ModelAt(out.TargetModels[fkA.ReferencedTable]).Name,
			ModelB:    out.Document.ModelAt(out.TargetModels[fkB.ReferencedTable]).Name,
			Naming:    naming,
		})
		slog.Debug("many-to-many relation",
			"table", table.Name, "relation", naming.Relation,
			"field_a", naming.FieldA, "field_b", naming.FieldB,
			"provenance", naming.Provenance.String())
	}

	return relations, nil
}
