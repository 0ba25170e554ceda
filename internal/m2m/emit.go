package m2m

import (
	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/datamodel"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Output is the document under construction and the table→model index
// built before many-to-many inference runs.
type Output struct {
	Document     *datamodel.Document
	TargetModels map[sqlschema.TableID]datamodel.ModelID
}

// model returns the model rendered for table id.
func (o *Output) model(id sqlschema.TableID) (*datamodel.Model, *alerr.Error) {
	modelID, ok := o.TargetModels[id]
	if !ok {
		return nil, alerr.New(alerr.EInternalError, "referenced table has no model").
			With("table_id", int(id))
	}
	m := o.Document.ModelAt(modelID)
	if m == nil {
		return nil, alerr.New(alerr.EInternalError, "model index out of range").
			With("table_id", int(id)).
			With("model_id", int(modelID))
	}
	return m, nil
}

// EmitField appends a list field named fieldName to the model of from's
// referenced table, pointing at the model of to's referenced table.
// A non-empty relationName is attached as a relation annotation.
//
// A referenced table without a model is an internal error: models are built
// for every referenced table before inference runs.
func EmitField(out *Output, from, to *sqlschema.ForeignKey, relationName, fieldName string) error {
	opposite, err := out.model(to.ReferencedTable)
	if err != nil {
		return err.With("foreign_key", to.Name).With("referenced_table", to.ReferencedTableName)
	}
	origin, err := out.model(from.ReferencedTable)
	if err != nil {
		return err.With("foreign_key", from.Name).With("referenced_table", from.ReferencedTableName)
	}

	field := datamodel.NewModelField(fieldName, opposite.Name).SetArray()
	if relationName != "" {
		field.SetRelation(datamodel.NewRelation(relationName))
	}

	origin.PushField(field)
	return nil
}
