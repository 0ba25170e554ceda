// Package calculate turns an introspected schema into a data model
// document: one model per table with its scalar fields, followed by the
// inferred many-to-many relation fields.
package calculate

import (
	"log/slog"

	"github.com/hlop3z/alabintro/internal/datamodel"
	"github.com/hlop3z/alabintro/internal/m2m"
	"github.com/hlop3z/alabintro/internal/naming"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Result is the outcome of one calculation.
type Result struct {
	Document  *datamodel.Document
	Relations []m2m.Relation
	Models    *naming.ModelNames
}

// Calculate builds the document for s. existing is the relation state of a
// previous run and may be nil.
func Calculate(s *sqlschema.Schema, existing m2m.ExistingRelations) (*Result, error) {
	models := naming.NewModelNames(s)

	out := &m2m.Output{
		Document:     datamodel.New(),
		TargetModels: make(map[sqlschema.TableID]datamodel.ModelID),
	}

	for _, t := range s.Tables {
		if !models.Has(t.ID) {
			continue
		}
		out.TargetModels[t.ID] = out.Document.AddModel(buildModel(t, models.ModelName(t.ID)))
	}

	relations, err := m2m.Render(m2m.Input{
		Schema:   s,
		Existing: existing,
		Defaults: naming.NewRelationNames(s, models),
	}, out)
	if err != nil {
		return nil, err
	}

	slog.Debug("calculated data model",
		"tables", len(s.Tables),
		"models", len(out.Document.Models),
		"many_to_many", len(relations))

	return &Result{Document: out.Document, Relations: relations, Models: models}, nil
}

// buildModel creates the model of t with one scalar field per column.
func buildModel(t *sqlschema.Table, name string) *datamodel.Model {
	m := &datamodel.Model{Name: name}
	if t.Name != name {
		m.Table = t.Name
	}

	singlePK := len(t.PrimaryKey) == 1
	for _, col := range t.Columns {
		fieldName := naming.ScalarFieldName(col.Name)
		f := datamodel.NewModelField(fieldName, ScalarType(col.Type))
		pk := t.IsPrimaryKey(col.Name)
		f.Optional = col.Nullable && !pk
		f.ID = singlePK && pk
		if fieldName != col.Name {
			f.Column = col.Name
		}
		m.PushField(f)
	}

	return m
}
