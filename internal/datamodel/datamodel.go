// Package datamodel is the logical data model produced by introspection:
// models with scalar and relation fields.
//
// A Document is an arena of models addressed by ModelID. It only grows:
// models and fields are appended, never removed or reordered.
package datamodel

// ModelID identifies a model by its position in Document.Models.
type ModelID int

// Document is the rendered data model.
type Document struct {
	Models []*Model `json:"models" yaml:"models"`
}

// New creates an empty document.
func New() *Document {
	return &Document{Models: make([]*Model, 0)}
}

// AddModel appends a model and returns its ID.
func (d *Document) AddModel(m *Model) ModelID {
	d.Models = append(d.Models, m)
	return ModelID(len(d.Models) - 1)
}

// ModelAt returns the model with the given ID, or nil if out of range.
func (d *Document) ModelAt(id ModelID) *Model {
	if id < 0 || int(id) >= len(d.Models) {
		return nil
	}
	return d.Models[id]
}

// Model returns the model with the given name, or nil.
func (d *Document) Model(name string) *Model {
	for _, m := range d.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Model is one logical entity, backed by a table.
type Model struct {
	Name   string        `json:"name" yaml:"name"`
	Table  string        `json:"table,omitempty" yaml:"table,omitempty"` // Set when it differs from Name
	Fields []*ModelField `json:"fields" yaml:"fields"`
}

// PushField appends a field to the model.
func (m *Model) PushField(f *ModelField) {
	m.Fields = append(m.Fields, f)
}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *ModelField {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ModelField is a scalar or relation field of a model.
type ModelField struct {
	Name     string    `json:"name" yaml:"name"`
	Type     string    `json:"type" yaml:"type"` // Scalar type or target model name
	Array    bool      `json:"array,omitempty" yaml:"array,omitempty"`
	Optional bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
	ID       bool      `json:"id,omitempty" yaml:"id,omitempty"`
	Column   string    `json:"column,omitempty" yaml:"column,omitempty"` // Set when it differs from Name
	Relation *Relation `json:"relation,omitempty" yaml:"relation,omitempty"`
}

// NewModelField creates a required, non-list field.
func NewModelField(name, typ string) *ModelField {
	return &ModelField{Name: name, Type: typ}
}

// SetArray marks the field as a list.
func (f *ModelField) SetArray() *ModelField {
	f.Array = true
	return f
}

// SetRelation attaches a relation annotation.
func (f *ModelField) SetRelation(r *Relation) *ModelField {
	f.Relation = r
	return f
}

// Relation annotates a relation field. The name disambiguates several
// relations between the same pair of models.
type Relation struct {
	Name string `json:"name" yaml:"name"`
}

// NewRelation creates a relation annotation with the given name.
func NewRelation(name string) *Relation {
	return &Relation{Name: name}
}
