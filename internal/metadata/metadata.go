// Package metadata provides the relation catalogue written next to the
// introspected document (alabintro.meta.json). It stores:
// - Tables and the model each one was rendered as
// - Many-to-many relations with their join table, relation name and field names
// - The schema fingerprint of the run that wrote it
//
// The catalogue is the prior state of the next run: relation and field names
// edited here are kept by the next pull.
package metadata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/m2m"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// DefaultFile is the default catalogue file name.
const DefaultFile = "alabintro.meta.json"

// Version of the metadata format.
const Version = "1.0"

// Metadata holds the relation catalogue of one introspection run.
type Metadata struct {
	// Version of the metadata format
	Version string `json:"version"`

	// Generated timestamp
	GeneratedAt time.Time `json:"generated_at"`

	// Merkle root of the introspected schema
	SchemaHash string `json:"schema_hash"`

	// Tables in the schema, keyed by table name
	Tables map[string]*TableMeta `json:"tables"`

	// Many-to-many relations, in join table order
	ManyToMany []*ManyToManyMeta `json:"many_to_many"`
}

// TableMeta holds metadata for a single table.
type TableMeta struct {
	Name      string   `json:"name"`
	Model     string   `json:"model,omitempty"`
	Columns   []string `json:"columns"`
	JoinTable bool     `json:"join_table"`
}

// ManyToManyMeta tracks a many-to-many relation.
type ManyToManyMeta struct {
	// Join table name (e.g., "_CategoryToPost")
	JoinTable string `json:"join_table"`

	// Relation name; empty for the default relation
	Relation string `json:"relation"`

	// Model of endpoint A
	ModelA string `json:"model_a"`

	// Model of endpoint B
	ModelB string `json:"model_b"`

	// Field on model A pointing at model B
	FieldA string `json:"field_a"`

	// Field on model B pointing at model A
	FieldB string `json:"field_b"`
}

// New creates a new empty Metadata instance.
func New() *Metadata {
	return &Metadata{
		Version:     Version,
		GeneratedAt: time.Now().UTC(),
		Tables:      make(map[string]*TableMeta),
		ManyToMany:  make([]*ManyToManyMeta, 0),
	}
}

// Record builds the catalogue of one run from the schema, the model names
// and the inferred relations.
func Record(s *sqlschema.Schema, models func(sqlschema.TableID) string, relations []m2m.Relation) (*Metadata, error) {
	hash, err := sqlschema.Fingerprint(s)
	if err != nil {
		return nil, err
	}

	m := New()
	m.SchemaHash = hash

	for _, t := range s.Tables {
		m.AddTable(t, models(t.ID), s.IsJoinTable(t))
	}
	for _, r := range relations {
		m.AddManyToMany(r)
	}
	return m, nil
}

// AddTable adds a table to the metadata.
func (m *Metadata) AddTable(t *sqlschema.Table, model string, joinTable bool) {
	meta := &TableMeta{
		Name:      t.Name,
		Model:     model,
		Columns:   make([]string, 0, len(t.Columns)),
		JoinTable: joinTable,
	}
	for _, col := range t.Columns {
		meta.Columns = append(meta.Columns, col.Name)
	}
	m.Tables[t.Name] = meta
}

// AddManyToMany registers an inferred many-to-many relation.
func (m *Metadata) AddManyToMany(r m2m.Relation) {
	m.ManyToMany = append(m.ManyToMany, &ManyToManyMeta{
		JoinTable: r.JoinTable,
		Relation:  r.Relation,
		ModelA:    r.ModelA,
		ModelB:    r.ModelB,
		FieldA:    r.FieldA,
		FieldB:    r.FieldB,
	})
}

// Relation returns the recorded relation of a join table, or nil.
func (m *Metadata) Relation(joinTable string) *ManyToManyMeta {
	for _, rel := range m.ManyToMany {
		if rel.JoinTable == joinTable {
			return rel
		}
	}
	return nil
}

// ExistingM2MRelation looks up the relation recorded for a join table.
// A relation whose two models are the same is a self-relation.
func (m *Metadata) ExistingM2MRelation(table string) (m2m.ExistingRelation, bool) {
	rel := m.Relation(table)
	if rel == nil {
		return m2m.ExistingRelation{}, false
	}
	return m2m.ExistingRelation{
		Name:         rel.Relation,
		SelfRelation: rel.ModelA == rel.ModelB,
		FieldA:       rel.FieldA,
		FieldB:       rel.FieldB,
	}, true
}

// TableNames returns the recorded table names in sorted order.
func (m *Metadata) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for name := range m.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SameContent reports whether two catalogues describe the same schema and
// relations, ignoring the generation timestamp.
func (m *Metadata) SameContent(other *Metadata) bool {
	if other == nil || m.SchemaHash != other.SchemaHash || len(m.ManyToMany) != len(other.ManyToMany) {
		return false
	}
	for i, rel := range m.ManyToMany {
		if *rel != *other.ManyToMany[i] {
			return false
		}
	}
	return true
}

// Save writes the metadata to a JSON file at the specified path.
func (m *Metadata) Save(filePath string) error {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return alerr.Wrap(alerr.ErrMetadataWrite, err, "failed to create metadata directory").
				With("path", dir)
		}
	}

	// Update timestamp
	m.GeneratedAt = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return alerr.Wrap(alerr.ErrMetadataWrite, err, "failed to encode metadata")
	}
	data = append(data, '\n')

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return alerr.Wrap(alerr.ErrMetadataWrite, err, "failed to write metadata").
			With("path", filePath)
	}
	return nil
}

// Load reads metadata from a JSON file. A missing file yields empty metadata.
func Load(filePath string) (*Metadata, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, alerr.Wrap(alerr.ErrMetadataRead, err, "failed to read metadata").
			With("path", filePath)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, alerr.Wrap(alerr.ErrMetadataCorrupt, err, "metadata file is not valid JSON").
			With("path", filePath).
			WithHelp("delete the file to regenerate names from the default convention")
	}

	// Initialize maps if nil
	if m.Tables == nil {
		m.Tables = make(map[string]*TableMeta)
	}
	if m.ManyToMany == nil {
		m.ManyToMany = make([]*ManyToManyMeta, 0)
	}

	return &m, nil
}
