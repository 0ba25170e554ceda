package alabintro

import (
	"context"

	"github.com/hlop3z/alabintro/internal/calculate"
	"github.com/hlop3z/alabintro/internal/datamodel"
	"github.com/hlop3z/alabintro/internal/introspect"
	"github.com/hlop3z/alabintro/internal/m2m"
	"github.com/hlop3z/alabintro/internal/metadata"
)

// Relation describes one inferred many-to-many relation.
type Relation struct {
	JoinTable  string `json:"join_table"`
	Relation   string `json:"relation"`
	ModelA     string `json:"model_a"`
	ModelB     string `json:"model_b"`
	FieldA     string `json:"field_a"`
	FieldB     string `json:"field_b"`
	Self       bool   `json:"self"`
	Provenance string `json:"provenance"`
}

// PullResult is the outcome of one pull.
type PullResult struct {
	// Document is the generated data model.
	Document *datamodel.Document

	// Relations lists the many-to-many relations in join-table order.
	Relations []Relation

	// Metadata is the catalogue of this run, ready to be saved.
	Metadata *metadata.Metadata

	// Changed reports whether the catalogue differs from the one on disk.
	Changed bool
}

// Encode renders the document as text, yaml or json.
func (r *PullResult) Encode(format string) ([]byte, error) {
	f, err := datamodel.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return r.Document.Encode(f)
}

// Pull introspects the database and builds its data model. Relation names
// recorded in the metadata file by a previous run are reused.
func (c *Client) Pull(ctx context.Context) (*PullResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	prior, err := c.loadMetadata()
	if err != nil {
		return nil, err
	}

	schema, err := introspect.Schema(ctx, c.reader, introspect.Options{
		JoinMode:    c.joinMode,
		Concurrency: c.config.Concurrency,
		Exclude:     c.config.ExcludeTables,
	})
	if err != nil {
		return nil, err
	}

	var existing m2m.ExistingRelations
	if prior != nil {
		existing = prior
	}

	res, err := calculate.Calculate(schema, existing)
	if err != nil {
		return nil, err
	}

	meta, err := metadata.Record(schema, res.Models.ModelName, res.Relations)
	if err != nil {
		return nil, err
	}

	result := &PullResult{
		Document:  res.Document,
		Relations: make([]Relation, 0, len(res.Relations)),
		Metadata:  meta,
		Changed:   prior == nil || !meta.SameContent(prior),
	}
	for _, r := range res.Relations {
		result.Relations = append(result.Relations, Relation{
			JoinTable:  r.JoinTable,
			Relation:   r.Naming.Relation,
			ModelA:     r.ModelA,
			ModelB:     r.ModelB,
			FieldA:     r.Naming.FieldA,
			FieldB:     r.Naming.FieldB,
			Self:       r.SelfRelation(),
			Provenance: r.Naming.Provenance.String(),
		})
	}

	c.config.Logger.Info("pulled data model",
		"dialect", c.dialect,
		"models", len(res.Document.Models),
		"many_to_many", len(result.Relations),
		"changed", result.Changed)

	return result, nil
}

// SaveMetadata writes the catalogue of r to the configured metadata file.
// It is a no-op when no metadata file is configured.
func (c *Client) SaveMetadata(r *PullResult) error {
	if c.config.MetadataFile == "" || r.Metadata == nil {
		return nil
	}
	return r.Metadata.Save(c.config.MetadataFile)
}

// loadMetadata reads the previous catalogue, or returns nil when state is
// disabled.
func (c *Client) loadMetadata() (*metadata.Metadata, error) {
	if c.config.MetadataFile == "" {
		return nil, nil
	}
	return metadata.Load(c.config.MetadataFile)
}
