// Package naming holds the default naming convention for introspected
// models and many-to-many relations.
package naming

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hlop3z/alabintro/internal/m2m"
	"github.com/hlop3z/alabintro/internal/sqlschema"
	"github.com/hlop3z/alabintro/internal/strutil"
)

// ModelNamer returns the model name of a table.
type ModelNamer interface {
	ModelName(id sqlschema.TableID) string
}

// ModelNames assigns a unique model name to every table that is rendered
// as a model.
type ModelNames struct {
	names map[sqlschema.TableID]string
}

// NewModelNames names the non-join tables of s in table order.
// The first choice is the singular PascalCase form of the table name; on a
// collision the PascalCase table name is tried, then a numeric suffix.
func NewModelNames(s *sqlschema.Schema) *ModelNames {
	n := &ModelNames{names: make(map[sqlschema.TableID]string, len(s.Tables))}
	used := make(map[string]bool, len(s.Tables))

	for _, t := range s.Tables {
		if s.IsJoinTable(t) {
			continue
		}

		name := strutil.ModelName(t.Name)
		if name == "" || used[name] {
			name = strutil.ToPascalCase(t.Name)
		}
		if name == "" {
			name = "Model"
		}
		if used[name] {
			slog.Debug("model name collision", "table", t.Name, "model", name)
		}
		n.names[t.ID] = uniqueName(used, name)
	}

	return n
}

// ModelName returns the model name assigned to id, or "" for tables
// rendered without a model.
func (n *ModelNames) ModelName(id sqlschema.TableID) string {
	return n.names[id]
}

// Has reports whether id was assigned a model name.
func (n *ModelNames) Has(id sqlschema.TableID) bool {
	_, ok := n.names[id]
	return ok
}

// ScalarFieldName is the model field name of a column.
func ScalarFieldName(column string) string {
	if name := strutil.FieldName(column); name != "" {
		return name
	}
	return column
}

// uniqueName returns name, or name with the lowest numeric suffix from 2
// that is not in used, and marks the result as used.
func uniqueName(used map[string]bool, name string) string {
	if used[name] {
		base := name
		for i := 2; used[name]; i++ {
			name = fmt.Sprintf("%s%d", base, i)
		}
	}
	used[name] = true
	return name
}

// RelationNames holds the default naming of every join table in a schema.
type RelationNames struct {
	names map[sqlschema.TableID]m2m.RelationName
}

// NewRelationNames computes default relation and field names for the join
// tables of s.
//
// The default relation name of models X and Y (X sorting first) is "XToY".
// A join table whose name, without its leading underscore, equals that
// default gets an empty relation name, unless another join table links the
// same pair of models. Fields are the plural camelCase name of the model
// they point at; self-relations suffix "A" and "B", and ambiguous pairs
// suffix "_" and the relation name. A field name already taken on its model,
// by a column or an earlier relation, gets a numeric suffix.
func NewRelationNames(s *sqlschema.Schema, models ModelNamer) *RelationNames {
	type endpoints struct {
		table    *sqlschema.Table
		fkA, fkB *sqlschema.ForeignKey
		modelA   string
		modelB   string
	}

	var joins []endpoints
	pairs := make(map[[2]string]int)
	for _, t := range s.Tables {
		if !s.IsJoinTable(t) {
			continue
		}
		fkA, fkB, ok := m2m.PairForeignKeys(t)
		if !ok {
			continue
		}
		e := endpoints{
			table:  t,
			fkA:    fkA,
			fkB:    fkB,
			modelA: models.ModelName(fkA.ReferencedTable),
			modelB: models.ModelName(fkB.ReferencedTable),
		}
		joins = append(joins, e)
		pairs[pairKey(e.modelA, e.modelB)]++
	}

	taken := make(map[sqlschema.TableID]map[string]bool)
	fieldsOf := func(id sqlschema.TableID) map[string]bool {
		if used, ok := taken[id]; ok {
			return used
		}
		used := make(map[string]bool)
		if t := s.Table(id); t != nil {
			for _, col := range t.Columns {
				used[ScalarFieldName(col.Name)] = true
			}
		}
		taken[id] = used
		return used
	}

	r := &RelationNames{names: make(map[sqlschema.TableID]m2m.RelationName, len(joins))}
	for _, e := range joins {
		derived := strings.TrimPrefix(e.table.Name, "_")
		if derived == "" {
			derived = e.table.Name
		}
		ambiguous := pairs[pairKey(e.modelA, e.modelB)] > 1

		name := m2m.RelationName{Relation: derived}
		if derived == DefaultRelationName(e.modelA, e.modelB) && !ambiguous {
			name.Relation = ""
		}

		if e.modelA == e.modelB {
			name.FieldA = strutil.ListFieldName(e.modelA) + "A"
			name.FieldB = strutil.ListFieldName(e.modelB) + "B"
		} else {
			name.FieldA = strutil.ListFieldName(e.modelB)
			name.FieldB = strutil.ListFieldName(e.modelA)
		}

		if ambiguous {
			name.FieldA += "_" + derived
			name.FieldB += "_" + derived
		}

		name.FieldA = uniqueName(fieldsOf(e.fkA.ReferencedTable), name.FieldA)
		name.FieldB = uniqueName(fieldsOf(e.fkB.ReferencedTable), name.FieldB)

		r.names[e.table.ID] = name
	}

	return r
}

// M2MRelationName returns the default naming of join table id.
func (r *RelationNames) M2MRelationName(id sqlschema.TableID) m2m.RelationName {
	return r.names[id]
}

// DefaultRelationName is the relation name implied by two model names.
func DefaultRelationName(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "To" + b
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
