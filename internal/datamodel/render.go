package datamodel

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/alabintro/internal/alerr"
)

// Format is an output encoding of a Document.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported output formats.
var Formats = []string{string(FormatText), string(FormatYAML), string(FormatJSON)}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", alerr.InvalidChoice("format", s, Formats)
	}
}

// Encode renders the document in the given format.
func (d *Document) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(d.Render()), nil
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, alerr.InvalidChoice("format", string(f), Formats)
	}
}

// Render returns the text form of the document:
//
//	model Category {
//	  id    Int    @id
//	  posts Post[]
//
//	  @@map("categories")
//	}
func (d *Document) Render() string {
	blocks := make([]string, 0, len(d.Models))
	for _, m := range d.Models {
		blocks = append(blocks, m.Render())
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// Render returns the text form of a single model.
func (m *Model) Render() string {
	rows := make([][3]string, 0, len(m.Fields))
	var nameWidth, typeWidth int
	for _, f := range m.Fields {
		row := [3]string{f.Name, f.typeString(), f.attributes()}
		nameWidth = max(nameWidth, len(row[0]))
		typeWidth = max(typeWidth, len(row[1]))
		rows = append(rows, row)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "model %s {\n", m.Name)
	for _, row := range rows {
		line := fmt.Sprintf("  %-*s %-*s %s", nameWidth, row[0], typeWidth, row[1], row[2])
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	if m.Table != "" {
		if len(rows) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  @@map(%q)\n", m.Table)
	}
	b.WriteString("}")
	return b.String()
}

func (f *ModelField) typeString() string {
	switch {
	case f.Array:
		return f.Type + "[]"
	case f.Optional:
		return f.Type + "?"
	default:
		return f.Type
	}
}

func (f *ModelField) attributes() string {
	var attrs []string
	if f.ID {
		attrs = append(attrs, "@id")
	}
	if f.Column != "" {
		attrs = append(attrs, fmt.Sprintf("@map(%q)", f.Column))
	}
	if f.Relation != nil && f.Relation.Name != "" {
		attrs = append(attrs, fmt.Sprintf("@relation(%q)", f.Relation.Name))
	}
	return strings.Join(attrs, " ")
}
