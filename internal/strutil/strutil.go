// Package strutil provides the case conversion and inflection helpers that
// turn physical SQL names into model and field names.
package strutil

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToPascalCase converts a string to PascalCase.
// Examples: blog_post -> BlogPost, BlogPost -> BlogPost
func ToPascalCase(s string) string {
	return strcase.ToCamel(s)
}

// ToCamelCase converts a string to camelCase.
// Examples: author_id -> authorId, Categories -> categories
func ToCamelCase(s string) string {
	return strcase.ToLowerCamel(s)
}

// ToSnakeCase converts a string to snake_case.
// Examples: BlogPost -> blog_post
func ToSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

// -----------------------------------------------------------------------------
// Inflection
// -----------------------------------------------------------------------------

// Plural returns the plural form of a word, preserving its leading case.
// Example: Category -> Categories
func Plural(s string) string {
	return inflection.Plural(s)
}

// Singular returns the singular form of a word.
// Example: categories -> category
func Singular(s string) string {
	return inflection.Singular(s)
}

// -----------------------------------------------------------------------------
// Model Naming
// -----------------------------------------------------------------------------

// ModelName derives a model name from a table name.
// Examples: blog_posts -> BlogPost, Category -> Category
func ModelName(table string) string {
	return ToPascalCase(Singular(table))
}

// ListFieldName derives the name of a list field that points at model.
// Examples: Post -> posts, Category -> categories, BlogPost -> blogPosts
func ListFieldName(model string) string {
	return ToCamelCase(Plural(model))
}

// FieldName derives a scalar field name from a column name.
// Example: author_id -> authorId
func FieldName(column string) string {
	return ToCamelCase(column)
}

// -----------------------------------------------------------------------------
// SQL Naming
// -----------------------------------------------------------------------------

// QualifiedName returns the dot-separated qualified name (schema.table or table).
// Example: QualifiedName("public", "users") -> "public.users"
func QualifiedName(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}

// QuoteSQL quotes a SQL identifier with double quotes, escaping embedded quotes.
func QuoteSQL(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
