package strutil

import "testing"

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user", "User"},
		{"blog_post", "BlogPost"},
		{"BlogPost", "BlogPost"},
		{"user-name", "UserName"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToPascalCase(tt.input); got != tt.want {
				t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"author_id", "authorId"},
		{"Categories", "categories"},
		{"BlogPosts", "blogPosts"},
		{"id", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToCamelCase(tt.input); got != tt.want {
				t.Errorf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelName(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"Category", "Category"},
		{"categories", "Category"},
		{"users", "User"},
		{"blog_posts", "BlogPost"},
		{"Post", "Post"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if got := ModelName(tt.table); got != tt.want {
				t.Errorf("ModelName(%q) = %q, want %q", tt.table, got, tt.want)
			}
		})
	}
}

func TestListFieldName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"Post", "posts"},
		{"Category", "categories"},
		{"User", "users"},
		{"BlogPost", "blogPosts"},
		{"Tag", "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := ListFieldName(tt.model); got != tt.want {
				t.Errorf("ListFieldName(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestQualifiedName(t *testing.T) {
	if got := QualifiedName("", "users"); got != "users" {
		t.Errorf("QualifiedName = %q, want users", got)
	}
	if got := QualifiedName("public", "users"); got != "public.users" {
		t.Errorf("QualifiedName = %q, want public.users", got)
	}
}

func TestQuoteSQL(t *testing.T) {
	if got := QuoteSQL(`my"table`); got != `"my""table"` {
		t.Errorf("QuoteSQL = %s", got)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\n\nb", 2)
	if got != "  a\n\n  b" {
		t.Errorf("Indent = %q", got)
	}
}
