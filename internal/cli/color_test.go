package cli

import (
	"strings"
	"testing"
)

var styled = []struct {
	name string
	fn   func(string) string
}{
	{"Error", Error},
	{"Warning", Warning},
	{"Note", Note},
	{"Help", Help},
	{"Success", Success},
	{"Code", Code},
	{"FilePath", FilePath},
	{"Highlight", Highlight},
}

func TestColorFunctions_Plain(t *testing.T) {
	withDefault(t, &Config{Mode: ModePlain})

	for _, tt := range styled {
		if got := tt.fn("text"); got != "text" {
			t.Errorf("%s(%q) = %q, want %q", tt.name, "text", got, "text")
		}
	}
	if got := Pipe(); got != "|" {
		t.Errorf("Pipe() = %q, want |", got)
	}
	if got := Arrow(); got != "-->" {
		t.Errorf("Arrow() = %q, want -->", got)
	}
}

func TestColorFunctions_TTY(t *testing.T) {
	withDefault(t, &Config{Mode: ModeTTY})

	// lipgloss drops escape codes when stdout is not a terminal, so only
	// the text itself is checked.
	for _, tt := range styled {
		if got := tt.fn("text"); !strings.Contains(got, "text") {
			t.Errorf("%s(%q) = %q, should contain input", tt.name, "text", got)
		}
	}
}
