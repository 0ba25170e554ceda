package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hlop3z/alabintro/internal/alerr"
)

var updateGolden = flag.Bool("update-golden", false, "rewrite testdata/*.golden from test output")

// AssertError fails the test unless err carries code.
func AssertError(t *testing.T, err error, code alerr.Code) {
	t.Helper()
	if err == nil {
		t.Errorf("error = nil, want code %s", code)
		return
	}
	if got := alerr.GetErrorCode(err); got != code {
		t.Errorf("error code = %s, want %s\nerror: %v", got, code, err)
	}
}

// AssertNoError stops the test when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorContains fails the test unless err's message contains substr.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	switch {
	case err == nil:
		t.Errorf("error = nil, want one containing %q", substr)
	case !strings.Contains(err.Error(), substr):
		t.Errorf("error = %q, want it to contain %q", err, substr)
	}
}

// AssertEqual fails the test when got != want.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Golden compares got with testdata/<name>.golden, or rewrites the file
// when the test binary runs with -update-golden.
func Golden(t *testing.T, name, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if *updateGolden {
		WriteFile(t, path, got)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden file: %v (run with -update-golden to create it)", err)
	}
	if got != string(want) {
		t.Errorf("%s mismatch\ngot:\n%s\nwant:\n%s", path, got, want)
	}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
