// Package testingx provides helpers for use with the testing package.
package testingx

import (
	"os"
	"path/filepath"
	"testing"
)

// Must provides a concise way to handle a returned error in test setup that
// is presumed to be correct.
//
// It MUST NOT be used to check the conditions a test is about, because the
// failure message says nothing about what was expected.
//
//	m := testingx.Must[*sourcemapx.Map](t)(sourcemapx.Parse(data))
func Must[T any](t *testing.T) func(v T, err error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("Got: unexpected error: %s. Want: no error.", err)
		}
		return v
	}
}

// ReadFixture returns the content of a file in the testdata directory of the
// package under test.
func ReadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Got: failed to read fixture %s: %s. Want: fixture present.", name, err)
	}
	return string(data)
}

// WriteFile creates a file with the given content under dir, including
// missing parent directories, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		t.Fatalf("Got: failed to create directory for %s: %s. Want: no error.", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatalf("Got: failed to write %s: %s. Want: no error.", name, err)
	}
	return path
}
