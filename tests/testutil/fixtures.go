// Package testutil provides shared helpers for prospectus tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside a fresh temp directory and returns
// the full path.
//
// Example usage:
//
//	path := testutil.WriteFile(t, "VERSION", "v1.2.3\n")
//	m.Configure("file", path)
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}

// MissingFile returns a path inside a fresh temp directory that does not exist.
func MissingFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
