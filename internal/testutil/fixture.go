// Package testutil builds image trees on disk for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree creates files under a fresh temporary root.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree returns a Tree rooted at t.TempDir().
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Touch creates each slash-separated relative path as a small file, creating
// parent directories as needed.
func (tr *Tree) Touch(paths ...string) *Tree {
	tr.t.Helper()
	for _, p := range paths {
		full := tr.Path(p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			tr.t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte("img"), 0o644); err != nil {
			tr.t.Fatalf("write %s: %v", full, err)
		}
	}
	return tr
}

// Mkdir creates each slash-separated relative directory.
func (tr *Tree) Mkdir(paths ...string) *Tree {
	tr.t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(tr.Path(p), 0o755); err != nil {
			tr.t.Fatalf("mkdir %s: %v", p, err)
		}
	}
	return tr
}

// Path returns the absolute path of a slash-separated relative path.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}
