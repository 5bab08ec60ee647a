// Package scan enumerates source images and method directories.
//
// A missing directory is not an error: it simply contains nothing. Every other
// file-system failure is returned as an IO_ERROR.
package scan

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/vizgrid/pkg/errors"
)

// Filter decides which directory entries count as images.
type Filter struct {
	// Extensions are allowed extensions with leading dot, compared
	// case-insensitively.
	Extensions []string
	// ExcludePrefix rejects names starting with it (e.g. "._").
	ExcludePrefix string
}

// Allowed reports whether name passes the filter. Only the name is examined.
func (f Filter) Allowed(name string) bool {
	if f.ExcludePrefix != "" && strings.HasPrefix(name, f.ExcludePrefix) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) == len(name) {
		return false
	}
	for _, allowed := range f.Extensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}

// ListImages returns the paths of regular files directly inside dir that pass
// f, sorted by file name. Symlinks to regular files are included. A missing
// dir yields an empty list.
func ListImages(dir string, f Filter) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil || entries == nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !f.Allowed(e.Name()) {
			continue
		}
		regular, err := isRegular(dir, e)
		if err != nil {
			return nil, err
		}
		if regular {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// ListDirs returns the names of the directories directly inside dir. A missing
// dir yields an empty set.
func ListDirs(dir string) (map[string]bool, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs[e.Name()] = true
			continue
		}
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err == nil && info.IsDir() {
			dirs[e.Name()] = true
		}
	}
	return dirs, nil
}

// Stem returns name without its extension: the key shared between a source
// image and its variant directories.
func Stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func readDir(dir string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.IO(err, dir)
	}
	return entries, nil
}

func isRegular(dir string, e fs.DirEntry) (bool, error) {
	if e.Type().IsRegular() {
		return true, nil
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil // dangling link
	}
	if err != nil {
		return false, errors.IO(err, filepath.Join(dir, e.Name()))
	}
	return info.Mode().IsRegular(), nil
}
