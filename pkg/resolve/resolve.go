// Package resolve locates visualization variants for a source image.
//
// Variants are found by filename convention: each template (for example
// "{base}_{method}_cam") is expanded for the image's base key and method,
// then tried with each allowed extension in order. The first file that exists
// wins. Nothing is ever an error because it is missing; only unexpected
// file-system failures are returned.
package resolve

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/matzehuels/vizgrid/pkg/config"
	"github.com/matzehuels/vizgrid/pkg/errors"
)

// Ref is an optional reference to an image file. The zero value is absent.
type Ref struct {
	path string
}

// Absent is the empty reference.
var Absent = Ref{}

// Present returns a reference to path.
func Present(path string) Ref { return Ref{path: path} }

// OK reports whether the reference points at a file.
func (r Ref) OK() bool { return r.path != "" }

// Path returns the referenced path, or "" when absent.
func (r Ref) Path() string { return r.path }

// String implements fmt.Stringer.
func (r Ref) String() string {
	if !r.OK() {
		return "<absent>"
	}
	return r.path
}

// Slots is a fixed-size list of references, one per template.
type Slots []Ref

// Resolved counts the present references.
func (s Slots) Resolved() int {
	n := 0
	for _, r := range s {
		if r.OK() {
			n++
		}
	}
	return n
}

// Resolver looks up variants with a fixed template and extension order.
type Resolver struct {
	templates  []string
	extensions []string
}

// New creates a resolver. templates use the {base} and {method} placeholders;
// extensions carry a leading dot and are tried in order.
func New(templates, extensions []string) *Resolver {
	return &Resolver{templates: templates, extensions: extensions}
}

// FromConfig creates a resolver using c's templates and extensions.
func FromConfig(c *config.Config) *Resolver {
	return New(c.Templates, c.Extensions)
}

// Size returns the number of slots [Resolver.Slots] produces.
func (r *Resolver) Size() int { return len(r.templates) }

// Empty returns an all-absent slot list.
func (r *Resolver) Empty() Slots { return make(Slots, len(r.templates)) }

// Names expands the templates for base and method, in priority order.
func (r *Resolver) Names(base, method string) []string {
	return Expand(r.templates, base, method)
}

// Expand substitutes base and method into each template.
func Expand(templates []string, base, method string) []string {
	rep := strings.NewReplacer(config.BasePlaceholder, base, config.MethodPlaceholder, method)
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = rep.Replace(t)
	}
	return out
}

// Slots resolves every template independently: slot i holds the first
// extension found for template i. A missing dir gives all-absent slots.
func (r *Resolver) Slots(dir, base, method string) (Slots, error) {
	slots := r.Empty()
	ok, err := isDir(dir)
	if err != nil || !ok {
		return slots, err
	}
	for i, name := range r.Names(base, method) {
		ref, err := r.lookup(dir, name)
		if err != nil {
			return nil, err
		}
		slots[i] = ref
	}
	return slots, nil
}

// First returns the first template/extension combination that exists,
// stopping at the first hit. A missing dir gives [Absent].
func (r *Resolver) First(dir, base, method string) (Ref, error) {
	ok, err := isDir(dir)
	if err != nil || !ok {
		return Absent, err
	}
	for _, name := range r.Names(base, method) {
		ref, err := r.lookup(dir, name)
		if err != nil || ref.OK() {
			return ref, err
		}
	}
	return Absent, nil
}

// lookup tries name with each extension in order.
func (r *Resolver) lookup(dir, name string) (Ref, error) {
	for _, ext := range r.extensions {
		candidate := filepath.Join(dir, name+ext)
		ok, err := isFile(candidate)
		if err != nil {
			return Absent, err
		}
		if ok {
			return Present(candidate), nil
		}
	}
	return Absent, nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if missing(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.IO(err, path)
	}
	return info.IsDir(), nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if missing(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.IO(err, path)
	}
	return !info.IsDir(), nil
}

// missing reports errors that mean "nothing there": not found, or a path
// component that is a file rather than a directory.
func missing(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}
