// Package config describes what vizgrid generates: which source images to
// enumerate, which method directories to search, and where each gallery
// document is written.
//
// A Config is built once at startup, either from [Default] or from a TOML or
// YAML file via [Load], and passed explicitly to every component. Nothing in
// this package is process-global.
//
// # Layouts
//
// A gallery uses one of two layouts:
//
//   - [LayoutSlots]: one column group per method, one column per filename
//     template. Variants live in <root>/<method dir>/<base>/.
//   - [LayoutSections]: one column group per section, one column per method,
//     each cell holding the first template that resolves. Variants live in
//     <root>/<base dir>/<section>/<method dir>/<base>/.
package config

import (
	"path/filepath"
	"slices"

	"github.com/matzehuels/vizgrid/pkg/errors"
)

// Layout names.
const (
	LayoutSlots    = "slots"
	LayoutSections = "sections"
)

// ValidLayouts is the set of supported gallery layouts.
var ValidLayouts = map[string]bool{
	LayoutSlots:    true,
	LayoutSections: true,
}

const (
	// DefaultArtifactPrefix marks resource-fork files ("._foo.png") left behind
	// by macOS on foreign file systems.
	DefaultArtifactPrefix = "._"

	// DefaultFirstColumnWidth is the source column width in pixels.
	DefaultFirstColumnWidth = 240

	// BasePlaceholder and MethodPlaceholder are substituted in filename templates.
	BasePlaceholder   = "{base}"
	MethodPlaceholder = "{method}"
)

// DefaultExtensions is the allowed extension set, in lookup order.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// DefaultTemplates is the variant filename priority list: class activation map,
// CAM combined with guided backprop, guided backprop only.
var DefaultTemplates = []string{
	"{base}_{method}_cam",
	"{base}_{method}_cam_gb",
	"{base}_{method}_gb",
}

// Config is the full generator configuration.
type Config struct {
	// Root is the directory every relative path is resolved against.
	Root string `toml:"root" yaml:"root"`

	// Extensions lists allowed image extensions (with leading dot) in the
	// order variant lookups try them.
	Extensions []string `toml:"extensions" yaml:"extensions"`

	// Templates lists variant filename templates in priority order.
	Templates []string `toml:"templates" yaml:"templates"`

	// ArtifactPrefix excludes source files whose name starts with it.
	ArtifactPrefix string `toml:"artifact_prefix" yaml:"artifact_prefix"`

	Galleries []Gallery `toml:"gallery" yaml:"galleries"`
}

// Gallery configures one generated document.
type Gallery struct {
	Name        string `toml:"name" yaml:"name"`
	Title       string `toml:"title" yaml:"title"`
	Description string `toml:"description" yaml:"description"` // markdown
	Layout      string `toml:"layout" yaml:"layout"`
	Output      string `toml:"output" yaml:"output"`

	Source Source `toml:"source" yaml:"source"`

	// BaseDir and Sections apply to LayoutSections only.
	BaseDir  string   `toml:"base_dir" yaml:"base_dir"`
	Sections []string `toml:"sections" yaml:"sections"`

	Methods []Method `toml:"methods" yaml:"methods"`

	FirstColumnWidth int `toml:"first_column_width" yaml:"first_column_width"`
}

// Source is the directory of base images.
type Source struct {
	Dir   string `toml:"dir" yaml:"dir"`
	Label string `toml:"label" yaml:"label"`
}

// Method is one visualization technique.
type Method struct {
	// Name is substituted for {method} in templates, e.g. "layercam".
	Name string `toml:"name" yaml:"name"`
	// Label is the column heading, e.g. "LayerCAM". Defaults to Name.
	Label string `toml:"label" yaml:"label"`
	// Dir is the method directory name. Defaults to Name.
	Dir string `toml:"dir" yaml:"dir"`
}

// Gallery returns the gallery with the given name.
func (c *Config) Gallery(name string) (Gallery, error) {
	for _, g := range c.Galleries {
		if g.Name == name {
			return g, nil
		}
	}
	return Gallery{}, errors.New(errors.ErrCodeGalleryNotFound, "no gallery named %q", name)
}

// Select returns the galleries named in names, in configuration order.
// An empty names list selects every gallery.
func (c *Config) Select(names ...string) ([]Gallery, error) {
	if len(names) == 0 {
		return c.Galleries, nil
	}
	for _, n := range names {
		if _, err := c.Gallery(n); err != nil {
			return nil, err
		}
	}
	var out []Gallery
	for _, g := range c.Galleries {
		if slices.Contains(names, g.Name) {
			out = append(out, g)
		}
	}
	return out, nil
}

// Path resolves p against Root unless it is already absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// SourceDir returns the resolved source directory of g.
func (c *Config) SourceDir(g Gallery) string {
	return c.Path(g.Source.Dir)
}

// OutputPath returns the resolved output document path of g.
func (c *Config) OutputPath(g Gallery) string {
	return c.Path(g.Output)
}

// MethodDir returns the directory holding m's per-image subdirectories. For
// the sections layout section selects the experiment condition; it is
// ignored for the slots layout.
func (c *Config) MethodDir(g Gallery, section string, m Method) string {
	if g.Layout == LayoutSections {
		return filepath.Join(c.Path(g.BaseDir), section, m.Dir)
	}
	return c.Path(m.Dir)
}

// VariantDir returns the directory searched for base's variants of m.
func (c *Config) VariantDir(g Gallery, section string, m Method, base string) string {
	return filepath.Join(c.MethodDir(g, section, m), base)
}

// Columns returns the number of table columns g renders, including the
// source column.
func (c *Config) Columns(g Gallery) int {
	if g.Layout == LayoutSections {
		return 1 + len(g.Sections)*len(g.Methods)
	}
	return 1 + len(g.Methods)*len(c.Templates)
}
