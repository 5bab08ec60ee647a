// Package gallery assembles one row per source image, joining the image with
// its resolved variants by base key.
//
// Rows are never dropped: an image without any variants still gets a row with
// every cell absent, so the table keeps one row per source image.
package gallery

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizgrid/pkg/config"
	"github.com/matzehuels/vizgrid/pkg/errors"
	"github.com/matzehuels/vizgrid/pkg/resolve"
	"github.com/matzehuels/vizgrid/pkg/scan"
)

// Row is one table row.
type Row struct {
	// Base is the source image's file stem, the join key for every lookup.
	Base string
	// Source references the source image itself.
	Source resolve.Ref
	// Methods holds one slot list per configured method (slots layout).
	Methods []resolve.Slots
	// Sections holds one entry per configured section (sections layout).
	Sections []SectionCells
}

// SectionCells holds one reference per configured method for a section.
type SectionCells struct {
	Name  string
	Cells []resolve.Ref
}

// Counts returns how many variant cells of the row resolved and how many are
// absent. The source cell is not counted.
func (r Row) Counts() (resolved, absent int) {
	for _, s := range r.Methods {
		n := s.Resolved()
		resolved += n
		absent += len(s) - n
	}
	for _, s := range r.Sections {
		for _, c := range s.Cells {
			if c.OK() {
				resolved++
			} else {
				absent++
			}
		}
	}
	return resolved, absent
}

// Builder turns source images into rows for one configuration.
type Builder struct {
	Config   *config.Config
	Resolver *resolve.Resolver
	Logger   *log.Logger
}

// NewBuilder creates a builder. If logger is nil, logging is discarded.
func NewBuilder(c *config.Config, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Builder{
		Config:   c,
		Resolver: resolve.FromConfig(c),
		Logger:   logger,
	}
}

// Sources enumerates g's source images.
func (b *Builder) Sources(g config.Gallery) ([]string, error) {
	return scan.ListImages(b.Config.SourceDir(g), scan.Filter{
		Extensions:    b.Config.Extensions,
		ExcludePrefix: b.Config.ArtifactPrefix,
	})
}

// Build returns one row per source path, using g's layout.
func (b *Builder) Build(ctx context.Context, g config.Gallery, sources []string) ([]Row, error) {
	switch g.Layout {
	case config.LayoutSlots:
		return b.SlotRows(ctx, g, sources)
	case config.LayoutSections:
		return b.SectionRows(ctx, g, sources)
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "gallery %q: invalid layout %q", g.Name, g.Layout)
	}
}

// SlotRows builds rows for the slots layout. Each method contributes one slot
// per template. A base key without its own directory under the method
// directory gets all-absent slots without probing for files.
func (b *Builder) SlotRows(ctx context.Context, g config.Gallery, sources []string) ([]Row, error) {
	present := make([]map[string]bool, len(g.Methods))
	for i, m := range g.Methods {
		dir := b.Config.MethodDir(g, "", m)
		dirs, err := scan.ListDirs(dir)
		if err != nil {
			return nil, err
		}
		if len(dirs) == 0 {
			b.Logger.Debug("method directory empty or missing", "gallery", g.Name, "method", m.Name, "dir", dir)
		}
		present[i] = dirs
	}

	rows := make([]Row, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := Row{
			Base:    scan.Stem(src),
			Source:  resolve.Present(src),
			Methods: make([]resolve.Slots, len(g.Methods)),
		}
		for i, m := range g.Methods {
			if !present[i][row.Base] {
				row.Methods[i] = b.Resolver.Empty()
				continue
			}
			slots, err := b.Resolver.Slots(b.Config.VariantDir(g, "", m, row.Base), row.Base, m.Name)
			if err != nil {
				return nil, err
			}
			row.Methods[i] = slots
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SectionRows builds rows for the sections layout. Each (section, method)
// pair contributes the first template that resolves.
func (b *Builder) SectionRows(ctx context.Context, g config.Gallery, sources []string) ([]Row, error) {
	rows := make([]Row, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := Row{
			Base:     scan.Stem(src),
			Source:   resolve.Present(src),
			Sections: make([]SectionCells, len(g.Sections)),
		}
		for i, section := range g.Sections {
			cells := make([]resolve.Ref, len(g.Methods))
			for j, m := range g.Methods {
				ref, err := b.Resolver.First(b.Config.VariantDir(g, section, m, row.Base), row.Base, m.Name)
				if err != nil {
					return nil, err
				}
				cells[j] = ref
			}
			row.Sections[i] = SectionCells{Name: section, Cells: cells}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
