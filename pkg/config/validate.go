package config

import (
	"strings"

	"github.com/matzehuels/vizgrid/pkg/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if err := errors.ValidatePath("root", c.Root); err != nil {
		return err
	}
	if len(c.Extensions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid extension %q (want e.g. \".png\")", ext)
		}
	}
	if len(c.Templates) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "templates cannot be empty")
	}
	for _, t := range c.Templates {
		if !strings.Contains(t, BasePlaceholder) {
			return errors.New(errors.ErrCodeInvalidConfig, "template %q must contain %s", t, BasePlaceholder)
		}
		if strings.ContainsAny(t, `/\`) {
			return errors.New(errors.ErrCodeInvalidConfig, "template %q cannot contain path separators", t)
		}
	}
	if len(c.Galleries) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no galleries configured")
	}

	seen := make(map[string]bool, len(c.Galleries))
	outputs := make(map[string]string, len(c.Galleries))
	for _, g := range c.Galleries {
		if err := g.validate(); err != nil {
			return err
		}
		if seen[g.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate gallery name %q", g.Name)
		}
		seen[g.Name] = true

		out := c.OutputPath(g)
		if other, ok := outputs[out]; ok {
			return errors.New(errors.ErrCodeInvalidConfig, "galleries %q and %q write the same output %s", other, g.Name, g.Output)
		}
		outputs[out] = g.Name
	}
	return nil
}

func (g Gallery) validate() error {
	if err := errors.ValidateName("gallery", g.Name); err != nil {
		return err
	}
	if !ValidLayouts[g.Layout] {
		return errors.New(errors.ErrCodeInvalidLayout, "gallery %q: invalid layout %q (must be %q or %q)", g.Name, g.Layout, LayoutSlots, LayoutSections)
	}
	if err := errors.ValidatePath("source", g.Source.Dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
	}
	if err := errors.ValidateOutputPath(g.Output); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
	}
	if g.FirstColumnWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gallery %q: first_column_width cannot be negative", g.Name)
	}
	if len(g.Methods) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gallery %q has no methods", g.Name)
	}
	for _, m := range g.Methods {
		if err := errors.ValidateName("method", m.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
		}
		if err := errors.ValidatePath("method", m.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
		}
	}

	if g.Layout != LayoutSections {
		if len(g.Sections) > 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "gallery %q: sections require layout %q", g.Name, LayoutSections)
		}
		return nil
	}
	if err := errors.ValidatePath("base_dir", g.BaseDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
	}
	if len(g.Sections) == 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "gallery %q: layout %q needs at least one section", g.Name, LayoutSections)
	}
	for _, s := range g.Sections {
		if err := errors.ValidateName("section", s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gallery %q", g.Name)
		}
	}
	return nil
}
