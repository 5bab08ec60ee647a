package config

import "slices"

// Default returns the built-in configuration rooted at root: a three-slot
// gallery over LayerCAM, HiresCAM and ScoreCAM written to index.html, and a
// four-section ResNet50 gallery over LayerCAM and ScoreCAM written to
// index_resnet50.html.
func Default(root string) *Config {
	c := &Config{
		Root: root,
		Galleries: []Gallery{
			{
				Name:   "pattern-viz",
				Title:  "Pattern Viz Grid",
				Layout: LayoutSlots,
				Output: "index.html",
				Source: Source{Dir: "Chinese", Label: "Chinese"},
				Methods: []Method{
					{Name: "layercam", Label: "LayerCAM"},
					{Name: "hirescam", Label: "HiresCAM"},
					{Name: "scorecam", Label: "ScoreCAM"},
				},
				FirstColumnWidth: 240,
			},
			{
				Name:    "pattern-viz-resnet50",
				Title:   "Pattern Viz Grid (ResNet50)",
				Layout:  LayoutSections,
				Output:  "index_resnet50.html",
				Source:  Source{Dir: "Chinese", Label: "Chinese"},
				BaseDir: "12.17_ResNet50",
				Sections: []string{
					"nopretrain_singlecrop",
					"nopretrain_multicrop",
					"pretrain_singlecrop",
					"pretrain_multicrop",
				},
				Methods: []Method{
					{Name: "layercam", Label: "LayerCAM"},
					{Name: "scorecam", Label: "ScoreCAM"},
				},
				FirstColumnWidth: 220,
			},
		},
	}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields. It is idempotent.
func (c *Config) SetDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if len(c.Extensions) == 0 {
		c.Extensions = slices.Clone(DefaultExtensions)
	}
	if len(c.Templates) == 0 {
		c.Templates = slices.Clone(DefaultTemplates)
	}
	if c.ArtifactPrefix == "" {
		c.ArtifactPrefix = DefaultArtifactPrefix
	}
	for i := range c.Galleries {
		c.Galleries[i].setDefaults()
	}
}

func (g *Gallery) setDefaults() {
	if g.Layout == "" {
		g.Layout = LayoutSlots
		if len(g.Sections) > 0 {
			g.Layout = LayoutSections
		}
	}
	if g.Title == "" {
		g.Title = g.Name
	}
	if g.Output == "" && g.Name != "" {
		g.Output = g.Name + ".html"
	}
	if g.Source.Label == "" {
		g.Source.Label = g.Source.Dir
	}
	if g.FirstColumnWidth == 0 {
		g.FirstColumnWidth = DefaultFirstColumnWidth
	}
	for i := range g.Methods {
		m := &g.Methods[i]
		if m.Label == "" {
			m.Label = m.Name
		}
		if m.Dir == "" {
			m.Dir = m.Name
		}
	}
}
