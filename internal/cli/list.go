package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vizgrid/pkg/config"
)

// listCommand creates the list command for showing configured galleries.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show configured galleries and their resolved directories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			galleries, err := cfg.Select(c.galleries...)
			if err != nil {
				return err
			}
			printGalleries(cfg, galleries)
			printNextStep("Generate with", appName+" generate")
			return nil
		},
	}
}

func printGalleries(cfg *config.Config, galleries []config.Gallery) {
	for _, g := range galleries {
		printInfo("%s  %s", StyleTitle.Render(g.Name), StyleDim.Render(g.Title))
		printKeyValue("layout", g.Layout)
		printKeyValue("source", cfg.SourceDir(g))
		if g.Layout == config.LayoutSections {
			printKeyValue("base dir", cfg.Path(g.BaseDir))
			printKeyValue("sections", strings.Join(g.Sections, ", "))
		}
		labels := make([]string, len(g.Methods))
		for i, m := range g.Methods {
			labels[i] = m.Label
		}
		printKeyValue("methods", strings.Join(labels, ", "))
		printKeyValue("output", cfg.OutputPath(g))
	}
}
