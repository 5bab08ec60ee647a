package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vizgrid/pkg/pipeline"
)

// generateCommand creates the generate command for writing gallery documents.
func (c *CLI) generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Write the gallery documents",
		Long: `Write the gallery documents.

Each gallery lists the images in its source directory, resolves the
visualization variants of every image, and writes one HTML table. Existing
documents are replaced; rerunning with unchanged inputs produces identical
files. Missing method directories and variants show up as empty cells.

Use --gallery to restrict the run to specific galleries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context())
		},
	}
}

// runGenerate generates the selected galleries and reports each written file.
func (c *CLI) runGenerate(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(cfg, logger)
	results, err := runner.GenerateAll(ctx, c.galleries...)
	for _, r := range results {
		printSuccess("Wrote %s", r.Output)
		if c.verbose() {
			printStats(r.Stats)
		}
	}
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	prog.done(fmt.Sprintf("Generated %d %s", len(results), plural(len(results), "gallery", "galleries")))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
