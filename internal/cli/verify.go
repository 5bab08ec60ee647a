package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vizgrid/pkg/errors"
	"github.com/matzehuels/vizgrid/pkg/verify"
)

// verifyCommand creates the verify command for checking written galleries.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file...]",
		Short: "Check that written galleries reference existing images",
		Long: `Check that written galleries reference existing images.

Every <img src> in each document must resolve to an existing file relative to
the document, and every table row must have as many cells as the header.

Without arguments the configured output documents are checked; galleries that
were never generated are skipped with a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), args)
		},
	}
}

func (c *CLI) runVerify(ctx context.Context, files []string) error {
	logger := loggerFromContext(ctx)

	if len(files) == 0 {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		galleries, err := cfg.Select(c.galleries...)
		if err != nil {
			return err
		}
		for _, g := range galleries {
			path := cfg.OutputPath(g)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printWarning("%s has not been generated (%s)", g.Name, path)
				continue
			}
			files = append(files, path)
		}
		if len(files) == 0 {
			printNextStep("Generate with", appName+" generate")
			return nil
		}
	}

	broken := 0
	for _, path := range files {
		report, err := verify.File(ctx, path)
		if err != nil {
			return err
		}
		logger.Debug("verified gallery", "path", path, "images", report.Images, "rows", report.Rows)
		if report.OK() {
			printSuccess("%s", path)
			printDetail("%s", report)
			continue
		}
		broken++
		printError("%s", path)
		for _, src := range report.Missing {
			printFile("missing " + src)
		}
		for _, row := range report.Misaligned {
			printDetail("row %d does not have %d cells", row, report.Columns)
		}
	}

	if broken > 0 {
		return errors.New(errors.ErrCodeBrokenGallery, "%d of %d galleries have broken references", broken, len(files))
	}
	return nil
}
