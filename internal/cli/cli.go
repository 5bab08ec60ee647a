// Package cli implements the vizgrid command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vizgrid/pkg/buildinfo"
	"github.com/matzehuels/vizgrid/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "vizgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags.
	root       string
	configPath string
	galleries  []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Running the root command without a subcommand generates every selected
// gallery, so a bare "vizgrid" in an experiment directory rebuilds its
// documents.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "vizgrid renders CAM comparison galleries as static HTML",
		Long: `vizgrid scans a directory of source images, finds the explainability
visualizations (LayerCAM, HiresCAM, ScoreCAM, ...) produced for each one, and
writes a static HTML table comparing them side by side.

Without a subcommand it behaves like 'vizgrid generate'.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.root, "root", "r", "", "directory image paths are resolved against (default: config file directory or current directory)")
	flags.StringVarP(&c.configPath, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	flags.StringSliceVarP(&c.galleries, "gallery", "g", nil, "gallery to process (repeatable; default: all)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// verbose reports whether debug output was requested.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// loadConfig resolves the configuration from the global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(c.configPath, c.root)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded configuration", "root", cfg.Root, "galleries", len(cfg.Galleries))
	return cfg, nil
}
