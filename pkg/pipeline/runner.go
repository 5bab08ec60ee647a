package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizgrid/pkg/config"
	"github.com/matzehuels/vizgrid/pkg/gallery"
	"github.com/matzehuels/vizgrid/pkg/observability"
	"github.com/matzehuels/vizgrid/pkg/render"
)

// Runner generates the galleries of one configuration.
//
// The Runner keeps no per-run state; it only holds the configuration, the
// row builder and the logger.
type Runner struct {
	Config  *config.Config
	Builder *gallery.Builder
	Logger  *log.Logger
}

// NewRunner creates a runner for c. If logger is nil, logging is discarded.
func NewRunner(c *config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Config:  c,
		Builder: gallery.NewBuilder(c, logger),
		Logger:  logger,
	}
}

// GenerateAll generates the named galleries in configuration order, or every
// gallery when no names are given. It stops at the first failure.
func (r *Runner) GenerateAll(ctx context.Context, names ...string) ([]*Result, error) {
	galleries, err := r.Config.Select(names...)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(galleries))
	for _, g := range galleries {
		res, err := r.Generate(ctx, g)
		if err != nil {
			return results, fmt.Errorf("%s: %w", g.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Generate runs scan, build, render and write for one gallery.
func (r *Runner) Generate(ctx context.Context, g config.Gallery) (*Result, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, g.Name)

	output := r.Config.OutputPath(g)
	result := &Result{Gallery: g.Name, Output: output}
	logger := r.Logger.With("gallery", g.Name)

	// Stage 1: Scan
	start := time.Now()
	sources, err := r.Builder.Sources(g)
	result.Stats.ScanTime = time.Since(start)
	hooks.OnScanComplete(ctx, g.Name, len(sources), result.Stats.ScanTime, err)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		logger.Debug("no source images found", "dir", r.Config.SourceDir(g))
	}
	logger.Debug("scanned sources", "count", len(sources), "duration", result.Stats.ScanTime)

	// Stage 2: Build
	start = time.Now()
	rows, err := r.Builder.Build(ctx, g, sources)
	result.Stats.BuildTime = time.Since(start)
	if err == nil {
		result.Stats.Rows = len(rows)
		for _, row := range rows {
			resolved, absent := row.Counts()
			result.Stats.Resolved += resolved
			result.Stats.Absent += absent
		}
	}
	hooks.OnBuildComplete(ctx, g.Name, result.Stats.Rows, result.Stats.Resolved, result.Stats.Absent, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	logger.Debug("built rows",
		"rows", result.Stats.Rows,
		"resolved", result.Stats.Resolved,
		"absent", result.Stats.Absent,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	start = time.Now()
	data, err := render.Render(render.Document{
		Config:  r.Config,
		Gallery: g,
		Rows:    rows,
		Dir:     filepath.Dir(output),
	})
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, g.Name, len(data), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Size = len(data)

	// Stage 4: Write
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	err = WriteFile(output, data)
	result.Stats.WriteTime = time.Since(start)
	hooks.OnWriteComplete(ctx, g.Name, output, len(data), result.Stats.WriteTime, err)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	logger.Debug("generated gallery",
		"rows", result.Stats.Rows,
		"resolved", result.Stats.Resolved,
		"bytes", result.Size,
		"duration", result.Stats.Duration())
	return result, nil
}
