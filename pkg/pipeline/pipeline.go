// Package pipeline runs gallery generation end to end.
//
// Each gallery goes through four stages:
//
//  1. Scan: enumerate source images
//  2. Build: resolve variants and assemble one row per image
//  3. Render: produce the HTML document in memory
//  4. Write: replace the output file with the rendered document
//
// Stages run sequentially and a run has no state beyond its own result. The
// output file is only touched once rendering has succeeded, and is replaced
// atomically, so a failed run leaves any previous document in place.
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, logger)
//	results, err := runner.GenerateAll(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println("Wrote", r.Output)
//	}
package pipeline

import "time"

// Result describes one generated gallery.
type Result struct {
	// Gallery is the gallery name.
	Gallery string

	// Output is the absolute path of the written document.
	Output string

	// Size is the document size in bytes.
	Size int

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows     int // one per source image
	Resolved int // variant cells that reference a file
	Absent   int // variant cells left empty

	ScanTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
	WriteTime  time.Duration
}

// Duration returns the total time spent in all stages.
func (s Stats) Duration() time.Duration {
	return s.ScanTime + s.BuildTime + s.RenderTime + s.WriteTime
}
