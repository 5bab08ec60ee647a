// Package render turns gallery rows into a self-contained HTML document.
//
// The document is built as a gomponents node tree, so every piece of text and
// every attribute value derived from file names is HTML-escaped. Image
// sources are written relative to the document's own directory and
// percent-encoded per path segment, which keeps the page openable straight
// from disk wherever the tree is copied.
//
// Column count is constant: an absent variant still renders its cell.
//
// # Example
//
//	var buf bytes.Buffer
//	err := render.HTML(&buf, render.Document{
//	    Config:  cfg,
//	    Gallery: g,
//	    Rows:    rows,
//	    Dir:     filepath.Dir(cfg.OutputPath(g)),
//	})
package render
