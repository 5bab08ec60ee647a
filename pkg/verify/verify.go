// Package verify checks a generated gallery document against the file system.
//
// A gallery is sound when every <img src> resolves to an existing regular file
// relative to the document's directory and every body row spans as many
// columns as the table header.
package verify

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/net/html"

	"github.com/matzehuels/vizgrid/pkg/errors"
	"github.com/matzehuels/vizgrid/pkg/observability"
)

// Report is the outcome of checking one document.
type Report struct {
	Path string

	// Images is the number of <img> elements found.
	Images int

	// Missing lists src values that do not resolve to a file, in document
	// order.
	Missing []string

	// Columns is the leaf column count of the table header.
	Columns int

	// Rows is the number of body rows.
	Rows int

	// Misaligned lists 1-based body rows whose cell count differs from Columns.
	Misaligned []int
}

// OK reports whether the document has no broken references or rows.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Misaligned) == 0
}

// Err returns a BROKEN_GALLERY error describing the problems, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.New(errors.ErrCodeBrokenGallery,
		"%s: %d missing image(s), %d misaligned row(s)", r.Path, len(r.Missing), len(r.Misaligned))
}

// File checks the gallery document at path.
func File(ctx context.Context, path string) (*Report, error) {
	report, err := file(path)
	images, missing := 0, 0
	if report != nil {
		images, missing = report.Images, len(report.Missing)
	}
	observability.Verify().OnVerifyComplete(ctx, path, images, missing, err)
	return report, err
}

func file(path string) (*Report, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "gallery %s", path)
		}
		return nil, errors.IO(err, path)
	}
	defer func() {
		_ = f.Close()
	}()

	report, err := Reader(f, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	report.Path = path
	return report, nil
}

// Reader checks a gallery document read from r. Relative image sources are
// resolved against dir.
func Reader(r io.Reader, dir string) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBrokenGallery, err, "parse HTML")
	}

	report := &Report{}
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "img":
				report.Images++
				src := attr(n, "src")
				ok, err := exists(src, dir)
				if err != nil {
					return err
				}
				if !ok {
					report.Missing = append(report.Missing, src)
				}
			case "thead":
				for _, tr := range children(n, "tr") {
					report.Columns = max(report.Columns, span(tr))
				}
			case "tbody":
				for _, tr := range children(n, "tr") {
					report.Rows++
					if span(tr) != report.Columns {
						report.Misaligned = append(report.Misaligned, report.Rows)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return report, nil
}

// exists reports whether src names a regular file. URLs with a scheme are
// not checked.
func exists(src, dir string) (bool, error) {
	if src == "" {
		return false, nil
	}
	u, err := url.Parse(src)
	if err != nil {
		return false, nil
	}
	if u.Scheme != "" || u.Host != "" {
		return true, nil
	}
	p := filepath.FromSlash(u.Path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.IO(err, p)
	}
	return info.Mode().IsRegular(), nil
}

// span sums the colspan of every cell in tr.
func span(tr *html.Node) int {
	n := 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cols := 1
		if v := attr(c, "colspan"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				cols = parsed
			}
		}
		n += cols
	}
	return n
}

func children(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// String summarizes the report on one line.
func (r *Report) String() string {
	return fmt.Sprintf("%d image(s), %d missing, %d row(s), %d column(s)",
		r.Images, len(r.Missing), r.Rows, r.Columns)
}
