package render

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/matzehuels/vizgrid/pkg/config"
	"github.com/matzehuels/vizgrid/pkg/errors"
	"github.com/matzehuels/vizgrid/pkg/gallery"
	"github.com/matzehuels/vizgrid/pkg/resolve"
)

const pageCSS = `
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; margin: 16px; }
    h1 { font-size: 20px; margin: 0 0 12px; }
    .meta { color: #666; font-size: 12px; margin-bottom: 16px; }
    .description { color: #333; font-size: 13px; margin-bottom: 16px; }
    table { border-collapse: collapse; width: 100%%; table-layout: fixed; }
    thead th { position: sticky; top: 0; background: #fafafa; z-index: 1; }
    th, td { border: 1px solid #e5e5e5; vertical-align: top; padding: 6px; }
    td:first-child, th:first-child { width: %dpx; }
    img.thumb { max-width: 100%%; height: auto; display: block; }
    .row-title { font-weight: 600; font-size: 12px; color: #333; margin-bottom: 6px; word-break: break-all; min-height: 1em; }
    `

// Document is everything needed to render one gallery.
type Document struct {
	Config  *config.Config
	Gallery config.Gallery
	Rows    []gallery.Row
	// Dir is the directory the document will live in. Image sources are
	// made relative to it.
	Dir string
}

// Render returns the complete document.
func Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML writes the complete document to w.
func HTML(w io.Writer, doc Document) error {
	description, err := markdown(doc.Gallery.Description)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "gallery %q: render description", doc.Gallery.Name)
	}

	var header, body []g.Node
	switch doc.Gallery.Layout {
	case config.LayoutSlots:
		header = doc.slotHeader()
		body = doc.slotBody()
	case config.LayoutSections:
		header = doc.sectionHeader()
		body = doc.sectionBody()
	default:
		return errors.New(errors.ErrCodeInvalidLayout, "gallery %q: invalid layout %q", doc.Gallery.Name, doc.Gallery.Layout)
	}

	page := h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(doc.Gallery.Title)),
				h.StyleEl(g.Raw(fmt.Sprintf(pageCSS, doc.Gallery.FirstColumnWidth))),
			),
			h.Body(
				h.H1(g.Text(doc.Gallery.Title)),
				h.Div(h.Class("meta"), g.Text(doc.caption())),
				g.If(description != "", h.Div(h.Class("description"), g.Raw(description))),
				h.Table(
					h.THead(g.Group(header)),
					h.TBody(g.Group(body)),
				),
			),
		),
	)

	if err := page.Render(w); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "gallery %q: write document", doc.Gallery.Name)
	}
	return nil
}

// caption is the one-line summary under the title.
func (d Document) caption() string {
	gal := d.Gallery
	labels := methodLabels(gal.Methods)
	if gal.Layout == config.LayoutSections {
		return fmt.Sprintf("Source column: %s image. Then %d sections (%s), each with %d columns: %s. Total rows: %d",
			gal.Source.Label, len(gal.Sections), strings.Join(gal.Sections, ", "),
			len(gal.Methods), joinLabels(labels), len(d.Rows))
	}
	return fmt.Sprintf("Column 1: %s source. Then %s images (%d per method). Total rows: %d",
		gal.Source.Label, joinLabels(labels), len(d.Config.Templates), len(d.Rows))
}

func (d Document) slotHeader() []g.Node {
	cells := []g.Node{h.Th(g.Text(sourceHeading(d.Gallery)))}
	for _, m := range d.Gallery.Methods {
		for i := 0; i < len(d.Config.Templates); i++ {
			cells = append(cells, h.Th(g.Text(m.Label+" "+strconv.Itoa(i+1))))
		}
	}
	return []g.Node{h.Tr(cells...)}
}

func (d Document) slotBody() []g.Node {
	rows := make([]g.Node, 0, len(d.Rows))
	for _, row := range d.Rows {
		cells := []g.Node{d.sourceCell(row)}
		for i, m := range d.Gallery.Methods {
			var slots resolve.Slots
			if i < len(row.Methods) {
				slots = row.Methods[i]
			}
			for j := 0; j < len(d.Config.Templates); j++ {
				var ref resolve.Ref
				if j < len(slots) {
					ref = slots[j]
				}
				if !ref.OK() {
					cells = append(cells, h.Td(h.Div(h.Class("row-title"))))
					continue
				}
				cells = append(cells, h.Td(
					h.Div(h.Class("row-title")),
					d.thumb(ref, row.Base+" "+m.Label),
				))
			}
		}
		rows = append(rows, h.Tr(cells...))
	}
	return rows
}

func (d Document) sectionHeader() []g.Node {
	top := []g.Node{h.Th(g.Text(sourceHeading(d.Gallery)))}
	sub := []g.Node{h.Th()}
	span := strconv.Itoa(len(d.Gallery.Methods))
	for _, section := range d.Gallery.Sections {
		top = append(top, h.Th(h.ColSpan(span), g.Text(section)))
		for _, m := range d.Gallery.Methods {
			sub = append(sub, h.Th(g.Text(m.Label)))
		}
	}
	return []g.Node{h.Tr(top...), h.Tr(sub...)}
}

func (d Document) sectionBody() []g.Node {
	rows := make([]g.Node, 0, len(d.Rows))
	for _, row := range d.Rows {
		cells := []g.Node{d.sourceCell(row)}
		for i, section := range d.Gallery.Sections {
			var refs []resolve.Ref
			if i < len(row.Sections) {
				refs = row.Sections[i].Cells
			}
			for j, m := range d.Gallery.Methods {
				var ref resolve.Ref
				if j < len(refs) {
					ref = refs[j]
				}
				if !ref.OK() {
					cells = append(cells, h.Td())
					continue
				}
				cells = append(cells, h.Td(d.thumb(ref, row.Base+" "+section+" "+m.Label)))
			}
		}
		rows = append(rows, h.Tr(cells...))
	}
	return rows
}

func (d Document) sourceCell(row gallery.Row) g.Node {
	return h.Td(
		h.Div(h.Class("row-title"), g.Text(row.Base)),
		d.thumb(row.Source, row.Base),
	)
}

func (d Document) thumb(ref resolve.Ref, alt string) g.Node {
	return h.Img(h.Class("thumb"), h.Src(d.Src(ref)), h.Alt(alt))
}

// Src returns the image source for ref: its path relative to the document
// directory, slash-separated and percent-encoded per segment.
func (d Document) Src(ref resolve.Ref) string {
	p := ref.Path()
	if d.Dir != "" {
		if rel, err := filepath.Rel(d.Dir, p); err == nil {
			p = rel
		}
	}
	return EscapePath(filepath.ToSlash(p))
}

// EscapePath percent-encodes each segment of a slash-separated path.
func EscapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func sourceHeading(gal config.Gallery) string {
	return "Source (" + gal.Source.Label + ")"
}

func methodLabels(ms []config.Method) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Label
	}
	return out
}

// joinLabels joins labels as "A", "A and B", "A, B and C".
func joinLabels(labels []string) string {
	switch n := len(labels); n {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:n-1], ", ") + " and " + labels[n-1]
	}
}
