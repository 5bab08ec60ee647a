package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/matzehuels/vizgrid/pkg/config"
	"github.com/matzehuels/vizgrid/pkg/gallery"
	"github.com/matzehuels/vizgrid/pkg/resolve"
)

const root = "/data"

func slotDoc(rows ...gallery.Row) Document {
	c := config.Default(root)
	return Document{Config: c, Gallery: c.Galleries[0], Rows: rows, Dir: root}
}

func sectionDoc(rows ...gallery.Row) Document {
	c := config.Default(root)
	return Document{Config: c, Gallery: c.Galleries[1], Rows: rows, Dir: root}
}

func abs(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

func slotRow(base string, layer resolve.Slots) gallery.Row {
	empty := resolve.Slots{resolve.Absent, resolve.Absent, resolve.Absent}
	return gallery.Row{
		Base:    base,
		Source:  resolve.Present(abs("Chinese/" + base + ".png")),
		Methods: []resolve.Slots{layer, empty, empty},
	}
}

func TestSlotDocumentEndToEndExample(t *testing.T) {
	row := slotRow("A_0001", resolve.Slots{
		resolve.Present(abs("layercam/A_0001/A_0001_layercam_cam.jpg")),
		resolve.Absent,
		resolve.Absent,
	})

	out, err := Render(slotDoc(row))
	require.NoError(t, err)
	doc := parse(t, out)

	headers := texts(findAll(doc, "th"))
	assert.Equal(t, []string{
		"Source (Chinese)",
		"LayerCAM 1", "LayerCAM 2", "LayerCAM 3",
		"HiresCAM 1", "HiresCAM 2", "HiresCAM 3",
		"ScoreCAM 1", "ScoreCAM 2", "ScoreCAM 3",
	}, headers)

	rows := bodyRows(doc)
	require.Len(t, rows, 1)
	cells := findAll(rows[0], "td")
	require.Len(t, cells, 10)

	assert.Equal(t, "Chinese/A_0001.png", imgSrc(cells[0]))
	assert.Equal(t, "A_0001", attr(findAll(cells[0], "img")[0], "alt"))
	assert.Equal(t, "A_0001", text(findAll(cells[0], "div")[0]))

	assert.Equal(t, "layercam/A_0001/A_0001_layercam_cam.jpg", imgSrc(cells[1]))
	assert.Equal(t, "A_0001 LayerCAM", attr(findAll(cells[1], "img")[0], "alt"))
	for _, c := range cells[2:] {
		assert.Empty(t, findAll(c, "img"))
		assert.Len(t, findAll(c, "div"), 1, "empty cells keep their title placeholder")
	}

	assert.Contains(t, string(out), `<td><div class="row-title"></div></td>`)
	assert.Contains(t, string(out), "Total rows: 1")
	assert.True(t, strings.HasPrefix(string(out), "<!doctype html>"))
}

func TestSlotDocumentEscapesBaseKey(t *testing.T) {
	base := `a<b&c"d`
	row := slotRow(base, resolve.Slots{
		resolve.Present(abs("layercam/" + base + "/" + base + "_layercam_cam.png")),
		resolve.Absent,
		resolve.Absent,
	})

	out, err := Render(slotDoc(row))
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "a<b")
	assert.Contains(t, s, "a&lt;b&amp;c")

	doc := parse(t, out)
	rows := bodyRows(doc)
	require.Len(t, rows, 1)
	cells := findAll(rows[0], "td")
	require.Len(t, cells, 10)
	assert.Equal(t, base, text(findAll(cells[0], "div")[0]))
	assert.Equal(t, base, attr(findAll(cells[0], "img")[0], "alt"))
	assert.Equal(t, "Chinese/a%3Cb&c%22d.png", imgSrc(cells[0]))
}

func TestSectionDocument(t *testing.T) {
	row := gallery.Row{
		Base:   "A_0001",
		Source: resolve.Present(abs("Chinese/A_0001.png")),
		Sections: []gallery.SectionCells{
			{Name: "nopretrain_singlecrop", Cells: []resolve.Ref{resolve.Absent, resolve.Present(abs("12.17_ResNet50/nopretrain_singlecrop/scorecam/A_0001/A_0001_scorecam_cam.jpg"))}},
			{Name: "nopretrain_multicrop", Cells: []resolve.Ref{resolve.Absent, resolve.Absent}},
			{Name: "pretrain_singlecrop", Cells: []resolve.Ref{resolve.Absent, resolve.Absent}},
			{Name: "pretrain_multicrop", Cells: []resolve.Ref{resolve.Present(abs("12.17_ResNet50/pretrain_multicrop/layercam/A_0001/A_0001_layercam_gb.png")), resolve.Absent}},
		},
	}

	out, err := Render(sectionDoc(row))
	require.NoError(t, err)
	doc := parse(t, out)

	headerRows := findAll(findAll(doc, "thead")[0], "tr")
	require.Len(t, headerRows, 2)
	top := findAll(headerRows[0], "th")
	require.Len(t, top, 5)
	assert.Equal(t, "Source (Chinese)", text(top[0]))
	assert.Equal(t, "nopretrain_singlecrop", text(top[1]))
	assert.Equal(t, "2", attr(top[1], "colspan"))
	sub := texts(findAll(headerRows[1], "th"))
	assert.Equal(t, []string{"", "LayerCAM", "ScoreCAM", "LayerCAM", "ScoreCAM", "LayerCAM", "ScoreCAM", "LayerCAM", "ScoreCAM"}, sub)

	rows := bodyRows(doc)
	require.Len(t, rows, 1)
	cells := findAll(rows[0], "td")
	require.Len(t, cells, 9)
	assert.Empty(t, findAll(cells[1], "img"))
	assert.Equal(t, "12.17_ResNet50/nopretrain_singlecrop/scorecam/A_0001/A_0001_scorecam_cam.jpg", imgSrc(cells[2]))
	assert.Equal(t, "A_0001 nopretrain_singlecrop ScoreCAM", attr(findAll(cells[2], "img")[0], "alt"))
	assert.Equal(t, "12.17_ResNet50/pretrain_multicrop/layercam/A_0001/A_0001_layercam_gb.png", imgSrc(cells[7]))
	assert.Contains(t, string(out), "<td></td>")
	assert.Contains(t, string(out), "Then 4 sections (nopretrain_singlecrop, nopretrain_multicrop, pretrain_singlecrop, pretrain_multicrop), each with 2 columns: LayerCAM and ScoreCAM.")
}

func TestSectionDocumentWithoutRows(t *testing.T) {
	out, err := Render(sectionDoc())
	require.NoError(t, err)
	doc := parse(t, out)

	headerRows := findAll(findAll(doc, "thead")[0], "tr")
	require.Len(t, headerRows, 2)
	assert.Len(t, findAll(headerRows[0], "th"), 5)
	assert.Len(t, findAll(headerRows[1], "th"), 9)
	assert.Empty(t, bodyRows(doc))
	assert.Contains(t, string(out), "Total rows: 0")
}

func TestRenderDeterministic(t *testing.T) {
	row := slotRow("A_0001", resolve.Slots{resolve.Absent, resolve.Present(abs("layercam/A_0001/A_0001_layercam_cam_gb.png")), resolve.Absent})
	first, err := Render(slotDoc(row, slotRow("A_0002", resolve.Slots{resolve.Absent, resolve.Absent, resolve.Absent})))
	require.NoError(t, err)
	second, err := Render(slotDoc(row, slotRow("A_0002", resolve.Slots{resolve.Absent, resolve.Absent, resolve.Absent})))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestRenderStyle(t *testing.T) {
	out, err := Render(sectionDoc())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "td:first-child, th:first-child { width: 220px; }")
	assert.Contains(t, s, "thead th { position: sticky; top: 0;")
	assert.Contains(t, s, "table { border-collapse: collapse; width: 100%;")
	assert.Contains(t, s, "<title>Pattern Viz Grid (ResNet50)</title>")
	assert.Contains(t, s, `<meta charset="utf-8">`)
}

func TestRenderDescription(t *testing.T) {
	d := slotDoc()
	d.Gallery.Description = "Runs from **12.17**. <script>alert(1)</script>"

	out, err := Render(d)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<div class="description">`)
	assert.Contains(t, s, "<strong>12.17</strong>")
	assert.NotContains(t, s, "<script>")

	d.Gallery.Description = "  "
	out, err = Render(d)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `class="description"`)
}

func TestRenderInvalidLayout(t *testing.T) {
	d := slotDoc()
	d.Gallery.Layout = "grid"
	_, err := Render(d)
	assert.Error(t, err)
}

func TestSrc(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		path string
		want string
	}{
		{"same dir", "/data", "/data/Chinese/A.png", "Chinese/A.png"},
		{"document in subdir", "/data/reports", "/data/Chinese/A.png", "../Chinese/A.png"},
		{"hash and space", "/data", "/data/Chinese/A #1.png", "Chinese/A%20%231.png"},
		{"question mark", "/data", "/data/x/a?b.png", "x/a%3Fb.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Document{Dir: filepath.FromSlash(tt.dir)}
			got := d.Src(resolve.Present(filepath.FromSlash(tt.path)))
			if got != tt.want {
				t.Errorf("Src(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestJoinLabels(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"LayerCAM"}, "LayerCAM"},
		{[]string{"LayerCAM", "ScoreCAM"}, "LayerCAM and ScoreCAM"},
		{[]string{"LayerCAM", "HiresCAM", "ScoreCAM"}, "LayerCAM, HiresCAM and ScoreCAM"},
	}
	for _, tt := range tests {
		if got := joinLabels(tt.in); got != tt.want {
			t.Errorf("joinLabels(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// HTML helpers
// =============================================================================

func parse(t *testing.T, data []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func bodyRows(doc *html.Node) []*html.Node {
	bodies := findAll(doc, "tbody")
	if len(bodies) == 0 {
		return nil
	}
	return findAll(bodies[0], "tr")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func imgSrc(td *html.Node) string {
	imgs := findAll(td, "img")
	if len(imgs) == 0 {
		return ""
	}
	return attr(imgs[0], "src")
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func texts(ns []*html.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = text(n)
	}
	return out
}
