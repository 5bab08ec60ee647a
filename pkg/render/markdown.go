package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// md renders gallery descriptions. Raw HTML in the source is dropped
// (goldmark's default), so a description cannot inject markup.
var md = goldmark.New()

// markdown converts a markdown description to HTML. Blank input yields "".
func markdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
