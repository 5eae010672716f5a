package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/v0xg/termbrowse/internal/extract"
)

const (
	headerColor = "\x1b[1;34m"
	inputColor  = "\x1b[1;33m"
	linkColor   = "\x1b[1;32m"

	urlPreview = 30
)

// Placeholder stands in for the image when no snapshot could be rendered.
const Placeholder = "\n(image unavailable)\n"

// Frame is everything drawn for one page.
type Frame struct {
	URL      string
	Image    []string // rendered glyph lines; nil means use Placeholder
	Elements []extract.Element
}

// Draw clears the screen and writes f: the image block, then a header
// naming the page, then up to extract.DisplayCap numbered elements.
func Draw(w io.Writer, f Frame) error {
	var sb strings.Builder
	sb.WriteString(ClearScreen + CursorHome)
	if len(f.Image) == 0 {
		sb.WriteString(Placeholder)
	} else {
		sb.WriteString(strings.Join(f.Image, "\n"))
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s--- panel (%s...) ---%s\n", headerColor, truncate(f.URL, urlPreview), Reset)
	for i, el := range extract.Visible(f.Elements) {
		sb.WriteString(Entry(i+1, el))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Entry formats one numbered panel line.
func Entry(n int, el extract.Element) string {
	if el.Kind == extract.Input {
		return fmt.Sprintf("%s[%d] input: [%s]%s", inputColor, n, el.Label, Reset)
	}
	return fmt.Sprintf("%s[%d] %s%s", linkColor, n, el.Label, Reset)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
