// Package glyph turns pixel snapshots into blocks of truecolor terminal glyphs.
package glyph

import (
	"image"
	"strconv"
	"strings"
)

const (
	// UpperHalf is drawn in every cell: its foreground paints the top pixel,
	// the cell background paints the bottom one.
	UpperHalf = "▀"

	// Reset ends every line so styling never leaks into following output.
	Reset = "\x1b[0m"
)

// Render converts img into lines of half-block glyphs, two pixel rows per line.
// A trailing odd row is dropped; images shorter than two rows yield no lines.
// A zero-width image yields bare reset lines.
func Render(img image.Image) []string {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Dy() < 2 {
		return nil
	}

	lines := make([]string, 0, b.Dy()/2)
	var sb strings.Builder
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			writeColor(&sb, "38", img, x, y)
			writeColor(&sb, "48", img, x, y+1)
			sb.WriteString(UpperHalf)
		}
		sb.WriteString(Reset)
		lines = append(lines, sb.String())
	}
	return lines
}

// writeColor emits ESC[<layer>;2;r;g;bm for the pixel at (x, y).
func writeColor(sb *strings.Builder, layer string, img image.Image, x, y int) {
	r, g, b, _ := img.At(x, y).RGBA()
	sb.WriteString("\x1b[")
	sb.WriteString(layer)
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(r >> 8)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g >> 8)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b >> 8)))
	sb.WriteByte('m')
}
