// Package screen queries the terminal and composes full-screen frames from
// a rendered snapshot and the operator panel.
package screen

import (
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/v0xg/termbrowse/internal/glyph"
)

const (
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	Reset       = "\x1b[0m"

	fallbackCols = 80
	fallbackRows = 24
)

// Size reports the terminal dimensions of f. COLUMNS and LINES take
// precedence; when f is not a terminal 80x24 is assumed.
func Size(f *os.File) glyph.Box {
	box := glyph.Box{Cols: envInt("COLUMNS"), Rows: envInt("LINES")}
	if box.Cols > 0 && box.Rows > 0 {
		return box
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = fallbackCols, fallbackRows
	}
	if box.Cols <= 0 {
		box.Cols = cols
	}
	if box.Rows <= 0 {
		box.Rows = rows
	}
	return box
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
