// Package session runs the browsing loop: it reads one command at a time,
// fetches the page it names and redraws the screen.
package session

import (
	"github.com/v0xg/termbrowse/internal/extract"
)

// Session is the state between two commands. Each fetch produces a new
// value; a Session is never modified after it is returned.
type Session struct {
	URL      string
	Elements []extract.Element
}

// Element returns the element at zero-based index i.
func (s Session) Element(i int) (extract.Element, bool) {
	if i < 0 || i >= len(s.Elements) {
		return extract.Element{}, false
	}
	return s.Elements[i], true
}
