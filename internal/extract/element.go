// Package extract discovers the addressable interactive surface of a page:
// its text inputs and its followable links.
package extract

import "errors"

const (
	// ScanCap bounds how many links are collected from one page.
	ScanCap = 15

	// DisplayCap bounds how many elements the operator panel lists.
	DisplayCap = 12
)

// ErrParse marks markup or base URLs that could not be interpreted.
var ErrParse = errors.New("parse failed")

// Kind distinguishes input fields from links.
type Kind int

const (
	Input Kind = iota
	Link
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "INPUT"
	case Link:
		return "LINK"
	default:
		return "UNKNOWN"
	}
}

// Element is one numbered entry of the operator panel.
type Element struct {
	Kind  Kind
	Label string
	// Target is an absolute URL for links and the field's name (or id) for
	// inputs.
	Target string
}

// Visible returns the prefix of elements the panel shows.
func Visible(elements []Element) []Element {
	if len(elements) > DisplayCap {
		return elements[:DisplayCap]
	}
	return elements
}
