package glyph

import (
	"image"

	"github.com/nfnt/resize"
)

const (
	// AspectRatio is the width:height ratio snapshots are shown at.
	AspectRatio = 1.2

	// PanelRows is the number of terminal rows kept free below the image
	// for the operator panel and prompt.
	PanelRows = 12
)

// Box is the terminal area available to a snapshot, in character cells.
type Box struct {
	Cols int
	Rows int
}

// PixelSize returns the pixel dimensions a snapshot is resampled to so that
// it fills Cols columns at AspectRatio without crowding out the panel.
// The height is always even.
func (b Box) PixelSize() (width, height int) {
	width = b.Cols
	height = int(float64(b.Cols)/AspectRatio) * 2
	if limit := (b.Rows - PanelRows) * 2; limit < height {
		height = limit
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

// Fit resamples img to box.PixelSize() with a Lanczos filter. When the box
// leaves no room for a single glyph row an empty image is returned.
func Fit(img image.Image, box Box) image.Image {
	width, height := box.PixelSize()
	if img == nil || width < 1 || height < 2 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
