// Package screen enumerates displays and captures their raster content.
package screen

import (
	"image"
)

// Display is one enumerated monitor
type Display interface {
	// ScaleFactor is the ratio of device pixels to UI points. Some platforms
	// only know it once a frame has been captured.
	ScaleFactor() float64

	// Origin is the top-left corner of the display in the virtual desktop
	Origin() image.Point

	// Capture grabs the current content of the display
	Capture() (*image.RGBA, error)
}

// Capturer lists the displays attached to the current session
type Capturer interface {
	Displays() ([]Display, error)
}
