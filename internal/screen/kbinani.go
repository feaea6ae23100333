package screen

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// System captures displays through kbinani/screenshot
type System struct{}

type display struct {
	index  int
	bounds image.Rectangle
	pixels int

	grab     func(int) (*image.RGBA, error)
	sysScale func(int) float64
}

// NewSystem returns the native screen capturer
func NewSystem() *System {
	return &System{}
}

// Displays returns the active displays in the order the platform reports them
func (s *System) Displays() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n < 0 {
		return nil, fmt.Errorf("display enumeration returned %d", n)
	}
	out := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &display{
			index:    i,
			bounds:   screenshot.GetDisplayBounds(i),
			grab:     screenshot.CaptureDisplay,
			sysScale: systemScale,
		})
	}
	return out, nil
}

func (d *display) Origin() image.Point {
	return d.bounds.Min
}

// ScaleFactor prefers the scale the OS reports for the display. Without one it
// falls back to comparing the last captured frame with the reported bounds.
func (d *display) ScaleFactor() float64 {
	var sys float64
	if d.sysScale != nil {
		sys = d.sysScale(d.index)
	}
	return resolveScale(sys, d.pixels, d.bounds.Dx())
}

func (d *display) Capture() (*image.RGBA, error) {
	img, err := d.grab(d.index)
	if err != nil {
		return nil, err
	}
	d.pixels = img.Bounds().Dx()
	return img, nil
}

func resolveScale(sys float64, pixels, reported int) float64 {
	if sys > 0 {
		return sys
	}
	return ScaleOf(pixels, reported)
}

// ScaleOf derives a display scale factor from the captured pixel width and
// the width the platform reported for the display.
func ScaleOf(pixels, reported int) float64 {
	if pixels <= 0 || reported <= 0 || pixels <= reported {
		return 1
	}
	return float64(pixels) / float64(reported)
}
