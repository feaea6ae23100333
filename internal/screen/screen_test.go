package screen

import (
	"image"
	"testing"
)

func TestScaleOf(t *testing.T) {
	tests := []struct {
		pixels, reported int
		want             float64
	}{
		{pixels: 3000, reported: 1500, want: 2},
		{pixels: 1920, reported: 1920, want: 1},
		{pixels: 2880, reported: 1920, want: 1.5},
		{pixels: 0, reported: 1920, want: 1},
		{pixels: 1920, reported: 0, want: 1},
		{pixels: 800, reported: 1600, want: 1},
	}
	for _, tc := range tests {
		if got := ScaleOf(tc.pixels, tc.reported); got != tc.want {
			t.Errorf("ScaleOf(%d, %d) = %v, want %v", tc.pixels, tc.reported, got, tc.want)
		}
	}
}

func TestResolveScale(t *testing.T) {
	if got := resolveScale(2, 1440, 1440); got != 2 {
		t.Errorf("resolveScale(2, 1440, 1440) = %v, want the system scale", got)
	}
	if got := resolveScale(0, 2880, 1440); got != 2 {
		t.Errorf("resolveScale(0, 2880, 1440) = %v, want 2", got)
	}
	if got := resolveScale(-1, 0, 1440); got != 1 {
		t.Errorf("resolveScale(-1, 0, 1440) = %v, want 1", got)
	}
}

// TestDisplayScale tests a display whose frames match its reported bounds,
// as kbinani/screenshot returns them, on a 2x screen.
func TestDisplayScale(t *testing.T) {
	var d Display = &display{
		index:  1,
		bounds: image.Rect(1440, 0, 2880, 900),
		grab: func(i int) (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 1440, 900)), nil
		},
		sysScale: func(i int) float64 {
			if i != 1 {
				return 0
			}
			return 2
		},
	}
	if got := d.ScaleFactor(); got != 2 {
		t.Errorf("ScaleFactor() before capture = %v, want 2", got)
	}
	img, err := d.Capture()
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if img.Bounds().Dx() != 1440 {
		t.Errorf("frame width = %d", img.Bounds().Dx())
	}
	if got := d.ScaleFactor(); got != 2 {
		t.Errorf("ScaleFactor() = %v, want 2", got)
	}
	if o := d.Origin(); o.X != 1440 || o.Y != 0 {
		t.Errorf("Origin() = %v", o)
	}

	d = &display{
		bounds: image.Rect(0, 0, 1500, 1000),
		grab: func(int) (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 3000, 2000)), nil
		},
		sysScale: func(int) float64 { return 0 },
	}
	if _, err := d.Capture(); err != nil {
		t.Fatal(err)
	}
	if got := d.ScaleFactor(); got != 2 {
		t.Errorf("ScaleFactor() from frame geometry = %v, want 2", got)
	}
}
