package frame

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestFitPreservesAspect(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{w: 3000, h: 2000, wantW: 1024, wantH: 682},
		{w: 2000, h: 3000, wantW: 682, wantH: 1024},
		{w: 2048, h: 2048, wantW: 1024, wantH: 1024},
		{w: 800, h: 600, wantW: 800, wantH: 600},
	}
	for _, tc := range tests {
		got := Fit(solid(tc.w, tc.h), 1024, 1024).Bounds()
		if got.Dx() != tc.wantW || got.Dy() != tc.wantH {
			t.Errorf("Fit(%dx%d) = %dx%d, want %dx%d", tc.w, tc.h, got.Dx(), got.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestEncodeTransportRoundTrip(t *testing.T) {
	img := Fit(solid(300, 200), 128, 128)
	b, err := EncodeJPEG(img, 75)
	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	s := Transport(b)
	if bytes.ContainsAny([]byte(s), "\r\n") {
		t.Error("Transport output must not be line wrapped")
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString failed: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 128 || cfg.Height != 85 {
		t.Errorf("decoded %dx%d, want 128x85", cfg.Width, cfg.Height)
	}
}
