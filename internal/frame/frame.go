// Package frame resizes captured frames and encodes them for transport.
package frame

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/disintegration/imaging"
)

// Fit scales img down to fit within maxW x maxH preserving the aspect ratio.
// Images already inside the box are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// EncodeJPEG encodes img as a JPEG with the given quality (1-100)
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Transport encodes b as standard base64 without line wrapping
func Transport(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
