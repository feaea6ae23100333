//go:build !cgo

package screen

// systemScale is unknown without cgo, callers fall back to frame geometry
func systemScale(int) float64 {
	return 0
}
