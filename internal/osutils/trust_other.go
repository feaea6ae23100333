//go:build !darwin || !cgo

package osutils

// InputTrusted always reports true outside macOS
func InputTrusted() bool {
	return true
}
