//go:build !cgo

package input

// Stub implementation for builds without cgo

// Open always fails, robotgo needs cgo
func Open() (Simulator, error) {
	return nil, ErrUnsupported
}
