//go:build !darwin && !linux && !windows

package autostart

func enable(string) error {
	return errUnsupported
}

func disable() error {
	return errUnsupported
}

func isEnabled() bool {
	return false
}
