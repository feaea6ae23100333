//go:build cgo

package input

import (
	"fmt"
	"os"
	"runtime"

	"deskagent/internal/osutils"

	"github.com/go-vgo/robotgo"
)

// Robot injects input through robotgo
type Robot struct{}

// Open acquires a robotgo-backed Simulator for the current desktop session
func Open() (Simulator, error) {
	switch runtime.GOOS {
	case "darwin":
		if !osutils.InputTrusted() {
			return nil, fmt.Errorf("accessibility permission not granted")
		}
	case "linux":
		if os.Getenv("DISPLAY") == "" {
			return nil, fmt.Errorf("no X11 display (DISPLAY is not set)")
		}
	}
	return &Robot{}, nil
}

// Move moves the pointer to (x, y)
func (r *Robot) Move(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// Button presses, releases or clicks b at the current pointer position
func (r *Robot) Button(b Button, d Direction) error {
	name, ok := robotButton(b)
	if !ok {
		return fmt.Errorf("invalid button: %d", b)
	}
	switch d {
	case Press:
		return robotgo.Toggle(name, "down")
	case Release:
		return robotgo.Toggle(name, "up")
	}
	if err := robotgo.Toggle(name, "down"); err != nil {
		return err
	}
	return robotgo.Toggle(name, "up")
}

// Scroll moves the wheel along a single axis
func (r *Robot) Scroll(amount int, a Axis) error {
	unit := 1
	if runtime.GOOS == "darwin" {
		unit = darwinScrollUnit
	}
	x, y := robotScroll(amount, a, unit)
	robotgo.Scroll(x, y)
	return nil
}

// Text types s as unicode input
func (r *Robot) Text(s string) error {
	robotgo.TypeStr(s)
	return nil
}

// Key presses, releases or clicks k
func (r *Robot) Key(k Key, d Direction) error {
	name, ok := robotKeyName(k)
	if !ok {
		// No keycode exists for the character; fall back to unicode input
		// which has no separate down and up events.
		if d == Release {
			return nil
		}
		robotgo.TypeStr(string(k.Char))
		return nil
	}
	switch d {
	case Press:
		return robotgo.KeyToggle(name, "down")
	case Release:
		return robotgo.KeyToggle(name, "up")
	}
	return robotgo.KeyTap(name)
}

// Close is a no-op, robotgo keeps no per-handle state
func (r *Robot) Close() error {
	return nil
}
