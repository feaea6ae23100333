// Package input provides cross-platform input simulation for remote control commands.
package input

import "errors"

// ErrUnsupported is returned by Open on builds without a native input backend
var ErrUnsupported = errors.New("input simulation not supported on this platform")

// Button is a pointer button
type Button uint8

const (
	// ButtonLeft is the primary pointer button
	ButtonLeft Button = iota + 1
	// ButtonRight is the secondary pointer button
	ButtonRight
	// ButtonMiddle is the wheel button
	ButtonMiddle
)

// Direction selects between pressing, releasing or clicking a button or key
type Direction uint8

const (
	// Press sends only the down event
	Press Direction = iota
	// Release sends only the up event
	Release
	// Click sends a down event followed by an up event
	Click
)

// Axis is the scroll axis
type Axis uint8

const (
	// Vertical scrolls up or down
	Vertical Axis = iota
	// Horizontal scrolls left or right
	Horizontal
)

// Simulator synthesizes pointer and keyboard events in the current OS input session
type Simulator interface {
	// Move places the pointer at absolute device-pixel coordinates
	Move(x, y int) error

	// Button presses, releases or clicks a pointer button
	Button(b Button, d Direction) error

	// Scroll moves the wheel by amount units along the axis
	Scroll(amount int, a Axis) error

	// Text injects literal text as character input
	Text(s string) error

	// Key presses, releases or clicks a key
	Key(k Key, d Direction) error

	// Close releases the handle
	Close() error
}

// Opener acquires a fresh Simulator handle
type Opener func() (Simulator, error)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "invalid"
}

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	case Click:
		return "click"
	}
	return "invalid"
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
