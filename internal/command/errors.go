package command

import (
	"errors"
	"fmt"
)

// Kind classifies command failures so callers can branch without parsing text
type Kind uint8

const (
	// ProviderInit means a native handle could not be created
	ProviderInit Kind = iota + 1
	// ProviderOperation means the requested native action failed
	ProviderOperation
	// InvalidArgument means a button, key or command name was not recognized
	InvalidArgument
	// NoDisplay means capture was requested with zero displays
	NoDisplay
)

var (
	// ErrInvalidButton is wrapped when a button name is outside left/right/middle
	ErrInvalidButton = errors.New("invalid button")
	// ErrUnknownKey is wrapped when strict key resolution rejects a key name
	ErrUnknownKey = errors.New("unknown key")
	// ErrNoDisplay is wrapped when no display is enumerated
	ErrNoDisplay = errors.New("no screen found")
	// ErrUnknownCommand is wrapped when the bridge receives an unknown command name
	ErrUnknownCommand = errors.New("unknown command")
)

// Error is the failure result of a command
type Error struct {
	Kind   Kind
	Action string
	Err    error
}

func (k Kind) String() string {
	switch k {
	case ProviderInit:
		return "provider_init"
	case ProviderOperation:
		return "provider_operation"
	case InvalidArgument:
		return "invalid_argument"
	case NoDisplay:
		return "no_display"
	}
	return "unknown"
}

func (e *Error) Error() string {
	return e.Action + " failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not a command Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func initError(err error) error {
	return &Error{Kind: ProviderInit, Action: "init input", Err: err}
}

func opError(action string, err error) error {
	return &Error{Kind: ProviderOperation, Action: action, Err: err}
}

func argError(action string, err error, v string) error {
	return &Error{Kind: InvalidArgument, Action: action, Err: fmt.Errorf("%w %q", err, v)}
}
