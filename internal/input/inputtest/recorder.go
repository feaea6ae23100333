// Package inputtest provides a recording input.Simulator for tests.
package inputtest

import (
	"fmt"
	"sync"

	"deskagent/internal/input"
)

// Call is one recorded simulator invocation
type Call struct {
	Op     string // "move", "button", "scroll", "text", "key", "close"
	X, Y   int
	Button input.Button
	Dir    input.Direction
	Amount int
	Axis   input.Axis
	Text   string
	Key    input.Key
}

func (c Call) String() string {
	switch c.Op {
	case "move":
		return fmt.Sprintf("move(%d,%d)", c.X, c.Y)
	case "button":
		return fmt.Sprintf("button(%s,%s)", c.Button, c.Dir)
	case "scroll":
		return fmt.Sprintf("scroll(%d,%s)", c.Amount, c.Axis)
	case "text":
		return fmt.Sprintf("text(%q)", c.Text)
	case "key":
		return fmt.Sprintf("key(%s,%s)", c.Key, c.Dir)
	}
	return c.Op
}

// Recorder records every call. Fail, when set, is consulted before each
// call and its error returned instead of recording.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	opens  int
	closes int

	OpenErr error
	Fail    func(Call) error
}

// Opener returns an input.Opener handing out r
func (r *Recorder) Opener() input.Opener {
	return func() (input.Simulator, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.OpenErr != nil {
			return nil, r.OpenErr
		}
		r.opens++
		return r, nil
	}
}

// Calls returns the recorded calls, excluding Close
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Strings returns the recorded calls formatted with Call.String
func (r *Recorder) Strings() []string {
	c := r.Calls()
	out := make([]string, len(c))
	for i := range c {
		out[i] = c[i].String()
	}
	return out
}

// Opens returns how many handles were acquired
func (r *Recorder) Opens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens
}

// Closes returns how many handles were released
func (r *Recorder) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

func (r *Recorder) record(c Call) error {
	if r.Fail != nil {
		if err := r.Fail(c); err != nil {
			return err
		}
	}
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Move(x, y int) error {
	return r.record(Call{Op: "move", X: x, Y: y})
}

func (r *Recorder) Button(b input.Button, d input.Direction) error {
	return r.record(Call{Op: "button", Button: b, Dir: d})
}

func (r *Recorder) Scroll(amount int, a input.Axis) error {
	return r.record(Call{Op: "scroll", Amount: amount, Axis: a})
}

func (r *Recorder) Text(s string) error {
	return r.record(Call{Op: "text", Text: s})
}

func (r *Recorder) Key(k input.Key, d input.Direction) error {
	return r.record(Call{Op: "key", Key: k, Dir: d})
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closes++
	r.mu.Unlock()
	return nil
}
