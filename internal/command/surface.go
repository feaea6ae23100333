// Package command implements the remote-control command surface: each
// command validates its arguments, acquires an input or screen provider,
// performs one native operation and maps provider failures into an Error.
package command

import (
	"errors"
	"sync"

	"deskagent/internal/frame"
	"deskagent/internal/input"
	"deskagent/internal/screen"
)

// Defaults for capture post-processing
const (
	DefaultMaxWidth  = 1024
	DefaultMaxHeight = 1024
	DefaultQuality   = 75
)

// Options tunes the surface behavior
type Options struct {
	// MaxWidth and MaxHeight bound the resized capture
	MaxWidth  int
	MaxHeight int

	// Quality is the JPEG quality of the encoded capture
	Quality int

	// StrictKeys rejects unknown multi-character key names instead of skipping them
	StrictKeys bool

	// ReuseHandle keeps one input handle open for the process lifetime
	ReuseHandle bool
}

// CaptureResult is the result of CaptureScreen
type CaptureResult struct {
	Image          string  `json:"image"`
	OriginalWidth  int     `json:"original_width"`
	OriginalHeight int     `json:"original_height"`
	LogicalWidth   int     `json:"logical_width"`
	LogicalHeight  int     `json:"logical_height"`
	ScaledWidth    int     `json:"scaled_width"`
	ScaledHeight   int     `json:"scaled_height"`
	ScaleFactor    float64 `json:"scale_factor"`
	XOffset        int     `json:"x_offset"`
	YOffset        int     `json:"y_offset"`
}

// Surface is the command surface exposed to the UI shell
type Surface struct {
	open   input.Opener
	screen screen.Capturer
	opts   Options

	mu     sync.Mutex
	pooled input.Simulator
}

// New creates a Surface using open for input handles and capturer for displays
func New(open input.Opener, capturer screen.Capturer, opts Options) *Surface {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	return &Surface{open: open, screen: capturer, opts: opts}
}

// acquire returns an input handle and the function that gives it back
func (s *Surface) acquire() (input.Simulator, func(), error) {
	if !s.opts.ReuseHandle {
		sim, err := s.open()
		if err != nil {
			return nil, nil, initError(err)
		}
		return sim, func() { sim.Close() }, nil
	}
	s.mu.Lock()
	if s.pooled == nil {
		sim, err := s.open()
		if err != nil {
			s.mu.Unlock()
			return nil, nil, initError(err)
		}
		s.pooled = sim
	}
	return s.pooled, s.mu.Unlock, nil
}

// Close releases the pooled input handle, if any
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pooled == nil {
		return nil
	}
	err := s.pooled.Close()
	s.pooled = nil
	return err
}

// MoveMouse moves the pointer to absolute (x, y)
func (s *Surface) MoveMouse(x, y int) error {
	sim, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	if err := sim.Move(x, y); err != nil {
		return opError("move mouse", err)
	}
	return nil
}

// ClickMouse presses and releases button
func (s *Surface) ClickMouse(button string) error {
	return s.button("click", button, input.Click)
}

// MouseDown presses button without releasing it
func (s *Surface) MouseDown(button string) error {
	return s.button("press mouse", button, input.Press)
}

// MouseUp releases button
func (s *Surface) MouseUp(button string) error {
	return s.button("release mouse", button, input.Release)
}

func (s *Surface) button(action, name string, d input.Direction) error {
	b, ok := input.ParseButton(name)
	if !ok {
		return argError(action, ErrInvalidButton, name)
	}
	sim, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	if err := sim.Button(b, d); err != nil {
		return opError(action, err)
	}
	return nil
}

// ScrollWheel scrolls dy units vertically then dx units horizontally.
// Zero axes are skipped.
func (s *Surface) ScrollWheel(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	sim, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	if dy != 0 {
		if err := sim.Scroll(dy, input.Vertical); err != nil {
			return opError("scroll vertical", err)
		}
	}
	if dx != 0 {
		if err := sim.Scroll(dx, input.Horizontal); err != nil {
			return opError("scroll horizontal", err)
		}
	}
	return nil
}

// TypeText injects text as character input
func (s *Surface) TypeText(text string) error {
	sim, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	if err := sim.Text(text); err != nil {
		return opError("type", err)
	}
	return nil
}

// PressKey clicks key while holding modifiers. Modifiers are pressed in the
// given order and released in the same order; unknown modifier names are
// ignored. An unknown multi-character key name sends no key event unless
// StrictKeys is set, in which case it fails before any native call.
func (s *Surface) PressKey(key string, modifiers []string) error {
	target, found := input.LookupKey(key)
	if !found && s.opts.StrictKeys {
		return argError("press key", ErrUnknownKey, key)
	}
	mods := make([]input.Key, 0, len(modifiers))
	for _, m := range modifiers {
		if k, ok := input.LookupModifier(m); ok {
			mods = append(mods, k)
		}
	}

	sim, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	for i, m := range mods {
		if err := sim.Key(m, input.Press); err != nil {
			releaseAll(sim, mods[:i])
			return opError("press modifier", err)
		}
	}
	if found {
		if err := sim.Key(target, input.Click); err != nil {
			releaseAll(sim, mods)
			if target.IsChar() {
				return opError("click key", err)
			}
			return opError("click special key", err)
		}
	}
	if err := releaseAll(sim, mods); err != nil {
		return opError("release modifier", err)
	}
	return nil
}

// releaseAll releases every key in order and returns the first failure
func releaseAll(sim input.Simulator, keys []input.Key) error {
	var first error
	for _, k := range keys {
		if err := sim.Key(k, input.Release); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CaptureScreen captures the first display, fits it into the configured box
// and returns it JPEG encoded as base64 text with its geometry.
func (s *Surface) CaptureScreen() (*CaptureResult, error) {
	displays, err := s.screen.Displays()
	if err != nil {
		return nil, opError("get screens", err)
	}
	if len(displays) == 0 {
		return nil, &Error{Kind: NoDisplay, Action: "get screens", Err: ErrNoDisplay}
	}
	d := displays[0]

	img, err := d.Capture()
	if err != nil {
		return nil, opError("capture screen", err)
	}
	if img == nil {
		return nil, opError("capture screen", errors.New("empty frame"))
	}

	var (
		scale  = d.ScaleFactor()
		origin = d.Origin()
		w, h   = img.Bounds().Dx(), img.Bounds().Dy()
	)
	if scale <= 0 {
		scale = 1
	}

	resized := frame.Fit(img, s.opts.MaxWidth, s.opts.MaxHeight)
	b, err := frame.EncodeJPEG(resized, s.opts.Quality)
	if err != nil {
		return nil, opError("encode image", err)
	}

	return &CaptureResult{
		Image:          frame.Transport(b),
		OriginalWidth:  w,
		OriginalHeight: h,
		LogicalWidth:   int(float64(w) / scale),
		LogicalHeight:  int(float64(h) / scale),
		ScaledWidth:    resized.Bounds().Dx(),
		ScaledHeight:   resized.Bounds().Dy(),
		ScaleFactor:    scale,
		XOffset:        origin.X,
		YOffset:        origin.Y,
	}, nil
}
