package command

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Command names as invoked by the UI shell
const (
	MoveMouse     = "move_mouse"
	ClickMouse    = "click_mouse"
	MouseDown     = "mouse_down"
	MouseUp       = "mouse_up"
	ScrollWheel   = "scroll_wheel"
	TypeText      = "type_text"
	PressKey      = "press_key"
	CaptureScreen = "capture_screen"
)

// MoveArgs are the arguments of move_mouse
type MoveArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ButtonArgs are the arguments of click_mouse, mouse_down and mouse_up
type ButtonArgs struct {
	Button string `json:"button"`
}

// ScrollArgs are the arguments of scroll_wheel
type ScrollArgs struct {
	DeltaX int `json:"deltaX"`
	DeltaY int `json:"deltaY"`
}

// TextArgs are the arguments of type_text
type TextArgs struct {
	Text string `json:"text"`
}

// KeyArgs are the arguments of press_key
type KeyArgs struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

type handler func(s *Surface, args json.RawMessage) (interface{}, error)

var handlers = map[string]handler{
	MoveMouse: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a MoveArgs
		if err := decode(MoveMouse, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.MoveMouse(a.X, a.Y)
	},
	ClickMouse: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a ButtonArgs
		if err := decode(ClickMouse, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.ClickMouse(a.Button)
	},
	MouseDown: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a ButtonArgs
		if err := decode(MouseDown, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.MouseDown(a.Button)
	},
	MouseUp: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a ButtonArgs
		if err := decode(MouseUp, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.MouseUp(a.Button)
	},
	ScrollWheel: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a ScrollArgs
		if err := decode(ScrollWheel, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.ScrollWheel(a.DeltaX, a.DeltaY)
	},
	TypeText: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a TextArgs
		if err := decode(TypeText, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.TypeText(a.Text)
	},
	PressKey: func(s *Surface, raw json.RawMessage) (interface{}, error) {
		var a KeyArgs
		if err := decode(PressKey, raw, &a); err != nil {
			return nil, err
		}
		return nil, s.PressKey(a.Key, a.Modifiers)
	},
	CaptureScreen: func(s *Surface, _ json.RawMessage) (interface{}, error) {
		r, err := s.CaptureScreen()
		if err != nil {
			return nil, err
		}
		return r, nil
	},
}

// Commands returns the sorted names accepted by Invoke
func Commands() []string {
	out := make([]string, 0, len(handlers))
	for n := range handlers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Invoke runs the command called name with JSON encoded args. Commands
// without a result return nil.
func (s *Surface) Invoke(name string, args json.RawMessage) (interface{}, error) {
	h, ok := handlers[name]
	if !ok {
		return nil, argError("invoke", ErrUnknownCommand, name)
	}
	return h(s, args)
}

func decode(name string, raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Kind: InvalidArgument, Action: name, Err: fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}
