package input

// robotgo names for the mouse buttons
var robotButtons = map[Button]string{
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonMiddle: "center",
}

// robotgo key names for the named keys
var robotKeys = map[Named]string{
	Enter:      "enter",
	Backspace:  "backspace",
	Tab:        "tab",
	Space:      "space",
	Escape:     "escape",
	LeftArrow:  "left",
	RightArrow: "right",
	UpArrow:    "up",
	DownArrow:  "down",
	Control:    "ctrl",
	Shift:      "shift",
	Alt:        "alt",
	Meta:       "cmd",
}

// darwinScrollUnit is the pixel distance of one wheel line on macOS, where
// robotgo posts pixel scroll events.
const darwinScrollUnit = 10

func robotButton(b Button) (string, bool) {
	s, ok := robotButtons[b]
	return s, ok
}

// robotScroll converts an amount on one axis to robotgo's (x, y). Positive
// amounts scroll down or right, robotgo scrolls up or left for positive
// values. unit multiplies the amount for platforms that scroll in pixels.
func robotScroll(amount int, a Axis, unit int) (int, int) {
	if unit < 1 {
		unit = 1
	}
	v := -amount * unit
	if a == Horizontal {
		return v, 0
	}
	return 0, v
}

func robotKeyName(k Key) (string, bool) {
	if !k.IsChar() {
		s, ok := robotKeys[k.Name]
		return s, ok
	}
	if k.Char > 0x20 && k.Char < 0x7F {
		return string(k.Char), true
	}
	if k.Char == ' ' {
		return "space", true
	}
	return "", false
}
