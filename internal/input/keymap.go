package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key is a keyboard key: either a named key or a literal character
type Key struct {
	Name Named
	Char rune
}

// Named identifies a non-character key
type Named uint8

const (
	// NoName marks a literal character key
	NoName Named = iota
	Enter
	Backspace
	Tab
	Space
	Escape
	LeftArrow
	RightArrow
	UpArrow
	DownArrow
	Control
	Shift
	Alt
	Meta
)

var namedStrings = [...]string{
	NoName:     "",
	Enter:      "enter",
	Backspace:  "backspace",
	Tab:        "tab",
	Space:      "space",
	Escape:     "escape",
	LeftArrow:  "left",
	RightArrow: "right",
	UpArrow:    "up",
	DownArrow:  "down",
	Control:    "control",
	Shift:      "shift",
	Alt:        "alt",
	Meta:       "meta",
}

// keyNames is matched against the lower-cased key name
var keyNames = map[string]Named{
	"enter":      Enter,
	"return":     Enter,
	"backspace":  Backspace,
	"tab":        Tab,
	"space":      Space,
	"escape":     Escape,
	"esc":        Escape,
	"left":       LeftArrow,
	"arrowleft":  LeftArrow,
	"right":      RightArrow,
	"arrowright": RightArrow,
	"up":         UpArrow,
	"arrowup":    UpArrow,
	"down":       DownArrow,
	"arrowdown":  DownArrow,
}

// modifierNames is matched exactly, the UI shell sends DOM modifier names
var modifierNames = map[string]Named{
	"Control": Control,
	"Ctrl":    Control,
	"Shift":   Shift,
	"Alt":     Alt,
	"Option":  Alt,
	"Meta":    Meta,
	"Command": Meta,
	"Super":   Meta,
}

var buttonNames = map[string]Button{
	"left":   ButtonLeft,
	"right":  ButtonRight,
	"middle": ButtonMiddle,
}

// CharKey returns the literal character key for r
func CharKey(r rune) Key {
	return Key{Char: r}
}

// NamedKey returns the key for n
func NamedKey(n Named) Key {
	return Key{Name: n}
}

// IsChar reports whether k is a literal character key
func (k Key) IsChar() bool {
	return k.Name == NoName
}

func (k Key) String() string {
	if k.IsChar() {
		return fmt.Sprintf("%q", k.Char)
	}
	return k.Name.String()
}

func (n Named) String() string {
	if int(n) < len(namedStrings) {
		return namedStrings[n]
	}
	return "invalid"
}

// ParseButton maps a button name to a Button
func ParseButton(s string) (Button, bool) {
	b, ok := buttonNames[s]
	return b, ok
}

// LookupKey resolves a target key. A single character is always a literal
// character key; longer names are matched case-insensitively against the
// named key table. Characters are counted as runes, so "é" is a single
// character key even though it is two bytes long.
func LookupKey(s string) (Key, bool) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return CharKey(r), true
	}
	n, ok := keyNames[strings.ToLower(s)]
	if !ok {
		return Key{}, false
	}
	return NamedKey(n), true
}

// LookupModifier resolves a modifier name, including the platform aliases
func LookupModifier(s string) (Key, bool) {
	n, ok := modifierNames[s]
	if !ok {
		return Key{}, false
	}
	return NamedKey(n), true
}
