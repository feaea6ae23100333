package input

import (
	"testing"
)

// TestParseButton tests the closed button table
func TestParseButton(t *testing.T) {
	valid := map[string]Button{"left": ButtonLeft, "right": ButtonRight, "middle": ButtonMiddle}
	for name, want := range valid {
		got, ok := ParseButton(name)
		if !ok || got != want {
			t.Errorf("ParseButton(%q) = %v, %v; want %v, true", name, got, ok, want)
		}
		if got.String() != name {
			t.Errorf("Button(%d).String() = %q, want %q", got, got.String(), name)
		}
	}
	for _, name := range []string{"", "Left", "LEFT", "back", "forward", "1"} {
		if _, ok := ParseButton(name); ok {
			t.Errorf("ParseButton(%q) should fail", name)
		}
	}
}

// TestLookupKeySingleChar tests that any single character is a literal key
func TestLookupKeySingleChar(t *testing.T) {
	for _, s := range []string{"a", "Z", "1", " ", "/", "é", "ж"} {
		k, ok := LookupKey(s)
		if !ok {
			t.Errorf("LookupKey(%q) failed", s)
			continue
		}
		if !k.IsChar() {
			t.Errorf("LookupKey(%q) = %v, expected a character key", s, k)
		}
		if string(k.Char) != s {
			t.Errorf("LookupKey(%q).Char = %q", s, k.Char)
		}
	}
}

// TestLookupKeyNamed tests the named key table and its aliases
func TestLookupKeyNamed(t *testing.T) {
	tests := map[string]Named{
		"Enter":      Enter,
		"return":     Enter,
		"BACKSPACE":  Backspace,
		"tab":        Tab,
		"Space":      Space,
		"Escape":     Escape,
		"esc":        Escape,
		"left":       LeftArrow,
		"ArrowLeft":  LeftArrow,
		"right":      RightArrow,
		"ArrowRight": RightArrow,
		"up":         UpArrow,
		"ArrowUp":    UpArrow,
		"down":       DownArrow,
		"ArrowDown":  DownArrow,
	}
	for s, want := range tests {
		k, ok := LookupKey(s)
		if !ok || k.Name != want {
			t.Errorf("LookupKey(%q) = %v, %v; want %v", s, k, ok, want)
		}
	}
	for _, s := range []string{"F1", "", "delete", "home", "Control"} {
		if _, ok := LookupKey(s); ok {
			t.Errorf("LookupKey(%q) should not resolve", s)
		}
	}
}

// TestLookupModifier tests modifier names and aliases
func TestLookupModifier(t *testing.T) {
	tests := map[string]Named{
		"Control": Control,
		"Ctrl":    Control,
		"Shift":   Shift,
		"Alt":     Alt,
		"Option":  Alt,
		"Meta":    Meta,
		"Command": Meta,
		"Super":   Meta,
	}
	for s, want := range tests {
		k, ok := LookupModifier(s)
		if !ok || k.Name != want {
			t.Errorf("LookupModifier(%q) = %v, %v; want %v", s, k, ok, want)
		}
	}
	for _, s := range []string{"control", "Hyper", "Fn", ""} {
		if _, ok := LookupModifier(s); ok {
			t.Errorf("LookupModifier(%q) should not resolve", s)
		}
	}
}
