package identity

import (
	"strconv"
	"testing"
)

func TestNewCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		c, err := NewCode()
		if err != nil {
			t.Fatalf("NewCode failed: %v", err)
		}
		if len(c) != 6 {
			t.Fatalf("code %q is not six digits", c)
		}
		n, err := strconv.Atoi(c)
		if err != nil || n < 100000 || n > 999999 {
			t.Fatalf("code %q out of range", c)
		}
		seen[c] = true
	}
	if len(seen) < 2 {
		t.Error("codes are not random")
	}
}
