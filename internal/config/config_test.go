package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaults tests that the defaults match the documented capture settings
func TestDefaults(t *testing.T) {
	c := DefaultConfig()
	if c.Capture.MaxWidth != 1024 || c.Capture.MaxHeight != 1024 {
		t.Errorf("Expected 1024x1024 capture box, got %dx%d", c.Capture.MaxWidth, c.Capture.MaxHeight)
	}
	if c.Capture.JPEGQuality != 75 {
		t.Errorf("Expected quality 75, got %d", c.Capture.JPEGQuality)
	}
	if c.API.Listen != "127.0.0.1" || c.API.Port != 18090 {
		t.Errorf("Unexpected API defaults %s:%d", c.API.Listen, c.API.Port)
	}
	if c.Input.StrictKeys || c.Input.ReuseHandle {
		t.Error("Expected lenient keys and per-call handles by default")
	}
	if len(c.API.AllowedOrigins) != len(DefaultOrigins) {
		t.Errorf("Expected the UI shell origins by default, got %v", c.API.AllowedOrigins)
	}
}

// TestNormalize tests clamping of out of range values
func TestNormalize(t *testing.T) {
	c := Config{
		API:     APIConfig{Port: 70000},
		Capture: CaptureConfig{MaxWidth: -1, JPEGQuality: 300},
		Log:     LogConfig{Level: " DEBUG "},
	}
	c.Normalize()
	if c.API.Port != 18090 || c.API.Listen != "127.0.0.1" {
		t.Errorf("Unexpected API %s:%d", c.API.Listen, c.API.Port)
	}
	if c.Capture.MaxWidth != 1024 || c.Capture.MaxHeight != 1024 {
		t.Errorf("Unexpected capture box %dx%d", c.Capture.MaxWidth, c.Capture.MaxHeight)
	}
	if c.Capture.JPEGQuality != 100 {
		t.Errorf("Expected quality clamped to 100, got %d", c.Capture.JPEGQuality)
	}
	if c.Log.Level != "debug" {
		t.Errorf("Expected level 'debug', got %q", c.Log.Level)
	}
	if len(c.API.AllowedOrigins) != len(DefaultOrigins) {
		t.Errorf("Expected default origins, got %v", c.API.AllowedOrigins)
	}

	c = Config{API: APIConfig{AllowedOrigins: []string{}}}
	c.Normalize()
	if len(c.API.AllowedOrigins) != 0 {
		t.Errorf("Expected an explicit empty origin list kept, got %v", c.API.AllowedOrigins)
	}
}

// TestSaveLoad tests a save and load through the manager
func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	m := NewManagerAt(path)

	changed := 0
	m.RegisterChangeCallback(func() { changed++ })
	m.Update(func(c *Config) {
		c.API.Token = "secret"
		c.Input.StrictKeys = true
		c.Capture.MaxWidth = 640
	})
	if changed != 1 {
		t.Errorf("Expected 1 change callback, got %d", changed)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other := NewManagerAt(path)
	if err := other.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c := other.Get()
	if c.API.Token != "secret" || !c.Input.StrictKeys || c.Capture.MaxWidth != 640 {
		t.Errorf("Loaded config mismatch: %+v", c)
	}
	if c.Capture.MaxHeight != 1024 {
		t.Errorf("Expected default height kept, got %d", c.Capture.MaxHeight)
	}
}

// TestLoadMissing tests that a missing file keeps the defaults
func TestLoadMissing(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "none.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Get().API.Port != 18090 {
		t.Error("Expected defaults when no file exists")
	}
}

// TestLoadInvalid tests that broken JSON is reported
func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewManagerAt(path).Load(); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
