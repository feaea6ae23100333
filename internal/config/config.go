// Package config provides configuration management for the desktop agent.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Config represents the application configuration
type Config struct {
	// API contains the command bridge settings
	API APIConfig `json:"api"`

	// Input contains input simulation settings
	Input InputConfig `json:"input"`

	// Capture contains screen capture post-processing settings
	Capture CaptureConfig `json:"capture"`

	// Log contains logging settings
	Log LogConfig `json:"log"`

	// General contains general application settings
	General GeneralConfig `json:"general"`
}

// APIConfig contains the command bridge settings
type APIConfig struct {
	// Enabled starts the bridge server
	Enabled bool `json:"enabled"`

	// Listen is the address the bridge binds to (default: 127.0.0.1)
	Listen string `json:"listen"`

	// Port is the bridge port (default: 18090)
	Port int `json:"port"`

	// Token is an optional bearer token accepted in addition to the
	// connection code shown in the tray
	Token string `json:"token,omitempty"`

	// AllowedOrigins lists the browser origins that may call the bridge
	AllowedOrigins []string `json:"allowed_origins"`

	// ManageFirewall creates an inbound firewall rule on Windows
	ManageFirewall bool `json:"manage_firewall"`
}

// InputConfig contains input simulation settings
type InputConfig struct {
	// ReuseHandle keeps a single input handle for the process lifetime
	ReuseHandle bool `json:"reuse_handle"`

	// StrictKeys rejects unknown key names instead of silently skipping them
	StrictKeys bool `json:"strict_keys"`
}

// CaptureConfig contains screen capture post-processing settings
type CaptureConfig struct {
	// MaxWidth and MaxHeight bound the resized frame
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`

	// JPEGQuality is the encoder quality, 1-100
	JPEGQuality int `json:"jpeg_quality"`
}

// LogConfig contains logging settings
type LogConfig struct {
	// Level is one of trace, debug, info, warning, error
	Level string `json:"level"`

	// File is an optional log file appended to in addition to the console
	File string `json:"file,omitempty"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// StartOnBoot determines if app starts on system boot
	StartOnBoot bool `json:"start_on_boot"`

	// ShowTray shows the system tray icon
	ShowTray bool `json:"show_tray"`
}

// DefaultOrigins are the origins of the desktop UI shell webview
var DefaultOrigins = []string{"tauri://localhost", "http://tauri.localhost", "https://tauri.localhost"}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Enabled: true,
			Listen:         "127.0.0.1",
			Port:           18090,
			AllowedOrigins: append([]string(nil), DefaultOrigins...),
		},
		Capture: CaptureConfig{
			MaxWidth:    1024,
			MaxHeight:   1024,
			JPEGQuality: 75,
		},
		Log: LogConfig{
			Level: "info",
		},
		General: GeneralConfig{
			ShowTray: true,
		},
	}
}

// Normalize replaces out of range values with defaults
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.API.Listen == "" {
		c.API.Listen = d.API.Listen
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		c.API.Port = d.API.Port
	}
	if c.API.AllowedOrigins == nil {
		c.API.AllowedOrigins = d.API.AllowedOrigins
	}
	if c.Capture.MaxWidth <= 0 {
		c.Capture.MaxWidth = d.Capture.MaxWidth
	}
	if c.Capture.MaxHeight <= 0 {
		c.Capture.MaxHeight = d.Capture.MaxHeight
	}
	switch {
	case c.Capture.JPEGQuality == 0:
		c.Capture.JPEGQuality = d.Capture.JPEGQuality
	case c.Capture.JPEGQuality < 1:
		c.Capture.JPEGQuality = 1
	case c.Capture.JPEGQuality > 100:
		c.Capture.JPEGQuality = 100
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for the per-user config file
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a configuration manager for the file at path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "deskagent")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "deskagent")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "deskagent")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		m.mu.Unlock()
		return err
	}
	cfg.Normalize()
	m.config = cfg
	fn := m.onChanged
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.configPath, data, 0600)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(config Config) {
	config.Normalize()
	m.mu.Lock()
	m.config = &config
	fn := m.onChanged
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Update applies fn to the current configuration
func (m *Manager) Update(fn func(*Config)) {
	c := m.Get()
	fn(&c)
	m.Set(c)
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
