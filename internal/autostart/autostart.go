// Package autostart registers the agent to start on user login.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Label identifies the agent in launchd, the registry and XDG autostart
const Label = "com.deskagent.agent"

var errUnsupported = fmt.Errorf("autostart: unsupported platform %s", runtime.GOOS)

// Enable enables auto-start on login
func Enable() error {
	p, err := executable()
	if err != nil {
		return err
	}
	return enable(p)
}

// Disable disables auto-start on login
func Disable() error {
	return disable()
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	return isEnabled()
}

// Set enables or disables auto-start to match on
func Set(on bool) error {
	if on {
		return Enable()
	}
	return Disable()
}

func executable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if r, err := filepath.EvalSymlinks(p); err == nil {
		p = r
	}
	return p, nil
}

func writeTemplate(path string, render func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
