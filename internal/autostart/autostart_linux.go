package autostart

import (
	"os"
	"path/filepath"
	"text/template"
)

var desktopEntry = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name=DeskAgent
Comment=Desktop remote control agent
Exec="{{.Exec}}"
X-GNOME-Autostart-enabled=true
NoDisplay=true
`))

// desktopPath follows the XDG autostart location
func desktopPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", Label+".desktop"), nil
}

func enable(exec string) error {
	p, err := desktopPath()
	if err != nil {
		return err
	}
	return writeTemplate(p, func(f *os.File) error {
		return desktopEntry.Execute(f, struct{ Exec string }{exec})
	})
}

func disable() error {
	p, err := desktopPath()
	if err != nil {
		return err
	}
	return removeFile(p)
}

func isEnabled() bool {
	p, err := desktopPath()
	return err == nil && exists(p)
}
