package autostart

import (
	"os"
	"path/filepath"
	"text/template"
)

var launchAgent = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.Exec}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`))

func plistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist"), nil
}

func enable(exec string) error {
	p, err := plistPath()
	if err != nil {
		return err
	}
	return writeTemplate(p, func(f *os.File) error {
		return launchAgent.Execute(f, struct{ Label, Exec string }{Label, exec})
	})
}

func disable() error {
	p, err := plistPath()
	if err != nil {
		return err
	}
	return removeFile(p)
}

func isEnabled() bool {
	p, err := plistPath()
	return err == nil && exists(p)
}
