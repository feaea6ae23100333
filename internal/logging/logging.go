// Package logging builds the agent logger from the log settings.
package logging

import (
	"fmt"
	"strings"

	"github.com/PurpleSec/logx"

	"deskagent/internal/config"
)

// ParseLevel maps a level name to a logx level
func ParseLevel(s string) (logx.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logx.Trace, nil
	case "debug":
		return logx.Debug, nil
	case "", "info":
		return logx.Info, nil
	case "warn", "warning":
		return logx.Warning, nil
	case "error":
		return logx.Error, nil
	}
	return logx.Info, fmt.Errorf("unknown log level %q", s)
}

// New returns a console logger, combined with an appending file logger when
// c.File is set.
func New(c config.LogConfig) (logx.Log, error) {
	l, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	con := logx.Console(l)
	if len(c.File) == 0 {
		return con, nil
	}
	f, err := logx.File(c.File, logx.Append, l)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", c.File, err)
	}
	return logx.Multiple(con, f), nil
}
