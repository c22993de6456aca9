// Package logging sets up the zerolog file logger. The TUI owns the terminal,
// so diagnostics never go to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config or env value to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a timestamped logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpenFile creates the log file (appending) and returns a logger over it along
// with a close func. An empty path yields a no-op logger.
func OpenFile(path string, level zerolog.Level) (zerolog.Logger, func() error, error) {
	if path == "" || level == zerolog.Disabled {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f.Close, nil
}
