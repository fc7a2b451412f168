// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a text logger writing to w at the named level. The level "off"
// discards everything.
func New(w io.Writer, level string) *log.Logger {
	if strings.EqualFold(strings.TrimSpace(level), "off") {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "timely",
	})
}

// ParseLevel maps a config string to a log level, defaulting to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// NewForTUI returns a logger that never writes to the terminal. With an empty
// path everything is discarded, otherwise lines are appended to path. The
// returned closer releases the file.
func NewForTUI(path, level string) (*log.Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return New(io.Discard, level), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
