// Package logging configures the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup sends the default logger to the file at path at the given
// level. The returned closer must be closed on exit. The TUI owns the
// terminal, so interactive sessions always log to a file.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetDefault(New(f, lvl))
	return f, nil
}

// SetupStderr sends the default logger to stderr, used by headless
// commands.
func SetupStderr(level log.Level) {
	log.SetDefault(New(os.Stderr, level))
}

// New creates a logger with the application's options.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "zencrawl",
	})
}
