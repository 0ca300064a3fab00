// Package logging builds the charmbracelet loggers shared by the CLI, the
// SSH server and the simulation kernel.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w with the given prefix.
func New(w io.Writer, prefix string, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Open returns a logger for interactive commands, which own the terminal.
// With an empty path the logger discards; otherwise it appends to the file
// and the returned close function releases it.
func Open(path, prefix string, debug bool) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	return New(f, prefix, debug), f.Close, nil
}
