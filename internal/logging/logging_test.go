package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, "tanks-test", false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}

	New(&buf, "tanks-test", true).Debug("shown", "tick", 3)
	out := buf.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, "tanks-test") {
		t.Errorf("debug output = %q, want message and prefix", out)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := Open("", "tanks", true)
	if err != nil {
		t.Fatalf("Open(\"\") failed: %v", err)
	}
	logger.Info("nowhere")
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tanks.log")

	logger, closeFn, err := Open(path, "tanks", false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	logger.Info("round started", "arena", "training")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "round started") {
		t.Errorf("log file = %q, want the info line", data)
	}
}
