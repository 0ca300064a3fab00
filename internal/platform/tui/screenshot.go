package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// screenshotDir is relative to the home directory.
const screenshotDir = ".tanks/screenshots"

// saveScreenshot writes the plain-text frame to
// ~/.tanks/screenshots/<game>_<time>.txt and returns the path.
func saveScreenshot(scr *core.Screen, gameID string, at time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return writeScreenshot(filepath.Join(home, screenshotDir), scr, gameID, at)
}

func writeScreenshot(dir string, scr *core.Screen, gameID string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", gameID, at.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(scr.String()), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}
