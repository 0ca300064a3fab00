package config

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// DifficultyManager derives the live reload time and the round time limit
// from the difficulty level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on kills/ticks.
func (d *DifficultyManager) Level(kills int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "kills":
		progress = float64(kills) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Reload returns the reload time at the current level. The base reload is
// lengthened by up to ReloadPenaltyMS.
func (d *DifficultyManager) Reload(base time.Duration, kills int, ticks uint64) time.Duration {
	level := d.Level(kills, ticks)
	penalty := time.Duration(level*float64(d.cfg.Scaling.ReloadPenaltyMS)) * time.Millisecond
	return base + penalty
}

// TimeLimit shortens a round time limit by the initial level.
// Zero means no limit and is returned unchanged.
func (d *DifficultyManager) TimeLimit(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	cut := core.ClampF(d.initialLevel*d.cfg.Scaling.TimeLimitCut, 0.0, 0.9)
	return time.Duration(float64(base) * (1 - cut)).Round(time.Second)
}
