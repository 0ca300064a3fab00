// Package config provides YAML-based game configuration loading and
// difficulty management for the tank arena.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TanksConfig contains all configuration for the tank arena.
type TanksConfig struct {
	Map        MapConfig        `yaml:"map"`
	Tank       TankConfig       `yaml:"tank"`
	Barrel     BarrelConfig     `yaml:"barrel"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Render     RenderConfig     `yaml:"render"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MapConfig is the default arena size in world units.
// Arena files may override it.
type MapConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TankConfig defines hull size and handling.
type TankConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`          // units per second
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per second
	Health        int     `yaml:"health"`
}

// BarrelConfig defines barrel size and aim rate.
type BarrelConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	AimSpeed float64 `yaml:"aim_speed"` // degrees per second
}

// BulletConfig defines bullet size and speed.
type BulletConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// GameplayConfig defines reload, scoring and barrel handling.
type GameplayConfig struct {
	ReloadMS      int  `yaml:"reload_ms"`
	KillPoints    int  `yaml:"kill_points"`
	TimeBonus     int  `yaml:"time_bonus"` // points per remaining second on a clear
	AnchorBarrels bool `yaml:"anchor_barrels"`
}

// RenderConfig maps world units onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// InputConfig tunes the held-key tracker.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "kills", "time", or "none"
	MaxAt int    `yaml:"max_at"` // kills or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ReloadPenaltyMS int     `yaml:"reload_penalty_ms"` // added to reload at max difficulty
	TimeLimitCut    float64 `yaml:"time_limit_cut"`    // fraction of the time limit removed at max difficulty
}

// Reload returns the reload time as a duration.
func (g GameplayConfig) Reload() time.Duration {
	return time.Duration(g.ReloadMS) * time.Millisecond
}

// Hold returns the key hold window as a duration.
func (i InputConfig) Hold() time.Duration {
	return time.Duration(i.HoldMS) * time.Millisecond
}

// Validate reports configuration values the simulation cannot run with.
func (c TanksConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("map.width", c.Map.Width)
	positive("map.height", c.Map.Height)
	positive("tank.width", c.Tank.Width)
	positive("tank.height", c.Tank.Height)
	positive("tank.speed", c.Tank.Speed)
	positive("tank.rotation_speed", c.Tank.RotationSpeed)
	positive("barrel.width", c.Barrel.Width)
	positive("barrel.height", c.Barrel.Height)
	positive("bullet.width", c.Bullet.Width)
	positive("bullet.height", c.Bullet.Height)
	positive("bullet.speed", c.Bullet.Speed)
	positive("render.cell_width", c.Render.CellWidth)
	positive("render.cell_height", c.Render.CellHeight)

	if c.Barrel.AimSpeed < 0 {
		errs = append(errs, fmt.Errorf("barrel.aim_speed must not be negative, got %v", c.Barrel.AimSpeed))
	}
	if c.Gameplay.ReloadMS < 0 {
		errs = append(errs, fmt.Errorf("gameplay.reload_ms must not be negative, got %d", c.Gameplay.ReloadMS))
	}
	if c.Input.HoldMS <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must be positive, got %d", c.Input.HoldMS))
	}
	switch c.Difficulty.Progression.Type {
	case "", "kills", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of kills, time, none", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
