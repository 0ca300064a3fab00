package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tank arena configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Map: MapConfig{
			Width:  1600,
			Height: 960,
		},
		Tank: TankConfig{
			Width:         75,
			Height:        70,
			Speed:         180,
			RotationSpeed: 300,
			Health:        100,
		},
		Barrel: BarrelConfig{
			Width:    16,
			Height:   50,
			AimSpeed: 300,
		},
		Bullet: BulletConfig{
			Width:  12,
			Height: 26,
			Speed:  600,
		},
		Gameplay: GameplayConfig{
			ReloadMS:      700,
			KillPoints:    100,
			TimeBonus:     10,
			AnchorBarrels: false,
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Input: InputConfig{
			HoldMS: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "kills",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				ReloadPenaltyMS: 500,
				TimeLimitCut:    0.5,
			},
		},
	}
}
