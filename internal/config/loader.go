package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTanks loads the tank arena configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. A custom path that cannot be read, parsed or validated is an
// error; the other locations are skipped when they are unusable.
func LoadTanks(customPath string) (TanksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeTanks(data)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TanksConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tanks.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "tanks.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := decodeTanks(defaultTanksYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryLoad(path string) (TanksConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TanksConfig{}, false
	}
	cfg, err := decodeTanks(data)
	if err != nil || cfg.Validate() != nil {
		return TanksConfig{}, false
	}
	return cfg, true
}

func decodeTanks(data []byte) (TanksConfig, error) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TanksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.ReloadMS = 500
		cfg.Bullet.Speed = 700
	case DifficultyHard:
		cfg.Gameplay.ReloadMS = 900
		cfg.Bullet.Speed = 500
	}
}
