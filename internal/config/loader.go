package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadTower loads the tower configuration.
// Search order: customPath -> ~/.towerclimb/configs/tower.yaml -> ./configs/tower.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial YAML only needs the
// keys it overrides.
func LoadTower(customPath string) (TowerConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TowerConfig{}, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTower(data)
		if err != nil {
			return TowerConfig{}, SourceCustom, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tower.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTower(data); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tower.yaml")); err == nil {
		if cfg, err := ParseTower(data); err == nil {
			return cfg, SourceLocal, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTower(defaultTowerYAML)
	if err != nil {
		return DefaultTowerConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// ParseTower decodes YAML over the built-in defaults and validates the result.
func ParseTower(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TowerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TowerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".towerclimb", "configs", filename)
}

// ApplyTowerPreset modifies the config based on a difficulty preset.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Weapon.CooldownTicks = cfg.Weapon.CooldownTicks * 2 / 3
		cfg.Obstacles.Chance.Max = 0.6
	case DifficultyHard:
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
		cfg.Scroll.BaseRate *= 1.25
	}
}
