package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the built-in tower configuration.
// It mirrors defaults/tower.yaml and is the last fallback if the
// embedded file cannot be parsed.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Canvas: CanvasConfig{Width: 400, Height: 600},
		Tower: TowerLayout{
			TotalFloors:  50,
			FloorSpacing: 120,
			FloorHeight:  4,
			InnerLeft:    50,
			InnerRight:   350,
		},
		Player: PlayerConfig{
			Width:  30,
			Height: 40,
			Speed:  5,
			StartY: 500,
		},
		Scroll: ScrollConfig{
			BaseRate:        0.5,
			BonusRate:       2,
			FollowThreshold: 200,
		},
		Obstacles: ObstacleConfig{
			Chance:  ChanceCurve{Base: 0.3, Scale: 0.5, Max: 0.8},
			Weights: VariantWeights{Horizontal: 40, Vertical: 25, Circular: 15, Diagonal: 20},
			YJitter: 20,
			Horizontal: VariantConfig{
				Speed:         Curve{Base: 1, Scale: 2},
				Width:         Curve{Base: 50, Scale: 30},
				Height:        Curve{Base: 12, Scale: 4},
				HealthDivisor: 10,
			},
			Vertical: VariantConfig{
				Speed:         Curve{Base: 0.03, Scale: 0.04},
				Amplitude:     Curve{Base: 25, Scale: 25},
				Width:         Curve{Base: 30, Scale: 10},
				Height:        Curve{Base: 30, Scale: 10},
				HealthDivisor: 8,
			},
			Circular: VariantConfig{
				Speed:         Curve{Base: 0.02, Scale: 0.03},
				Amplitude:     Curve{Base: 30, Scale: 20},
				Width:         Curve{Base: 25, Scale: 5},
				Height:        Curve{Base: 25, Scale: 5},
				HealthDivisor: 12,
			},
			Diagonal: VariantConfig{
				Speed:         Curve{Base: 1, Scale: 1.5},
				Amplitude:     Curve{Base: 30, Scale: 30},
				Width:         Curve{Base: 25, Scale: 5},
				Height:        Curve{Base: 25, Scale: 5},
				HealthDivisor: 6,
			},
		},
		Weapon: WeaponConfig{
			AimMode:         AimAngle,
			CooldownTicks:   18, // 300ms at 60fps
			ProjectileSpeed: 8,
			ProjectileSize:  5,
			AimTurnRate:     0.08,
		},
		Explosions: ExplosionConfig{
			Particles: 15,
			AlphaStep: 0.05,
			SizeDecay: 0.95,
			MinSpeed:  1,
			MaxSpeed:  4,
			MinSize:   2,
			MaxSize:   6,
		},
		Scoring: ScoringConfig{
			DestroyPoints: 10,
			FloorPoints:   100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "height"},
		},
	}
}

// DefaultTowerYAML returns the embedded default YAML.
func DefaultTowerYAML() []byte {
	return defaultTowerYAML
}
