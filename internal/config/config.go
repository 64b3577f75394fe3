// Package config provides YAML-based run configuration loading and
// difficulty management for the tower climber.
package config

import (
	"errors"
	"fmt"
)

// AimMode selects how the fire direction is derived.
type AimMode string

const (
	// AimPointer fires toward the pointer position at fire time.
	AimPointer AimMode = "pointer"
	// AimAngle fires along a continuously tracked aim angle.
	AimAngle AimMode = "angle"
)

// TowerConfig is the complete set of tunable run parameters.
type TowerConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Tower      TowerLayout      `yaml:"tower"`
	Player     PlayerConfig     `yaml:"player"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Weapon     WeaponConfig     `yaml:"weapon"`
	Explosions ExplosionConfig  `yaml:"explosions"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig is the size of the simulated screen in canvas units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TowerLayout defines the floors and the inner walls of the tower.
type TowerLayout struct {
	TotalFloors  int     `yaml:"total_floors"`
	FloorSpacing float64 `yaml:"floor_spacing"`
	FloorHeight  float64 `yaml:"floor_height"`
	InnerLeft    float64 `yaml:"inner_left"`
	InnerRight   float64 `yaml:"inner_right"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	StartY float64 `yaml:"start_y"`
}

// ScrollConfig defines the automatic ascent and camera follow.
type ScrollConfig struct {
	BaseRate        float64 `yaml:"base_rate"`        // Scroll added every tick
	BonusRate       float64 `yaml:"bonus_rate"`       // Extra scroll while the player is high up
	FollowThreshold float64 `yaml:"follow_threshold"` // Player screen y below which the bonus applies
}

// Curve is a linear difficulty ramp: Base at progress 0, Base+Scale at 1.
type Curve struct {
	Base  float64 `yaml:"base"`
	Scale float64 `yaml:"scale"`
}

// At evaluates the curve at progress p.
func (c Curve) At(p float64) float64 {
	return c.Base + p*c.Scale
}

// ChanceCurve is the per-floor obstacle spawn probability ramp.
type ChanceCurve struct {
	Base  float64 `yaml:"base"`
	Scale float64 `yaml:"scale"`
	Max   float64 `yaml:"max"`
}

// At evaluates the chance at progress p, capped at Max.
func (c ChanceCurve) At(p float64) float64 {
	v := c.Base + p*c.Scale
	if v > c.Max {
		return c.Max
	}
	return v
}

// VariantWeights is the relative weight of each obstacle motion kind.
type VariantWeights struct {
	Horizontal int `yaml:"horizontal"`
	Vertical   int `yaml:"vertical"`
	Circular   int `yaml:"circular"`
	Diagonal   int `yaml:"diagonal"`
}

// Total returns the sum of all weights.
func (w VariantWeights) Total() int {
	return w.Horizontal + w.Vertical + w.Circular + w.Diagonal
}

// VariantConfig holds the difficulty curves of one obstacle kind.
// Amplitude is the swing for vertical, the radius for circular and the
// vertical travel range for diagonal obstacles; horizontal ignores it.
type VariantConfig struct {
	Speed         Curve `yaml:"speed"`
	Amplitude     Curve `yaml:"amplitude"`
	Width         Curve `yaml:"width"`
	Height        Curve `yaml:"height"`
	HealthDivisor int   `yaml:"health_divisor"`
}

// ObstacleConfig defines obstacle generation.
type ObstacleConfig struct {
	Chance     ChanceCurve    `yaml:"chance"`
	Weights    VariantWeights `yaml:"weights"`
	YJitter    float64        `yaml:"y_jitter"`
	Horizontal VariantConfig  `yaml:"horizontal"`
	Vertical   VariantConfig  `yaml:"vertical"`
	Circular   VariantConfig  `yaml:"circular"`
	Diagonal   VariantConfig  `yaml:"diagonal"`
}

// WeaponConfig defines projectile firing.
type WeaponConfig struct {
	AimMode         AimMode `yaml:"aim_mode"`
	CooldownTicks   int     `yaml:"cooldown_ticks"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ProjectileSize  float64 `yaml:"projectile_size"`
	AimTurnRate     float64 `yaml:"aim_turn_rate"` // Radians per tick while an aim key is held
	AutoFire        bool    `yaml:"auto_fire"`
}

// ExplosionConfig defines the particle bursts of destroyed obstacles.
type ExplosionConfig struct {
	Particles int     `yaml:"particles"`
	AlphaStep float64 `yaml:"alpha_step"`
	SizeDecay float64 `yaml:"size_decay"`
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MinSize   float64 `yaml:"min_size"`
	MaxSize   float64 `yaml:"max_size"`
}

// ScoringConfig defines how a run is scored.
type ScoringConfig struct {
	DestroyPoints int `yaml:"destroy_points"`
	FloorPoints   int `yaml:"floor_points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases up the tower.
type ProgressionConfig struct {
	Type string `yaml:"type"` // "height" or "none"
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to obstacle speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Bounds returns the inner wall coordinates.
func (c TowerConfig) Bounds() (left, right float64) {
	return c.Tower.InnerLeft, c.Tower.InnerRight
}

// Validate reports configuration values the simulation cannot run with.
func (c TowerConfig) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Tower.TotalFloors < 1 {
		errs = append(errs, fmt.Errorf("tower.total_floors must be >= 1, got %d", c.Tower.TotalFloors))
	}
	if c.Tower.FloorSpacing <= 0 {
		errs = append(errs, fmt.Errorf("tower.floor_spacing must be > 0, got %g", c.Tower.FloorSpacing))
	}
	if c.Tower.InnerLeft < 0 || c.Tower.InnerRight > c.Canvas.Width || c.Tower.InnerLeft >= c.Tower.InnerRight {
		errs = append(errs, fmt.Errorf("tower inner bounds [%g, %g] must lie within the canvas", c.Tower.InnerLeft, c.Tower.InnerRight))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Width > c.Tower.InnerRight-c.Tower.InnerLeft {
		errs = append(errs, errors.New("player is wider than the tower"))
	}
	if c.Scroll.BaseRate < 0 || c.Scroll.BonusRate < 0 {
		errs = append(errs, errors.New("scroll rates must not be negative"))
	}
	if c.Obstacles.Weights.Total() <= 0 {
		errs = append(errs, errors.New("obstacles.weights must sum to a positive value"))
	}
	for name, v := range map[string]VariantConfig{
		"horizontal": c.Obstacles.Horizontal,
		"vertical":   c.Obstacles.Vertical,
		"circular":   c.Obstacles.Circular,
		"diagonal":   c.Obstacles.Diagonal,
	} {
		if v.HealthDivisor < 1 {
			errs = append(errs, fmt.Errorf("obstacles.%s.health_divisor must be >= 1", name))
		}
	}
	if c.Weapon.AimMode != AimPointer && c.Weapon.AimMode != AimAngle {
		errs = append(errs, fmt.Errorf("weapon.aim_mode must be %q or %q, got %q", AimPointer, AimAngle, c.Weapon.AimMode))
	}
	if c.Weapon.CooldownTicks < 0 {
		errs = append(errs, errors.New("weapon.cooldown_ticks must not be negative"))
	}
	if c.Explosions.AlphaStep <= 0 {
		errs = append(errs, errors.New("explosions.alpha_step must be > 0"))
	}
	if c.Explosions.SizeDecay <= 0 || c.Explosions.SizeDecay >= 1 {
		errs = append(errs, errors.New("explosions.size_decay must be in (0, 1)"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tower config: %w", errors.Join(errs...))
	}
	return nil
}
