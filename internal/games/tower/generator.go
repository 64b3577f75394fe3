package tower

import (
	"math"

	"github.com/vovakirdan/tower-climb/internal/config"
)

// Generate builds the floors and obstacles of a run. The same config and
// RNG state always produce the same tower.
//
// Floor i (0-based) sits at world y = -i*spacing. Each floor rolls once
// for an obstacle; difficulty ramps with i/totalFloors.
func Generate(cfg config.TowerConfig, rng RNG) ([]Floor, []Obstacle) {
	total := cfg.Tower.TotalFloors
	if total < 0 {
		total = 0
	}
	diff := config.NewDifficultyManager(cfg.Difficulty)
	bounds := Bounds{Left: cfg.Tower.InnerLeft, Right: cfg.Tower.InnerRight}

	floors := make([]Floor, 0, total)
	obstacles := make([]Obstacle, 0, total)

	for i := 0; i < total; i++ {
		floor := Floor{
			XOffset: bounds.Left,
			WorldY:  -float64(i) * cfg.Tower.FloorSpacing,
			Width:   bounds.Right - bounds.Left,
			Height:  cfg.Tower.FloorHeight,
			Number:  i + 1,
		}
		floors = append(floors, floor)

		progress := float64(i) / float64(total)
		level := diff.Level(progress)
		if rng.Float64() >= cfg.Obstacles.Chance.At(level) {
			continue
		}

		kind := pickKind(cfg.Obstacles.Weights, rng)
		obstacles = append(obstacles, newObstacle(kind, i, progress, floor, cfg, diff, bounds, rng))
	}

	return floors, obstacles
}

// pickKind draws a motion kind proportionally to the configured weights.
func pickKind(w config.VariantWeights, rng RNG) ObstacleKind {
	roll := rng.Intn(w.Total())
	for _, c := range []struct {
		kind   ObstacleKind
		weight int
	}{
		{KindHorizontal, w.Horizontal},
		{KindVertical, w.Vertical},
		{KindCircular, w.Circular},
		{KindDiagonal, w.Diagonal},
	} {
		if roll < c.weight {
			return c.kind
		}
		roll -= c.weight
	}
	return KindHorizontal
}

func variantConfig(cfg config.ObstacleConfig, kind ObstacleKind) config.VariantConfig {
	switch kind {
	case KindVertical:
		return cfg.Vertical
	case KindCircular:
		return cfg.Circular
	case KindDiagonal:
		return cfg.Diagonal
	default:
		return cfg.Horizontal
	}
}

func newObstacle(kind ObstacleKind, i int, progress float64, floor Floor, cfg config.TowerConfig, diff *config.DifficultyManager, b Bounds, rng RNG) Obstacle {
	vc := variantConfig(cfg.Obstacles, kind)
	level := diff.Level(progress)

	span := b.Right - b.Left
	w := math.Min(math.Max(vc.Width.At(level), 1), span)
	h := math.Max(vc.Height.At(level), 1)
	speed := diff.Speed(vc.Speed.At(level), progress)
	amplitude := math.Max(vc.Amplitude.At(level), 0)

	jitter := cfg.Obstacles.YJitter
	baseY := floor.WorldY - cfg.Tower.FloorSpacing/2 + between(rng, -jitter, jitter)

	health := 1 + i/vc.HealthDivisor
	o := Obstacle{
		Kind:      kind,
		Width:     w,
		Height:    h,
		Health:    health,
		MaxHealth: health,
		Floor:     floor.Number,
	}

	switch kind {
	case KindHorizontal:
		o.X = between(rng, b.Left, b.MaxX(w))
		o.Y = baseY
		o.Horizontal = HorizontalMotion{Speed: speed, Dir: randomSign(rng)}

	case KindVertical:
		phase := rng.Float64() * 2 * math.Pi
		o.X = between(rng, b.Left, b.MaxX(w))
		o.Y = baseY + math.Sin(phase)*amplitude
		o.Vertical = VerticalMotion{
			InitialY:   baseY,
			Amplitude:  amplitude,
			Phase:      phase,
			PhaseSpeed: speed,
		}

	case KindCircular:
		// The whole orbit has to fit between the walls.
		radius := math.Min(amplitude, (b.MaxX(w)-b.Left)/2)
		cx := between(rng, b.Left+radius, b.MaxX(w)-radius)
		angle := rng.Float64() * 2 * math.Pi
		o.X = cx + math.Cos(angle)*radius
		o.Y = baseY + math.Sin(angle)*radius
		o.Circular = CircularMotion{
			CenterX: cx,
			CenterY: baseY,
			Radius:  radius,
			Angle:   angle,
			Speed:   speed,
		}

	case KindDiagonal:
		o.X = between(rng, b.Left, b.MaxX(w))
		o.Y = baseY
		o.Diagonal = DiagonalMotion{
			SpeedX: speed * randomSign(rng),
			SpeedY: speed * 0.5 * randomSign(rng),
			MinY:   baseY - amplitude,
			MaxY:   baseY + amplitude,
		}
	}

	return o
}

func randomSign(rng RNG) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
