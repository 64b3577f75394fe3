package tower

import (
	"math"

	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
)

// alphaEpsilon absorbs float drift from repeated subtraction.
const alphaEpsilon = 1e-9

var explosionPalette = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorBrightRed,
}

// Particle is one fragment of an explosion.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  core.Color
}

// Explosion is a fading burst of particles.
type Explosion struct {
	Origin    core.RectF
	Alpha     float64
	Particles []Particle
}

// ExplosionEffects spawns and decays explosions.
type ExplosionEffects struct {
	cfg config.ExplosionConfig
}

// NewExplosionEffects creates the effect system.
func NewExplosionEffects(cfg config.ExplosionConfig) ExplosionEffects {
	return ExplosionEffects{cfg: cfg}
}

// Spawn creates an explosion at center with randomized particles.
func (e ExplosionEffects) Spawn(center core.Vec, origin core.RectF, rng RNG) Explosion {
	particles := make([]Particle, e.cfg.Particles)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := between(rng, e.cfg.MinSpeed, e.cfg.MaxSpeed)
		vel := core.FromAngle(angle).Scale(speed)
		particles[i] = Particle{
			X:     center.X,
			Y:     center.Y,
			VX:    vel.X,
			VY:    vel.Y,
			Size:  between(rng, e.cfg.MinSize, e.cfg.MaxSize),
			Color: explosionPalette[rng.Intn(len(explosionPalette))],
		}
	}
	return Explosion{Origin: origin, Alpha: 1, Particles: particles}
}

// Tick advances every explosion one step and drops the ones that faded out.
func (e ExplosionEffects) Tick(explosions []Explosion) []Explosion {
	alive := explosions[:0]
	for _, ex := range explosions {
		for i := range ex.Particles {
			p := &ex.Particles[i]
			p.X += p.VX
			p.Y += p.VY
			p.Size *= e.cfg.SizeDecay
		}
		ex.Alpha -= e.cfg.AlphaStep
		if ex.Alpha <= alphaEpsilon {
			continue
		}
		alive = append(alive, ex)
	}
	return alive
}

// TicksToFade returns how many ticks an explosion stays alive.
func (e ExplosionEffects) TicksToFade() int {
	if e.cfg.AlphaStep <= 0 {
		return 0
	}
	return int(math.Ceil(1/e.cfg.AlphaStep - alphaEpsilon))
}
