package tower

import (
	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
)

// FallbackAimAngle is used when the aim vector has no length.
const FallbackAimAngle = 0.0

// Projectile is a player shot in screen space.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Active bool
}

// Rect returns the projectile's square hit box centered on its position.
func (p Projectile) Rect() core.RectF {
	return core.NewRectF(p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size)
}

// Destruction is emitted when a projectile finishes off an obstacle.
type Destruction struct {
	Center core.Vec   // Obstacle center in screen space
	Origin core.RectF // Obstacle rect in screen space
	Kind   ObstacleKind
}

// Weapon fires projectiles with a tick-counted cooldown.
type Weapon struct {
	cfg config.WeaponConfig
}

// NewWeapon creates a weapon from the weapon configuration.
func NewWeapon(cfg config.WeaponConfig) Weapon {
	return Weapon{cfg: cfg}
}

// Ready reports whether the cooldown has elapsed at the world's tick.
func (wp Weapon) Ready(w *World) bool {
	return !w.hasFired || w.Tick-w.lastFireTick >= wp.cfg.CooldownTicks
}

// Fire spawns a projectile at origin heading along aim. Shots during the
// cooldown are dropped and Fire returns false.
func (wp Weapon) Fire(w *World, origin, aim core.Vec) bool {
	if !wp.Ready(w) {
		return false
	}

	vel := Direction(aim).Scale(wp.cfg.ProjectileSpeed)
	w.Projectiles = append(w.Projectiles, Projectile{
		X:      origin.X,
		Y:      origin.Y,
		VX:     vel.X,
		VY:     vel.Y,
		Size:   wp.cfg.ProjectileSize,
		Active: true,
	})
	w.lastFireTick = w.Tick
	w.hasFired = true
	return true
}

// Direction normalizes an aim vector. A zero vector maps to FallbackAimAngle.
func Direction(aim core.Vec) core.Vec {
	l := aim.Len()
	if l == 0 {
		return core.FromAngle(FallbackAimAngle)
	}
	return aim.Scale(1 / l)
}

// AdvanceAll moves every projectile, drops the ones that left the canvas
// and resolves hits. Each projectile hits at most one obstacle, the first
// overlapping one in generation order. Returns one Destruction per
// obstacle whose health reached zero.
func AdvanceAll(w *World) []Destruction {
	moved := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Active {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		if !w.inCanvas(p.X, p.Y) {
			p.Active = false
			continue
		}
		moved = append(moved, p)
	}
	w.Projectiles = moved

	var destroyed []Destruction
	remaining := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if d, hit := resolveHit(w, &p); hit {
			if d != nil {
				destroyed = append(destroyed, *d)
			}
			continue
		}
		remaining = append(remaining, p)
	}
	w.Projectiles = remaining

	return destroyed
}

// resolveHit applies the first obstacle overlap of p. It returns whether
// the projectile was consumed and, if the obstacle died, its destruction.
func resolveHit(w *World, p *Projectile) (*Destruction, bool) {
	pr := p.Rect()
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		or := o.ScreenRect(w.Scroll.ScrollY)
		if !pr.Intersects(or) {
			continue
		}

		p.Active = false
		o.Health--
		if o.Health > 0 {
			return nil, true
		}

		d := &Destruction{Center: or.Center(), Origin: or, Kind: o.Kind}
		w.Obstacles = append(w.Obstacles[:i], w.Obstacles[i+1:]...)
		w.Destroyed++
		return d, true
	}
	return nil, false
}
