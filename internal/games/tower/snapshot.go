package tower

import (
	"math"

	"github.com/vovakirdan/tower-climb/internal/core"
)

// FloorView is a floor line in screen space.
type FloorView struct {
	Number  int
	X       float64
	ScreenY float64
	Width   float64
	Height  float64
}

// ObstacleView is an obstacle in screen space.
type ObstacleView struct {
	Kind      ObstacleKind
	Rect      core.RectF
	Health    int
	MaxHealth int
}

// WorldSnapshot is everything a renderer needs for one frame.
// It holds copies; changing it never affects the game.
type WorldSnapshot struct {
	Tick  int
	State RunState
	Cause Cause

	ScrollY      float64
	CurrentFloor int
	TotalFloors  int
	Score        int
	Destroyed    int

	Player   core.RectF
	AimAngle float64
	Bounds   Bounds
	Canvas   core.Vec

	Floors      []FloorView
	Obstacles   []ObstacleView
	Projectiles []Projectile
	Explosions  []Explosion

	RNGState uint64
}

// Snapshot returns a copy of the current world in screen space.
func (g *Game) Snapshot() WorldSnapshot {
	if g.world == nil {
		return WorldSnapshot{State: g.state}
	}
	w := g.world
	scrollY := w.Scroll.ScrollY

	floors := make([]FloorView, len(w.Floors))
	for i, f := range w.Floors {
		floors[i] = FloorView{
			Number:  f.Number,
			X:       f.XOffset,
			ScreenY: f.WorldY + scrollY,
			Width:   f.Width,
			Height:  f.Height,
		}
	}

	obstacles := make([]ObstacleView, len(w.Obstacles))
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		obstacles[i] = ObstacleView{
			Kind:      o.Kind,
			Rect:      o.ScreenRect(scrollY),
			Health:    o.Health,
			MaxHealth: o.MaxHealth,
		}
	}

	explosions := make([]Explosion, len(w.Explosions))
	for i, ex := range w.Explosions {
		explosions[i] = Explosion{
			Origin:    ex.Origin,
			Alpha:     ex.Alpha,
			Particles: append([]Particle(nil), ex.Particles...),
		}
	}

	return WorldSnapshot{
		Tick:         w.Tick,
		State:        g.state,
		Cause:        g.cause,
		ScrollY:      scrollY,
		CurrentFloor: w.Scroll.CurrentFloor,
		TotalFloors:  w.Scroll.TotalFloors,
		Score:        g.Score(),
		Destroyed:    w.Destroyed,
		Player:       w.Player.Rect(),
		AimAngle:     w.Player.AimAngle,
		Bounds:       w.Bounds,
		Canvas:       w.Canvas,
		Floors:       floors,
		Obstacles:    obstacles,
		Projectiles:  append([]Projectile(nil), w.Projectiles...),
		Explosions:   explosions,
		RNGState:     g.genRNG.State() ^ g.fxRNG.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *WorldSnapshot) Hash() uint64 {
	h := hashInt(snap.Tick)
	h = h*31 + hashInt(int(snap.State))
	h = h*31 + hashInt(int(snap.Cause))
	h = h*31 + math.Float64bits(snap.ScrollY)
	h = h*31 + hashInt(snap.CurrentFloor)
	h = h*31 + hashInt(snap.Score)
	h = h*31 + hashRect(snap.Player)
	h = h*31 + math.Float64bits(snap.AimAngle)

	for _, o := range snap.Obstacles {
		h = h*31 + hashInt(int(o.Kind))
		h = h*31 + hashInt(o.Health)
		h = h*31 + hashRect(o.Rect)
	}
	for _, p := range snap.Projectiles {
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
	}
	for _, ex := range snap.Explosions {
		h = h*31 + math.Float64bits(ex.Alpha)
		for _, p := range ex.Particles {
			h = h*31 + math.Float64bits(p.X)
			h = h*31 + math.Float64bits(p.Y)
			h = h*31 + uint64(p.Color)
		}
	}

	h = h*31 + snap.RNGState
	return h
}

func hashInt(v int) uint64 {
	return uint64(v) //#nosec G115 -- hash computation
}

func hashRect(r core.RectF) uint64 {
	h := math.Float64bits(r.X)
	h = h*31 + math.Float64bits(r.Y)
	h = h*31 + math.Float64bits(r.W)
	h = h*31 + math.Float64bits(r.H)
	return h
}
