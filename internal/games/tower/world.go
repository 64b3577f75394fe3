package tower

import (
	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
)

// Floor is a static horizontal marker at a fixed world height.
// Floors only drive progress display; nothing collides with them.
type Floor struct {
	XOffset float64
	WorldY  float64 // Negative, grows in magnitude with height
	Width   float64
	Height  float64
	Number  int // 1-based
}

// Player is the climbing ship, in screen space.
type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
	AimAngle      float64 // Radians, y down: -pi/2 points straight up
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Center returns the player's center point, the projectile origin.
func (p Player) Center() core.Vec {
	return p.Rect().Center()
}

// Bounds are the inner walls of the tower.
type Bounds struct {
	Left, Right float64
}

// MaxX returns the largest left edge a body of the given width may have.
func (b Bounds) MaxX(width float64) float64 {
	return b.Right - width
}

// Contains reports whether a body at x with the given width fits between the walls.
func (b Bounds) Contains(x, width float64) bool {
	return x >= b.Left && x <= b.MaxX(width)
}

// Clamp pulls x back between the walls.
func (b Bounds) Clamp(x, width float64) float64 {
	return core.ClampF(x, b.Left, b.MaxX(width))
}

// World owns every mutable entity of a run. Subsystems receive it by
// pointer; none keeps its own copy of an entity list.
type World struct {
	Floors      []Floor
	Obstacles   []Obstacle // Generator insertion order, used as hit tie-break
	Projectiles []Projectile
	Explosions  []Explosion
	Player      Player
	Scroll      Scroll
	Bounds      Bounds
	Canvas      core.Vec // Canvas width and height

	Tick      int
	Destroyed int // Obstacles destroyed this run

	lastFireTick int
	hasFired     bool
}

// initialAimAngle points straight up the tower.
const initialAimAngle = -1.5707963267948966

// NewWorld generates a tower and places the player for a fresh run.
func NewWorld(cfg config.TowerConfig, rng RNG) *World {
	floors, obstacles := Generate(cfg, rng)
	bounds := Bounds{Left: cfg.Tower.InnerLeft, Right: cfg.Tower.InnerRight}

	return &World{
		Floors:      floors,
		Obstacles:   obstacles,
		Projectiles: make([]Projectile, 0, 16),
		Explosions:  make([]Explosion, 0, 8),
		Player: Player{
			X:        (bounds.Left + bounds.MaxX(cfg.Player.Width)) / 2,
			Y:        cfg.Player.StartY,
			Width:    cfg.Player.Width,
			Height:   cfg.Player.Height,
			Speed:    cfg.Player.Speed,
			AimAngle: initialAimAngle,
		},
		Scroll: Scroll{
			ScrollY:      0,
			CurrentFloor: 1,
			TotalFloors:  cfg.Tower.TotalFloors,
		},
		Bounds: bounds,
		Canvas: core.V(cfg.Canvas.Width, cfg.Canvas.Height),
	}
}

// inCanvas reports whether a screen-space point is on the canvas.
func (w *World) inCanvas(x, y float64) bool {
	return x >= 0 && x <= w.Canvas.X && y >= 0 && y <= w.Canvas.Y
}
