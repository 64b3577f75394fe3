package tower

import (
	"math"

	"github.com/vovakirdan/tower-climb/internal/core"
)

// ObstacleKind is the motion pattern of an obstacle.
type ObstacleKind int

const (
	KindHorizontal ObstacleKind = iota
	KindVertical
	KindCircular
	KindDiagonal
)

var kindNames = [...]string{"horizontal", "vertical", "circular", "diagonal"}

func (k ObstacleKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// HorizontalMotion sweeps between the walls at constant speed.
type HorizontalMotion struct {
	Speed float64
	Dir   float64 // +1 or -1
}

// VerticalMotion bobs on a sine around InitialY.
type VerticalMotion struct {
	InitialY   float64
	Amplitude  float64
	Phase      float64
	PhaseSpeed float64
}

// CircularMotion orbits a fixed world center.
type CircularMotion struct {
	CenterX, CenterY float64
	Radius           float64
	Angle            float64
	Speed            float64 // Radians per tick
}

// DiagonalMotion bounces inside the walls and a vertical band.
type DiagonalMotion struct {
	SpeedX, SpeedY float64
	MinY, MaxY     float64
}

// Obstacle is a moving, destructible hazard. X and Y are the top-left
// corner in world space; only the motion matching Kind is meaningful.
type Obstacle struct {
	Kind          ObstacleKind
	X, Y          float64
	Width, Height float64
	Health        int
	MaxHealth     int
	Floor         int // 1-based floor the obstacle was generated on

	Horizontal HorizontalMotion
	Vertical   VerticalMotion
	Circular   CircularMotion
	Diagonal   DiagonalMotion
}

// Rect returns the world-space rectangle.
func (o *Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// ScreenRect returns the rectangle shifted into screen space.
func (o *Obstacle) ScreenRect(scrollY float64) core.RectF {
	return o.Rect().Translate(0, scrollY)
}

// Step advances the obstacle by one tick.
// Reflections clamp back to the wall so x never leaves the tower.
func (o *Obstacle) Step(b Bounds) {
	switch o.Kind {
	case KindHorizontal:
		m := &o.Horizontal
		o.X += m.Speed * m.Dir
		if o.X < b.Left {
			o.X = b.Left
			m.Dir = math.Abs(m.Dir)
		} else if o.X > b.MaxX(o.Width) {
			o.X = b.MaxX(o.Width)
			m.Dir = -math.Abs(m.Dir)
		}

	case KindVertical:
		m := &o.Vertical
		o.Y = m.InitialY + math.Sin(m.Phase)*m.Amplitude
		m.Phase += m.PhaseSpeed

	case KindCircular:
		m := &o.Circular
		m.Angle += m.Speed
		o.X = m.CenterX + math.Cos(m.Angle)*m.Radius
		o.Y = m.CenterY + math.Sin(m.Angle)*m.Radius

	case KindDiagonal:
		m := &o.Diagonal
		o.X += m.SpeedX
		o.Y += m.SpeedY
		if o.X < b.Left {
			o.X = b.Left
			m.SpeedX = math.Abs(m.SpeedX)
		} else if o.X > b.MaxX(o.Width) {
			o.X = b.MaxX(o.Width)
			m.SpeedX = -math.Abs(m.SpeedX)
		}
		if o.Y < m.MinY {
			o.Y = m.MinY
			m.SpeedY = math.Abs(m.SpeedY)
		} else if o.Y > m.MaxY {
			o.Y = m.MaxY
			m.SpeedY = -math.Abs(m.SpeedY)
		}
	}
}

// StepAll advances every obstacle in place.
func StepAll(obstacles []Obstacle, b Bounds) {
	for i := range obstacles {
		obstacles[i].Step(b)
	}
}
