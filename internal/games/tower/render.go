package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tower-climb/internal/core"
)

// Visual characters for rendering
const (
	WallChar       = '│'
	FloorChar      = '─'
	PlayerChar     = '▲'
	PlayerBodyChar = '█'
	ProjectileChar = '•'
	AimChar        = '+'
	ParticleChar   = '*'
	FadedChar      = '·'
)

var kindGlyphs = [...]rune{'═', '║', '●', '◆'}

// Glyph returns the character an obstacle of this kind is drawn with.
func (k ObstacleKind) Glyph() rune {
	if k >= 0 && int(k) < len(kindGlyphs) {
		return kindGlyphs[k]
	}
	return '#'
}

// Minimum screen size for a readable tower.
const (
	minScreenW = 24
	minScreenH = 12
)

// hudRows is the number of rows reserved for the HUD at the top.
const hudRows = 1

// viewport maps canvas units onto screen cells.
type viewport struct {
	sx, sy float64
	top    int
	w, h   int
}

func newViewport(screenW, screenH int, canvas core.Vec) viewport {
	w, h := screenW, screenH-hudRows
	return viewport{
		sx:  float64(w) / canvas.X,
		sy:  float64(h) / canvas.Y,
		top: hudRows,
		w:   w,
		h:   h,
	}
}

func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// canvas maps a cell back to the canvas point at the cell's centre.
func (v viewport) canvas(col, row int) (float64, float64) {
	return (float64(col) + 0.5) / v.sx, (float64(row-v.top) + 0.5) / v.sy
}

// rect converts a canvas rect to cells, at least one cell in each direction.
func (v viewport) rect(r core.RectF) core.Rect {
	x0, y0 := v.cell(r.X, r.Y)
	x1, y1 := v.cell(r.Right(), r.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// CellToCanvas maps a terminal cell to canvas coordinates using the same
// viewport Render uses for a screen of the given size. It reports false for
// cells outside the play area.
func (g *Game) CellToCanvas(col, row, screenW, screenH int) (float64, float64, bool) {
	if g.world == nil || screenW < minScreenW || screenH < minScreenH {
		return 0, 0, false
	}
	v := newViewport(screenW, screenH, g.world.Canvas)
	if col < 0 || col >= v.w || row < v.top || row >= v.top+v.h {
		return 0, 0, false
	}
	x, y := v.canvas(col, row)
	return x, y, true
}

// Render draws the current world to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	snap := g.Snapshot()
	if snap.Canvas.X <= 0 || snap.Canvas.Y <= 0 {
		return
	}
	v := newViewport(dst.Width(), dst.Height(), snap.Canvas)

	renderTower(dst, v, &snap)
	renderObstacles(dst, v, &snap)
	renderExplosions(dst, v, &snap)
	renderProjectiles(dst, v, &snap)
	renderPlayer(dst, v, &snap)
	renderHUD(dst, &snap)
	renderOverlay(dst, &snap)
}

func renderTower(dst *core.Screen, v viewport, snap *WorldSnapshot) {
	left, _ := v.cell(snap.Bounds.Left, 0)
	right, _ := v.cell(snap.Bounds.Right, 0)
	dst.DrawVLineColored(left-1, v.top, v.h, WallChar, core.ColorGray)
	dst.DrawVLineColored(right, v.top, v.h, WallChar, core.ColorGray)

	for _, f := range snap.Floors {
		if f.ScreenY < 0 || f.ScreenY > snap.Canvas.Y {
			continue
		}
		x, y := v.cell(f.X, f.ScreenY)
		dst.DrawHLineColored(x, y, right-x, FloorChar, core.ColorBlue)
		label := fmt.Sprintf("%d", f.Number)
		dst.DrawTextColored(left-1-len(label), y, label, core.ColorGray)
	}
}

func renderObstacles(dst *core.Screen, v viewport, snap *WorldSnapshot) {
	for _, o := range snap.Obstacles {
		if o.Rect.Bottom() < 0 || o.Rect.Y > snap.Canvas.Y {
			continue
		}
		dst.DrawRectColored(v.rect(o.Rect), o.Kind.Glyph(), healthColor(o.Health))
	}
}

func healthColor(health int) core.Color {
	switch {
	case health >= 4:
		return core.ColorMagenta
	case health == 3:
		return core.ColorRed
	case health == 2:
		return core.ColorYellow
	default:
		return core.ColorCyan
	}
}

func renderExplosions(dst *core.Screen, v viewport, snap *WorldSnapshot) {
	for _, ex := range snap.Explosions {
		ch := ParticleChar
		if ex.Alpha < 0.4 {
			ch = FadedChar
		}
		for _, p := range ex.Particles {
			if p.Size < 0.5 {
				continue
			}
			x, y := v.cell(p.X, p.Y)
			if y < v.top {
				continue
			}
			dst.SetColored(x, y, ch, p.Color)
		}
	}
}

func renderProjectiles(dst *core.Screen, v viewport, snap *WorldSnapshot) {
	for _, p := range snap.Projectiles {
		x, y := v.cell(p.X, p.Y)
		if y < v.top {
			continue
		}
		dst.SetColored(x, y, ProjectileChar, core.ColorBrightYellow)
	}
}

func renderPlayer(dst *core.Screen, v viewport, snap *WorldSnapshot) {
	r := v.rect(snap.Player)
	dst.DrawRectColored(r, PlayerBodyChar, core.ColorBrightWhite)
	dst.SetColored(r.X+r.W/2, r.Y, PlayerChar, core.ColorBrightGreen)

	c := snap.Player.Center()
	reach := math.Max(snap.Player.W, snap.Player.H) * 1.5
	aim := c.Add(core.FromAngle(snap.AimAngle).Scale(reach))
	x, y := v.cell(aim.X, aim.Y)
	if y >= v.top {
		dst.SetColored(x, y, AimChar, core.ColorBrightRed)
	}
}

func renderHUD(dst *core.Screen, snap *WorldSnapshot) {
	hud := fmt.Sprintf(" Floor %d/%d  Score %d  Destroyed %d ",
		snap.CurrentFloor, snap.TotalFloors, snap.Score, snap.Destroyed)
	dst.DrawHLineColored(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	status := snap.State.String()
	dst.DrawTextColored(dst.Width()-len(status)-1, 0, status, core.ColorGray)
}

func renderOverlay(dst *core.Screen, snap *WorldSnapshot) {
	switch snap.State {
	case StateNotStarted:
		drawCenteredBox(dst, "TOWER CLIMB", "Enter to start  WASD move  Space fire")
	case StatePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateWon:
		drawCenteredBox(dst, "SUMMIT REACHED!", fmt.Sprintf("Score: %d  R to climb again", snap.Score))
	case StateLost:
		title := "CRASHED"
		if snap.Cause == CauseWall {
			title = "HIT THE WALL"
		}
		drawCenteredBox(dst, title, fmt.Sprintf("Floor %d  Score: %d  R to retry", snap.CurrentFloor, snap.Score))
	}
}

func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := core.Min(core.Max(tw, sw)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
