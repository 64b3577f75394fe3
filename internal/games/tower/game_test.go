package tower

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
	"github.com/vovakirdan/tower-climb/internal/registry"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

// emptyTower returns a config with no obstacles.
func emptyTower(floors int) config.TowerConfig {
	cfg := config.DefaultTowerConfig()
	cfg.Tower.TotalFloors = floors
	cfg.Obstacles.Chance = config.ChanceCurve{}
	return cfg
}

func newTestGame(cfg config.TowerConfig) *Game {
	g := NewWithConfig(cfg)
	g.Reset(testRuntime)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startedGame(cfg config.TowerConfig) *Game {
	g := newTestGame(cfg)
	g.Step(frame(core.ActionStart))
	return g
}

func TestGameWaitsForStart(t *testing.T) {
	g := newTestGame(emptyTower(5))

	for range 10 {
		res := g.Step(frame(core.ActionFire, core.ActionLeft))
		assert.False(t, res.State.Started)
	}

	assert.Equal(t, StateNotStarted, g.RunState())
	assert.Equal(t, 0, g.Tick())
	assert.Equal(t, 0.0, g.world.Scroll.ScrollY)
	assert.Empty(t, g.world.Projectiles)
}

func TestGameStart(t *testing.T) {
	g := newTestGame(emptyTower(5))

	res := g.Step(frame(core.ActionStart))

	assert.True(t, res.State.Started)
	assert.Equal(t, StateRunning, g.RunState())
	assert.Equal(t, 1, g.Tick())
	assert.Equal(t, 0.5, g.world.Scroll.ScrollY)
}

func TestGamePause(t *testing.T) {
	g := startedGame(emptyTower(5))

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)
	frozenTick := g.Tick()
	frozenScroll := g.world.Scroll.ScrollY

	for range 10 {
		g.Step(frame(core.ActionRight, core.ActionFire))
	}
	assert.Equal(t, frozenTick, g.Tick(), "no ticks while paused")
	assert.Equal(t, frozenScroll, g.world.Scroll.ScrollY)
	assert.Empty(t, g.world.Projectiles)

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
	assert.Equal(t, frozenTick+1, g.Tick())
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultTowerConfig()
	cfg.Tower.TotalFloors = 10

	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionStart)
		case i%40 < 15:
			inputs[i].Set(core.ActionLeft)
		case i%40 < 30:
			inputs[i].Set(core.ActionRight)
		}
		if i%7 == 0 {
			inputs[i].Set(core.ActionFire)
		}
		if i%50 == 0 {
			inputs[i].Set(core.ActionAimRight)
		}
	}

	run := func() WorldSnapshot {
		g := newTestGame(cfg)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	assert.Equal(t, snap1.Hash(), snap2.Hash())
	assert.Equal(t, snap1.Tick, snap2.Tick)
	assert.Equal(t, snap1.Score, snap2.Score)
	assert.Equal(t, snap1.Obstacles, snap2.Obstacles)
}

func TestGameWinAtSummit(t *testing.T) {
	g := startedGame(emptyTower(2))

	for range 1000 {
		if g.Step(core.NewInputFrame()).State.GameOver {
			break
		}
	}

	require.Equal(t, StateWon, g.RunState())
	assert.Equal(t, CauseSummit, g.Cause())
	assert.Equal(t, 240, g.Tick())
	assert.True(t, g.State().Won)
	assert.Equal(t, 2, g.State().Floor)

	g.Step(core.NewInputFrame())
	assert.Equal(t, 240, g.Tick(), "physics is frozen after the run ends")
}

func TestGameWallCollision(t *testing.T) {
	g := startedGame(emptyTower(5))

	for range 100 {
		if g.Step(frame(core.ActionLeft)).State.GameOver {
			break
		}
	}

	require.Equal(t, StateLost, g.RunState())
	assert.Equal(t, CauseWall, g.Cause())
	assert.Equal(t, 50.0, g.world.Player.X, "player is clamped after the crash")
	// Start x is 185; 27 moves of 5 reach the wall, the 28th crosses it.
	assert.Equal(t, 29, g.Tick())
}

func TestGameRestartSkipsStartScreen(t *testing.T) {
	g := startedGame(emptyTower(5))
	for range 100 {
		if g.Step(frame(core.ActionLeft)).State.GameOver {
			break
		}
	}
	require.Equal(t, StateLost, g.RunState())

	g.Step(frame(core.ActionStart))
	assert.Equal(t, StateLost, g.RunState(), "start does not restart")

	res := g.Step(frame(core.ActionRestart))

	assert.Equal(t, StateRunning, g.RunState())
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 1, g.Tick())
	assert.Equal(t, CauseNone, g.Cause())
	assert.Equal(t, 185.0, g.world.Player.X)
	assert.Equal(t, 0, g.Destroyed())
}

func TestGameRestartIgnoredWhileRunning(t *testing.T) {
	g := startedGame(emptyTower(5))
	g.Step(core.NewInputFrame())

	g.Step(frame(core.ActionRestart))

	assert.Equal(t, 3, g.Tick())
}

func TestGameRestartRegeneratesTower(t *testing.T) {
	cfg := denseTower(5)
	g := newTestGame(cfg)
	first := append([]Obstacle(nil), g.world.Obstacles...)

	g.state = StateLost
	g.Step(frame(core.ActionRestart))

	assert.NotEqual(t, first, g.world.Obstacles, "the generator stream continues across runs")
}

func TestGameResetReseeds(t *testing.T) {
	g := newTestGame(denseTower(5))
	first := g.Snapshot()

	g.Step(frame(core.ActionStart))
	g.Reset(testRuntime)
	second := g.Snapshot()

	assert.Equal(t, first.Hash(), second.Hash())
	assert.Equal(t, StateNotStarted, g.RunState())
}

func TestDestroyedObstacleCannotKillPlayer(t *testing.T) {
	g := startedGame(emptyTower(5))
	p := g.world.Player
	g.world.Obstacles = []Obstacle{staticObstacle(p.X, p.Y-g.world.Scroll.ScrollY, p.Width, p.Height, 1)}
	g.world.Projectiles = append(g.world.Projectiles, restingShot(p.X+p.Width/2, p.Y+p.Height/2))

	res := g.Step(core.NewInputFrame())

	assert.Equal(t, StateRunning, g.RunState())
	assert.Equal(t, 1, res.Destroyed)
	assert.Equal(t, 1, g.Destroyed())
	require.Len(t, g.world.Explosions, 1)
	assert.Equal(t, 1.0, g.world.Explosions[0].Alpha, "new explosions skip the decay of the tick they spawn in")

	g.Step(core.NewInputFrame())
	assert.InDelta(t, 0.95, g.world.Explosions[0].Alpha, 1e-12)
}

func TestObstacleKillsPlayer(t *testing.T) {
	g := startedGame(emptyTower(5))
	p := g.world.Player
	g.world.Obstacles = []Obstacle{staticObstacle(p.X, p.Y-g.world.Scroll.ScrollY, p.Width, p.Height, 1)}

	res := g.Step(core.NewInputFrame())

	assert.True(t, res.State.GameOver)
	assert.Equal(t, StateLost, g.RunState())
	assert.Equal(t, CauseObstacle, g.Cause())
}

func TestGameFireCooldown(t *testing.T) {
	g := startedGame(emptyTower(5))

	fired := 0
	for range 40 {
		if g.Step(frame(core.ActionFire)).Fired {
			fired++
		}
	}

	// Ticks 2, 20 and 38.
	assert.Equal(t, 3, fired)
}

func TestAutoFire(t *testing.T) {
	cfg := emptyTower(5)
	cfg.Weapon.AutoFire = true
	g := startedGame(cfg)

	require.Len(t, g.world.Projectiles, 1, "fires on the first running tick")

	fired := 0
	for range 36 {
		if g.Step(core.NewInputFrame()).Fired {
			fired++
		}
	}
	assert.Equal(t, 2, fired)
}

func TestPointerAim(t *testing.T) {
	cfg := emptyTower(5)
	cfg.Weapon.AimMode = config.AimPointer
	g := startedGame(cfg)

	c := g.world.Player.Center()
	in := frame(core.ActionFire)
	in.SetPointer(c.X+100, c.Y)
	g.Step(in)

	require.Len(t, g.world.Projectiles, 1)
	shot := g.world.Projectiles[0]
	assert.InDelta(t, cfg.Weapon.ProjectileSpeed, shot.VX, 1e-9)
	assert.InDelta(t, 0, shot.VY, 1e-9)
}

func TestPointerOnPlayerFallsBack(t *testing.T) {
	cfg := emptyTower(5)
	cfg.Weapon.AimMode = config.AimPointer
	g := startedGame(cfg)

	// Pointer where the player center will be after this tick's move.
	c := g.world.Player.Center()
	in := frame(core.ActionFire)
	in.SetPointer(c.X, c.Y)
	g.Step(in)

	require.Len(t, g.world.Projectiles, 1)
	shot := g.world.Projectiles[0]
	assert.InDelta(t, cfg.Weapon.ProjectileSpeed, shot.VX, 1e-9, "zero aim falls back to angle 0")
	assert.InDelta(t, 0, shot.VY, 1e-9)
}

func TestAimKeysRotate(t *testing.T) {
	cfg := emptyTower(5)
	g := startedGame(cfg)
	start := g.world.Player.AimAngle
	assert.InDelta(t, -math.Pi/2, start, 1e-12)

	g.Step(frame(core.ActionAimRight))
	assert.InDelta(t, start+cfg.Weapon.AimTurnRate, g.world.Player.AimAngle, 1e-12)

	g.Step(frame(core.ActionAimLeft))
	g.Step(frame(core.ActionAimLeft))
	assert.InDelta(t, start-cfg.Weapon.AimTurnRate, g.world.Player.AimAngle, 1e-12)
}

func TestPointerMoveSetsAimAngle(t *testing.T) {
	g := startedGame(emptyTower(5))
	c := g.world.Player.Center()

	in := core.NewInputFrame()
	in.SetPointer(c.X-50, c.Y)
	g.Step(in)
	assert.InDelta(t, math.Pi, math.Abs(g.world.Player.AimAngle), 1e-9)

	// An unchanged pointer does not override the aim keys.
	in = frame(core.ActionAimRight)
	in.SetPointer(c.X-50, c.Y)
	before := g.world.Player.AimAngle
	g.Step(in)
	assert.InDelta(t, before+0.08, g.world.Player.AimAngle, 1e-9)
}

func TestScore(t *testing.T) {
	g := startedGame(emptyTower(5))
	g.world.Destroyed = 3
	g.world.Scroll.CurrentFloor = 4

	assert.Equal(t, 3*10+3*100, g.Score())
	assert.Equal(t, g.Score(), g.State().Score)
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(denseTower(5))
	snap := g.Snapshot()
	require.NotEmpty(t, snap.Obstacles)

	snap.Obstacles[0].Health = 99
	snap.Floors[0].ScreenY = -1

	assert.NotEqual(t, 99, g.world.Obstacles[0].Health)
	assert.Equal(t, 0.0, g.world.Floors[0].WorldY)
}

func TestSnapshotScreenSpace(t *testing.T) {
	g := newTestGame(denseTower(5))
	g.world.Scroll.ScrollY = 130

	snap := g.Snapshot()

	assert.Equal(t, 130.0, snap.Floors[0].ScreenY)
	assert.Equal(t, 10.0, snap.Floors[1].ScreenY)
	assert.Equal(t, g.world.Obstacles[0].Y+130, snap.Obstacles[0].Rect.Y)
	assert.Equal(t, g.world.Obstacles[0].Kind, snap.Obstacles[0].Kind)
}

func TestGameRender(t *testing.T) {
	g := newTestGame(emptyTower(5))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "TOWER CLIMB")
	assert.Contains(t, out, "Floor 1/5")

	g.Step(frame(core.ActionStart))
	g.Render(screen)
	out = screen.String()
	assert.NotContains(t, out, "TOWER CLIMB")
	assert.True(t, strings.ContainsRune(out, PlayerChar))
	assert.True(t, strings.ContainsRune(out, WallChar))
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(emptyTower(5))
	screen := core.NewScreen(20, 8)

	g.Render(screen)

	assert.Contains(t, screen.String(), "Window too small")
}

func TestRegisteredVariants(t *testing.T) {
	for _, v := range []Variant{VariantClassic, VariantMouse, VariantAutoFire} {
		require.True(t, registry.Exists(v.ID), v.ID)
		g, err := registry.Create(v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.ID, g.ID())
		assert.Equal(t, v.Title, g.Title())
	}
}

func TestVariantsApplyConfig(t *testing.T) {
	cfg := config.DefaultTowerConfig()
	VariantMouse.apply(&cfg)
	assert.Equal(t, config.AimPointer, cfg.Weapon.AimMode)

	VariantAutoFire.apply(&cfg)
	assert.True(t, cfg.Weapon.AutoFire)

	VariantClassic.apply(&cfg)
	assert.Equal(t, config.AimAngle, cfg.Weapon.AimMode)
}

func TestRunStateStrings(t *testing.T) {
	assert.Equal(t, "ready", StateNotStarted.String())
	assert.Equal(t, "lost", StateLost.String())
	assert.True(t, StateWon.Terminal())
	assert.False(t, StatePaused.Terminal())
}

func TestCellToCanvas(t *testing.T) {
	g := newTestGame(emptyTower(5))

	x, y, ok := g.CellToCanvas(40, 1, 80, 24)
	require.True(t, ok)
	assert.InDelta(t, 202.5, x, 1e-9)
	assert.InDelta(t, 0.5*600.0/23.0, y, 1e-9)

	// Mapping back lands on the same cell
	v := newViewport(80, 24, g.world.Canvas)
	col, row := v.cell(x, y)
	assert.Equal(t, 40, col)
	assert.Equal(t, 1, row)

	tests := []struct {
		name     string
		col, row int
		w, h     int
	}{
		{"hud row", 10, 0, 80, 24},
		{"past right edge", 80, 5, 80, 24},
		{"below screen", 10, 24, 80, 24},
		{"negative column", -1, 5, 80, 24},
		{"screen too small", 5, 5, 20, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, ok := g.CellToCanvas(tc.col, tc.row, tc.w, tc.h)
			assert.False(t, ok)
		})
	}
}

func TestSummary(t *testing.T) {
	g := startedGame(emptyTower(5))
	for range 100 {
		if g.Step(frame(core.ActionLeft)).State.GameOver {
			break
		}
	}

	sum := g.Summary()
	assert.Equal(t, "lost", sum.Outcome)
	assert.Equal(t, "wall", sum.Cause)
	assert.Equal(t, 1, sum.Floor)
	assert.Equal(t, 5, sum.TotalFloors)
	assert.Equal(t, 29, sum.Ticks)
	assert.Equal(t, testRuntime.Seed, sum.Seed)
	assert.Equal(t, g.Score(), sum.Score)
}
