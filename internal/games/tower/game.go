// Package tower implements the tower climber: the player ascends a
// procedurally generated tower, dodging and shooting moving obstacles
// while the view scrolls upward on its own.
//
// The package is pure simulation. A host calls Step once per frame with
// the input gathered since the previous frame; everything inside a tick
// runs in a fixed order and nothing mutates the world between ticks.
package tower

import (
	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
	"github.com/vovakirdan/tower-climb/internal/registry"
)

// RunState is the state machine's current state.
type RunState int

const (
	StateNotStarted RunState = iota
	StateRunning
	StatePaused
	StateWon
	StateLost
)

var runStateNames = [...]string{"ready", "running", "paused", "won", "lost"}

func (s RunState) String() string {
	if s >= 0 && int(s) < len(runStateNames) {
		return runStateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the run has ended.
func (s RunState) Terminal() bool {
	return s == StateWon || s == StateLost
}

// fxSeedSalt separates the particle stream from the generator stream.
const fxSeedSalt = 0x5eed_f00d

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Variant is a registered flavor of the game.
type Variant struct {
	ID    string
	Title string
	apply func(*config.TowerConfig)
}

var (
	// VariantClassic aims with a tracked angle turned by keys or the pointer.
	VariantClassic = Variant{ID: "tower", Title: "Tower Climb", apply: func(c *config.TowerConfig) {
		c.Weapon.AimMode = config.AimAngle
	}}
	// VariantMouse fires straight at the pointer.
	VariantMouse = Variant{ID: "tower_mouse", Title: "Tower Climb (Mouse Aim)", apply: func(c *config.TowerConfig) {
		c.Weapon.AimMode = config.AimPointer
	}}
	// VariantAutoFire fires whenever the cooldown allows.
	VariantAutoFire = Variant{ID: "tower_autofire", Title: "Tower Climb (Auto Fire)", apply: func(c *config.TowerConfig) {
		c.Weapon.AutoFire = true
	}}
)

// Game is the tower climber state machine. It implements registry.Game.
type Game struct {
	variant  Variant
	cfg      config.TowerConfig
	fixedCfg bool
	runtime  core.RuntimeConfig

	world *World
	state RunState
	cause Cause

	genRNG *SimpleRNG
	fxRNG  *SimpleRNG

	clock      ScrollClock
	weapon     Weapon
	explosions ExplosionEffects

	pointer      core.Vec
	hasPointer   bool
	pointerMoved bool // The current frame carried a pointer position
}

// New creates the classic variant.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewVariant creates a game for the given variant.
func NewVariant(v Variant) *Game {
	return &Game{variant: v}
}

// NewWithConfig creates a game that always runs with cfg, ignoring config
// files, presets and variant tweaks.
func NewWithConfig(cfg config.TowerConfig) *Game {
	return &Game{variant: VariantClassic, cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.TowerConfig {
	return g.cfg
}

// Reset loads the configuration, reseeds both random streams and prepares
// a fresh run waiting for the start command.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, _, err := config.LoadTower(configPath)
		if err != nil {
			cfg = config.DefaultTowerConfig()
		}
		if difficultyPreset != "" {
			config.ApplyTowerPreset(&cfg, difficultyPreset)
		}
		if g.variant.apply != nil {
			g.variant.apply(&cfg)
		}
		g.cfg = cfg
	}

	g.clock = NewScrollClock(g.cfg)
	g.weapon = NewWeapon(g.cfg.Weapon)
	g.explosions = NewExplosionEffects(g.cfg.Explosions)

	g.genRNG = NewSimpleRNG(runtime.Seed)
	g.fxRNG = NewSimpleRNG(runtime.Seed ^ fxSeedSalt)
	g.hasPointer = false

	g.newRun()
	g.state = StateNotStarted
}

// newRun regenerates the tower from the continuing generator stream.
func (g *Game) newRun() {
	g.world = NewWorld(g.cfg, g.genRNG)
	g.cause = CauseNone
}

// Step consumes one input frame and, while running, advances the world by
// one tick. Commands in the frame apply before any physics.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(g.runtime)
	}

	g.pointerMoved = false
	if p, ok := in.Pointer(); ok {
		g.pointerMoved = !g.hasPointer || p != g.pointer
		g.pointer = p
		g.hasPointer = true
	}

	switch g.state {
	case StateNotStarted:
		if in.Has(core.ActionStart) || in.Has(core.ActionConfirm) {
			g.state = StateRunning
		}
	case StateRunning:
		if in.Has(core.ActionPause) {
			g.state = StatePaused
		}
	case StatePaused:
		if in.Has(core.ActionPause) {
			g.state = StateRunning
		}
	case StateWon, StateLost:
		if in.Has(core.ActionRestart) {
			g.newRun()
			g.state = StateRunning
		}
	}

	var res core.StepResult
	if g.state == StateRunning {
		g.tick(in, &res)
	}
	res.State = g.State()
	return res
}

// tick runs the per-tick pipeline. The order matters: obstacles move
// before anything is tested against them, and shots land before the
// player is checked, so a destroyed obstacle cannot kill the player.
func (g *Game) tick(in core.InputFrame, res *core.StepResult) {
	w := g.world
	w.Tick++

	preClampX := g.movePlayer(in)
	g.updateAim(in)
	if in.Has(core.ActionFire) || g.cfg.Weapon.AutoFire {
		res.Fired = g.weapon.Fire(w, w.Player.Center(), g.aimVector())
	}

	g.clock.Advance(&w.Scroll, 1, &w.Player)

	StepAll(w.Obstacles, w.Bounds)

	destroyed := AdvanceAll(w)
	res.Destroyed = len(destroyed)

	r := Resolve(w.Player, preClampX, w.Obstacles, w.Scroll, w.Bounds)
	switch r.Outcome {
	case OutcomeLoss:
		g.state = StateLost
		g.cause = r.Cause
	case OutcomeWin:
		g.state = StateWon
		g.cause = r.Cause
	}

	w.Explosions = g.explosions.Tick(w.Explosions)
	for _, d := range destroyed {
		w.Explosions = append(w.Explosions, g.explosions.Spawn(d.Center, d.Origin, g.fxRNG))
	}
}

// movePlayer applies held movement intents and clamps the player to the
// tower. It returns x as it was before clamping.
func (g *Game) movePlayer(in core.InputFrame) float64 {
	p := &g.world.Player

	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}

	p.X += dx * p.Speed
	p.Y += dy * p.Speed

	preClampX := p.X
	p.X = g.world.Bounds.Clamp(p.X, p.Width)
	p.Y = core.ClampF(p.Y, 0, g.world.Canvas.Y-p.Height)
	return preClampX
}

// updateAim tracks the aim angle from pointer moves and the aim keys.
func (g *Game) updateAim(in core.InputFrame) {
	p := &g.world.Player
	if g.pointerMoved {
		if d := g.pointer.Sub(p.Center()); d.Len() > 0 {
			p.AimAngle = d.Angle()
		}
	}
	if in.Has(core.ActionAimLeft) {
		p.AimAngle -= g.cfg.Weapon.AimTurnRate
	}
	if in.Has(core.ActionAimRight) {
		p.AimAngle += g.cfg.Weapon.AimTurnRate
	}
}

// aimVector returns the fire direction for the configured aim mode.
func (g *Game) aimVector() core.Vec {
	p := g.world.Player
	if g.cfg.Weapon.AimMode == config.AimPointer && g.hasPointer {
		return g.pointer.Sub(p.Center())
	}
	return core.FromAngle(p.AimAngle)
}

// RunState returns the state machine's current state.
func (g *Game) RunState() RunState {
	return g.state
}

// Cause returns what ended the run, or CauseNone while it is ongoing.
func (g *Game) Cause() Cause {
	return g.cause
}

// Tick returns the number of simulated ticks in the current run.
func (g *Game) Tick() int {
	if g.world == nil {
		return 0
	}
	return g.world.Tick
}

// Score returns the run score: destroyed obstacles plus floors climbed.
func (g *Game) Score() int {
	if g.world == nil {
		return 0
	}
	return g.world.Destroyed*g.cfg.Scoring.DestroyPoints +
		(g.world.Scroll.CurrentFloor-1)*g.cfg.Scoring.FloorPoints
}

// Destroyed returns the number of obstacles destroyed this run.
func (g *Game) Destroyed() int {
	if g.world == nil {
		return 0
	}
	return g.world.Destroyed
}

// Summary reports the current run for persistence.
func (g *Game) Summary() registry.RunSummary {
	sum := registry.RunSummary{
		Outcome:   g.state.String(),
		Cause:     g.cause.String(),
		Destroyed: g.Destroyed(),
		Score:     g.Score(),
		Ticks:     g.Tick(),
		Seed:      g.runtime.Seed,
	}
	if g.world != nil {
		sum.Floor = g.world.Scroll.CurrentFloor
		sum.TotalFloors = g.world.Scroll.TotalFloors
	}
	return sum
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.Score(),
		Started:  g.state != StateNotStarted,
		GameOver: g.state.Terminal(),
		Won:      g.state == StateWon,
		Paused:   g.state == StatePaused,
	}
	if g.world != nil {
		st.Floor = g.world.Scroll.CurrentFloor
		st.Floors = g.world.Scroll.TotalFloors
	}
	return st
}

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.PointerMapper = (*Game)(nil)
	_ registry.RunReporter   = (*Game)(nil)
)

// Register the variants with the registry
func init() {
	for _, v := range []Variant{VariantClassic, VariantMouse, VariantAutoFire} {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}
