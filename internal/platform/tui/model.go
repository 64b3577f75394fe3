package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tower-climb/internal/core"
	"github.com/vovakirdan/tower-climb/internal/registry"
	"github.com/vovakirdan/tower-climb/internal/storage"
)

// holdDuration is how long a held intent stays active after its last key
// event. Long enough to bridge the terminal's auto-repeat gap.
const holdDuration = 150 * time.Millisecond

// Model is the Bubble Tea model for running a climb.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame     // One-shot commands and pointer for the next tick
	holds      map[core.Action]int // Remaining ticks per held intent
	holdTicks  int
	gameState  core.GameState
	quitting   bool
	allowBack  bool // B returns to the menu while paused or after the run
	backToMenu bool
	runSaved   bool // Whether the run has been recorded for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	holdTicks := int(holdDuration * time.Duration(cfg.TickRate) / time.Second)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		holds:      make(map[core.Action]int),
		holdTicks:  core.Max(holdTicks, 1),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.allowBack && (m.gameState.Paused || m.gameState.GameOver) {
			m.recordAbandoned()
			m.backToMenu = true
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case IsHeld(action):
		m.hold(action)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// hold refreshes a held intent and cancels the opposing one.
func (m Model) hold(a core.Action) {
	if opp, ok := opposite[a]; ok {
		delete(m.holds, opp)
	}
	m.holds[a] = m.holdTicks
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:       core.ActionDown,
	core.ActionDown:     core.ActionUp,
	core.ActionLeft:     core.ActionRight,
	core.ActionRight:    core.ActionLeft,
	core.ActionAimLeft:  core.ActionAimRight,
	core.ActionAimRight: core.ActionAimLeft,
}

// handleMouse maps pointer motion and clicks into the pending frame.
// A left click also fires.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mapper, ok := m.game.(registry.PointerMapper)
	if !ok {
		return m, nil
	}

	x, y, inside := mapper.CellToCanvas(msg.X, msg.Y, m.screen.Width(), m.screen.Height())
	if !inside {
		return m, nil
	}
	m.inputFrame.SetPointer(x, y)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Set(core.ActionFire)
	}

	return m, nil
}

// handleResize processes window resize events.
// The canvas is fixed, so the run continues at the new scale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.frame()

	result := m.game.Step(frame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.runSaved = false
	} else if !m.runSaved {
		m.recordRun("")
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// frame merges the pending commands with the live held intents and ages
// the hold timers by one tick.
func (m Model) frame() core.InputFrame {
	frame := m.inputFrame.Clone()
	for a, left := range m.holds {
		frame.Set(a)
		if left <= 1 {
			delete(m.holds, a)
		} else {
			m.holds[a] = left - 1
		}
	}
	return frame
}

// recordAbandoned stores a run the player quit mid-climb.
func (m Model) recordAbandoned() {
	if m.gameState.Started && !m.gameState.GameOver {
		m.recordRun(storage.OutcomeAbandoned)
	}
}

// recordRun stores the current run. An empty outcome keeps the game's own.
func (m Model) recordRun(outcome string) {
	if m.store == nil {
		return
	}
	rec := RunRecord(m.game)
	if outcome != "" {
		rec.Outcome = outcome
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(rec)
}

// RunRecord builds a storage record from the game's current run.
func RunRecord(game registry.Game) storage.Run {
	st := game.State()
	rec := storage.Run{
		GameID:      game.ID(),
		Outcome:     storage.OutcomeLost,
		Floor:       st.Floor,
		TotalFloors: st.Floors,
		Score:       st.Score,
	}
	if st.Won {
		rec.Outcome = storage.OutcomeWon
	}

	if r, ok := game.(registry.RunReporter); ok {
		sum := r.Summary()
		rec.Cause = sum.Cause
		rec.Destroyed = sum.Destroyed
		rec.Ticks = sum.Ticks
		rec.Seed = sum.Seed
	}
	return rec
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".towerclimb", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// ProgramOptions returns the Bubble Tea options for a climb: the alternate
// screen and full mouse motion so the pointer tracks without a button held.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(model, ProgramOptions()...)

	_, err := p.Run()
	return err
}
