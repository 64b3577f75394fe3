package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement and aim actions are held intents: the platform sets them on every
// frame the key is considered down. The rest are one-shot commands.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move up
	ActionDown            // S, Down arrow - move down
	ActionLeft            // A, Left arrow - move left
	ActionRight           // D, Right arrow - move right
	ActionAimLeft         // Q - rotate aim counter-clockwise
	ActionAimRight        // E - rotate aim clockwise
	ActionFire            // Space, mouse click - fire a projectile
	ActionStart           // Enter, W, Up on the start screen
	ActionPause           // P, Escape - pause/unpause game
	ActionRestart         // R - restart after the run ends
	ActionConfirm         // Enter - confirm selection in menus
	ActionBack            // B, Escape - go back
	ActionQuit            // Ctrl+C - exit game/session
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionAimLeft:  "AimLeft",
	ActionAimRight: "AimRight",
	ActionFire:     "Fire",
	ActionStart:    "Start",
	ActionPause:    "Pause",
	ActionRestart:  "Restart",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionQuit:     "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the normalized input snapshot for one simulation tick.
// It holds the set of active actions and, optionally, the pointer position
// in canvas units.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	pointer    Vec
	hasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records the pointer position for this frame.
func (f *InputFrame) SetPointer(x, y float64) {
	f.pointer = Vec{X: x, Y: y}
	f.hasPointer = true
}

// Pointer returns the pointer position and whether one was reported.
func (f InputFrame) Pointer() (Vec, bool) {
	return f.pointer, f.hasPointer
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.pointer = Vec{}
	f.hasPointer = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.pointer = f.pointer
	clone.hasPointer = f.hasPointer
	return clone
}
