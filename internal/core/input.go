package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionInteract          // E - pick up / drop loot
	ActionCutLoop           // Space - end the current loop early
	ActionRestart           // R - restart the level, forgetting every clone
	ActionNextLevel         // N - skip to the next level
	ActionScoreboard        // Tab - show best times
	ActionConfirm           // Enter
	ActionBack              // Esc, B
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionInteract:
		return "Interact"
	case ActionCutLoop:
		return "CutLoop"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Held reports whether the action is part of the per-tick input state that
// gets recorded and replayed. Everything else is a one-shot command.
func (a Action) Held() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionInteract:
		return true
	}
	return false
}

// ActionFrame is the full input state of one actor sampled at one tick.
// Recordings are dense sequences of these, one per simulated tick.
type ActionFrame struct {
	Tick     int
	Up       bool
	Down     bool
	Left     bool
	Right    bool
	Interact bool
}

// Set marks a held action as pressed. One-shot actions are ignored.
func (f *ActionFrame) Set(a Action) {
	switch a {
	case ActionUp:
		f.Up = true
	case ActionDown:
		f.Down = true
	case ActionLeft:
		f.Left = true
	case ActionRight:
		f.Right = true
	case ActionInteract:
		f.Interact = true
	}
}

// Has returns true if the given held action is pressed in this frame.
func (f ActionFrame) Has(a Action) bool {
	switch a {
	case ActionUp:
		return f.Up
	case ActionDown:
		return f.Down
	case ActionLeft:
		return f.Left
	case ActionRight:
		return f.Right
	case ActionInteract:
		return f.Interact
	}
	return false
}

// Idle reports whether nothing is pressed.
func (f ActionFrame) Idle() bool {
	return !f.Up && !f.Down && !f.Left && !f.Right && !f.Interact
}
