package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loop-heist/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats, never releases.
const DefaultHoldWindow = 300 * time.Millisecond

// InteractHoldWindow is the shortest hold for Interact. It outlasts the
// delay terminals wait before auto-repeating a held key (about 500ms), so
// holding E reads as one unbroken press instead of two.
const InteractHoldWindow = 600 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "e":
		return core.ActionInteract, false
	case " ":
		return core.ActionCutLoop, false
	case "r":
		return core.ActionRestart, false
	case "n":
		return core.ActionNextLevel, false
	case "tab":
		return core.ActionScoreboard, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// KeyState turns a stream of key presses into held input. It is the live
// input source of the simulation: each press keeps its action held for the
// hold window, and while a text field has focus every sample is idle.
type KeyState struct {
	expires map[core.Action]time.Time
	window  time.Duration
	focused bool
	now     func() time.Time
}

// NewKeyState creates a key state with the given hold window.
// A non-positive window uses DefaultHoldWindow. Interact is held for at
// least InteractHoldWindow.
func NewKeyState(window time.Duration) *KeyState {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyState{
		expires: make(map[core.Action]time.Time),
		window:  window,
		now:     time.Now,
	}
}

// Press marks a held action as down. Pressing a direction releases the
// opposite one. One-shot actions are ignored.
func (k *KeyState) Press(a core.Action) {
	if !a.Held() || k.focused {
		return
	}
	switch a {
	case core.ActionUp:
		delete(k.expires, core.ActionDown)
	case core.ActionDown:
		delete(k.expires, core.ActionUp)
	case core.ActionLeft:
		delete(k.expires, core.ActionRight)
	case core.ActionRight:
		delete(k.expires, core.ActionLeft)
	}
	k.expires[a] = k.now().Add(k.holdFor(a))
}

func (k *KeyState) holdFor(a core.Action) time.Duration {
	if a == core.ActionInteract {
		return max(k.window, InteractHoldWindow)
	}
	return k.window
}

// ReleaseAll lets go of every key.
func (k *KeyState) ReleaseAll() {
	clear(k.expires)
}

// SetFocused records whether a text field owns the keyboard. Gaining
// focus releases every key.
func (k *KeyState) SetFocused(focused bool) {
	k.focused = focused
	if focused {
		k.ReleaseAll()
	}
}

// Focused reports whether a text field owns the keyboard.
func (k *KeyState) Focused() bool {
	return k.focused
}

// Sample implements sim.InputSource.
func (k *KeyState) Sample() core.ActionFrame {
	var f core.ActionFrame
	if k.focused {
		return f
	}
	now := k.now()
	for a, until := range k.expires {
		if now.Before(until) {
			f.Set(a)
		} else {
			delete(k.expires, a)
		}
	}
	return f
}
