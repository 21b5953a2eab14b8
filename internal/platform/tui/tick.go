// Package tui provides the Bubble Tea integration for the heist game.
// It handles the terminal UI loop, input mapping, and feeding real time
// into the fixed-step simulation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameTime caps the time fed into the simulation from a single frame,
// so a stalled terminal does not fast-forward the loop.
const maxFrameTime = 250 * time.Millisecond

// TickMsg is sent to trigger a host frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(1, frameRate))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameElapsed returns the time since the previous frame, clamped to
// [0, maxFrameTime]. A zero previous time yields zero.
func frameElapsed(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	return min(max(now.Sub(prev), 0), maxFrameTime)
}
