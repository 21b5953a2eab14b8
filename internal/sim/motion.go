package sim

import "github.com/vovakirdan/loop-heist/internal/core"

// Velocity converts a frame into a velocity in world units per second.
// Each pressed direction contributes speed along its axis; diagonals are
// not normalized.
func Velocity(f core.ActionFrame, speed int) core.Vec {
	s := core.ToFixed(speed)
	var v core.Vec
	if f.Left {
		v.X -= s
	}
	if f.Right {
		v.X += s
	}
	if f.Up {
		v.Y -= s
	}
	if f.Down {
		v.Y += s
	}
	return v
}

// StepDelta returns the displacement covered by velocity v in one tick.
func StepDelta(v core.Vec, tps int) core.Vec {
	return core.Vec{X: v.X.Div(tps), Y: v.Y.Div(tps)}
}
