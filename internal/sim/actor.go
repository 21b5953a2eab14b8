package sim

import (
	"fmt"

	"github.com/vovakirdan/loop-heist/internal/core"
)

// ActorID identifies an actor for possession and edge tracking.
type ActorID string

// PlayerID is the live actor's identity.
const PlayerID ActorID = "player"

// CloneID returns the identity of the clone replaying recording k.
func CloneID(k int) ActorID {
	return ActorID(fmt.Sprintf("clone-%d", k))
}

// InputSource supplies the live player's held input.
// It is sampled once per tick before motion. A source whose surface is
// busy elsewhere (a focused text field) must report an idle frame.
type InputSource interface {
	Sample() core.ActionFrame
}

// InputFunc adapts a function to InputSource.
type InputFunc func() core.ActionFrame

// Sample implements InputSource.
func (f InputFunc) Sample() core.ActionFrame { return f() }

// FrameSource drives an actor: live input for the player, a Playback for
// a clone.
type FrameSource interface {
	Next(tick int) (core.ActionFrame, bool)
}

// liveSource samples the input and records what it returns.
type liveSource struct {
	input    InputSource
	recorder *Recorder
}

func (s *liveSource) Next(tick int) (core.ActionFrame, bool) {
	f := s.input.Sample()
	f.Tick = tick
	s.recorder.Record(f)
	return f, true
}

// Actor is the player or a clone. Both move through the same motion model.
type Actor struct {
	id       ActorID
	pos      core.Vec
	vel      core.Vec
	size     core.Fixed
	frame    core.ActionFrame
	hasFrame bool
	source   FrameSource
}

func newActor(id ActorID, spawn core.Vec, size core.Fixed, source FrameSource) *Actor {
	return &Actor{id: id, pos: spawn, size: size, source: source}
}

// ID returns the actor's identity.
func (a *Actor) ID() ActorID { return a.id }

// Pos returns the centre of the actor's body.
func (a *Actor) Pos() core.Vec { return a.pos }

// Velocity returns the velocity applied this tick, in units per second.
func (a *Actor) Velocity() core.Vec { return a.vel }

// Bounds returns the actor's body.
func (a *Actor) Bounds() core.Rect {
	return core.RectAround(a.pos, a.size, a.size)
}

// Frame returns the frame that drove the actor this tick.
// A clone whose recording has nothing for the tick has no frame.
func (a *Actor) Frame() (core.ActionFrame, bool) {
	return a.frame, a.hasFrame
}

// IsClone reports whether the actor replays a recording.
func (a *Actor) IsClone() bool {
	return a.id != PlayerID
}

// sense pulls this tick's frame and derives the velocity from it.
func (a *Actor) sense(tick, speed int) {
	a.frame, a.hasFrame = a.source.Next(tick)
	if !a.hasFrame {
		a.frame = core.ActionFrame{}
		a.vel = core.Vec{}
		return
	}
	a.vel = Velocity(a.frame, speed)
}

// move applies one tick of velocity through the physics collaborator.
func (a *Actor) move(phys Physics, tps int, blockers []core.Rect) {
	delta := StepDelta(a.vel, tps)
	if delta.IsZero() {
		return
	}
	a.pos = phys.Move(a.Bounds(), delta, blockers).Center()
}

func (a *Actor) halt() {
	a.vel = core.Vec{}
}

func (a *Actor) reset(spawn core.Vec) {
	a.pos = spawn
	a.vel = core.Vec{}
	a.frame = core.ActionFrame{}
	a.hasFrame = false
}

// EdgeDetector turns held buttons into presses, per actor.
type EdgeDetector struct {
	last map[ActorID]bool
}

// NewEdgeDetector creates a detector with every actor released.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{last: make(map[ActorID]bool)}
}

// Rising records the current state and reports a false to true transition.
func (e *EdgeDetector) Rising(id ActorID, pressed bool) bool {
	was := e.last[id]
	e.last[id] = pressed
	return pressed && !was
}

// Reset forgets every actor.
func (e *EdgeDetector) Reset() {
	clear(e.last)
}
