package sim

import "github.com/vovakirdan/loop-heist/internal/core"

// Recording is the frozen input of one completed loop attempt, one frame
// per simulated tick in increasing tick order.
type Recording []core.ActionFrame

// Recorder accumulates the live player's frames during an attempt.
// Callers record each tick once, in order; the recorder does not check.
type Recorder struct {
	frames []core.ActionFrame
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a frame.
func (r *Recorder) Record(f core.ActionFrame) {
	r.frames = append(r.frames, f)
}

// Frames returns a copy of everything recorded so far.
func (r *Recorder) Frames() Recording {
	out := make(Recording, len(r.frames))
	copy(out, r.frames)
	return out
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Clear empties the recorder for a new attempt.
func (r *Recorder) Clear() {
	r.frames = r.frames[:0]
}

// Playback replays a Recording for one clone during one attempt.
// Frames are consumed strictly in order: a tick is answered only by the
// next unconsumed frame, and only when its tick matches exactly.
type Playback struct {
	rec        Recording
	cursor     int
	current    core.ActionFrame
	hasCurrent bool
}

// NewPlayback creates a playback positioned at the first frame.
func NewPlayback(rec Recording) *Playback {
	return &Playback{rec: rec}
}

// FrameForTick returns the frame recorded for tick and advances, or false
// if the next frame does not belong to tick.
func (p *Playback) FrameForTick(tick int) (core.ActionFrame, bool) {
	if p.cursor >= len(p.rec) {
		return core.ActionFrame{}, false
	}
	next := p.rec[p.cursor]
	if next.Tick != tick {
		return core.ActionFrame{}, false
	}
	p.cursor++
	p.current = next
	p.hasCurrent = true
	return next, true
}

// CurrentFrame returns the frame most recently returned by FrameForTick.
func (p *Playback) CurrentFrame() (core.ActionFrame, bool) {
	return p.current, p.hasCurrent
}

// Exhausted reports whether every frame has been consumed.
func (p *Playback) Exhausted() bool {
	return p.cursor >= len(p.rec)
}

// Next implements FrameSource.
func (p *Playback) Next(tick int) (core.ActionFrame, bool) {
	return p.FrameForTick(tick)
}
