package sim

import (
	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
)

// scriptInput replays a fixed list of frames, then reports idle.
type scriptInput struct {
	frames []core.ActionFrame
	n      int
}

func (s *scriptInput) Sample() core.ActionFrame {
	var f core.ActionFrame
	if s.n < len(s.frames) {
		f = s.frames[s.n]
	}
	s.n++
	return f
}

// hold returns n frames with the given actions pressed.
func hold(n int, actions ...core.Action) []core.ActionFrame {
	var f core.ActionFrame
	for _, a := range actions {
		f.Set(a)
	}
	out := make([]core.ActionFrame, n)
	for i := range out {
		out[i] = f
	}
	return out
}

func script(parts ...[]core.ActionFrame) *scriptInput {
	var frames []core.ActionFrame
	for _, p := range parts {
		frames = append(frames, p...)
	}
	return &scriptInput{frames: frames}
}

// recordingSink keeps every event it receives.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *recordingSink) resets() []LoopResetEvent {
	var out []LoopResetEvent
	for _, e := range r.events {
		if ev, ok := e.(LoopResetEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func testConfig() config.GameConfig {
	return config.DefaultGameConfig()
}

// openLevel is an empty 800x600 room with the extract far from spawn.
func openLevel() *level.Level {
	return &level.Level{
		ID:      "open",
		Name:    "Open",
		Width:   800,
		Height:  600,
		Spawn:   core.V(100, 300),
		Extract: core.NewRect(700, 50, 60, 60),
	}
}

func mustOrchestrator(lvl *level.Level, cfg config.GameConfig, in InputSource, sink Sink) *Orchestrator {
	o, err := NewOrchestrator(lvl, cfg, nil, in, sink)
	if err != nil {
		panic(err)
	}
	return o
}
