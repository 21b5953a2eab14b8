package sim

import (
	"time"

	"github.com/charmbracelet/log"
)

// Event is an outbound notification from the simulation to presentation,
// audio or scoring collaborators.
type Event interface {
	heistEvent()
}

// EndReason describes why a loop attempt ended without a win.
type EndReason int

const (
	EndExpired   EndReason = iota // Loop timer ran out
	EndManualCut                  // Player ended the loop early
	EndDetected                   // Suspicion hit the threshold
	EndReload                     // Level was restarted from scratch
)

func (r EndReason) String() string {
	switch r {
	case EndExpired:
		return "expired"
	case EndManualCut:
		return "cut"
	case EndDetected:
		return "detected"
	case EndReload:
		return "reload"
	default:
		return "unknown"
	}
}

// LoopResetEvent is sent when a new loop attempt begins.
type LoopResetEvent struct {
	Reason EndReason
	Loop   int // 1-based number of the attempt that is starting
	Clones int
}

func (LoopResetEvent) heistEvent() {}

// LoopFailedEvent is sent on the tick suspicion reaches the threshold.
type LoopFailedEvent struct {
	Loop int
	Tick int
}

func (LoopFailedEvent) heistEvent() {}

// DoorOpenedEvent is sent on the tick a door opens.
type DoorOpenedEvent struct {
	Door int
}

func (DoorOpenedEvent) heistEvent() {}

// DetectionEvent is sent when sensors start or stop seeing anyone.
type DetectionEvent struct {
	Seen      bool
	Intensity float64 // suspicion in [0, 1]
}

func (DetectionEvent) heistEvent() {}

// LoopWonEvent is sent when the player extracts with every loot item.
type LoopWonEvent struct {
	Loop int
	Tick int
}

func (LoopWonEvent) heistEvent() {}

// LevelSummary describes a won level and the run so far.
type LevelSummary struct {
	RunID     string
	LevelID   string
	LevelName string
	Index     int
	Loops     int
	Failures  int
	Elapsed   time.Duration
	Totals    Totals
	Final     bool // last level of the playthrough
}

// LevelWonEvent is sent by the playthrough when a level is cleared.
type LevelWonEvent struct {
	Summary LevelSummary
}

func (LevelWonEvent) heistEvent() {}

// Sink receives events. Emit must return promptly and must not call back
// into the simulation.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) { f(e) }

// NopSink discards events.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}

// Fanout delivers each event to several sinks. A sink that panics is
// logged and skipped; the simulation never sees the failure.
type Fanout struct {
	sinks  []Sink
	logger *log.Logger
}

// NewFanout creates a fanout. A nil logger uses the default logger.
func NewFanout(logger *log.Logger, sinks ...Sink) *Fanout {
	if logger == nil {
		logger = log.Default()
	}
	return &Fanout{sinks: sinks, logger: logger}
}

// Add registers another sink.
func (f *Fanout) Add(s Sink) {
	f.sinks = append(f.sinks, s)
}

// Emit implements Sink.
func (f *Fanout) Emit(e Event) {
	for _, s := range f.sinks {
		f.deliver(s, e)
	}
}

func (f *Fanout) deliver(s Sink, e Event) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("event sink panicked", "event", e, "panic", r)
		}
	}()
	s.Emit(e)
}
