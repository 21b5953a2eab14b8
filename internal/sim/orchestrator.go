package sim

import (
	"errors"
	"time"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/physics"
)

// ErrNoInputSource is returned when an orchestrator is built without live input.
var ErrNoInputSource = errors.New("sim: no live input source")

// Phase is the orchestrator's state.
type Phase int

const (
	PhaseLoading     Phase = iota // Level being (re)built
	PhaseRunning                  // Ticks are simulated
	PhaseLoopExpired              // Loop timer ran out, finalizing
	PhaseDetected                 // Frozen until the restart delay passes
	PhaseManualCut                // Player cut the loop, finalizing
	PhaseResetting                // Rebuilding actors and level state
	PhaseWon                      // Level cleared, nothing more runs
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseRunning:
		return "running"
	case PhaseLoopExpired:
		return "expired"
	case PhaseDetected:
		return "detected"
	case PhaseManualCut:
		return "cut"
	case PhaseResetting:
		return "resetting"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Orchestrator runs one level: the live player, one clone per completed
// loop, and the level's circuit, loot and sensors.
type Orchestrator struct {
	lvl  *level.Level
	cfg  config.GameConfig
	phys Physics
	sink Sink

	phase      Phase
	clock      *TickClock
	recorder   *Recorder
	recordings []Recording
	player     *Actor
	clones     []*Actor
	edges      *EdgeDetector
	possession *PossessionTracker
	circuit    *CircuitEvaluator
	detection  *DetectionEngine
	extract    core.Rect

	accumulator time.Duration
	restartIn   time.Duration
	failures    int
	wonTick     int
}

// NewOrchestrator prepares a level for play. A nil phys uses the level's
// own walls; a nil sink discards events. input is required.
func NewOrchestrator(lvl *level.Level, cfg config.GameConfig, phys Physics, input InputSource, sink Sink) (*Orchestrator, error) {
	if input == nil {
		return nil, ErrNoInputSource
	}
	if phys == nil {
		phys = physics.NewWorld(lvl.Width, lvl.Height, lvl.Walls)
	}
	if sink == nil {
		sink = NopSink{}
	}

	tps := cfg.Simulation.TicksPerSecond
	detection := NewDetectionEngine(
		NewSensors(lvl, cfg.Guard.WaypointRadius),
		NewSuspicion(cfg.Detection, tps),
		phys,
	)
	o := &Orchestrator{
		lvl:        lvl,
		cfg:        cfg,
		phys:       phys,
		sink:       sink,
		phase:      PhaseLoading,
		clock:      NewTickClock(cfg.LoopTicks(), tps),
		recorder:   NewRecorder(),
		edges:      NewEdgeDetector(),
		possession: NewPossessionTracker(lvl.Loot, core.ToFixed(cfg.Loot.Size), phys),
		circuit:    NewCircuitEvaluator(lvl, core.ToFixed(cfg.Plate.Size), tps, phys),
		detection:  detection,
		extract:    lvl.Extract,
	}
	o.player = newActor(PlayerID, lvl.Spawn, core.ToFixed(cfg.Actor.Size), &liveSource{input: input, recorder: o.recorder})
	o.phase = PhaseRunning
	return o, nil
}

// Step simulates one tick. It does nothing unless the orchestrator is running.
func (o *Orchestrator) Step() {
	if o.phase != PhaseRunning {
		return
	}

	if o.clock.Tick() {
		o.finalize(PhaseLoopExpired, EndExpired)
		return
	}
	tick := o.clock.CurrentTick()
	tps := o.cfg.Simulation.TicksPerSecond

	// Motion
	blockers := o.circuit.ClosedDoorBounds()
	for _, a := range o.actors() {
		a.sense(tick, o.cfg.Actor.Speed)
		a.move(o.phys, tps, blockers)
	}
	for _, s := range o.detection.Sensors() {
		s.Advance(tps)
	}
	bodies := o.bodies()

	// Detection
	wasSeen := o.detection.Seen()
	seen, crossed := o.detection.Evaluate(bodies)
	if seen != wasSeen {
		o.sink.Emit(DetectionEvent{Seen: seen, Intensity: o.detection.Suspicion().Intensity()})
	}
	if crossed {
		o.fail(tick)
		return
	}

	// Interaction
	for _, a := range o.actors() {
		f, _ := a.Frame()
		if o.edges.Rising(a.ID(), f.Interact) {
			o.possession.Interact(a.ID(), a.Bounds(), a.Pos())
		}
	}

	// Circuit
	for _, door := range o.circuit.Evaluate(bodies, o.possession.Items()) {
		o.sink.Emit(DoorOpenedEvent{Door: door})
	}

	// Win
	if o.phys.Overlaps(o.extract, o.player.Bounds()) && o.possession.AllCollected() {
		o.phase = PhaseWon
		o.wonTick = tick
		for _, a := range o.actors() {
			a.halt()
		}
		o.sink.Emit(LoopWonEvent{Loop: o.Loop(), Tick: tick})
	}
}

// Advance feeds real elapsed time into the fixed step. It runs as many
// whole ticks as have accumulated and carries the remainder. While
// detected it counts down the restart delay instead. It returns the number
// of ticks simulated.
func (o *Orchestrator) Advance(elapsed time.Duration) int {
	switch o.phase {
	case PhaseRunning:
		o.accumulator += elapsed
		step := o.cfg.TickDuration()
		n := 0
		for o.accumulator >= step && o.phase == PhaseRunning {
			o.accumulator -= step
			o.Step()
			n++
		}
		if o.phase != PhaseRunning {
			o.accumulator = 0
		}
		return n
	case PhaseDetected:
		o.restartIn -= elapsed
		if o.restartIn <= 0 {
			o.accumulator = 0
			o.restart(EndDetected)
		}
	}
	return 0
}

// CutLoop ends the current attempt early, keeping its recording.
// It has no effect unless the orchestrator is running.
func (o *Orchestrator) CutLoop() bool {
	if o.phase != PhaseRunning {
		return false
	}
	o.finalize(PhaseManualCut, EndManualCut)
	return true
}

// ReloadLevel forgets every recording and starts the level over.
func (o *Orchestrator) ReloadLevel() {
	o.phase = PhaseLoading
	o.recordings = nil
	o.failures = 0
	o.accumulator = 0
	o.restart(EndReload)
}

// fail freezes the attempt after a detection. The restart delay is armed
// and the in-progress recording will be thrown away.
func (o *Orchestrator) fail(tick int) {
	o.phase = PhaseDetected
	o.failures++
	o.restartIn = o.cfg.RestartDelay()
	for _, a := range o.actors() {
		a.halt()
	}
	o.sink.Emit(LoopFailedEvent{Loop: o.Loop(), Tick: tick})
}

// finalize keeps the live recording as the next clone and restarts.
func (o *Orchestrator) finalize(phase Phase, reason EndReason) {
	o.phase = phase
	o.recordings = append(o.recordings, o.recorder.Frames())
	o.restart(reason)
}

// restart puts the level back in its initial state with one clone per
// kept recording, in recording order.
func (o *Orchestrator) restart(reason EndReason) {
	o.phase = PhaseResetting
	wasSeen := o.detection.Seen()

	o.clock.Reset()
	o.recorder.Clear()
	o.clones = o.clones[:0]
	size := core.ToFixed(o.cfg.Actor.Size)
	for k, rec := range o.recordings {
		o.clones = append(o.clones, newActor(CloneID(k), o.lvl.Spawn, size, NewPlayback(rec)))
	}
	o.player.reset(o.lvl.Spawn)
	o.circuit.Reset()
	o.possession.Reset()
	o.detection.Reset()
	o.edges.Reset()
	o.restartIn = 0

	o.phase = PhaseRunning
	if wasSeen {
		o.sink.Emit(DetectionEvent{Seen: false})
	}
	o.sink.Emit(LoopResetEvent{Reason: reason, Loop: o.Loop(), Clones: len(o.clones)})
}

func (o *Orchestrator) actors() []*Actor {
	out := make([]*Actor, 0, 1+len(o.clones))
	out = append(out, o.player)
	return append(out, o.clones...)
}

func (o *Orchestrator) bodies() []core.Rect {
	out := make([]core.Rect, 0, 1+len(o.clones))
	out = append(out, o.player.Bounds())
	for _, c := range o.clones {
		out = append(out, c.Bounds())
	}
	return out
}

// Phase returns the current state.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Level returns the level being played.
func (o *Orchestrator) Level() *level.Level { return o.lvl }

// Loop returns the 1-based number of the current attempt.
func (o *Orchestrator) Loop() int { return len(o.recordings) + 1 }

// Failures returns the detections since the level was (re)loaded.
func (o *Orchestrator) Failures() int { return o.failures }

// Recordings returns the kept recordings, oldest first.
func (o *Orchestrator) Recordings() []Recording {
	return append([]Recording(nil), o.recordings...)
}

// Player returns the live actor.
func (o *Orchestrator) Player() *Actor { return o.player }

// Clones returns the replaying actors in recording order.
func (o *Orchestrator) Clones() []*Actor {
	return append([]*Actor(nil), o.clones...)
}

// Clock returns the loop clock.
func (o *Orchestrator) Clock() *TickClock { return o.clock }

// Circuit returns the plate and door state.
func (o *Orchestrator) Circuit() *CircuitEvaluator { return o.circuit }

// Possession returns the loot state.
func (o *Orchestrator) Possession() *PossessionTracker { return o.possession }

// Detection returns the detection engine.
func (o *Orchestrator) Detection() *DetectionEngine { return o.detection }

// RestartIn returns the time left before a detected loop restarts.
func (o *Orchestrator) RestartIn() time.Duration { return o.restartIn }
