package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/level"
)

// Totals are the run-wide counters of one playthrough.
type Totals struct {
	Elapsed         time.Duration
	Loops           int
	Failures        int
	LevelsCompleted int
}

// Playthrough plays a catalog of levels in order and owns the run totals.
// It sits between each level's orchestrator and the outbound sink:
// orchestrator events pass through it, are counted, and are forwarded.
type Playthrough struct {
	id      string
	catalog *level.Catalog
	cfg     config.GameConfig
	input   InputSource
	sink    Sink

	index   int
	orch    *Orchestrator
	totals  Totals
	cleared []bool
	skipped bool
	done    bool

	levelElapsed  time.Duration
	levelLoops    int
	levelFailures int
}

// NewPlaythrough starts a fresh run at the first level of the catalog.
func NewPlaythrough(catalog *level.Catalog, cfg config.GameConfig, input InputSource, sink Sink) (*Playthrough, error) {
	if input == nil {
		return nil, ErrNoInputSource
	}
	if sink == nil {
		sink = NopSink{}
	}
	p := &Playthrough{
		id:      uuid.NewString(),
		catalog: catalog,
		cfg:     cfg,
		input:   input,
		sink:    sink,
		cleared: make([]bool, catalog.Len()),
	}
	if err := p.load(0); err != nil {
		return nil, err
	}
	return p, nil
}

// StartAt jumps to the level at index. Starting anywhere but the first
// level marks the run as partial.
func (p *Playthrough) StartAt(index int) error {
	if index != 0 {
		p.skipped = true
	}
	return p.load(index)
}

func (p *Playthrough) load(index int) error {
	if index < 0 || index >= p.catalog.Len() {
		return fmt.Errorf("sim: level index %d out of range", index)
	}
	orch, err := NewOrchestrator(p.catalog.At(index), p.cfg, nil, p.input, p)
	if err != nil {
		return err
	}
	p.index = index
	p.orch = orch
	p.levelElapsed = 0
	p.levelLoops = 0
	p.levelFailures = 0
	return nil
}

// Emit receives events from the current orchestrator.
func (p *Playthrough) Emit(e Event) {
	switch ev := e.(type) {
	case LoopResetEvent:
		if ev.Reason == EndExpired || ev.Reason == EndManualCut {
			p.levelLoops++
			p.totals.Loops++
		}
	case LoopFailedEvent:
		p.levelFailures++
		p.totals.Failures++
	case LoopWonEvent:
		p.levelLoops++
		p.totals.Loops++
		if !p.cleared[p.index] {
			p.cleared[p.index] = true
			p.totals.LevelsCompleted++
		}
		p.sink.Emit(e)
		final := p.index == p.catalog.Len()-1
		if final {
			p.done = true
		}
		lvl := p.catalog.At(p.index)
		p.sink.Emit(LevelWonEvent{Summary: LevelSummary{
			RunID:     p.id,
			LevelID:   lvl.ID,
			LevelName: lvl.Name,
			Index:     p.index,
			Loops:     p.levelLoops,
			Failures:  p.levelFailures,
			Elapsed:   p.levelElapsed,
			Totals:    p.totals,
			Final:     final,
		}})
		return
	}
	p.sink.Emit(e)
}

// Advance feeds real time to the current level. Time counts toward the
// run while the level is unsolved.
func (p *Playthrough) Advance(elapsed time.Duration) {
	if p.done || p.orch.Phase() == PhaseWon {
		return
	}
	p.totals.Elapsed += elapsed
	p.levelElapsed += elapsed
	p.orch.Advance(elapsed)
}

// NextLevel moves on to the following level. Moving on from an unsolved
// level marks the run as partial. It returns false at the end of the catalog.
func (p *Playthrough) NextLevel() bool {
	if p.index+1 >= p.catalog.Len() {
		return false
	}
	if p.orch.Phase() != PhaseWon {
		p.skipped = true
	}
	// Index is in range, so load cannot fail.
	_ = p.load(p.index + 1)
	return true
}

// RestartLevel forgets the current level's clones and starts it over.
func (p *Playthrough) RestartLevel() {
	if p.done {
		return
	}
	p.orch.ReloadLevel()
}

// CutLoop ends the current loop early.
func (p *Playthrough) CutLoop() bool {
	if p.done {
		return false
	}
	return p.orch.CutLoop()
}

// ID returns the run identifier.
func (p *Playthrough) ID() string { return p.id }

// Orchestrator returns the current level's orchestrator.
func (p *Playthrough) Orchestrator() *Orchestrator { return p.orch }

// Level returns the current level.
func (p *Playthrough) Level() *level.Level { return p.orch.Level() }

// Index returns the current level's position in the catalog.
func (p *Playthrough) Index() int { return p.index }

// LevelCount returns the number of levels in the run.
func (p *Playthrough) LevelCount() int { return p.catalog.Len() }

// Totals returns the run totals so far.
func (p *Playthrough) Totals() Totals { return p.totals }

// Complete reports whether the last level has been won.
func (p *Playthrough) Complete() bool { return p.done }

// FullRun reports whether every level was won in order without skipping.
func (p *Playthrough) FullRun() bool {
	return p.done && !p.skipped && p.totals.LevelsCompleted == p.catalog.Len()
}
