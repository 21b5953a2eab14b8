package storage

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loop-heist/internal/sim"
)

// Submitter writes results to the store on a background goroutine so the
// game loop never waits on the database. Writes are best effort: a full
// queue drops the job and a failed write is only logged.
type Submitter struct {
	store  *Store
	logger *log.Logger
	jobs   chan job

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

type job struct {
	name string
	run  func(*Store) error
}

// NewSubmitter starts a submitter with room for queue pending writes.
func NewSubmitter(store *Store, logger *log.Logger, queue int) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	if queue <= 0 {
		queue = 64
	}
	s := &Submitter{
		store:  store,
		logger: logger,
		jobs:   make(chan job, queue),
		done:   make(chan struct{}),
	}
	go s.process()
	return s
}

// Emit implements sim.Sink. Each cleared level is saved with its run id.
func (s *Submitter) Emit(e sim.Event) {
	ev, ok := e.(sim.LevelWonEvent)
	if !ok {
		return
	}
	sum := ev.Summary
	lc := LevelClear{
		RunID:    sum.RunID,
		LevelID:  sum.LevelID,
		Loops:    sum.Loops,
		Failures: sum.Failures,
		Elapsed:  sum.Elapsed,
	}
	s.enqueue(job{name: "level clear", run: func(st *Store) error {
		_, err := st.SaveLevelClear(lc)
		return err
	}})
}

// SubmitRun queues a finished run for the history and, if it is a full
// run, for the best-time board.
func (s *Submitter) SubmitRun(run RunResult) {
	s.enqueue(job{name: "run", run: func(st *Store) error {
		if _, err := st.SaveRun(run); err != nil {
			return err
		}
		improved, err := st.SubmitBest(run)
		if errors.Is(err, ErrPartialRun) {
			return nil
		}
		if err != nil {
			return err
		}
		if improved {
			s.logger.Info("new best time", "handle", NormalizeHandle(run.Handle), "elapsed", run.Elapsed)
		}
		return nil
	}})
}

// Close stops accepting work, drains the queue and waits for the writer.
func (s *Submitter) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()
	<-s.done
}

func (s *Submitter) enqueue(j job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Warn("submitter closed, dropping write", "job", j.name)
		return
	}
	select {
	case s.jobs <- j:
	default:
		// Queue full, drop the write
		s.logger.Warn("submission queue full, dropping write", "job", j.name)
	}
}

func (s *Submitter) process() {
	defer close(s.done)
	for j := range s.jobs {
		if err := j.run(s.store); err != nil {
			s.logger.Error("submission failed", "job", j.name, "err", err)
		}
	}
}

var _ sim.Sink = (*Submitter)(nil)
