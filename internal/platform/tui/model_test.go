package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

// grabLevel is won by grabbing the loot at spawn, which already sits in
// the extract zone.
func grabLevel(id string) *level.Level {
	return &level.Level{
		ID:      id,
		Name:    "Level " + id,
		Width:   800,
		Height:  600,
		Spawn:   core.V(100, 300),
		Loot:    []core.Vec{core.V(110, 300)},
		Extract: core.NewRect(80, 280, 40, 40),
	}
}

func testOptions(t *testing.T, ids ...string) Options {
	t.Helper()
	levels := make([]*level.Level, 0, len(ids))
	for _, id := range ids {
		levels = append(levels, grabLevel(id))
	}
	catalog, err := level.NewCatalog(levels)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return Options{
		Catalog: catalog,
		Config:  config.DefaultGameConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameRate: 60},
		Logger:  log.New(io.Discard),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

// playFrames feeds n host frames of the given length.
func playFrames(t *testing.T, m Model, start time.Time, n int, frame time.Duration) Model {
	t.Helper()
	for i := 0; i < n+1; i++ {
		m = update(t, m, TickMsg(start.Add(time.Duration(i)*frame)))
	}
	return m
}

func TestNewModelRequiresCatalog(t *testing.T) {
	if _, err := NewModel(Options{}); err == nil {
		t.Error("NewModel() without levels should fail")
	}
}

func TestNewModelStartLevel(t *testing.T) {
	opts := testOptions(t, "a", "b")
	opts.StartLevel = 1

	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	if got := m.Playthrough().Index(); got != 1 {
		t.Errorf("Index() = %d, expected 1", got)
	}

	opts.StartLevel = 5
	if _, err := NewModel(opts); err == nil {
		t.Error("NewModel() with an out-of-range start level should fail")
	}
}

func TestModelMovementKeys(t *testing.T) {
	m, err := NewModel(testOptions(t, "a"))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m = update(t, m, runeKey("d"))
	if f := m.keys.Sample(); !f.Right {
		t.Errorf("Sample() after 'd' = %+v, expected right held", f)
	}

	start := m.Playthrough().Orchestrator().Snapshot().Player.X
	m = update(t, m, runeKey("d"))
	m = playFrames(t, m, time.Now(), 2, 50*time.Millisecond)
	if x := m.Playthrough().Orchestrator().Snapshot().Player.X; x <= start {
		t.Errorf("player x = %d, expected it to move right of %d", x, start)
	}
}

func TestModelCutAndRestart(t *testing.T) {
	m, err := NewModel(testOptions(t, "a"))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if got := len(m.Playthrough().Orchestrator().Recordings()); got != 1 {
		t.Fatalf("Recordings() after cut = %d, expected 1", got)
	}

	m = update(t, m, runeKey("r"))
	if got := len(m.Playthrough().Orchestrator().Recordings()); got != 0 {
		t.Errorf("Recordings() after restart = %d, expected 0", got)
	}
}

func TestModelScoreboardNeedsStore(t *testing.T) {
	m, err := NewModel(testOptions(t, "a"))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.stage != stagePlaying {
		t.Errorf("stage = %v without a store, expected playing", m.stage)
	}
}

func TestModelScoreboardHoldsTime(t *testing.T) {
	opts := testOptions(t, "a")
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()
	opts.Store = store

	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.stage != stageBoard {
		t.Fatalf("stage = %v, expected board", m.stage)
	}

	m = playFrames(t, m, time.Now(), 4, 50*time.Millisecond)
	if tick := m.Playthrough().Orchestrator().Snapshot().Tick; tick != 0 {
		t.Errorf("tick = %d while the board is open, expected 0", tick)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stagePlaying {
		t.Errorf("stage = %v after esc, expected playing", m.stage)
	}
	if m.quitting {
		t.Error("closing the board should not quit")
	}
}

func TestModelQuit(t *testing.T) {
	m, err := NewModel(testOptions(t, "a"))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).quitting {
		t.Error("q should set quitting")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if view := next.View(); view != "" {
		t.Errorf("View() after quit = %q, expected empty", view)
	}
}

func TestModelSubmitsFinishedRun(t *testing.T) {
	opts := testOptions(t, "a")
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()
	submitter := storage.NewSubmitter(store, opts.Logger, 0)
	opts.Store = store
	opts.Submitter = submitter
	opts.Handle = "ghost"

	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m = update(t, m, runeKey("e"))
	m = playFrames(t, m, time.Now(), 1, 50*time.Millisecond)

	if !m.Playthrough().Complete() {
		t.Fatalf("run not complete, phase = %v", m.Playthrough().Orchestrator().Phase())
	}
	if m.stage != stageEntering {
		t.Fatalf("stage = %v, expected handle entry", m.stage)
	}
	if !m.keys.Focused() {
		t.Error("handle entry should take keyboard focus")
	}

	// Typing in the field must not reach the simulation
	m = update(t, m, runeKey("d"))
	if f := m.keys.Sample(); !f.Idle() {
		t.Errorf("Sample() while typing = %+v, expected idle", f)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stagePlaying || m.keys.Focused() {
		t.Errorf("stage = %v focused = %v after submit, expected playing and unfocused", m.stage, m.keys.Focused())
	}

	submitter.Close()

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	if !strings.HasPrefix(runs[0].Handle, "ghost") || !runs[0].FullRun {
		t.Errorf("run = %+v, expected full run by ghost", runs[0])
	}

	clears, err := store.LevelClears(m.Playthrough().ID())
	if err != nil {
		t.Fatalf("LevelClears() error = %v", err)
	}
	if len(clears) != 1 || clears[0].LevelID != "a" {
		t.Errorf("LevelClears() = %+v, expected one clear of level a", clears)
	}

	best, err := store.BestTimes(0)
	if err != nil {
		t.Fatalf("BestTimes() error = %v", err)
	}
	if len(best) != 1 || best[0].RunID != m.Playthrough().ID() {
		t.Errorf("BestTimes() = %+v, expected this run", best)
	}

	// A finished run restarts fresh
	m = update(t, m, runeKey("r"))
	if m.Playthrough().Complete() {
		t.Error("r after the run should start a new run")
	}
}
