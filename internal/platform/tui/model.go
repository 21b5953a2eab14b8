package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/sim"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

const controlsHelp = "wasd move  e grab/drop  space cut loop  r restart  n skip  tab records  q quit"

// Options configures a game session.
type Options struct {
	Catalog    *level.Catalog
	Config     config.GameConfig
	Runtime    core.RuntimeConfig
	StartLevel int
	Handle     string             // Prefilled handle for the results board
	Store      *storage.Store     // Optional, enables the records screen
	Submitter  *storage.Submitter // Optional, receives level clears and the finished run
	Logger     *log.Logger
}

type stage int

const (
	stagePlaying stage = iota
	stageEntering
	stageBoard
)

// Model is the Bubble Tea model for one heist session.
type Model struct {
	opts      Options
	pt        *sim.Playthrough
	keys      *KeyState
	mapper    *KeyMapper
	screen    *core.Screen
	renderer  *Renderer
	feed      *eventFeed
	handle    textinput.Model
	board     ScoreboardModel
	stage     stage
	lastFrame time.Time
	submitted bool
	quitting  bool
}

// NewModel creates a session and starts a fresh run.
func NewModel(opts Options) (Model, error) {
	if opts.Catalog == nil {
		return Model{}, errors.New("tui: no levels to play")
	}
	if opts.Runtime.FrameRate <= 0 {
		opts.Runtime.FrameRate = core.DefaultConfig().FrameRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	input := textinput.New()
	input.Placeholder = storage.DefaultHandle
	input.CharLimit = storage.MaxHandleLength
	input.Width = 24
	input.SetValue(opts.Handle)

	m := Model{
		opts:     opts,
		keys:     NewKeyState(DefaultHoldWindow),
		mapper:   NewKeyMapper(),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		renderer: NewRenderer(opts.Config.Plate.Size),
		feed:     &eventFeed{},
		handle:   input,
	}
	if err := m.newRun(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newRun replaces the playthrough with a fresh one.
func (m *Model) newRun() error {
	sink := sim.NewFanout(m.opts.Logger, m.feed)
	if m.opts.Submitter != nil {
		sink.Add(m.opts.Submitter)
	}

	pt, err := sim.NewPlaythrough(m.opts.Catalog, m.opts.Config, m.keys, sink)
	if err != nil {
		return err
	}
	if m.opts.StartLevel > 0 {
		if err := pt.StartAt(m.opts.StartLevel); err != nil {
			return err
		}
	}

	m.pt = pt
	m.submitted = false
	m.keys.ReleaseAll()
	m.feed.reset()
	return nil
}

// Playthrough returns the run in progress.
func (m Model) Playthrough() *sim.Playthrough {
	return m.pt
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.handleTick(time.Time(msg))

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.stage == stageBoard {
			b, _ := m.board.Update(msg)
			m.board = b.(ScoreboardModel)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.stage {
		case stageEntering:
			return m.handleEntryKey(msg)
		case stageBoard:
			return m.handleBoardKey(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.stage == stageEntering {
		var cmd tea.Cmd
		m.handle, cmd = m.handle.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTick feeds the real time since the last frame into the run.
// Time is held while the records screen is open.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := frameElapsed(m.lastFrame, now)
	m.lastFrame = now
	if m.stage == stageBoard {
		return m, tickCmd(m.opts.Runtime.FrameRate)
	}

	m.pt.Advance(elapsed)
	m.feed.age(elapsed)

	if m.pt.Complete() && !m.submitted && m.stage == stagePlaying && m.opts.Submitter != nil {
		m.stage = stageEntering
		m.keys.SetFocused(true)
		return m, tea.Batch(m.handle.Focus(), tickCmd(m.opts.Runtime.FrameRate))
	}
	return m, tickCmd(m.opts.Runtime.FrameRate)
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionCutLoop:
		m.pt.CutLoop()
	case core.ActionRestart:
		if m.pt.Complete() {
			if err := m.newRun(); err != nil {
				m.opts.Logger.Error("cannot start a new run", "err", err)
			}
			return m, nil
		}
		m.pt.RestartLevel()
		m.keys.ReleaseAll()
	case core.ActionNextLevel:
		if m.pt.NextLevel() {
			m.keys.ReleaseAll()
			m.feed.reset()
		}
	case core.ActionScoreboard:
		if m.opts.Store != nil {
			m.board = NewScoreboardModel(m.opts.Store, m.screen.Width(), m.screen.Height())
			m.stage = stageBoard
			m.keys.ReleaseAll()
		}
	default:
		m.keys.Press(action)
	}
	return m, nil
}

// handleEntryKey routes keys to the handle field. Enter submits the run,
// Esc skips submission.
func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		run := storage.NewRunResult(m.handle.Value(), m.pt)
		m.opts.Submitter.SubmitRun(run)
		m.opts.Logger.Info("run submitted", "run", run.RunID, "handle", run.Handle, "full", run.FullRun)
		return m.leaveEntry(), nil
	case "esc":
		return m.leaveEntry(), nil
	}

	var cmd tea.Cmd
	m.handle, cmd = m.handle.Update(msg)
	return m, cmd
}

func (m Model) leaveEntry() Model {
	m.submitted = true
	m.handle.Blur()
	m.keys.SetFocused(false)
	m.stage = stagePlaying
	m.feed.post("Press r for a new run, q to quit", core.ColorSuccess, 0)
	return m
}

// handleBoardKey routes keys to the records screen. Closing it resumes play.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, cmd := m.board.Update(msg)
	m.board = b.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.stage = stagePlaying
		return m, nil
	}
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.stage {
	case stageBoard:
		return m.board.View()
	case stageEntering:
		return m.entryView()
	}

	hud := HUD{
		LevelIndex: m.pt.Index(),
		LevelCount: m.pt.LevelCount(),
		Status:     controlsHelp,
	}
	hud.Banner, hud.BannerTone = m.feed.current()
	m.renderer.Draw(m.screen, m.pt.Level(), m.pt.Orchestrator().Snapshot(), hud)
	return RenderScreen(m.screen)
}

// entryView is the end-of-run summary with the handle field.
func (m Model) entryView() string {
	totals := m.pt.Totals()
	title := "HEIST COMPLETE"
	if !m.pt.FullRun() {
		title = "HEIST COMPLETE (levels skipped, not ranked)"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	body := fmt.Sprintf("%s\n\ntime      %s\nloops     %d\ndetected  %d\nlevels    %d/%d\n\nhandle  %s\n\nenter submit  esc skip",
		titleStyle.Render(title),
		formatElapsed(totals.Elapsed),
		totals.Loops,
		totals.Failures,
		totals.LevelsCompleted,
		m.pt.LevelCount(),
		m.handle.View(),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box)
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
