package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
)

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// MenuModel is the Bubble Tea model for the level picker.
// The first entry starts the full campaign; the others start a practice
// run at one level, which never reaches the best-time board.
type MenuModel struct {
	levels         []level.Info
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	chosen         bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(catalog *level.Catalog, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		levels:    catalog.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels) {
			m.cursor++
		}

	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  L O O P   H E I S T  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Every loop you leave behind helps the next one", m.width))
	b.WriteString("\n\n")

	for i := 0; i < len(m.levels)+1; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + "Play the campaign"
		if i > 0 {
			info := m.levels[i-1]
			line = fmt.Sprintf("%spractice %s  %s", cursor, info.ID, info.Name)
		}
		b.WriteString(centerText(fmt.Sprintf("%-36s", line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// StartLevel returns the catalog index the chosen entry starts at.
func (m MenuModel) StartLevel() int {
	return max(0, m.cursor-1)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	StartLevel      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(catalog *level.Catalog, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(catalog, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.config}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.chosen:
		result.StartLevel = m.StartLevel()
	default:
		result.Quit = true
	}
	return result, nil
}
