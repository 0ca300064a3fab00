package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var menuStyles = struct {
	banner, cursor, best, hint lipgloss.Style
}{
	banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	best:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

const menuControls = "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"

// MenuItem is one arena in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // 0 when unplayed or without a ledger
}

// menuChoice is how the user left the menu.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

// MenuModel is the arena picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	embedded  bool // inside a session; choosing does not end the program
	choice    menuChoice
}

// NewMenuModel lists every registered arena with its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				items[i].Best = best
			}
		}
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = choiceQuit
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.choice = choicePlay
			return m, m.exit()
		}
	case MenuActionScoreboard:
		m.choice = choiceScores
		return m, m.exit()
	}
	return m, nil
}

// exit ends a standalone menu program. Inside a session the session
// picks up the choice instead.
func (m MenuModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}

	lines := []string{
		"",
		centerText(menuStyles.banner.Render("  T A N K S  "), m.width),
		"",
		centerText("Select an arena", m.width),
		"",
	}
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuStyles.cursor.Render("> " + item.Title)
		}
		if item.Best > 0 {
			line += menuStyles.best.Render(fmt.Sprintf("  (best %d)", item.Best))
		}
		lines = append(lines, centerText(line, m.width))
	}

	if len(m.items) > 0 {
		if desc := m.items[m.cursor].Description; desc != "" {
			lines = append(lines, "", centerText(desc, m.width))
		}
	}
	lines = append(lines, "", centerText(menuStyles.hint.Render(menuControls), m.width), "")
	return strings.Join(lines, "\n")
}

// Selected returns the arena the user picked, or nil.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choicePlay || len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.choice == choiceQuit
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == choiceScores
}

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it in width columns. Styled
// text is measured without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what a standalone menu program ended with.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.choice {
	case choiceScores:
		res.WantsScoreboard = true
	case choicePlay:
		res.GameID = m.items[m.cursor].GameID
	default:
		res.Quit = true
	}
	return res, nil
}
