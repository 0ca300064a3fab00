package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// sessionScreen is what a session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel chains the menu, the scoreboard and a game inside a single
// program, so one SSH connection can play many rounds.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	opts       []Option
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	quitting   bool
}

// NewSessionModel opens a session on the menu. opts apply to every game
// started from it.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts ...Option) SessionModel {
	m := SessionModel{store: store, config: cfg, opts: opts}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) current() sessionScreen {
	switch {
	case m.gameModel != nil:
		return screenGame
	case m.scoreboard != nil:
		return screenScores
	}
	return screenMenu
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.store, m.config)
	menu.embedded = true
	return menu
}

// toMenu drops the current screen. A tick still in flight lands on the
// menu and is ignored there.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.gameModel, m.scoreboard = nil, nil
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.current() {
	case screenGame:
		next, cmd := m.gameModel.Update(msg)
		if gm, ok := next.(Model); ok {
			m.gameModel = &gm
		}
		switch {
		case m.gameModel.BackToMenu():
			return m.toMenu()
		case m.gameModel.IsQuitting():
			return m.quit()
		}
		return m, cmd

	case screenScores:
		next, cmd := m.scoreboard.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.scoreboard = &sb
		}
		switch {
		case m.scoreboard.IsQuitting():
			return m.quit()
		case m.scoreboard.IsGoingBack():
			return m.toMenu()
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		sb.embedded = true
		m.scoreboard = &sb
		m.menu = m.newMenu()
		return m, sb.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.menu = m.newMenu()
			return m, nil
		}
		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()

		gm := NewModel(game, m.store, m.config, m.opts...)
		gm.embedded = true
		m.gameModel = &gm
		return m, gm.Init()
	}
	return m, cmd
}

// View implements tea.Model.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current() {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
