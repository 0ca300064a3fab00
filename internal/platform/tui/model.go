package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/logging"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// resizer is implemented by games that can adopt a new screen size
// without restarting.
type resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// runStatter is implemented by games that report more than a score.
type runStatter interface {
	Stats() core.RunStats
}

// Option configures a Model.
type Option func(*Model)

// WithPlayer sets the name recorded with saved runs.
func WithPlayer(name string) Option {
	return func(m *Model) { m.player = name }
}

// WithHold sets how long a continuous key stays held after its last press.
func WithHold(d time.Duration) Option {
	return func(m *Model) { m.keys = NewHeldKeys(d) }
}

// WithLogger sets the logger for save and screenshot failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithClock replaces time.Now for the held-key tracker.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      *HeldKeys
	keyMapper *KeyMapper
	logger    *log.Logger
	now       func() time.Time
	player    string
	gameState core.GameState

	embedded   bool // running inside a session; Back returns to the menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keys:      NewHeldKeys(DefaultHold),
		keyMapper: NewKeyMapper(),
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.game.Render(m.screen)
		if path, err := saveScreenshot(m.screen, m.game.ID(), m.now()); err != nil {
			m.logger.Warn("screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			// Esc mid-round pauses first.
			m.keys.Press(core.ActionPause, m.now())
			return m, nil
		}
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	}

	m.keys.Press(action, m.now())
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config)
		return m, nil
	}

	// Games without Resize are rebuilt for the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.keys.Frame(m.now())

	// Check for restart
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.keys.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished round. Failures are logged and the
// game continues.
func (m Model) saveResult() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Error("save score", "game", m.game.ID(), "error", err)
		}
	}

	rs, ok := m.game.(runStatter)
	if !ok {
		return
	}
	stats := rs.Stats()
	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:  m.game.ID(),
		Player:  m.player,
		Score:   m.gameState.Score,
		Kills:   stats.Kills,
		Shots:   stats.Shots,
		Ticks:   stats.Ticks,
		Seed:    m.config.Seed,
		Outcome: stats.Outcome,
	})
	if err != nil {
		m.logger.Error("save run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("run saved", "run", id, "game", m.game.ID(), "outcome", stats.Outcome)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game as its own program until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg, opts...), tea.WithAltScreen()).Run()
	return err
}
