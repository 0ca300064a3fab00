package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

const (
	sidebarMinWidth = 80 // narrower terminals get arena tabs instead
	sidebarWidth    = 20
	maxScores       = 100
	maxRuns         = 50
	dateLayout      = "Jan 02 15:04"
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRuns
)

func (v boardView) title() string {
	if v == viewRuns {
		return "RECENT RUNS"
	}
	return "HIGH SCORES"
}

var board = struct {
	title, active, muted, empty, tab lipgloss.Style
	frame                            lipgloss.Style
}{
	title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
	active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	tab:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
	frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
}

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Toggle, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("j/k", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next arena")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev arena")),
		Toggle: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/runs")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists high scores or recent runs per arena.
type ScoreboardModel struct {
	arenas   []registry.GameInfo
	current  int
	store    *storage.Store
	view     boardView
	scores   []storage.ScoreEntry
	runs     []storage.RunRecord
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	embedded bool // inside a session; Back does not end the program
	quitting bool
	back     bool
}

// NewScoreboardModel opens the scoreboard on the first registered arena.
// store may be nil, in which case every list is empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		arenas: registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.rebuild()
	m.reload()
	return m
}

func (m ScoreboardModel) sidebar() bool { return m.width >= sidebarMinWidth }

// columns sizes the table for the active view. Spare width goes to the
// last column.
func (m ScoreboardModel) columns() []table.Column {
	avail := m.width - 4
	if m.sidebar() {
		avail -= sidebarWidth + 3
	}

	var cols []table.Column
	if m.view == viewRuns {
		cols = []table.Column{
			{Title: "Date", Width: 13}, {Title: "Score", Width: 7}, {Title: "Kills", Width: 6},
			{Title: "Acc", Width: 5}, {Title: "Result", Width: 10}, {Title: "Player", Width: 10},
		}
	} else {
		cols = []table.Column{{Title: "Rank", Width: 6}, {Title: "Score", Width: 12}, {Title: "Date", Width: 13}}
	}

	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if spare := avail - used; spare > 0 {
		cols[len(cols)-1].Width += min(spare, 10)
	}
	return cols
}

// rebuild recreates the table after a resize or a view switch.
func (m *ScoreboardModel) rebuild() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
	m.help.Width = m.width
	m.fill()
}

// reload reads the selected arena's ledger.
func (m *ScoreboardModel) reload() {
	m.scores, m.runs, m.stats = nil, nil, nil
	if m.store != nil && len(m.arenas) > 0 {
		id := m.arenas[m.current].ID
		if s, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = s
		}
		if r, err := m.store.RecentRuns(id, maxRuns); err == nil {
			m.runs = r
		}
		if st, err := m.store.GetGameStats(id); err == nil {
			m.stats = st
		}
	}
	m.fill()
}

func (m *ScoreboardModel) fill() {
	var rows []table.Row
	switch m.view {
	case viewRuns:
		for _, r := range m.runs {
			player := r.Player
			if player == "" {
				player = "-"
			}
			rows = append(rows, table.Row{
				r.CreatedAt.Format(dateLayout),
				strconv.Itoa(r.Score),
				strconv.Itoa(r.Kills),
				fmt.Sprintf("%.0f%%", r.Accuracy()*100),
				r.Outcome,
				player,
			})
		}
	default:
		for i, s := range m.scores {
			rows = append(rows, table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(s.Score), s.CreatedAt.Format(dateLayout)})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.arenas); n > 0 {
		m.current = ((m.current+delta)%n + n) % n
		m.reload()
	}
}

// leave ends a standalone program; a session just drops back to its menu.
func (m ScoreboardModel) leave() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, m.leave()
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := m.view.title()
	if len(m.arenas) > 0 {
		title += " - " + m.arenas[m.current].Title
	}

	body := board.frame.Render(m.listing())
	if m.sidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, board.frame.Width(sidebarWidth).Render(m.picker()), "  ", body)
	} else {
		body = centerText(m.picker(), m.width) + "\n\n" + centerText(body, m.width)
	}

	return strings.Join([]string{
		board.title.Render(centerText(title, m.width)),
		centerText(m.statsLine(), m.width),
		"",
		body,
		board.muted.Render(m.help.View(m.keys)),
	}, "\n")
}

// picker lists the arenas: a vertical sidebar on wide terminals, a tab row
// otherwise. A tab row that does not fit collapses to "< current >".
func (m ScoreboardModel) picker() string {
	if m.sidebar() {
		lines := []string{"Arenas", strings.Repeat("-", sidebarWidth-4)}
		for i, a := range m.arenas {
			name := truncate(a.Title, sidebarWidth-6)
			if i == m.current {
				lines = append(lines, board.active.Render("> "+name))
			} else {
				lines = append(lines, "  "+name)
			}
		}
		return strings.Join(lines, "\n")
	}

	if len(m.arenas) == 0 {
		return ""
	}
	tabs := make([]string, len(m.arenas))
	for i, a := range m.arenas {
		name := truncate(a.Title, 10)
		if i == m.current {
			tabs[i] = board.tab.Render(name)
		} else {
			tabs[i] = board.muted.Render(" " + name + " ")
		}
	}
	row := strings.Join(tabs, " ")
	if lipgloss.Width(row) > m.width-4 {
		row = "< " + m.arenas[m.current].Title + " >"
	}
	return row
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// statsLine summarizes every round played on the selected arena.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Rounds: %d  Best: %d  Avg: %.0f  Kills: %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalKills)
}

func (m ScoreboardModel) listing() string {
	if len(m.table.Rows()) == 0 {
		return board.empty.Render("Nothing recorded yet.\nClear an arena to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program. goBack is false
// when the user quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
