package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb, cmd
}

func TestScoreboardListsScoresAndRuns(t *testing.T) {
	store := openStore(t)
	store.SaveScore(stubID, 150)                                                                                        //nolint:errcheck
	store.SaveScore(stubID, 900)                                                                                        //nolint:errcheck
	store.SaveRun(storage.RunRecord{GameID: stubID, Player: "bob", Score: 900, Kills: 3, Shots: 4, Outcome: "cleared"}) //nolint:errcheck

	m := NewScoreboardModel(store, 100, 30)
	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][1] != "900" || rows[0][0] != "#1" {
		t.Fatalf("score rows = %v", rows)
	}
	if !strings.Contains(m.View(), "Rounds: 2  Best: 900") {
		t.Error("stats line missing")
	}

	m, _ = boardUpdate(t, m, runeKey("v"))
	rows = m.table.Rows()
	if len(rows) != 1 || rows[0][3] != "75%" || rows[0][5] != "bob" {
		t.Fatalf("run rows = %v", rows)
	}

	m, _ = boardUpdate(t, m, runeKey("v"))
	if m.view != viewScores {
		t.Error("v should toggle back to high scores")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("empty ledger should say so")
	}
}

func TestScoreboardArenaCycleWraps(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	n := len(m.arenas)
	if n == 0 {
		t.Skip("no arenas registered")
	}
	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.current != n-1 {
		t.Errorf("prev from first = %d, want %d", m.current, n-1)
	}
	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != 0 {
		t.Errorf("next from last = %d, want 0", m.current)
	}
}

func TestScoreboardLayout(t *testing.T) {
	wide := NewScoreboardModel(nil, 100, 30)
	if !strings.Contains(wide.View(), "Arenas") {
		t.Error("wide terminal should show the arena sidebar")
	}

	narrow, _ := boardUpdate(t, wide, tea.WindowSizeMsg{Width: 60, Height: 20})
	if strings.Contains(narrow.View(), "Arenas") {
		t.Error("narrow terminal should use tabs")
	}
}

func TestScoreboardBackStandaloneQuits(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	m, cmd := boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() || cmd == nil {
		t.Error("esc in a standalone scoreboard should end the program and report back")
	}
	if m.View() != "" {
		t.Error("view should be blank after leaving")
	}
}
