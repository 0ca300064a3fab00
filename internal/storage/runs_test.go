package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID:  "tanks-training",
		Player:  "alice",
		Score:   390,
		Kills:   3,
		Shots:   5,
		Ticks:   1234,
		Seed:    42,
		Outcome: "cleared",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRun() returned nil id")
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil")
	}
	if got.RunID != id || got.Player != "alice" || got.Score != 390 || got.Kills != 3 ||
		got.Shots != 5 || got.Ticks != 1234 || got.Seed != 42 || got.Outcome != "cleared" {
		t.Errorf("round trip = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.New()

	got, err := store.SaveRun(RunRecord{RunID: want, GameID: "g", Outcome: "timeout"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("SaveRun() = %v, want %v", got, want)
	}

	// run_id is unique.
	if _, err := store.SaveRun(RunRecord{RunID: want, GameID: "g", Outcome: "timeout"}); err == nil {
		t.Error("duplicate run id accepted")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, want nil", got)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"tanks-training", "tanks-crossfire", "tanks-training", "tanks-training"} {
		if _, err := store.SaveRun(RunRecord{GameID: game, Score: i, Outcome: "cleared"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d runs, want 4", len(all))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if all[0].Score != 3 || all[3].Score != 0 {
		t.Errorf("order = %d..%d, want 3..0", all[0].Score, all[3].Score)
	}

	training, err := store.RecentRuns("tanks-training", 2)
	if err != nil {
		t.Fatalf("RecentRuns(training) failed: %v", err)
	}
	if len(training) != 2 {
		t.Fatalf("got %d training runs, want 2", len(training))
	}
	for _, r := range training {
		if r.GameID != "tanks-training" {
			t.Errorf("unexpected game %q", r.GameID)
		}
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		kills, shots int
		want         float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{3, 3, 1},
	}
	for _, tt := range tests {
		if got := (RunRecord{Kills: tt.kills, Shots: tt.shots}).Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %v, want %v", tt.kills, tt.shots, got, tt.want)
		}
	}
}
