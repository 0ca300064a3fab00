package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("tanks-training", 300); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	// Already migrated; nothing is re-run.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tanks-training")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d after reopen, want 300", high)
	}
}

func TestStoreSchemaVersion(t *testing.T) {
	store := openTestStore(t)

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("user_version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, want %d", version, len(migrations))
	}
}

func TestStoreUpgradesScoresOnlyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	// Roll back to a ledger that predates run history.
	if _, err := store.db.Exec("DROP TABLE runs; PRAGMA user_version = 1"); err != nil {
		t.Fatalf("downgrade: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(RunRecord{GameID: "tanks-training", Outcome: "cleared"}); err != nil {
		t.Errorf("SaveRun() after upgrade failed: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("tanks-training", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different arena
	if _, err := store.SaveScore("tanks-crossfire", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tanks-training", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "tanks-training" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not parsed", i)
		}
	}

	other, err := store.TopScores("tanks-crossfire", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 crossfire score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100) //nolint:errcheck
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to 10.
	all, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("TopScores(0) returned %d, want 5", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("test")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty high score, got %d", high)
	}

	store.SaveScore("test", 100) //nolint:errcheck
	store.SaveScore("test", 300) //nolint:errcheck
	store.SaveScore("test", 200) //nolint:errcheck

	high, err = store.HighScore("test")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("test", 100)                                  //nolint:errcheck
	store.SaveScore("other", 200)                                 //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "test", Outcome: "cleared"})  //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "other", Outcome: "cleared"}) //nolint:errcheck

	if err := store.ClearScores("test"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("test", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("test", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	// Other game untouched
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("Expected other game's score to remain, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("other", 10); len(runs) != 1 {
		t.Errorf("Expected other game's run to remain, got %d", len(runs))
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		store.SaveScore("test", i*10) //nolint:errcheck
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks-training", 100)                                           //nolint:errcheck
	store.SaveScore("tanks-training", 300)                                           //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "tanks-training", Kills: 1, Outcome: "timeout"}) //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "tanks-training", Kills: 3, Outcome: "cleared"}) //nolint:errcheck

	stats, err := store.GetGameStats("tanks-training")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalKills != 4 {
		t.Errorf("TotalKills = %d, want 4", stats.TotalKills)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("tanks-gauntlet")
	if err != nil {
		t.Fatalf("GetGameStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks-training", 100)                                            //nolint:errcheck
	store.SaveScore("tanks-crossfire", 250)                                           //nolint:errcheck
	store.SaveScore("tanks-crossfire", 50)                                            //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "tanks-crossfire", Kills: 5, Outcome: "cleared"}) //nolint:errcheck

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d games, want 2", len(all))
	}
	cf := all["tanks-crossfire"]
	if cf == nil || cf.GamesCount != 2 || cf.HighScore != 250 || cf.TotalKills != 5 {
		t.Errorf("crossfire stats = %+v", cf)
	}
	if tr := all["tanks-training"]; tr == nil || tr.TotalKills != 0 {
		t.Errorf("training stats = %+v", tr)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tanks/scores.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tanks", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}
