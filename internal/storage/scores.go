package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one high score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

const scoreColumns = `id, game_id, score, created_at`

// SaveScore records a score and returns its row id.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO scores (game_id, score) VALUES (?, ?)`, gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best limit scores of a game, highest first. Equal
// scores keep the order they were set in. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.scores(`SELECT `+scoreColumns+` FROM scores
		WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`, gameID, limit)
}

// AllScores returns every score of a game, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.scores(`SELECT `+scoreColumns+` FROM scores
		WHERE game_id = ? ORDER BY score DESC, id ASC`, gameID)
}

func (s *Store) scores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// HighScore returns the best score of a game, 0 when it has none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes the scores and runs of a game in one transaction.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	//nolint:errcheck // No-op after Commit
	defer tx.Rollback()

	for _, table := range []string{"scores", "runs"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE game_id = ?`, gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
