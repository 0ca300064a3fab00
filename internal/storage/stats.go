package storage

import (
	"fmt"
	"time"
)

// GameStats aggregates every score and run of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	TotalKills int64
	LastPlayed time.Time
}

// statsQuery groups scores per game and joins the kill totals of the run
// history. Games with runs but no scores are not listed.
const statsQuery = `
	SELECT s.game_id, COUNT(*), MAX(s.score), AVG(s.score), SUM(s.score), MAX(s.created_at),
	       COALESCE(k.kills, 0)
	FROM scores s
	LEFT JOIN (SELECT game_id, SUM(kills) AS kills FROM runs GROUP BY game_id) k
	       ON k.game_id = s.game_id`

// GetGameStats returns the totals of one game. A game that was never played
// yields zero counts, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	all, err := s.gameStats(statsQuery+` WHERE s.game_id = ? GROUP BY s.game_id`, gameID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[gameID]; ok {
		return st, nil
	}

	// No scores; runs may still carry kills.
	st := &GameStats{GameID: gameID}
	if err := s.db.QueryRow(`SELECT COALESCE(SUM(kills), 0) FROM runs WHERE game_id = ?`, gameID).Scan(&st.TotalKills); err != nil {
		return nil, fmt.Errorf("storage: cannot get kill total: %w", err)
	}
	return st, nil
}

// GetAllGamesStats returns the totals of every game with at least one score.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	return s.gameStats(statsQuery + ` GROUP BY s.game_id`)
}

func (s *Store) gameStats(query string, args ...any) (map[string]*GameStats, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var (
			gs   GameStats
			last any
		)
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &last, &gs.TotalKills); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(last)
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
