package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one finished round.
type RunRecord struct {
	ID        int64
	RunID     uuid.UUID
	GameID    string
	Player    string // SSH user, empty for local play
	Score     int
	Kills     int
	Shots     int
	Ticks     uint64
	Seed      int64
	Outcome   string
	CreatedAt time.Time
}

// Accuracy returns kills per shot, 0 when nothing was fired.
func (r RunRecord) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Kills) / float64(r.Shots)
}

// SaveRun records a finished round. A nil RunID is replaced with a fresh
// random one, which is returned.
func (s *Store) SaveRun(r RunRecord) (uuid.UUID, error) {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, player, score, kills, shots, ticks, seed, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID.String(),
		r.GameID,
		r.Player,
		r.Score,
		r.Kills,
		r.Shots,
		int64(r.Ticks), //#nosec G115 -- tick counts stay far below MaxInt64
		r.Seed,
		r.Outcome,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.RunID, nil
}

const runColumns = `id, run_id, game_id, player, score, kills, shots, ticks, seed, outcome, created_at`

// RecentRuns returns the newest runs first. An empty gameID lists all games.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its run id. Returns nil if there is none.
func (s *Store) RunByID(runID uuid.UUID) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var runID string
	var ticks int64
	var createdAt any

	err := row.Scan(&r.ID, &runID, &r.GameID, &r.Player, &r.Score, &r.Kills, &r.Shots, &ticks, &r.Seed, &r.Outcome, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}

	r.RunID, err = uuid.Parse(runID)
	if err != nil {
		return r, fmt.Errorf("storage: bad run id %q: %w", runID, err)
	}
	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
