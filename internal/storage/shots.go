package storage

import (
	"fmt"
	"time"
)

// ShotEntry records one fired volley.
type ShotEntry struct {
	ID        int64
	SessionID string
	GameID    string
	BoardID   string
	Beams     int    // Number of emitters that fired
	Outcome   string // Outcome of the first beam, or "mixed"
	Points    int
	Steps     int    // Total steps over all beams
	Path      string // Rendered path of the first beam
	CreatedAt time.Time
}

// ShotStats aggregates the shot history of a game.
type ShotStats struct {
	GameID    string
	Total     int
	Points    int
	ByOutcome map[string]int
	LastFired time.Time
}

// RecordShot stores a fired volley and returns its ID.
func (s *Store) RecordShot(e ShotEntry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO shots (session_id, game_id, board_id, beams, outcome, points, steps, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.GameID, e.BoardID, e.Beams, e.Outcome, e.Points, e.Steps, e.Path,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record shot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentShots returns the latest shots, newest first.
// An empty gameID includes every game.
func (s *Store) RecentShots(gameID string, limit int) ([]ShotEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, game_id, board_id, beams, outcome, points, steps, path, created_at
		 FROM shots
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shots: %w", err)
	}
	defer rows.Close()

	var entries []ShotEntry
	for rows.Next() {
		var e ShotEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.GameID, &e.BoardID, &e.Beams,
			&e.Outcome, &e.Points, &e.Steps, &e.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// GetShotStats aggregates the shot history for a game.
func (s *Store) GetShotStats(gameID string) (*ShotStats, error) {
	stats := &ShotStats{GameID: gameID, ByOutcome: make(map[string]int)}

	rows, err := s.db.Query(
		`SELECT outcome, COUNT(*), COALESCE(SUM(points), 0), MAX(created_at)
		 FROM shots
		 WHERE ? = '' OR game_id = ?
		 GROUP BY outcome`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get shot stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var count, points int
		var last any
		if err := rows.Scan(&outcome, &count, &points, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByOutcome[outcome] = count
		stats.Total += count
		stats.Points += points
		if t := parseTime(last); t.After(stats.LastFired) {
			stats.LastFired = t
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearShots deletes the shot history of a game.
func (s *Store) ClearShots(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM shots WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear shots: %w", err)
	}
	return nil
}
