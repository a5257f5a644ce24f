package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveEntry is one saved game. State holds the game's serialized snapshot
// and is only populated by LoadSave and LatestSave.
type SaveEntry struct {
	ID        string
	GameID    string
	Name      string
	Score     int
	State     []byte
	CreatedAt time.Time
}

// SaveGame stores a game snapshot and returns its generated ID.
func (s *Store) SaveGame(gameID, name string, score int, state []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO saves (id, game_id, name, score, state) VALUES (?, ?, ?, ?, ?)",
		id, gameID, name, score, state,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

// LoadSave retrieves a save, including its state, by ID.
func (s *Store) LoadSave(id string) (*SaveEntry, error) {
	return s.scanSave(s.db.QueryRow(
		`SELECT id, game_id, name, score, state, created_at
		 FROM saves WHERE id = ?`,
		id,
	))
}

// LatestSave retrieves the most recent save for a game.
func (s *Store) LatestSave(gameID string) (*SaveEntry, error) {
	return s.scanSave(s.db.QueryRow(
		`SELECT id, game_id, name, score, state, created_at
		 FROM saves WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		gameID,
	))
}

func (s *Store) scanSave(row *sql.Row) (*SaveEntry, error) {
	var e SaveEntry
	var createdAt any
	err := row.Scan(&e.ID, &e.GameID, &e.Name, &e.Score, &e.State, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// ListSaves returns saves newest first, without their state.
// An empty gameID lists saves of every game.
func (s *Store) ListSaves(gameID string, limit int) ([]SaveEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, created_at
		 FROM saves
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Name, &e.Score, &createdAt); err != nil {
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

// DeleteSave removes a save. Returns ErrNotFound if the ID is unknown.
func (s *Store) DeleteSave(id string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
