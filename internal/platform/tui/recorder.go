package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazer-showdown/internal/games/lazer"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

// OutcomeMixed marks a volley whose beams ended differently.
const OutcomeMixed = "mixed"

// shotEntry converts a fired volley into a storage row.
func shotEntry(s lazer.Shot) storage.ShotEntry {
	e := storage.ShotEntry{
		SessionID: s.SessionID,
		GameID:    s.GameID,
		BoardID:   s.BoardID,
		Beams:     len(s.Results),
		Points:    s.Points,
	}
	for i, r := range s.Results {
		e.Steps += r.Steps
		if i == 0 {
			e.Outcome = r.Outcome.String()
			e.Path = laser.FormatPath(r.Path)
			continue
		}
		if r.Outcome.String() != e.Outcome {
			e.Outcome = OutcomeMixed
		}
	}
	return e
}

// storeRecorder persists every shot. The game logs failures and keeps going.
func storeRecorder(store *storage.Store, logger *log.Logger) lazer.ShotRecorder {
	return lazer.ShotRecorderFunc(func(s lazer.Shot) error {
		e := shotEntry(s)
		id, err := store.RecordShot(e)
		if err != nil {
			return err
		}
		logger.Debug("shot recorded", "id", id, "outcome", e.Outcome, "points", e.Points)
		return nil
	})
}
