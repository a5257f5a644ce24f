package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/registry"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

var (
	flagDelete    string
	flagSaveLimit int
)

// deleteScanLimit bounds the saves searched for an ID prefix.
const deleteScanLimit = 1000

var savesCmd = &cobra.Command{
	Use:   "saves [game]",
	Short: "List or delete saved games",
	Long: `List saved games, newest first. Without a game every save is shown.
Save IDs can be passed to --delete; a unique prefix is enough.

Examples:
  lazer saves
  lazer saves lazer_puzzle
  lazer saves --delete 3f2a9c1b`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the save with this ID")
	savesCmd.Flags().IntVar(&flagSaveLimit, "limit", 20, "Maximum number of saves to list")
}

func runSaves(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fail("unknown game %q\nRun 'lazer list' to see available games.", gameID)
		}
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening saves database: %v", err)
	}
	defer store.Close()

	limit := flagSaveLimit
	if flagDelete != "" {
		limit = deleteScanLimit
	}
	saves, err := store.ListSaves(gameID, limit)
	if err != nil {
		fail("%v", err)
	}

	if flagDelete != "" {
		id, err := matchSaveID(saves, flagDelete)
		if err != nil {
			fail("%v", err)
		}
		if err := store.DeleteSave(id); err != nil {
			fail("%v", err)
		}
		logger.Info("save deleted", "id", id)
		fmt.Printf("Deleted %s\n", id)
		return
	}

	if len(saves) == 0 {
		fmt.Println("No saves yet. Press ctrl+s while playing to save.")
		return
	}

	fmt.Printf("  %-8s  %-12s  %-8s  %-16s  %s\n", "ID", "Game", "Score", "Saved", "Name")
	fmt.Printf("  %-8s  %-12s  %-8s  %-16s  %s\n", "--", "----", "-----", "-----", "----")
	for _, s := range saves {
		fmt.Printf("  %-8s  %-12s  %-8d  %-16s  %s\n",
			s.ID[:min(8, len(s.ID))], s.GameID, s.Score, s.CreatedAt.Format("2006-01-02 15:04"), s.Name)
	}
}

// matchSaveID resolves a full ID or a unique prefix.
func matchSaveID(saves []storage.SaveEntry, prefix string) (string, error) {
	var found []string
	for _, s := range saves {
		if s.ID == prefix {
			return s.ID, nil
		}
		if len(prefix) <= len(s.ID) && s.ID[:len(prefix)] == prefix {
			found = append(found, s.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no save matches %q", prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d saves, use more characters", prefix, len(found))
	}
}
