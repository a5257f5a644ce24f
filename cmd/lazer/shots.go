package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/registry"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

var (
	flagShotLimit  int
	flagClearShots bool
)

var shotsCmd = &cobra.Command{
	Use:   "shots [game]",
	Short: "Show recorded shots",
	Long: `Show the most recent shots and how beams ended. Every volley fired
while playing is recorded with its outcome, points and beam path.

Examples:
  lazer shots
  lazer shots lazer_puzzle --limit 5
  lazer shots lazer --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShots,
}

func init() {
	shotsCmd.Flags().IntVar(&flagShotLimit, "limit", 10, "Number of recent shots to show")
	shotsCmd.Flags().BoolVar(&flagClearShots, "clear", false, "Delete the shot history of the game")
}

func runShots(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fail("unknown game %q\nRun 'lazer list' to see available games.", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening saves database: %v", err)
	}
	defer store.Close()

	if flagClearShots {
		if gameID == "" {
			fail("--clear needs a game")
		}
		if err := store.ClearShots(gameID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared shot history of %s\n", gameID)
		return
	}

	if err := writeShots(os.Stdout, store, gameID, flagShotLimit); err != nil {
		fail("%v", err)
	}
}

// writeShots prints the recent shots of gameID (all games when empty) and
// their totals.
func writeShots(w io.Writer, store *storage.Store, gameID string, limit int) error {
	stats, err := store.GetShotStats(gameID)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Fprintln(w, "No shots recorded yet.")
		return nil
	}

	shots, err := store.RecentShots(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Recent shots\n\n")
	fmt.Fprintf(w, "  %-12s  %-16s  %-14s  %-6s  %s\n", "Game", "Board", "Outcome", "Points", "Fired")
	fmt.Fprintf(w, "  %-12s  %-16s  %-14s  %-6s  %s\n", "----", "-----", "-------", "------", "-----")
	for _, s := range shots {
		board := s.BoardID
		if board == "" {
			board = "-"
		}
		fmt.Fprintf(w, "  %-12s  %-16s  %-14s  %-6d  %s\n",
			s.GameID, board, s.Outcome, s.Points, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(w, "\nTotals: %d shots, %d points, last fired %s\n",
		stats.Total, stats.Points, stats.LastFired.Format("2006-01-02 15:04"))

	outcomes := make([]string, 0, len(stats.ByOutcome))
	for o := range stats.ByOutcome {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %-14s  %d\n", o, stats.ByOutcome[o])
	}
	return nil
}
