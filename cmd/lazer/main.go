// lazer is Lazer Showdown, a laser and mirror puzzle game for the terminal.
//
// Usage:
//
//	lazer play [game]        - Play the sandbox (default) or lazer_puzzle
//	lazer menu               - Start screen to pick a game or a save
//	lazer list               - List games and built-in boards
//	lazer trace <board>      - Trace a board headless and print the beam
//	lazer saves [game]       - List or delete saved games
//	lazer shots [game]       - Show shot history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible dice rolls
//	--db <path>          - Set database path (default: ~/.lazer/lazer.db)
//	--log-file <path>    - Write logs to a file (interactive play logs nowhere otherwise)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/lazer-showdown/internal/games/lazer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lazer",
	Short: "Lazer Showdown - bounce lasers off mirrors in your terminal",
	Long: `Lazer Showdown is a terminal puzzle game. Place lasers, mirrors and
targets on a grid, then fire: the beam reflects off every mirror it meets
and scores when it reaches a target.

Available commands:
  play     - Play the sandbox or the puzzle boards
  menu     - Interactive start screen
  list     - Show games and built-in boards
  trace    - Trace a board file without the UI
  saves    - List or delete saved games
  shots    - Show recorded shots

Examples:
  lazer play
  lazer play lazer_puzzle --board 02-detour
  lazer trace 01-first-light
  lazer shots lazer`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lazer/lazer.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(shotsCmd)
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
