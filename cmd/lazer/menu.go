package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/platform/tui"
	"github.com/vovakirdan/lazer-showdown/internal/registry"
)

var menuFlags gameFlags

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Lazer Showdown with the start screen",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
"Saved games" (or Tab) opens the saves browser, where Enter resumes a
save and X deletes it. After a game ends you return to the menu.

Examples:
  lazer menu
  lazer menu --difficulty easy
  lazer menu --db ./lazer.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd, &menuFlags)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menuFlags.apply(); err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		gameID := menuResult.GameID
		var opts []tui.Option

		if menuResult.WantsSaves {
			if store == nil {
				fmt.Fprintln(os.Stderr, "Warning: saves database unavailable")
				continue
			}
			savesResult, err := tui.RunSaves(store, logger, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if savesResult.Quit {
				break
			}
			if savesResult.Load == nil {
				continue
			}
			gameID = savesResult.Load.GameID
			opts = append(opts, tui.WithResume(savesResult.Load.State))
			logger.Info("resuming", "save", savesResult.Load.ID)
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		opts = append(opts, tui.WithLogger(logger))
		if err := tui.Run(game, store, cfg, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
