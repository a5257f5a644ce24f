package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/games/lazer"
	"github.com/vovakirdan/lazer-showdown/internal/platform/tui"
	"github.com/vovakirdan/lazer-showdown/internal/registry"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

var (
	playFlags  gameFlags
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument the sandbox ("lazer") starts;
"lazer_puzzle" plays the built-in boards in order.

Controls:
  Arrows/hjkl  - Move cursor
  Tab/S-Tab    - Select palette piece
  Enter        - Place piece
  G            - Grab / drop a piece
  X            - Return piece to the palette
  R            - Rotate laser
  Space        - Fire
  U / Shift+U  - Undo / redo
  D            - Roll dice
  N            - Restart
  Ctrl+S       - Save game
  Ctrl+O       - Load the latest save
  ?            - Help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Unlimited mirrors, extra mirrors on puzzle boards, deep undo
  normal - Configuration as loaded
  hard   - At most three of each mirror, shallow undo

Examples:
  lazer play
  lazer play lazer_puzzle --difficulty hard
  lazer play lazer_puzzle --boards ./my-boards --board intro
  lazer play --config ./lazer.yaml --resume`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd, &playFlags)
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the latest save of the game")
}

func addGameFlags(cmd *cobra.Command, f *gameFlags) {
	cmd.Flags().StringVar(&f.config, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&f.boardsDir, "boards", "", "Directory of board YAML files for puzzle mode")
	cmd.Flags().StringVar(&f.board, "board", "", "Board ID to start puzzle mode at")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := lazer.IDSandbox
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'lazer list' to see available games.", gameID)
	}
	if err := playFlags.apply(); err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagResume {
		if store == nil {
			fail("--resume needs the saves database")
		}
		save, err := store.LatestSave(gameID)
		if errors.Is(err, storage.ErrNotFound) {
			fail("no saves for %s", gameID)
		}
		if err != nil {
			fail("%v", err)
		}
		logger.Info("resuming", "save", save.ID, "name", save.Name)
		opts = append(opts, tui.WithResume(save.State))
	}

	logger.Info("starting game", "game", gameID)
	if err := tui.Run(game, store, runtimeConfig(), opts...); err != nil {
		fail("running game: %v", err)
	}
}
