package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/lazer-showdown/internal/config"
	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/games/lazer"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

// newLogger builds the command logger. Interactive commands pass
// interactive=true so that, without --log-file, nothing is written under the
// alt screen. The returned close func is never nil.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		if dir := filepath.Dir(flagLogFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lazer",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil so the game runs without saves.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, saves disabled", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// gameFlags are shared by play and menu.
type gameFlags struct {
	config     string
	difficulty string
	boardsDir  string
	board      string
}

// apply hands the flags to the lazer package before a game is created.
func (f gameFlags) apply() error {
	preset, err := config.ParsePreset(f.difficulty)
	if err != nil {
		return err
	}
	lazer.SetConfigPath(f.config)
	lazer.SetDifficultyPreset(preset)
	lazer.SetBoardsDir(f.boardsDir)
	lazer.SetStartBoard(f.board)
	return nil
}
