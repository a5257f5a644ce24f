package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/laser/boards"
)

var (
	flagExport    string
	flagStepLimit int
)

var traceCmd = &cobra.Command{
	Use:   "trace <board.yaml|board-id>",
	Short: "Trace a board without the UI",
	Long: `Fire every laser on a board and print the beam diagram, each
beam's path and how it ended. The argument is a YAML board file or the ID
of a built-in board (see 'lazer list').

Examples:
  lazer trace 01-first-light
  lazer trace ./boards/mine.yaml --step-limit 100
  lazer trace 03-crossfire --export crossfire.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&flagExport, "export", "", "Write the board back as YAML to this file")
	traceCmd.Flags().IntVar(&flagStepLimit, "step-limit", 0, "Override the beam step bound (0 = rows*cols)")
}

func runTrace(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	board, err := resolveBoard(args[0])
	if err != nil {
		fail("%v", err)
	}

	if err := writeTrace(os.Stdout, board, logger, flagStepLimit); err != nil {
		fail("%v", err)
	}

	if flagExport != "" {
		data, err := boards.Marshal(board)
		if err != nil {
			fail("%v", err)
		}
		if err := os.WriteFile(flagExport, data, 0o644); err != nil {
			fail("writing %s: %v", flagExport, err)
		}
		logger.Info("board exported", "path", flagExport)
	}
}

// resolveBoard treats arguments that look like files as paths and
// everything else as a built-in board ID.
func resolveBoard(arg string) (boards.Board, error) {
	if _, err := os.Stat(arg); err == nil {
		return boards.ReadFile(arg)
	}
	for _, ext := range boards.FormatExtensions() {
		if strings.HasSuffix(strings.ToLower(arg), ext) {
			return boards.ReadFile(arg)
		}
	}
	return boards.Embedded().LoadByID(arg)
}

// writeTrace fires every emitter on the board and prints the outcome.
func writeTrace(w io.Writer, board boards.Board, logger *log.Logger, stepLimit int) error {
	g, err := board.ToGrid()
	if err != nil {
		return err
	}

	var opts []laser.TraceOption
	if stepLimit > 0 {
		opts = append(opts, laser.WithStepLimit(stepLimit))
	}

	results, err := laser.Fire(g, opts...)
	if errors.Is(err, laser.ErrNoEmitter) {
		return fmt.Errorf("board %s has no emitter", board.ID)
	}
	if err != nil {
		logger.Warn("beam trace aborted", "board", board.ID, "err", err)
	}

	fmt.Fprintf(w, "%s (%s) %dx%d\n\n", board.Name, board.ID, board.Rows, board.Cols)
	fmt.Fprintln(w, laser.RenderASCII(g, results...))
	for i, r := range results {
		fmt.Fprintf(w, "path %d: %s\n", i+1, laser.FormatPath(r.Path))
	}
	fmt.Fprintf(w, "\nTotal: %d points\n", laser.TotalPoints(results))
	return nil
}
