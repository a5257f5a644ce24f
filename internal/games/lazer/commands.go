package lazer

import (
	"errors"

	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// Shot is one fired volley as reported to a ShotRecorder.
type Shot struct {
	SessionID string
	GameID    string
	BoardID   string
	Results   []laser.Result
	Points    int
}

// ShotRecorder receives every fired volley, e.g. to persist shot history.
type ShotRecorder interface {
	RecordShot(Shot) error
}

// ShotRecorderFunc adapts a function to ShotRecorder.
type ShotRecorderFunc func(Shot) error

// RecordShot calls f(s).
func (f ShotRecorderFunc) RecordShot(s Shot) error {
	return f(s)
}

var (
	errHolding   = errors.New("drop the held piece first")
	errExhausted = errors.New("no pieces of that kind left")
	errBeamBusy  = errors.New("beam still travelling")
)

func (g *Game) busy() bool {
	if g.held != nil {
		g.status = "Drop the held piece first"
		return true
	}
	return false
}

// Place puts the selected palette piece under the cursor.
func (g *Game) Place() error {
	if g.busy() {
		return errHolding
	}
	entry, ok := g.palette.Current()
	if !ok {
		g.status = "Palette is empty"
		return errExhausted
	}
	if !entry.Available() {
		g.setStatus("No %s left", entry.Label())
		return errExhausted
	}

	before := g.capture()
	if err := g.grid.Place(g.cursor, entry.Piece); err != nil {
		g.status = describePlaceError(err)
		return err
	}
	g.palette.take()
	g.history.Push(before)
	g.setStatus("Placed %s at %v", entry.Label(), g.cursor)
	return nil
}

// Grab picks up the piece under the cursor, or drops the held piece there.
func (g *Game) Grab() error {
	if g.held != nil {
		return g.drop()
	}

	before := g.capture()
	piece, err := g.grid.Remove(g.cursor)
	if err != nil {
		g.status = describePlaceError(err)
		return err
	}
	g.held = &piece
	g.heldFrom = g.cursor
	g.pickup = before
	g.setStatus("Holding %c, move and press grab to drop", piece.Glyph())
	return nil
}

func (g *Game) drop() error {
	if err := g.grid.Place(g.cursor, *g.held); err != nil {
		// The piece stays in hand
		g.status = describePlaceError(err)
		return err
	}
	if g.cursor != g.heldFrom {
		g.history.Push(g.pickup)
	}
	g.setStatus("Moved %c to %v", g.held.Glyph(), g.cursor)
	g.held = nil
	return nil
}

// CancelHold puts the held piece back where it was picked up.
func (g *Game) CancelHold() {
	if g.held == nil {
		return
	}
	if err := g.grid.Place(g.heldFrom, *g.held); err != nil {
		g.logger.Error("returning held piece", "pos", g.heldFrom, "err", err)
	}
	g.held = nil
	g.status = "Move cancelled"
}

// Holding returns the piece in hand, if any.
func (g *Game) Holding() (laser.Piece, bool) {
	if g.held == nil {
		return laser.Piece{}, false
	}
	return *g.held, true
}

// Remove returns the piece under the cursor to the palette.
func (g *Game) Remove() error {
	if g.busy() {
		return errHolding
	}
	before := g.capture()
	piece, err := g.grid.Remove(g.cursor)
	if err != nil {
		g.status = describePlaceError(err)
		return err
	}
	g.palette.give(piece)
	g.history.Push(before)
	g.setStatus("Removed %c", piece.Glyph())
	return nil
}

// Rotate turns the laser under the cursor clockwise.
func (g *Game) Rotate() error {
	if g.busy() {
		return errHolding
	}
	before := g.capture()
	dir, err := g.grid.Rotate(g.cursor)
	if err != nil {
		g.status = describePlaceError(err)
		return err
	}
	g.history.Push(before)
	g.setStatus("Laser now points %s", dir)
	return nil
}

// stepLimit bounds a traced beam. A beam passes each cell at most once per
// direction, so 4*rows*cols steps only cut off a real loop.
func (g *Game) stepLimit() int {
	if g.cfg.Beam.StepLimit > 0 {
		return g.cfg.Beam.StepLimit
	}
	return 4 * g.grid.Rows * g.grid.Cols
}

// Fire traces every laser, scores hit targets and removes them from the board.
// With no laser on the board nothing changes and laser.ErrNoEmitter is returned.
func (g *Game) Fire() error {
	if g.beam != nil {
		return errBeamBusy
	}
	if g.busy() {
		return errHolding
	}

	results, err := laser.Fire(g.grid, laser.WithStepLimit(g.stepLimit()))
	if errors.Is(err, laser.ErrNoEmitter) {
		g.status = "No emitter on the board"
		return err
	}
	if err != nil {
		g.logger.Warn("beam trace aborted", "err", err)
	}

	g.history.Push(g.capture())

	points := laser.TotalPoints(results)
	for _, r := range results {
		if r.Outcome == laser.OutcomeScored {
			g.grid.Consume(r.Hit)
		}
	}
	g.score += points
	g.shots++
	g.lastShot = results
	g.beam = newBeamAnim(results, g.cfg.Beam.TicksPerCell, g.cfg.Beam.LingerTicks)

	g.logger.Debug("fired", "beams", len(results), "points", points, "score", g.score)
	g.record(results, points)

	switch {
	case err != nil:
		g.status = "Beam caught in a loop"
	case points > 0:
		g.setStatus("Hit! +%d points", points)
	default:
		g.setStatus("Missed: beam %s", results[0].Outcome)
	}
	return nil
}

func (g *Game) record(results []laser.Result, points int) {
	if g.recorder == nil {
		return
	}
	shot := Shot{
		SessionID: g.sessionID,
		GameID:    g.ID(),
		Results:   results,
		Points:    points,
	}
	if b, ok := g.CurrentBoard(); ok {
		shot.BoardID = b.ID
	}
	if err := g.recorder.RecordShot(shot); err != nil {
		g.logger.Error("recording shot", "err", err)
	}
}

// afterVolley runs once the beam animation ends.
func (g *Game) afterVolley() {
	if g.mode != ModePuzzle || len(g.grid.Targets()) > 0 {
		return
	}
	g.advanceBoard()
}

func (g *Game) advanceBoard() {
	cleared := g.boardIndex
	g.boardIndex++
	g.history.Clear()

	if g.boardIndex >= len(g.boards) {
		g.boardIndex = len(g.boards) - 1
		g.won = true
		g.setStatus("All boards cleared! Final score %d", g.score)
		g.logger.Info("puzzles complete", "score", g.score, "shots", g.shots)
		return
	}

	g.startScore = g.score
	g.restore(g.initialState())
	g.cursor = laser.P(g.grid.Rows/2, g.grid.Cols/2)
	g.checkScreen()
	g.setStatus("Board %d cleared! Next: %s", cleared+1, g.boards[g.boardIndex].Name)
}

// Undo restores the state before the last command.
func (g *Game) Undo() bool {
	if g.busy() {
		return false
	}
	prev, ok := g.history.Undo(g.capture())
	if !ok {
		g.status = "Nothing to undo"
		return false
	}
	g.restore(prev)
	g.status = "Undone"
	return true
}

// Redo re-applies the last undone command.
func (g *Game) Redo() bool {
	if g.busy() {
		return false
	}
	next, ok := g.history.Redo(g.capture())
	if !ok {
		g.status = "Nothing to redo"
		return false
	}
	g.restore(next)
	g.status = "Redone"
	return true
}

// Roll rolls the dice.
func (g *Game) Roll() []int {
	if g.busy() {
		return nil
	}
	if len(g.dice) == 0 {
		g.status = "No dice configured"
		return nil
	}
	g.history.Push(g.capture())
	for i := range g.dice {
		g.dice[i] = g.rng.IntN(g.cfg.Dice.Sides) + 1
	}
	total := 0
	for _, d := range g.dice {
		total += d
	}
	g.setStatus("Rolled %v = %d", g.dice, total)
	return g.Dice()
}

// Restart returns to the initial state of the current mode. It can be undone.
func (g *Game) Restart() {
	g.CancelHold()
	g.history.Push(g.capture())
	g.restore(g.initialState())
	g.lastShot = nil
	g.status = "Board reset"
}
