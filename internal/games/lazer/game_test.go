package lazer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/lazer-showdown/internal/config"
	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// Sandbox palette order for the default config.
const (
	slotEmitter = iota
	slotForward
	slotBackward
	slotTarget20
	slotTarget30
	slotTarget50
)

func testConfig() config.LazerConfig {
	cfg := config.DefaultLazerConfig()
	cfg.Beam.TicksPerCell = 1
	cfg.Beam.LingerTicks = 0
	return cfg
}

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42}
	g.Configure(testConfig())
	return g
}

func placeAt(t *testing.T, g *Game, slot int, p laser.Pos) {
	t.Helper()
	g.palette.Selected = slot
	g.SetCursor(p)
	if err := g.Place(); err != nil {
		t.Fatalf("Place(slot %d at %v): %v", slot, p, err)
	}
}

func finishBeam(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Animating(); i++ {
		if i > 1000 {
			t.Fatal("beam animation never finished")
		}
		g.Step(core.NewInputFrame())
	}
}

// setupShot places a right-facing laser at (4,0) and a 50 point target at (4,7).
func setupShot(t *testing.T, g *Game) {
	t.Helper()
	placeAt(t, g, slotEmitter, laser.P(4, 0))
	if _, err := g.grid.Rotate(laser.P(4, 0)); err != nil {
		t.Fatal(err)
	}
	placeAt(t, g, slotTarget50, laser.P(4, 7))
}

func TestSandboxPalette(t *testing.T) {
	g := newTestGame(t, New())

	var labels []string
	for _, e := range g.palette.Entries {
		labels = append(labels, e.Label()+" "+e.StockLabel())
	}
	want := []string{"laser x1", "mirror / ∞", `mirror \ ∞`, "20 pts x1", "30 pts x1", "50 pts x1"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if g.grid.Rows != 8 || g.grid.Cols != 8 {
		t.Errorf("grid = %dx%d, want 8x8", g.grid.Rows, g.grid.Cols)
	}
}

func TestPlaceRejectsOccupiedCell(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotForward, laser.P(1, 1))

	g.palette.Selected = slotTarget20
	err := g.Place()
	if !errors.Is(err, laser.ErrOccupied) {
		t.Fatalf("Place on occupied cell: got %v", err)
	}
	if g.palette.Entries[slotTarget20].Stock != 1 {
		t.Error("rejected placement must not consume stock")
	}
	if g.grid.At(laser.P(1, 1)).Kind != laser.KindMirrorForward {
		t.Error("occupied cell was overwritten")
	}
	if g.State().Status != "Cell already occupied" {
		t.Errorf("status = %q", g.State().Status)
	}
}

func TestPlaceConsumesLimitedStock(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotEmitter, laser.P(0, 0))

	g.SetCursor(laser.P(0, 1))
	if err := g.Place(); !errors.Is(err, errExhausted) {
		t.Errorf("second laser: got %v, want errExhausted", err)
	}

	// Mirrors replenish
	for col := 0; col < 8; col++ {
		placeAt(t, g, slotForward, laser.P(3, col))
	}
	if g.grid.Count(laser.KindMirrorForward) != 8 {
		t.Errorf("expected 8 mirrors, got %d", g.grid.Count(laser.KindMirrorForward))
	}
}

func TestFireWithoutEmitterChangesNothing(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotTarget30, laser.P(2, 2))
	before := g.grid.Clone()
	undo, _ := g.history.Len()

	err := g.Fire()
	if !errors.Is(err, laser.ErrNoEmitter) {
		t.Fatalf("Fire() error = %v, want ErrNoEmitter", err)
	}
	if g.State().Status != "No emitter on the board" {
		t.Errorf("status = %q", g.State().Status)
	}
	if !g.grid.Equal(before) || g.score != 0 || g.shots != 0 || g.Animating() {
		t.Error("firing without a laser must not change the game")
	}
	if after, _ := g.history.Len(); after != undo {
		t.Error("no-op fire must not add history")
	}
}

func TestFireScoresAndConsumesTarget(t *testing.T) {
	g := newTestGame(t, New())
	setupShot(t, g)

	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() error: %v", err)
	}
	if g.score != 50 || g.shots != 1 {
		t.Errorf("score=%d shots=%d, want 50 and 1", g.score, g.shots)
	}
	if !g.grid.At(laser.P(4, 7)).IsEmpty() {
		t.Error("hit target should be removed")
	}
	if !g.Animating() {
		t.Error("beam should animate after firing")
	}

	want := []laser.Pos{
		laser.P(4, 0), laser.P(4, 1), laser.P(4, 2), laser.P(4, 3),
		laser.P(4, 4), laser.P(4, 5), laser.P(4, 6), laser.P(4, 7),
	}
	if diff := cmp.Diff(want, g.lastShot[0].Path); diff != "" {
		t.Errorf("beam path (-want +got):\n%s", diff)
	}

	finishBeam(t, g)
	if g.State().Score != 50 {
		t.Errorf("State().Score = %d", g.State().Score)
	}
}

func TestStepIgnoresInputWhileBeamAnimates(t *testing.T) {
	g := newTestGame(t, New())
	setupShot(t, g)
	g.SetCursor(laser.P(0, 0))

	res := g.Step(core.NewInputFrame(core.ActionFire))
	if !res.Fired {
		t.Fatal("Step should report the volley")
	}

	g.palette.Selected = slotForward
	g.Step(core.NewInputFrame(core.ActionPlace, core.ActionDown))
	if !g.grid.At(laser.P(0, 0)).IsEmpty() || g.cursor != laser.P(0, 0) {
		t.Error("input during the beam animation should be ignored")
	}

	finishBeam(t, g)
	g.Step(core.NewInputFrame(core.ActionPlace))
	if g.grid.At(laser.P(0, 0)).Kind != laser.KindMirrorForward {
		t.Error("input should work again after the animation")
	}
}

func TestUndoRedoAfterFire(t *testing.T) {
	g := newTestGame(t, New())
	setupShot(t, g)
	if err := g.Fire(); err != nil {
		t.Fatal(err)
	}
	finishBeam(t, g)

	if !g.Undo() {
		t.Fatal("Undo() should succeed")
	}
	if g.score != 0 || g.shots != 0 {
		t.Errorf("after undo: score=%d shots=%d", g.score, g.shots)
	}
	if target := g.grid.At(laser.P(4, 7)); target.Kind != laser.KindTarget || target.Value != 50 {
		t.Errorf("target not restored: %+v", target)
	}

	if !g.Redo() {
		t.Fatal("Redo() should succeed")
	}
	if g.score != 50 || !g.grid.At(laser.P(4, 7)).IsEmpty() {
		t.Errorf("after redo: score=%d, target %+v", g.score, g.grid.At(laser.P(4, 7)))
	}
	if g.Redo() {
		t.Error("second Redo() should have nothing to apply")
	}
}

func TestNewCommandDropsRedo(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotForward, laser.P(0, 0))
	g.Undo()
	placeAt(t, g, slotBackward, laser.P(1, 1))

	if g.Redo() {
		t.Error("redo branch should be dropped by a new command")
	}
}

func TestHistoryDepthIsBounded(t *testing.T) {
	g := New()
	g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	cfg := testConfig()
	cfg.History.Depth = 3
	g.Configure(cfg)

	for col := 0; col < 6; col++ {
		placeAt(t, g, slotForward, laser.P(0, col))
	}
	if undo, _ := g.history.Len(); undo != 3 {
		t.Fatalf("undo depth = %d, want 3", undo)
	}
	for g.Undo() {
	}
	if g.grid.Count(laser.KindMirrorForward) != 3 {
		t.Errorf("only the last 3 placements should be undoable, %d mirrors left", g.grid.Count(laser.KindMirrorForward))
	}
}

func TestGrabAndDrop(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotEmitter, laser.P(0, 0))
	placeAt(t, g, slotBackward, laser.P(2, 2))

	g.SetCursor(laser.P(2, 2))
	if err := g.Grab(); err != nil {
		t.Fatalf("Grab() error: %v", err)
	}
	if _, ok := g.Holding(); !ok || !g.grid.At(laser.P(2, 2)).IsEmpty() {
		t.Fatal("piece should be lifted off the board")
	}

	// Dropping onto an occupied cell keeps the piece in hand
	g.SetCursor(laser.P(0, 0))
	if err := g.Grab(); !errors.Is(err, laser.ErrOccupied) {
		t.Fatalf("drop on occupied cell: got %v", err)
	}
	if _, ok := g.Holding(); !ok {
		t.Fatal("rejected drop must keep the piece in hand")
	}
	if err := g.Fire(); !errors.Is(err, errHolding) {
		t.Errorf("firing while holding: got %v", err)
	}

	g.SetCursor(laser.P(5, 5))
	if err := g.Grab(); err != nil {
		t.Fatalf("drop error: %v", err)
	}
	if g.grid.At(laser.P(5, 5)).Kind != laser.KindMirrorBackward {
		t.Error("piece should land under the cursor")
	}

	g.Undo()
	if g.grid.At(laser.P(2, 2)).Kind != laser.KindMirrorBackward || !g.grid.At(laser.P(5, 5)).IsEmpty() {
		t.Error("undo should move the piece back")
	}
}

func TestRollWhileHoldingIsRefused(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotTarget50, laser.P(1, 1))
	before := g.Dice()

	if err := g.Grab(); err != nil {
		t.Fatal(err)
	}
	if got := g.Roll(); got != nil {
		t.Errorf("Roll() while holding = %v, want nil", got)
	}
	if diff := cmp.Diff(before, g.Dice()); diff != "" {
		t.Errorf("dice changed while holding (-want +got):\n%s", diff)
	}

	g.SetCursor(laser.P(2, 2))
	if err := g.Grab(); err != nil {
		t.Fatalf("drop error: %v", err)
	}
	if !g.Undo() || g.grid.At(laser.P(1, 1)).Value != 50 {
		t.Fatal("first undo should move the target back to (1,1)")
	}
	if !g.Undo() {
		t.Fatal("second undo should revert the placement")
	}
	if n := len(g.grid.Targets()); n != 0 {
		t.Errorf("%d targets left on the grid", n)
	}
	if stock := g.palette.Entries[slotTarget50].Stock; stock != 1 {
		t.Errorf("50 pt stock = %d, want 1", stock)
	}
}

func TestLongPathIsNotALoop(t *testing.T) {
	g := New()
	g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	cfg := testConfig()
	cfg.Grid = config.GridConfig{Rows: 3, Cols: 3}
	g.Configure(cfg)

	// /\v
	// \..
	// .\/
	layout := []laser.Placed{
		{Pos: laser.P(0, 0), Piece: laser.Forward()},
		{Pos: laser.P(0, 1), Piece: laser.Backward()},
		{Pos: laser.P(0, 2), Piece: laser.Emitter(laser.DirDown)},
		{Pos: laser.P(1, 0), Piece: laser.Backward()},
		{Pos: laser.P(2, 1), Piece: laser.Backward()},
		{Pos: laser.P(2, 2), Piece: laser.Forward()},
	}
	for _, pl := range layout {
		if err := g.grid.Place(pl.Pos, pl.Piece); err != nil {
			t.Fatal(err)
		}
	}

	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() error: %v", err)
	}
	res := g.lastShot[0]
	if res.Outcome != laser.OutcomeExited || res.Steps != 10 {
		t.Errorf("got %v after %d steps, want exited after 10", res.Outcome, res.Steps)
	}
}

func TestCancelHoldReturnsPiece(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotTarget30, laser.P(3, 3))

	if err := g.Grab(); err != nil {
		t.Fatal(err)
	}
	g.Step(core.NewInputFrame(core.ActionRight, core.ActionBack))

	if _, ok := g.Holding(); ok {
		t.Error("cancel should empty the hand")
	}
	if g.grid.At(laser.P(3, 3)).Value != 30 {
		t.Error("cancelled piece should return to its cell")
	}
}

func TestRemoveReturnsPieceToPalette(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotTarget20, laser.P(1, 1))
	if g.palette.Entries[slotTarget20].Available() {
		t.Fatal("target stock should be used up")
	}

	g.SetCursor(laser.P(1, 1))
	if err := g.Remove(); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if g.palette.Entries[slotTarget20].Stock != 1 {
		t.Errorf("stock = %d, want 1", g.palette.Entries[slotTarget20].Stock)
	}
	if err := g.Remove(); !errors.Is(err, laser.ErrEmptyCell) {
		t.Errorf("Remove() on empty cell: got %v", err)
	}
}

func TestRotateOnlyTurnsLasers(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotEmitter, laser.P(2, 2))
	placeAt(t, g, slotForward, laser.P(3, 3))

	g.SetCursor(laser.P(2, 2))
	g.Step(core.NewInputFrame(core.ActionRotate))
	if g.grid.At(laser.P(2, 2)).Dir != laser.DirRight {
		t.Errorf("laser points %v, want right", g.grid.At(laser.P(2, 2)).Dir)
	}

	g.SetCursor(laser.P(3, 3))
	if err := g.Rotate(); !errors.Is(err, laser.ErrNotEmitter) {
		t.Errorf("rotating a mirror: got %v", err)
	}
}

func TestRestartResetsAndCanBeUndone(t *testing.T) {
	g := newTestGame(t, New())
	setupShot(t, g)
	g.Fire()
	finishBeam(t, g)

	g.Restart()
	if len(g.grid.Pieces()) != 0 || g.score != 0 {
		t.Errorf("restart left %d pieces and score %d", len(g.grid.Pieces()), g.score)
	}
	if g.palette.Entries[slotEmitter].Stock != 1 {
		t.Error("restart should refill the palette")
	}

	g.Undo()
	if g.score != 50 || g.grid.At(laser.P(4, 0)).Kind != laser.KindEmitter {
		t.Error("undo should bring back the state before restart")
	}
}

func TestRollIsSeeded(t *testing.T) {
	a := newTestGame(t, New())
	b := newTestGame(t, New())

	for i := 0; i < 5; i++ {
		da, db := a.Roll(), b.Roll()
		if diff := cmp.Diff(da, db); diff != "" {
			t.Fatalf("same seed rolled differently (-a +b):\n%s", diff)
		}
		if len(da) != 2 {
			t.Fatalf("rolled %d dice, want 2", len(da))
		}
		for _, d := range da {
			if d < 1 || d > 6 {
				t.Errorf("die out of range: %d", d)
			}
		}
	}
}

func TestStepLimitAbortsBeam(t *testing.T) {
	g := New()
	g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	cfg := testConfig()
	cfg.Beam.StepLimit = 2
	g.Configure(cfg)

	setupShot(t, g)
	if err := g.Fire(); err != nil {
		t.Fatalf("an aborted trace still fires, got %v", err)
	}
	if g.lastShot[0].Outcome != laser.OutcomeCycleDetected {
		t.Errorf("outcome = %v", g.lastShot[0].Outcome)
	}
	if g.score != 0 || g.grid.At(laser.P(4, 7)).IsEmpty() {
		t.Error("aborted beam must not score")
	}
	if g.State().Status != "Beam caught in a loop" {
		t.Errorf("status = %q", g.State().Status)
	}
	finishBeam(t, g)
}

func TestShotRecorder(t *testing.T) {
	g := newTestGame(t, New())
	var got []Shot
	g.SetShotRecorder(ShotRecorderFunc(func(s Shot) error {
		got = append(got, s)
		return nil
	}))

	setupShot(t, g)
	g.Fire()

	if len(got) != 1 {
		t.Fatalf("recorded %d shots, want 1", len(got))
	}
	if got[0].Points != 50 || got[0].GameID != IDSandbox || got[0].SessionID != g.SessionID() {
		t.Errorf("unexpected shot: %+v", got[0])
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New())
	setupShot(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"LAZER SHOWDOWN", "Palette", "Sandbox", "50 pts"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	x, y := g.cellXY(laser.P(4, 0))
	if c := screen.GetCell(x, y); c.Rune != '>' || c.Color != core.ColorBrightRed {
		t.Errorf("laser cell = %+v", c)
	}

	g.Fire()
	g.Step(core.NewInputFrame())
	screen.Clear()
	g.Render(screen)
	x, y = g.cellXY(laser.P(4, 1))
	if screen.Get(x, y) != '-' {
		t.Errorf("beam not drawn, got %q", screen.Get(x, y))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.runtime = core.RuntimeConfig{ScreenW: 20, ScreenH: 8}
	g.Configure(testConfig())

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning:\n%s", screen.String())
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, New())
	placeAt(t, g, slotForward, laser.P(1, 1))

	g.SetCursor(laser.P(1, 1))
	g.Resize(20, 8)
	g.Step(core.NewInputFrame(core.ActionRemove))
	if g.grid.At(laser.P(1, 1)).IsEmpty() {
		t.Error("input should be ignored while the terminal is too small")
	}

	g.Resize(80, 24)
	if g.grid.At(laser.P(1, 1)).Kind != laser.KindMirrorForward {
		t.Error("resize must not reset the board")
	}
}
