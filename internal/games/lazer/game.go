// Package lazer implements Lazer Showdown: place lasers, mirrors and targets
// on a grid, then fire to trace the beam and score.
package lazer

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/lazer-showdown/internal/config"
	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/laser/boards"
	"github.com/vovakirdan/lazer-showdown/internal/registry"
)

// Mode selects free play or the board sequence.
type Mode int

const (
	ModeSandbox Mode = iota // Empty board, free palette
	ModePuzzle              // Embedded boards in order
)

// String returns the mode name used in save files.
func (m Mode) String() string {
	if m == ModePuzzle {
		return "puzzle"
	}
	return "sandbox"
}

// Registered game IDs.
const (
	IDSandbox = "lazer"
	IDPuzzle  = "lazer_puzzle"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	boardsDir        string
	startBoard       string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetBoardsDir makes puzzle mode load boards from a directory instead of the embedded set.
func SetBoardsDir(dir string) {
	boardsDir = dir
}

// SetStartBoard makes puzzle mode begin at the board with the given ID.
func SetStartBoard(id string) {
	startBoard = id
}

func init() {
	registry.Register(IDSandbox, func() registry.Game {
		return New()
	})
	registry.Register(IDPuzzle, func() registry.Game {
		return NewPuzzle()
	})
}

// Game implements Lazer Showdown.
type Game struct {
	mode Mode

	runtime   core.RuntimeConfig
	cfg       config.LazerConfig
	rng       *rand.Rand
	logger    *log.Logger
	recorder  ShotRecorder
	sessionID string

	grid       *laser.Grid
	palette    Palette
	cursor     laser.Pos
	held       *laser.Piece
	heldFrom   laser.Pos
	pickup     state // State before the held piece was lifted
	score      int
	startScore int // Score when the current board began
	shots      int
	dice       []int
	boards     []boards.Board
	boardIndex int
	won        bool
	status     string
	lastShot   []laser.Result

	beam    *beamAnim
	history *History

	tick     int
	tooSmall bool
}

// New creates a sandbox game.
func New() *Game {
	return &Game{mode: ModeSandbox, logger: discardLogger()}
}

// NewPuzzle creates a puzzle-mode game.
func NewPuzzle() *Game {
	return &Game{mode: ModePuzzle, logger: discardLogger()}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModePuzzle {
		return IDPuzzle
	}
	return IDSandbox
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModePuzzle {
		return "Lazer Showdown (Puzzles)"
	}
	return "Lazer Showdown"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetLogger sets the logger used for trace diagnostics.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger()
	}
	g.logger = l
}

// SetShotRecorder registers a hook that receives every fired volley.
func (g *Game) SetShotRecorder(r ShotRecorder) {
	g.recorder = r
}

// SessionID identifies the current play session in recorded shots.
func (g *Game) SessionID() string {
	return g.sessionID
}

// Reset initializes or restarts the game from scratch.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadLazer(configPath)
	if err != nil {
		g.logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultLazerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyLazerPreset(&cfg, difficultyPreset)
	}
	g.Configure(cfg)
}

// Resize updates the terminal size without touching the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.checkScreen()
}

// Configure starts a new session with an explicit configuration.
func (g *Game) Configure(cfg config.LazerConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewPCG(uint64(g.runtime.Seed), uint64(g.runtime.Seed)>>1|1))
	g.sessionID = uuid.New().String()
	g.history = NewHistory(cfg.History.Depth)
	g.tick = 0
	g.beam = nil
	g.held = nil
	g.lastShot = nil
	g.status = ""

	g.score = 0
	g.startScore = 0
	g.shots = 0
	g.boardIndex = 0
	g.won = false

	if g.mode == ModePuzzle {
		g.boards = g.loadBoards()
		if startBoard != "" {
			for i, b := range g.boards {
				if b.ID == startBoard {
					g.boardIndex = i
					break
				}
			}
		}
	}

	g.restore(g.initialState())
	g.cursor = laser.P(g.grid.Rows/2, g.grid.Cols/2)
	g.checkScreen()

	if g.mode == ModePuzzle && len(g.boards) == 0 {
		g.status = "No boards found"
	}
}

func (g *Game) loadBoards() []boards.Board {
	loader := boards.Embedded()
	if boardsDir != "" {
		loader = boards.NewDirLoader(boardsDir)
	}
	all, err := loader.LoadAll()
	if err != nil {
		g.logger.Error("loading boards", "dir", boardsDir, "err", err)
		return nil
	}
	g.logger.Debug("boards loaded", "count", len(all))
	return all
}

// initialState builds the starting state of the current mode:
// an empty grid for the sandbox, the current board for puzzles.
func (g *Game) initialState() state {
	s := state{
		dice:       make([]int, g.cfg.Dice.Count),
		boardIndex: g.boardIndex,
		startScore: g.startScore,
		score:      g.startScore,
		shots:      g.shots,
	}

	if g.mode == ModePuzzle && g.boardIndex < len(g.boards) {
		b := g.boards[g.boardIndex]
		grid, err := b.ToGrid()
		if err == nil {
			s.grid = grid
			s.palette = boardPalette(b.Palette, g.cfg.Puzzle.ExtraMirrors)
			return s
		}
		g.logger.Error("board unusable", "board", b.ID, "err", err)
	}

	if g.mode == ModeSandbox {
		s.score, s.startScore, s.shots = 0, 0, 0
	}
	s.grid = laser.MustGrid(g.cfg.Grid.Rows, g.cfg.Grid.Cols)
	s.palette = sandboxPalette(g.cfg.Palette)
	return s
}

func (g *Game) capture() state {
	return state{
		grid:       g.grid.Clone(),
		palette:    g.palette.Clone(),
		score:      g.score,
		shots:      g.shots,
		dice:       append([]int(nil), g.dice...),
		boardIndex: g.boardIndex,
		startScore: g.startScore,
		won:        g.won,
	}
}

func (g *Game) restore(s state) {
	g.grid = s.grid
	g.palette = s.palette
	g.score = s.score
	g.shots = s.shots
	g.dice = s.dice
	g.boardIndex = s.boardIndex
	g.startScore = s.startScore
	g.won = s.won
	g.cursor = g.clampCursor(g.cursor)
}

func (g *Game) checkScreen() {
	w, h := g.minScreen()
	g.tooSmall = g.runtime.ScreenW > 0 && (g.runtime.ScreenW < w || g.runtime.ScreenH < h)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// The beam owns the board until it finishes drawing
	if g.beam != nil {
		if !g.beam.advance() {
			g.beam = nil
			g.afterVolley()
		}
		return core.StepResult{State: g.State()}
	}

	if g.won {
		if in.Has(core.ActionRestart) {
			g.Configure(g.cfg)
		}
		return core.StepResult{State: g.State()}
	}

	g.handleCursor(in)

	if in.Has(core.ActionNextPiece) {
		g.palette.Cycle(1)
	}
	if in.Has(core.ActionPrevPiece) {
		g.palette.Cycle(-1)
	}

	fired := false
	switch {
	case in.Has(core.ActionBack):
		g.CancelHold()
	case in.Has(core.ActionPlace):
		g.Place()
	case in.Has(core.ActionGrab):
		g.Grab()
	case in.Has(core.ActionRemove):
		g.Remove()
	case in.Has(core.ActionRotate):
		g.Rotate()
	case in.Has(core.ActionFire):
		fired = g.Fire() == nil
	case in.Has(core.ActionUndo):
		g.Undo()
	case in.Has(core.ActionRedo):
		g.Redo()
	case in.Has(core.ActionRoll):
		g.Roll()
	case in.Has(core.ActionRestart):
		g.Restart()
	}

	return core.StepResult{State: g.State(), Fired: fired}
}

func (g *Game) handleCursor(in core.InputFrame) {
	c := g.cursor
	if in.Has(core.ActionUp) {
		c.Row--
	}
	if in.Has(core.ActionDown) {
		c.Row++
	}
	if in.Has(core.ActionLeft) {
		c.Col--
	}
	if in.Has(core.ActionRight) {
		c.Col++
	}
	g.cursor = g.clampCursor(c)
}

func (g *Game) clampCursor(p laser.Pos) laser.Pos {
	if g.grid == nil {
		return p
	}
	return laser.P(core.Clamp(p.Row, 0, g.grid.Rows-1), core.Clamp(p.Col, 0, g.grid.Cols-1))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.won,
		Won:      g.won,
		Status:   g.status,
	}
}

// Grid returns a copy of the board.
func (g *Game) Grid() *laser.Grid {
	return g.grid.Clone()
}

// Cursor returns the cursor cell.
func (g *Game) Cursor() laser.Pos {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the grid.
func (g *Game) SetCursor(p laser.Pos) {
	g.cursor = g.clampCursor(p)
}

// Palette returns a copy of the palette.
func (g *Game) Palette() Palette {
	return g.palette.Clone()
}

// Dice returns the last rolled values.
func (g *Game) Dice() []int {
	return append([]int(nil), g.dice...)
}

// Animating reports whether a fired beam is still being drawn.
func (g *Game) Animating() bool {
	return g.beam != nil
}

// CurrentBoard returns the puzzle board being played.
func (g *Game) CurrentBoard() (boards.Board, bool) {
	if g.mode != ModePuzzle || g.boardIndex >= len(g.boards) {
		return boards.Board{}, false
	}
	return g.boards[g.boardIndex], true
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
}

// describePlaceError turns grid errors into status line text.
func describePlaceError(err error) string {
	switch {
	case errors.Is(err, laser.ErrOccupied):
		return "Cell already occupied"
	case errors.Is(err, laser.ErrOutOfBounds):
		return "Outside the board"
	case errors.Is(err, laser.ErrFixedPiece):
		return "That piece is fixed"
	case errors.Is(err, laser.ErrEmptyCell):
		return "Nothing there"
	case errors.Is(err, laser.ErrNotEmitter):
		return "Only lasers rotate"
	default:
		return err.Error()
	}
}
