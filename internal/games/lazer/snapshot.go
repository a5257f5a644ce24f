package lazer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/laser/boards"
)

// snapshotVersion is bumped when the save format changes incompatibly.
const snapshotVersion = 1

// Snapshot is the saved form of a game.
type Snapshot struct {
	Version    int              `yaml:"version"`
	Game       string           `yaml:"game"`
	Mode       string           `yaml:"mode"`
	Board      string           `yaml:"board,omitempty"`
	BoardIndex int              `yaml:"board_index"`
	Grid       boards.YAMLBoard `yaml:"grid"`
	Palette    []SnapshotEntry  `yaml:"palette"`
	Selected   int              `yaml:"selected"`
	Cursor     [2]int           `yaml:"cursor,flow"`
	Score      int              `yaml:"score"`
	StartScore int              `yaml:"start_score"`
	Shots      int              `yaml:"shots"`
	Dice       []int            `yaml:"dice,flow"`
	Won        bool             `yaml:"won,omitempty"`
}

// SnapshotEntry is a saved palette entry.
type SnapshotEntry struct {
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value,omitempty"`
	Stock int    `yaml:"stock"`
}

// Snapshot returns the current game state. A held piece is saved where it was picked up.
func (g *Game) Snapshot() Snapshot {
	grid := g.grid.Clone()
	if g.held != nil {
		_ = grid.Place(g.heldFrom, *g.held)
	}

	snap := Snapshot{
		Version:    snapshotVersion,
		Game:       g.ID(),
		Mode:       g.mode.String(),
		BoardIndex: g.boardIndex,
		Grid:       boards.ToYAML(boards.FromGrid(g.ID(), g.Title(), grid, boards.Palette{})),
		Selected:   g.palette.Selected,
		Cursor:     [2]int{g.cursor.Row, g.cursor.Col},
		Score:      g.score,
		StartScore: g.startScore,
		Shots:      g.shots,
		Dice:       append([]int(nil), g.dice...),
		Won:        g.won,
	}
	if b, ok := g.CurrentBoard(); ok {
		snap.Board = b.ID
	}
	for _, e := range g.palette.Entries {
		snap.Palette = append(snap.Palette, SnapshotEntry{
			Kind:  e.Piece.Kind.String(),
			Value: e.Piece.Value,
			Stock: e.Stock,
		})
	}
	return snap
}

// SaveState serializes the game as YAML.
func (g *Game) SaveState() ([]byte, error) {
	snap := g.Snapshot()
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("lazer: encoding snapshot: %w", err)
	}
	return data, nil
}

// LoadState restores a game saved by SaveState. The game must have been Reset
// and must be of the same mode. Undo history is cleared.
func (g *Game) LoadState(data []byte) error {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("lazer: decoding snapshot: %w", err)
	}
	return g.Restore(snap)
}

// Restore applies a snapshot.
func (g *Game) Restore(snap Snapshot) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("lazer: unsupported snapshot version %d", snap.Version)
	}
	if snap.Game != g.ID() {
		return fmt.Errorf("lazer: snapshot is for %q, not %q", snap.Game, g.ID())
	}

	if snap.Grid.ID == "" {
		snap.Grid.ID = snap.Game
	}
	board, err := boards.FromYAML(snap.Grid)
	if err != nil {
		return fmt.Errorf("lazer: snapshot grid: %w", err)
	}
	grid, err := board.ToGrid()
	if err != nil {
		return fmt.Errorf("lazer: snapshot grid: %w", err)
	}

	palette := Palette{Selected: snap.Selected}
	for i, e := range snap.Palette {
		kind, err := laser.ParseKind(e.Kind)
		if err != nil {
			return fmt.Errorf("lazer: palette entry %d: %w", i, err)
		}
		piece := laser.Piece{Kind: kind, Value: e.Value}
		palette.Entries = append(palette.Entries, Entry{Piece: piece, Stock: e.Stock})
	}
	if len(palette.Entries) > 0 {
		palette.Selected = min(max(palette.Selected, 0), len(palette.Entries)-1)
	}

	boardIndex := snap.BoardIndex
	if g.mode == ModePuzzle {
		boardIndex = g.findBoard(snap.Board, snap.BoardIndex)
	}

	g.CancelHold()
	g.held = nil
	g.beam = nil
	g.lastShot = nil
	g.history.Clear()
	g.restore(state{
		grid:       grid,
		palette:    palette,
		score:      snap.Score,
		shots:      snap.Shots,
		dice:       append([]int(nil), snap.Dice...),
		boardIndex: boardIndex,
		startScore: snap.StartScore,
		won:        snap.Won,
	})
	g.cursor = g.clampCursor(laser.P(snap.Cursor[0], snap.Cursor[1]))
	g.checkScreen()
	g.status = "Game loaded"
	return nil
}

// findBoard locates a saved board by ID, falling back to the saved index.
func (g *Game) findBoard(id string, index int) int {
	for i, b := range g.boards {
		if b.ID == id {
			return i
		}
	}
	if len(g.boards) == 0 {
		return 0
	}
	return min(max(index, 0), len(g.boards)-1)
}
