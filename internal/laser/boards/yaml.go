// Package boards provides board (puzzle layout) loading for Lazer Showdown.
// This package depends on laser but laser does not depend on boards.
package boards

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Pieces   []YAMLPiece       `yaml:"pieces"`
	Palette  Palette           `yaml:"palette,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLPiece represents a single placed piece in YAML format.
type YAMLPiece struct {
	Kind  string `yaml:"kind"`
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Dir   string `yaml:"dir,omitempty"`
	Value int    `yaml:"value,omitempty"`
	Fixed bool   `yaml:"fixed,omitempty"`
}

// Palette is the stock of pieces a player may place on a board.
// A negative count means unlimited.
type Palette struct {
	Emitters int   `yaml:"emitters,omitempty"`
	Forward  int   `yaml:"forward,omitempty"`
	Backward int   `yaml:"backward,omitempty"`
	Blockers int   `yaml:"blockers,omitempty"`
	Targets  []int `yaml:"targets,omitempty"`
}

// Board is a parsed board ready for use.
type Board struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Pieces   []laser.Placed
	Palette  Palette
	Metadata map[string]string
	FilePath string
}

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yb.ID == "" {
		return Board{}, fmt.Errorf("board has no id")
	}
	return FromYAML(yb)
}

// FromYAML converts the YAML representation into a board.
// Overlapping or out-of-bounds pieces fail here.
func FromYAML(yb YAMLBoard) (Board, error) {
	board := Board{
		ID:       yb.ID,
		Name:     yb.Name,
		Rows:     yb.Size.Rows,
		Cols:     yb.Size.Cols,
		Palette:  yb.Palette,
		Metadata: yb.Metadata,
		Pieces:   make([]laser.Placed, 0, len(yb.Pieces)),
	}
	if board.Name == "" {
		board.Name = board.ID
	}

	for i, yp := range yb.Pieces {
		piece, err := yp.toPiece()
		if err != nil {
			return Board{}, fmt.Errorf("piece %d: %w", i, err)
		}
		board.Pieces = append(board.Pieces, laser.Placed{
			Pos:   laser.P(yp.Row, yp.Col),
			Piece: piece,
		})
	}

	if _, err := board.ToGrid(); err != nil {
		return Board{}, err
	}
	return board, nil
}

func (yp YAMLPiece) toPiece() (laser.Piece, error) {
	kind, err := laser.ParseKind(yp.Kind)
	if err != nil {
		return laser.Piece{}, err
	}
	piece := laser.Piece{Kind: kind, Fixed: yp.Fixed}
	switch kind {
	case laser.KindEmitter:
		dir := laser.DirUp
		if yp.Dir != "" {
			if dir, err = laser.ParseDir(yp.Dir); err != nil {
				return laser.Piece{}, err
			}
		}
		piece.Dir = dir
	case laser.KindTarget:
		if yp.Value <= 0 {
			return laser.Piece{}, fmt.Errorf("target at (%d,%d) needs a positive value", yp.Row, yp.Col)
		}
		piece.Value = yp.Value
	}
	return piece, nil
}

// ToGrid builds a grid holding the board's pieces.
func (b Board) ToGrid() (*laser.Grid, error) {
	g, err := laser.NewGrid(b.Rows, b.Cols)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", b.ID, err)
	}
	for _, p := range b.Pieces {
		if err := g.Place(p.Pos, p.Piece); err != nil {
			return nil, fmt.Errorf("board %s: %w", b.ID, err)
		}
	}
	return g, nil
}

// FromGrid captures a grid as a board, e.g. to export a sandbox layout.
func FromGrid(id, name string, g *laser.Grid, palette Palette) Board {
	return Board{
		ID:      id,
		Name:    name,
		Rows:    g.Rows,
		Cols:    g.Cols,
		Pieces:  g.Pieces(),
		Palette: palette,
	}
}

// ToYAML converts a board into its YAML representation.
func ToYAML(b Board) YAMLBoard {
	yb := YAMLBoard{
		ID:       b.ID,
		Name:     b.Name,
		Size:     YAMLSize{Rows: b.Rows, Cols: b.Cols},
		Palette:  b.Palette,
		Metadata: b.Metadata,
		Pieces:   make([]YAMLPiece, 0, len(b.Pieces)),
	}
	for _, p := range b.Pieces {
		yp := YAMLPiece{
			Kind:  p.Piece.Kind.String(),
			Row:   p.Pos.Row,
			Col:   p.Pos.Col,
			Fixed: p.Piece.Fixed,
		}
		switch p.Piece.Kind {
		case laser.KindEmitter:
			yp.Dir = p.Piece.Dir.String()
		case laser.KindTarget:
			yp.Value = p.Piece.Value
		}
		yb.Pieces = append(yb.Pieces, yp)
	}
	return yb
}

// Marshal encodes a board in the YAML board format.
func Marshal(b Board) ([]byte, error) {
	yb := ToYAML(b)
	data, err := yaml.Marshal(&yb)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
