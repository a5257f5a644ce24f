package laser

import "fmt"

// Grid is the game board: a fixed-size rectangle of cells, each holding at most one piece.
// Cells are stored in row-major order: index = row*Cols + col.
type Grid struct {
	Rows  int
	Cols  int
	cells []Piece
}

// Placed pairs a piece with the cell it occupies.
type Placed struct {
	Pos   Pos
	Piece Piece
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Piece, rows*cols),
	}, nil
}

// MustGrid is like NewGrid but panics on invalid dimensions. Intended for tests and
// compile-time constant layouts.
func MustGrid(rows, cols int) *Grid {
	g, err := NewGrid(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// index converts a position to a flat array index.
func (g *Grid) index(p Pos) int {
	return p.Row*g.Cols + p.Col
}

// InBounds returns true if the position is within the grid boundaries.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// At returns the piece at the given position.
// Returns an empty piece if out of bounds.
func (g *Grid) At(p Pos) Piece {
	if !g.InBounds(p) {
		return Piece{}
	}
	return g.cells[g.index(p)]
}

// Place puts a piece on an empty in-bounds cell.
func (g *Grid) Place(p Pos, piece Piece) error {
	if piece.IsEmpty() {
		return ErrEmptyPiece
	}
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if !g.cells[g.index(p)].IsEmpty() {
		return fmt.Errorf("%w: %v", ErrOccupied, p)
	}
	g.cells[g.index(p)] = piece
	return nil
}

// Remove clears the cell at p and returns the piece that was there.
func (g *Grid) Remove(p Pos) (Piece, error) {
	if !g.InBounds(p) {
		return Piece{}, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	piece := g.cells[g.index(p)]
	if piece.IsEmpty() {
		return Piece{}, fmt.Errorf("%w: %v", ErrEmptyCell, p)
	}
	if piece.Fixed {
		return Piece{}, fmt.Errorf("%w: %v", ErrFixedPiece, p)
	}
	g.cells[g.index(p)] = Piece{}
	return piece, nil
}

// Move relocates the piece at from to the empty cell to.
// On error the grid is unchanged.
func (g *Grid) Move(from, to Pos) error {
	if !g.InBounds(from) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, from)
	}
	piece := g.cells[g.index(from)]
	if piece.IsEmpty() {
		return fmt.Errorf("%w: %v", ErrEmptyCell, from)
	}
	if piece.Fixed {
		return fmt.Errorf("%w: %v", ErrFixedPiece, from)
	}
	if from == to {
		return nil
	}
	if !g.InBounds(to) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, to)
	}
	if !g.cells[g.index(to)].IsEmpty() {
		return fmt.Errorf("%w: %v", ErrOccupied, to)
	}
	g.cells[g.index(to)] = piece
	g.cells[g.index(from)] = Piece{}
	return nil
}

// Rotate turns the emitter at p one step clockwise and returns its new direction.
func (g *Grid) Rotate(p Pos) (Dir, error) {
	if !g.InBounds(p) {
		return DirUp, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	i := g.index(p)
	if g.cells[i].Kind != KindEmitter {
		return DirUp, fmt.Errorf("%w: %v", ErrNotEmitter, p)
	}
	g.cells[i].Dir = g.cells[i].Dir.RotateCW()
	return g.cells[i].Dir, nil
}

// clear empties a cell regardless of the fixed flag. Used when the beam consumes a target.
func (g *Grid) clear(p Pos) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = Piece{}
	}
}

// Consume removes a target hit by the beam, ignoring the fixed flag.
// Returns false if there is no target at p.
func (g *Grid) Consume(p Pos) (Piece, bool) {
	piece := g.At(p)
	if piece.Kind != KindTarget {
		return Piece{}, false
	}
	g.clear(p)
	return piece, true
}

// Pieces returns all placed pieces in row-major order.
func (g *Grid) Pieces() []Placed {
	placed := make([]Placed, 0)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			p := P(row, col)
			if piece := g.At(p); !piece.IsEmpty() {
				placed = append(placed, Placed{Pos: p, Piece: piece})
			}
		}
	}
	return placed
}

// Emitters returns the positions of all emitters in row-major order.
func (g *Grid) Emitters() []Pos {
	return g.positionsOf(KindEmitter)
}

// Targets returns the positions of all targets in row-major order.
func (g *Grid) Targets() []Pos {
	return g.positionsOf(KindTarget)
}

func (g *Grid) positionsOf(k Kind) []Pos {
	var out []Pos
	for i, piece := range g.cells {
		if piece.Kind == k {
			out = append(out, P(i/g.Cols, i%g.Cols))
		}
	}
	return out
}

// Count returns the number of pieces of kind k on the grid.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, piece := range g.cells {
		if piece.Kind == k {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Piece, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		Rows:  g.Rows,
		Cols:  g.Cols,
		cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.Rows != other.Rows || g.Cols != other.Cols {
		return false
	}
	for i, piece := range g.cells {
		if piece != other.cells[i] {
			return false
		}
	}
	return true
}
