// Package laser provides the grid, piece model and beam tracer for Lazer Showdown.
// This package is UI-agnostic and deterministic.
package laser

import (
	"fmt"
	"strings"
)

// Dir represents the direction an emitter faces or a beam travels.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// AllDirs lists directions in clockwise order starting from Up.
func AllDirs() []Dir {
	return []Dir{DirUp, DirRight, DirDown, DirLeft}
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dRow, dCol) offset for moving one step in this direction.
// Up decreases Row, Down increases Row (screen coordinates).
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// RotateCW returns the next direction clockwise (Up -> Right -> Down -> Left -> Up).
func (d Dir) RotateCW() Dir {
	return (d + 1) % 4
}

// RotateCCW returns the next direction counter-clockwise.
func (d Dir) RotateCCW() Dir {
	return (d + 3) % 4
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Arrow returns the glyph used to draw an emitter facing this direction.
func (d Dir) Arrow() rune {
	switch d {
	case DirUp:
		return '^'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '?'
	}
}

// ParseDir parses a direction name (case-insensitive). Single letters u/r/d/l are accepted.
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north", "n":
		return DirUp, nil
	case "right", "r", "east", "e":
		return DirRight, nil
	case "down", "d", "south", "s":
		return DirDown, nil
	case "left", "l", "west", "w":
		return DirLeft, nil
	}
	return DirUp, fmt.Errorf("unknown direction %q", s)
}

// Pos is a cell position on the grid.
// Row increases downward, Col increases to the right.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the position one cell away in the given direction.
func (p Pos) Step(d Dir) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}
