package laser

import (
	"fmt"
	"strings"
)

// BeamGlyph returns the character drawn for a beam segment through an empty cell.
// Horizontal and vertical passes through the same cell combine into '+'.
func BeamGlyph(horizontal, vertical bool) rune {
	switch {
	case horizontal && vertical:
		return '+'
	case horizontal:
		return '-'
	case vertical:
		return '|'
	default:
		return '.'
	}
}

// BeamCells returns, for every empty cell crossed by the given results, whether the
// beam crossed it horizontally and/or vertically. Cells holding pieces are skipped.
func BeamCells(g *Grid, results ...Result) map[Pos][2]bool {
	cells := make(map[Pos][2]bool)
	for _, r := range results {
		for i, p := range r.Path {
			if !g.At(p).IsEmpty() {
				continue
			}
			var d Dir
			switch {
			case i > 0:
				d = direction(r.Path[i-1], p)
			case len(r.Path) > 1:
				d = direction(p, r.Path[1])
			default:
				continue
			}
			mark := cells[p]
			if d == DirLeft || d == DirRight {
				mark[0] = true
			} else {
				mark[1] = true
			}
			cells[p] = mark
		}
	}
	return cells
}

// direction returns the direction from a to an adjacent cell b.
func direction(a, b Pos) Dir {
	switch {
	case b.Row < a.Row:
		return DirUp
	case b.Row > a.Row:
		return DirDown
	case b.Col < a.Col:
		return DirLeft
	default:
		return DirRight
	}
}

// RenderASCII creates a plain-text diagram of the grid with the given beams drawn over it.
// This is used by the trace command and tests.
//
// Format:
//   - Pieces: emitter=^>v<, mirrors=/ \, target=T, blocker=#
//   - Beam through empty cells: '-' horizontal, '|' vertical, '+' both
//   - Empty cells: '.'
//   - One line per result summarising outcome and points
func RenderASCII(g *Grid, results ...Result) string {
	var sb strings.Builder
	beam := BeamCells(g, results...)

	sb.WriteString("   ")
	for col := 0; col < g.Cols; col++ {
		sb.WriteString(fmt.Sprintf("%d", col%10))
	}
	sb.WriteString("\n")

	for row := 0; row < g.Rows; row++ {
		sb.WriteString(fmt.Sprintf("%2d ", row))
		for col := 0; col < g.Cols; col++ {
			p := P(row, col)
			piece := g.At(p)
			if !piece.IsEmpty() {
				sb.WriteRune(piece.Glyph())
				continue
			}
			mark := beam[p]
			sb.WriteRune(BeamGlyph(mark[0], mark[1]))
		}
		sb.WriteString("\n")
	}

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("beam %v %s: %s after %d steps",
			r.Origin, r.Start, r.Outcome, r.Steps))
		if r.Outcome == OutcomeScored {
			sb.WriteString(fmt.Sprintf(", +%d points at %v", r.Points, r.Hit))
		}
		if r.Outcome == OutcomeAbsorbed {
			sb.WriteString(fmt.Sprintf(", stopped at %v", r.Hit))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatPath renders a path as "(r,c) -> (r,c) -> ...".
func FormatPath(path []Pos) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " -> ")
}
