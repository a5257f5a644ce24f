package lazer

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// Layout constants, in screen cells.
const (
	boardX     = 1
	boardY     = 2
	cellWidth  = 2
	panelGap   = 2
	panelWidth = 22
)

// Piece colors
var pieceColors = map[laser.Kind]core.Color{
	laser.KindEmitter:        core.ColorBrightRed,
	laser.KindMirrorForward:  core.ColorCyan,
	laser.KindMirrorBackward: core.ColorCyan,
	laser.KindTarget:         core.ColorYellow,
	laser.KindBlocker:        core.ColorGray,
}

func (g *Game) boardRect() core.Rect {
	return core.NewRect(boardX, boardY, g.grid.Cols*cellWidth+3, g.grid.Rows+2)
}

// minScreen is the smallest terminal that fits the board, side panel and status line.
func (g *Game) minScreen() (int, int) {
	r := g.boardRect()
	return r.Right() + panelGap + panelWidth, r.Bottom() + 2
}

// cellXY maps a grid cell to screen coordinates.
func (g *Game) cellXY(p laser.Pos) (int, int) {
	return boardX + 2 + p.Col*cellWidth, boardY + 1 + p.Row
}

// Render draws the board, palette panel and status line.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		w, h := g.minScreen()
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", w, h), core.ColorGray)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderBeam(dst)
	g.renderCursor(dst)
	g.renderPanel(dst)

	statusColor := core.ColorWhite
	if g.won {
		statusColor = core.ColorBrightGreen
	}
	dst.DrawTextWithColor(boardX, g.boardRect().Bottom(), g.status, statusColor)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextWithColor(boardX, 0, "LAZER SHOWDOWN", core.ColorBrightRed)
	hud := fmt.Sprintf("Score: %d  Shots: %d", g.score, g.shots)
	dst.DrawTextWithColor(boardX+16, 0, hud, core.ColorBrightYellow)

	if b, ok := g.CurrentBoard(); ok {
		label := fmt.Sprintf("Board %d/%d: %s", g.boardIndex+1, len(g.boards), b.Name)
		dst.DrawTextWithColor(boardX, 1, label, core.ColorCyan)
	} else {
		dst.DrawTextWithColor(boardX, 1, "Sandbox", core.ColorCyan)
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.boardRect(), core.ColorBlue)

	for row := 0; row < g.grid.Rows; row++ {
		for col := 0; col < g.grid.Cols; col++ {
			p := laser.P(row, col)
			x, y := g.cellXY(p)
			piece := g.grid.At(p)
			if piece.IsEmpty() {
				dst.SetWithColor(x, y, '·', core.ColorGray)
				continue
			}
			color := pieceColors[piece.Kind]
			if piece.Fixed && piece.Kind != laser.KindTarget {
				color = core.ColorWhite
			}
			dst.SetWithColor(x, y, piece.Glyph(), color)
		}
	}
}

func (g *Game) renderBeam(dst *core.Screen) {
	if g.beam == nil {
		return
	}
	visible := g.beam.visible()
	for p, mark := range laser.BeamCells(g.grid, visible...) {
		x, y := g.cellXY(p)
		dst.SetWithColor(x, y, laser.BeamGlyph(mark[0], mark[1]), core.ColorRed)
	}

	if !g.beam.fullyDrawn() {
		return
	}
	for _, r := range g.beam.results {
		switch r.Outcome {
		case laser.OutcomeScored:
			x, y := g.cellXY(r.Hit)
			dst.SetWithColor(x, y, '*', core.ColorBrightYellow)
		case laser.OutcomeCycleDetected:
			x, y := g.cellXY(r.Last())
			dst.SetWithColor(x, y, '@', core.ColorMagenta)
		}
	}
}

func (g *Game) renderCursor(dst *core.Screen) {
	x, y := g.cellXY(g.cursor)
	color := core.ColorBrightGreen
	if g.held != nil {
		color = core.ColorMagenta
		dst.SetWithColor(x, y, g.held.Glyph(), core.ColorMagenta)
	}
	dst.SetWithColor(x-1, y, '[', color)
	dst.SetWithColor(x+1, y, ']', color)
}

func (g *Game) renderPanel(dst *core.Screen) {
	x := g.boardRect().Right() + panelGap
	y := boardY

	dst.DrawTextWithColor(x, y, "Palette", core.ColorWhite)
	y++
	for i, e := range g.palette.Entries {
		marker := "  "
		if i == g.palette.Selected {
			marker = "> "
		}
		color := pieceColors[e.Piece.Kind]
		if !e.Available() {
			color = core.ColorGray
		}
		line := fmt.Sprintf("%s%c %-9s %s", marker, e.Piece.Glyph(), e.Label(), e.StockLabel())
		dst.DrawTextWithColor(x, y, line, color)
		y++
	}

	y++
	if len(g.dice) > 0 {
		faces := make([]string, len(g.dice))
		for i, d := range g.dice {
			if d == 0 {
				faces[i] = "[ ]"
			} else {
				faces[i] = fmt.Sprintf("[%d]", d)
			}
		}
		dst.DrawTextWithColor(x, y, "Dice "+strings.Join(faces, ""), core.ColorWhite)
		y++
	}

	undo, redo := g.history.Len()
	dst.DrawTextWithColor(x, y, fmt.Sprintf("Undo %d  Redo %d", undo, redo), core.ColorGray)
	y++

	if g.held != nil {
		dst.DrawTextWithColor(x, y, fmt.Sprintf("Holding %c", g.held.Glyph()), core.ColorMagenta)
	}
}
