package lazer

import (
	"fmt"

	"github.com/vovakirdan/lazer-showdown/internal/config"
	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/laser/boards"
)

// Entry is one slot of the palette: a piece template and how many are left.
type Entry struct {
	Piece laser.Piece
	Stock int // config.Unlimited never runs out
}

// Available reports whether the entry can still be placed.
func (e Entry) Available() bool {
	return e.Stock != 0
}

// StockLabel formats the remaining count for display.
func (e Entry) StockLabel() string {
	if e.Stock == config.Unlimited {
		return "∞"
	}
	return fmt.Sprintf("x%d", e.Stock)
}

// Label describes the piece for display.
func (e Entry) Label() string {
	switch e.Piece.Kind {
	case laser.KindEmitter:
		return "laser"
	case laser.KindMirrorForward:
		return "mirror /"
	case laser.KindMirrorBackward:
		return `mirror \`
	case laser.KindTarget:
		return fmt.Sprintf("%d pts", e.Piece.Value)
	default:
		return e.Piece.Kind.String()
	}
}

// Palette is the stock of pieces the player can place.
type Palette struct {
	Entries  []Entry
	Selected int
}

// Clone returns an independent copy.
func (p Palette) Clone() Palette {
	entries := make([]Entry, len(p.Entries))
	copy(entries, p.Entries)
	return Palette{Entries: entries, Selected: p.Selected}
}

// Current returns the selected entry.
func (p Palette) Current() (Entry, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Entries) {
		return Entry{}, false
	}
	return p.Entries[p.Selected], true
}

// Cycle moves the selection by delta, wrapping around.
func (p *Palette) Cycle(delta int) {
	p.Selected = core.Wrap(p.Selected+delta, len(p.Entries))
}

// take consumes one piece of the selected entry.
func (p *Palette) take() (laser.Piece, bool) {
	e, ok := p.Current()
	if !ok || !e.Available() {
		return laser.Piece{}, false
	}
	if e.Stock > 0 {
		p.Entries[p.Selected].Stock--
	}
	return e.Piece, true
}

// give returns a removed piece to its matching entry, adding one if none matches.
func (p *Palette) give(piece laser.Piece) {
	for i, e := range p.Entries {
		if e.Piece.Kind != piece.Kind || e.Piece.Value != piece.Value {
			continue
		}
		if e.Stock != config.Unlimited {
			p.Entries[i].Stock++
		}
		return
	}
	template := piece
	template.Fixed = false
	if template.Kind == laser.KindEmitter {
		template.Dir = laser.DirUp
	}
	p.Entries = append(p.Entries, Entry{Piece: template, Stock: 1})
}

// sandboxPalette builds the palette for the free-play board.
func sandboxPalette(cfg config.PaletteConfig) Palette {
	var p Palette
	p.add(laser.Emitter(laser.DirUp), cfg.Emitters)
	p.add(laser.Forward(), cfg.Forward)
	p.add(laser.Backward(), cfg.Backward)
	p.add(laser.Blocker(), cfg.Blockers)
	p.addTargets(cfg.Targets)
	return p
}

// boardPalette builds the palette for a puzzle board, with extra mirrors added
// to limited mirror stock.
func boardPalette(bp boards.Palette, extraMirrors int) Palette {
	var p Palette
	p.add(laser.Emitter(laser.DirUp), bp.Emitters)
	p.add(laser.Forward(), addStock(bp.Forward, extraMirrors))
	p.add(laser.Backward(), addStock(bp.Backward, extraMirrors))
	p.add(laser.Blocker(), bp.Blockers)
	p.addTargets(bp.Targets)
	return p
}

func addStock(n, extra int) int {
	if n < 0 {
		return config.Unlimited
	}
	return n + extra
}

// add appends an entry; empty stock is omitted, negative stock is unlimited.
func (p *Palette) add(piece laser.Piece, stock int) {
	if stock == 0 {
		return
	}
	if stock < 0 {
		stock = config.Unlimited
	}
	p.Entries = append(p.Entries, Entry{Piece: piece, Stock: stock})
}

// addTargets groups target values, keeping first-seen order.
func (p *Palette) addTargets(values []int) {
	for _, v := range values {
		if v <= 0 {
			continue
		}
		found := false
		for i, e := range p.Entries {
			if e.Piece.Kind == laser.KindTarget && e.Piece.Value == v {
				p.Entries[i].Stock++
				found = true
				break
			}
		}
		if !found {
			p.Entries = append(p.Entries, Entry{Piece: laser.Target(v), Stock: 1})
		}
	}
}
