package lazer

import (
	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// state is everything undo, redo and restart restore.
// The cursor and the held piece are not part of it.
type state struct {
	grid       *laser.Grid
	palette    Palette
	score      int
	shots      int
	dice       []int
	boardIndex int
	startScore int
	won        bool
}

func (s state) clone() state {
	c := s
	c.grid = s.grid.Clone()
	c.palette = s.palette.Clone()
	c.dice = append([]int(nil), s.dice...)
	return c
}

// History is a bounded undo/redo stack of game states.
type History struct {
	undo  []state
	redo  []state
	depth int
}

// NewHistory creates a history keeping at most depth undo steps.
// A depth of zero disables undo.
func NewHistory(depth int) *History {
	return &History{depth: depth}
}

// Push records the state before a mutating command and drops the redo branch.
func (h *History) Push(s state) {
	if h.depth <= 0 {
		return
	}
	h.undo = append(h.undo, s.clone())
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = h.redo[:0]
}

// Undo returns the previous state, saving current for Redo.
func (h *History) Undo(current state) (state, bool) {
	if len(h.undo) == 0 {
		return state{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.clone())
	return prev, true
}

// Redo returns the state undone most recently, saving current for Undo.
func (h *History) Redo(current state) (state, bool) {
	if len(h.redo) == 0 {
		return state{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.clone())
	return next, true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Len returns the number of undo and redo steps available.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
