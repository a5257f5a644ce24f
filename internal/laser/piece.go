package laser

import (
	"fmt"
	"strings"
)

// Kind identifies the type of piece occupying a cell.
type Kind uint8

const (
	KindEmpty          Kind = iota
	KindEmitter             // Fires the beam
	KindMirrorForward       // '/' mirror
	KindMirrorBackward      // '\' mirror
	KindTarget              // Scores when the beam reaches it
	KindBlocker             // Absorbs the beam without scoring
)

// String returns the name used in board files.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEmitter:
		return "emitter"
	case KindMirrorForward:
		return "forward"
	case KindMirrorBackward:
		return "backward"
	case KindTarget:
		return "target"
	case KindBlocker:
		return "blocker"
	default:
		return "unknown"
	}
}

// ParseKind parses a piece kind name. Mirror glyphs "/" and "\" are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emitter", "laser":
		return KindEmitter, nil
	case "forward", "mirror_forward", "/":
		return KindMirrorForward, nil
	case "backward", "mirror_backward", `\`:
		return KindMirrorBackward, nil
	case "target", "point":
		return KindTarget, nil
	case "blocker", "wall":
		return KindBlocker, nil
	}
	return KindEmpty, fmt.Errorf("unknown piece kind %q", s)
}

// IsMirror reports whether the kind redirects the beam.
func (k Kind) IsMirror() bool {
	return k == KindMirrorForward || k == KindMirrorBackward
}

// Piece is a single placed piece. The zero value is an empty cell.
type Piece struct {
	Kind  Kind
	Dir   Dir  // Emitter only
	Value int  // Target only: points awarded on hit
	Fixed bool // Part of a puzzle layout; cannot be moved or removed
}

// Emitter returns an emitter piece facing d.
func Emitter(d Dir) Piece {
	return Piece{Kind: KindEmitter, Dir: d}
}

// Forward returns a '/' mirror.
func Forward() Piece {
	return Piece{Kind: KindMirrorForward}
}

// Backward returns a '\' mirror.
func Backward() Piece {
	return Piece{Kind: KindMirrorBackward}
}

// Target returns a target worth value points.
func Target(value int) Piece {
	return Piece{Kind: KindTarget, Value: value}
}

// Blocker returns a piece that absorbs the beam.
func Blocker() Piece {
	return Piece{Kind: KindBlocker}
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == KindEmpty
}

// Glyph returns the single character used in ASCII diagrams.
func (p Piece) Glyph() rune {
	switch p.Kind {
	case KindEmitter:
		return p.Dir.Arrow()
	case KindMirrorForward:
		return '/'
	case KindMirrorBackward:
		return '\\'
	case KindTarget:
		return 'T'
	case KindBlocker:
		return '#'
	default:
		return '.'
	}
}

// Reflect returns the beam direction after entering a mirror of kind k while travelling in d.
// Non-mirror kinds leave the direction unchanged.
//
//	'/':  Up->Right, Right->Up, Down->Left, Left->Down
//	'\':  Up->Left,  Left->Up,  Down->Right, Right->Down
func Reflect(k Kind, d Dir) Dir {
	switch k {
	case KindMirrorForward:
		switch d {
		case DirUp:
			return DirRight
		case DirRight:
			return DirUp
		case DirDown:
			return DirLeft
		case DirLeft:
			return DirDown
		}
	case KindMirrorBackward:
		switch d {
		case DirUp:
			return DirLeft
		case DirLeft:
			return DirUp
		case DirDown:
			return DirRight
		case DirRight:
			return DirDown
		}
	}
	return d
}
