package laser

import "errors"

var (
	ErrInvalidSize   = errors.New("laser: grid dimensions must be positive")
	ErrOutOfBounds   = errors.New("laser: position out of bounds")
	ErrOccupied      = errors.New("laser: cell already occupied")
	ErrEmptyCell     = errors.New("laser: no piece at position")
	ErrEmptyPiece    = errors.New("laser: cannot place an empty piece")
	ErrFixedPiece    = errors.New("laser: piece is fixed")
	ErrNotEmitter    = errors.New("laser: piece is not an emitter")
	ErrNoEmitter     = errors.New("laser: no emitter on the grid")
	ErrCycleDetected = errors.New("laser: cycle detected")
)
