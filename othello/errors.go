package othello

import "errors"

// Errors returned by Board operations. Apart from ErrIllegalMove they signal
// misuse of the board rather than an expected outcome of play.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrCellOccupied    = errors.New("cell occupied")
	ErrEmptyCell       = errors.New("cannot flip empty cell")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidSnapshot = errors.New("invalid snapshot size")
)
