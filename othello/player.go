// Package othello implements the Othello (Reversi) rules engine: the 8x8
// board, the bracket-and-flip capture rule, turn and pass resolution, undo
// history and a one-ply robot opponent.
//
// The engine is synchronous and does no I/O. A Game is meant for a single
// owner; callers sharing one across goroutines must serialize access.
package othello

// Player identifies one of the two sides. The zero value NoPlayer stands for
// "nobody", e.g. the owner of an empty cell.
type Player int

const (
	NoPlayer Player = iota
	Black
	White
)

// Opponent returns the other side. NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// CellState is the content of a single board square.
type CellState int

const (
	Empty CellState = iota
	BlackPiece
	WhitePiece
)

// CellOf returns the cell state a player's piece occupies.
func CellOf(p Player) CellState {
	switch p {
	case Black:
		return BlackPiece
	case White:
		return WhitePiece
	}
	return Empty
}

// Player returns the owner of the cell, or NoPlayer when it is empty.
func (c CellState) Player() Player {
	switch c {
	case BlackPiece:
		return Black
	case WhitePiece:
		return White
	}
	return NoPlayer
}

func (c CellState) String() string {
	switch c {
	case BlackPiece:
		return "Black"
	case WhitePiece:
		return "White"
	}
	return "Empty"
}
