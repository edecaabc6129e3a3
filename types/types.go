// Package types contains shared data structures for termthello.
package types

import (
	"encoding/json"
	"fmt"
)

// Cell values used in BoardState.Board and PlayerToMove.
const (
	CellEmpty = 0
	CellBlack = 1
	CellWhite = 2
)

// Game phases.
const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
	PhaseDraw     = "draw"
)

// BoardState represents the complete state of an Othello board as seen by
// the UI. Board is indexed as Board[y][x] where 0=empty, 1=black, 2=white.
type BoardState struct {
	MoveNumber   int     `json:"move_number"`
	PlayerToMove int     `json:"player_to_move"` // 1=black, 2=white
	Phase        string  `json:"phase"`          // "playing", "finished", "draw"
	Board        [][]int `json:"board"`
	Outcome      string  `json:"outcome"`
	LastMove     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
	BlackCount    int        `json:"black_count"`
	WhiteCount    int        `json:"white_count"`
	Hints         []BoardPos `json:"hints,omitempty"`
	ElapsedMillis int64      `json:"elapsed_ms"`
}

// Finished returns true if the game is over, drawn or not.
func (b *BoardState) Finished() bool {
	return b.Phase == PhaseFinished || b.Phase == PhaseDraw
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// IsHint reports whether (x, y) is one of the legal moves listed in Hints.
func (b *BoardState) IsHint(x, y int) bool {
	for _, h := range b.Hints {
		if h.X == x && h.Y == y {
			return true
		}
	}
	return false
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// MarshalJSON writes BoardPos as a JSON array [x, y].
func (p BoardPos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON allows BoardPos to be unmarshaled from a JSON array [x, y].
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []float64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("board position needs 2 values, got %d", len(v))
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// NewBoardState creates a new empty board of the given size.
func NewBoardState(size int) *BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return &BoardState{
		MoveNumber:   0,
		PlayerToMove: CellBlack, // Black plays first
		Phase:        PhasePlaying,
		Board:        board,
		LastMove: struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{X: -1, Y: -1},
	}
}

// Copy returns a deep copy, safe to hand to another goroutine.
func (b *BoardState) Copy() *BoardState {
	c := *b
	c.Board = make([][]int, len(b.Board))
	for i, row := range b.Board {
		c.Board[i] = append([]int(nil), row...)
	}
	c.Hints = append([]BoardPos(nil), b.Hints...)
	return &c
}
