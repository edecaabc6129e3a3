package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a (row, column) pair on the board, both 0-indexed.
type Coordinates struct {
	Row    int
	Column int
}

// String renders the position in standard Othello notation: a column letter
// a-h followed by a row number 1-8 counted from the top, so (2,3) is "d3".
func (c Coordinates) String() string {
	if !inBounds(c.Row, c.Column) {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(c.Column), c.Row+1)
}

// ParseCoordinates is the inverse of Coordinates.String.
func ParseCoordinates(s string) (Coordinates, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	col := int(s[0] - 'a')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	row--
	if !inBounds(row, col) {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return Coordinates{Row: row, Column: col}, nil
}

// GameStatus is the lifecycle state of a game.
type GameStatus int

const (
	InProgress GameStatus = iota
	Finished
	Draw
)

func (s GameStatus) String() string {
	switch s {
	case Finished:
		return "Finished"
	case Draw:
		return "Draw"
	}
	return "InProgress"
}

// MoveResult describes the outcome of a PlayMove call. An invalid result
// carries no flips, InProgress and NoPlayer: the attempt changed nothing.
type MoveResult struct {
	Valid        bool
	FlippedCount int
	Status       GameStatus
	NextPlayer   Player
}

// InvalidMove is the result of a rejected move.
func InvalidMove() MoveResult {
	return MoveResult{Status: InProgress, NextPlayer: NoPlayer}
}

// MoveSnapshot is the state saved right before a move is applied.
type MoveSnapshot struct {
	Board         Grid
	Player        Player
	ElapsedMillis int64
}

// Difficulty selects the robot's move policy.
type Difficulty int

const (
	// Easy plays a uniformly random legal move.
	Easy Difficulty = iota
	// Hard plays the legal move flipping the most pieces.
	Hard
)

func (d Difficulty) String() string {
	if d == Hard {
		return "hard"
	}
	return "easy"
}

// ParseDifficulty accepts "easy" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}
