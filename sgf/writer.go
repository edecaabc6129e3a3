// Package sgf implements SGF FF[4] writing and reading for Othello game records.
//
// Records live in memory only. String renders the full SGF text; SZ is always
// 8 and GM[2] marks the game as Othello.
package sgf

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Colors used by Move.Color, matching types.BoardState.
const (
	Black = 1
	White = 2
)

// BoardSize is the only size an Othello record may have.
const BoardSize = 8

// ErrInvalidMove is returned for moves that cannot be written to a record.
var ErrInvalidMove = errors.New("invalid record move")

// Move is a single move node. X is the column and Y the row, both 0-indexed.
// A pass has X == -1 and Y == -1.
type Move struct {
	X, Y  int
	Color int
}

// IsPass reports whether the move is a pass node.
func (m Move) IsPass() bool {
	return m.X == -1 && m.Y == -1
}

// GameRecord tracks a game in progress and renders it as SGF.
type GameRecord struct {
	PlayerBlack string
	PlayerWhite string
	Name        string
	Date        string
	Result      string
	moves       []Move // placed pieces only; passes are derived when rendering
}

// NewGameRecord starts an empty record dated today.
func NewGameRecord(playerBlack, playerWhite, name string) *GameRecord {
	return &GameRecord{
		PlayerBlack: playerBlack,
		PlayerWhite: playerWhite,
		Name:        name,
		Date:        time.Now().Format("2006-01-02"),
		Result:      "?",
	}
}

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,2) -> "dc", (7,7) -> "hh".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

func colorChar(color int) string {
	if color == White {
		return "W"
	}
	return "B"
}

// AddMove appends a placed piece to the record.
func (r *GameRecord) AddMove(x, y, color int) error {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return fmt.Errorf("%w: (%d, %d) off board", ErrInvalidMove, x, y)
	}
	if color != Black && color != White {
		return fmt.Errorf("%w: color %d", ErrInvalidMove, color)
	}
	r.moves = append(r.moves, Move{X: x, Y: y, Color: color})
	return nil
}

// UndoMoves removes the last n placed pieces from the record. A finished
// record becomes unfinished again.
func (r *GameRecord) UndoMoves(n int) {
	if n <= 0 {
		return
	}
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	r.Result = "?"
}

// SetResult sets the SGF RE property from the final piece counts.
func (r *GameRecord) SetResult(black, white int, over bool) {
	r.Result = FormatResult(black, white, over)
}

// FormatResult renders an RE value: "B+n" or "W+n" for the margin, "0" for a
// draw and "?" while the game is running.
func FormatResult(black, white int, over bool) string {
	switch {
	case !over:
		return "?"
	case black > white:
		return fmt.Sprintf("B+%d", black-white)
	case white > black:
		return fmt.Sprintf("W+%d", white-black)
	}
	return "0"
}

// Clone returns an independent copy of the record.
func (r *GameRecord) Clone() *GameRecord {
	c := *r
	c.moves = append([]Move(nil), r.moves...)
	return &c
}

// Len returns the number of placed pieces in the record.
func (r *GameRecord) Len() int {
	return len(r.moves)
}

// Moves returns the move nodes in order, including a pass for the other
// color wherever one color moves twice in a row.
func (r *GameRecord) Moves() []Move {
	var nodes []Move
	prev := White // so a black first move needs no pass
	for _, m := range r.moves {
		if m.Color == prev {
			nodes = append(nodes, Move{X: -1, Y: -1, Color: opposite(m.Color)})
		}
		nodes = append(nodes, m)
		prev = m.Color
	}
	return nodes
}

func opposite(color int) int {
	if color == Black {
		return White
	}
	return Black
}

// String renders the complete SGF text.
func (r *GameRecord) String() string {
	var b strings.Builder

	// Root node
	b.WriteString("(;GM[2]FF[4]CA[UTF-8]")
	b.WriteString("AP[termthello:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", BoardSize))
	b.WriteString(fmt.Sprintf("PB[%s]", escape(r.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escape(r.PlayerWhite)))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("GN[%s]", escape(r.Name)))
	}
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	// Move nodes
	for _, m := range r.Moves() {
		if m.IsPass() {
			b.WriteString(fmt.Sprintf(";%s[]", colorChar(m.Color)))
			continue
		}
		b.WriteString(fmt.Sprintf(";%s[%s]", colorChar(m.Color), sgfCoord(m.X, m.Y)))
	}

	b.WriteString(")\n")
	return b.String()
}

// WriteTo writes the SGF text to w.
func (r *GameRecord) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// escape protects the characters SGF treats specially inside a value.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}
