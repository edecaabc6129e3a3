package othello

import "fmt"

// Size is the side length of the board.
const Size = 8

// Grid is the raw row-major board content, indexed [row][column].
type Grid [Size][Size]CellState

// directions to walk from a move: N, NE, E, SE, S, SW, W, NW.
var directions = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Board holds the cell contents and owns the capture rule.
type Board struct {
	cells Grid
}

// NewBoard returns a board in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset clears the board and places the four starting pieces.
func (b *Board) Reset() {
	b.cells = Grid{}
	mid := Size / 2
	b.cells[mid-1][mid-1] = WhitePiece
	b.cells[mid-1][mid] = BlackPiece
	b.cells[mid][mid-1] = BlackPiece
	b.cells[mid][mid] = WhitePiece
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return Size
}

// IsEmpty reports whether the position is on the board and unoccupied.
func (b *Board) IsEmpty(row, col int) bool {
	return inBounds(row, col) && b.cells[row][col] == Empty
}

// PlayerAt returns the owner of a cell, or NoPlayer for empty or
// off-board positions.
func (b *Board) PlayerAt(row, col int) Player {
	if !inBounds(row, col) {
		return NoPlayer
	}
	return b.cells[row][col].Player()
}

// PlacePiece puts a piece on an empty cell without checking legality.
func (b *Board) PlacePiece(row, col int, p Player) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, row, col)
	}
	if b.cells[row][col] != Empty {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, row, col)
	}
	b.cells[row][col] = CellOf(p)
	return nil
}

// FlipPiece recolors an occupied cell.
func (b *Board) FlipPiece(row, col int, p Player) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, row, col)
	}
	if b.cells[row][col] == Empty {
		return fmt.Errorf("%w: (%d, %d)", ErrEmptyCell, row, col)
	}
	b.cells[row][col] = CellOf(p)
	return nil
}

// IsValidMove reports whether p may play at (row, col): the cell must be
// empty and at least one direction must bracket a run of opponent pieces.
func (b *Board) IsValidMove(row, col int, p Player) bool {
	if p == NoPlayer || !b.IsEmpty(row, col) {
		return false
	}
	opp := p.Opponent()
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if b.PlayerAt(r, c) != opp {
			continue
		}
		r, c = r+d[0], c+d[1]
		for inBounds(r, c) {
			owner := b.PlayerAt(r, c)
			if owner == NoPlayer {
				break
			}
			if owner == p {
				return true
			}
			r, c = r+d[0], c+d[1]
		}
	}
	return false
}

// flipsInDirection collects the opponent run starting next to (row, col).
// The run only counts when it is closed by one of p's pieces.
func (b *Board) flipsInDirection(row, col, dr, dc int, p Player) []Coordinates {
	opp := p.Opponent()
	var run []Coordinates
	r, c := row+dr, col+dc
	for inBounds(r, c) && b.PlayerAt(r, c) == opp {
		run = append(run, Coordinates{Row: r, Column: c})
		r, c = r+dr, c+dc
	}
	if len(run) > 0 && b.PlayerAt(r, c) == p {
		return run
	}
	return nil
}

// FindAllFlippablePieces returns every opponent piece a move by p at
// (row, col) would capture. An occupied or off-board origin captures nothing.
func (b *Board) FindAllFlippablePieces(row, col int, p Player) []Coordinates {
	if p == NoPlayer || !b.IsEmpty(row, col) {
		return nil
	}
	var all []Coordinates
	for _, d := range directions {
		all = append(all, b.flipsInDirection(row, col, d[0], d[1], p)...)
	}
	return all
}

// ExecuteMove validates and applies a move, returning the number of
// captured pieces.
func (b *Board) ExecuteMove(row, col int, p Player) (int, error) {
	if !b.IsValidMove(row, col, p) {
		return 0, fmt.Errorf("%w: %s plays (%d, %d)", ErrIllegalMove, p, row, col)
	}
	flips := b.FindAllFlippablePieces(row, col, p)
	if err := b.PlacePiece(row, col, p); err != nil {
		return 0, err
	}
	for _, f := range flips {
		if err := b.FlipPiece(f.Row, f.Column, p); err != nil {
			return 0, err
		}
	}
	return len(flips), nil
}

// HasValidMoves reports whether p has at least one legal move.
func (b *Board) HasValidMoves(p Player) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsValidMove(row, col, p) {
				return true
			}
		}
	}
	return false
}

// CountPieces returns how many cells p occupies.
func (b *Board) CountPieces(p Player) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p != NoPlayer && b.cells[row][col].Player() == p {
				count++
			}
		}
	}
	return count
}

// Snapshot returns a copy of the grid.
func (b *Board) Snapshot() Grid {
	return b.cells
}

// Restore replaces the grid with a copy of g.
func (b *Board) Restore(g Grid) {
	b.cells = g
}

// RestoreFromSnapshot copies rows into the board. It fails unless rows is
// exactly Size x Size. It is also the bulk setup path for arbitrary
// positions, which bypasses legality checks.
func (b *Board) RestoreFromSnapshot(rows [][]CellState) error {
	if len(rows) != Size {
		return fmt.Errorf("%w: %d rows", ErrInvalidSnapshot, len(rows))
	}
	var g Grid
	for r, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidSnapshot, r, len(row))
		}
		copy(g[r][:], row)
	}
	b.cells = g
	return nil
}

// Rows returns the grid as freshly allocated slices.
func (g Grid) Rows() [][]CellState {
	rows := make([][]CellState, Size)
	for r := range rows {
		rows[r] = make([]CellState, Size)
		copy(rows[r], g[r][:])
	}
	return rows
}
