package othello

import (
	"fmt"
	"math/rand"
	"time"
)

// BoardView is the read-only side of a Board handed out by Game.
type BoardView interface {
	IsEmpty(row, col int) bool
	PlayerAt(row, col int) Player
	CountPieces(p Player) int
	Size() int
	Snapshot() Grid
}

// Game owns a board, whose turn it is, the game status and the undo
// history. The board can only be changed through Game's methods.
type Game struct {
	board      *Board
	current    Player
	status     GameStatus
	totalMoves int
	history    []MoveSnapshot
	rng        *rand.Rand
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used by PlayRandomMove.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// NewGame returns a game in the starting position with Black to move.
func NewGame(opts ...Option) *Game {
	g := &Game{board: NewBoard()}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Reset()
	return g
}

// Reset starts a new game.
func (g *Game) Reset() {
	g.board.Reset()
	g.current = Black
	g.status = InProgress
	g.history = nil
	g.totalMoves = 0
}

// Load replaces the position with rows and hands the move to toMove,
// clearing the history. It is meant for setting up test and analysis
// positions: no legality is checked, but the pass and game-over rules are
// applied to the loaded position right away.
func (g *Game) Load(rows [][]CellState, toMove Player) error {
	if toMove != Black && toMove != White {
		return fmt.Errorf("load: invalid player to move %d", toMove)
	}
	if err := g.board.RestoreFromSnapshot(rows); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	g.history = nil
	g.status = InProgress
	g.current = toMove
	if !g.board.HasValidMoves(toMove) {
		g.advanceTurn(toMove.Opponent())
	}
	return nil
}

// PlayMove plays for the current player at (row, col). elapsedMillis is
// stored with the undo snapshot and never interpreted.
//
// Moves on a finished game, and illegal moves, return InvalidMove and
// change nothing, except that an illegal attempt on a position where
// neither side can move settles the game's status.
func (g *Game) PlayMove(row, col int, elapsedMillis int64) MoveResult {
	if g.status != InProgress {
		return InvalidMove()
	}
	if !g.board.IsValidMove(row, col, g.current) {
		g.settleDeadPosition()
		return InvalidMove()
	}

	g.history = append(g.history, MoveSnapshot{
		Board:         g.board.Snapshot(),
		Player:        g.current,
		ElapsedMillis: elapsedMillis,
	})

	flipped, err := g.board.ExecuteMove(row, col, g.current)
	if err != nil {
		// IsValidMove passed above, so the board broke its own contract.
		panic(fmt.Sprintf("othello: execute after validation: %v", err))
	}
	g.totalMoves++
	g.advanceTurn(g.current.Opponent())

	return MoveResult{
		Valid:        true,
		FlippedCount: flipped,
		Status:       g.status,
		NextPlayer:   g.current,
	}
}

// advanceTurn gives the move to the first player, in turn order starting at
// next, who has a legal move. When nobody can move the game ends and the
// turn pointer stays on the last player tried.
func (g *Game) advanceTurn(next Player) {
	candidate := next
	for i := 0; i < 2; i++ {
		if g.board.HasValidMoves(candidate) {
			g.current = candidate
			return
		}
		candidate = candidate.Opponent()
	}
	g.current = candidate.Opponent()
	g.finish()
}

func (g *Game) settleDeadPosition() {
	if g.board.HasValidMoves(g.current) || g.board.HasValidMoves(g.current.Opponent()) {
		return
	}
	g.finish()
}

func (g *Game) finish() {
	if g.board.CountPieces(Black) == g.board.CountPieces(White) {
		g.status = Draw
	} else {
		g.status = Finished
	}
}

// Undo restores the position before the last move. It returns false when
// there is nothing to undo. Undo always returns the game to InProgress; the
// total move counter is left untouched.
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board.Restore(last.Board)
	g.current = last.Player
	g.status = InProgress
	return true
}

// LastSnapshotElapsedMillis returns the elapsed time stored with the most
// recent snapshot, or 0 without history.
func (g *Game) LastSnapshotElapsedMillis() int64 {
	if len(g.history) == 0 {
		return 0
	}
	return g.history[len(g.history)-1].ElapsedMillis
}

// ValidMoves lists p's legal moves in row-major order.
func (g *Game) ValidMoves(p Player) []Coordinates {
	var moves []Coordinates
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if g.board.IsValidMove(row, col, p) {
				moves = append(moves, Coordinates{Row: row, Column: col})
			}
		}
	}
	return moves
}

// HasValidMoves reports whether p can move.
func (g *Game) HasValidMoves(p Player) bool {
	return g.board.HasValidMoves(p)
}

// FlipsFor returns the pieces a move by the current player would capture,
// without playing it.
func (g *Game) FlipsFor(row, col int) []Coordinates {
	return g.board.FindAllFlippablePieces(row, col, g.current)
}

// Board returns a read-only view of the board.
func (g *Game) Board() BoardView {
	return g.board
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Player {
	return g.current
}

// Status returns the game status.
func (g *Game) Status() GameStatus {
	return g.status
}

// TotalMoves counts every move played since the last reset, including
// moves that were later undone.
func (g *Game) TotalMoves() int {
	return g.totalMoves
}

// HistoryLen returns the number of moves that can be undone.
func (g *Game) HistoryLen() int {
	return len(g.history)
}

// Winner returns the player with more pieces once the game is Finished.
func (g *Game) Winner() (Player, bool) {
	if g.status != Finished {
		return NoPlayer, false
	}
	black, white := g.board.CountPieces(Black), g.board.CountPieces(White)
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return NoPlayer, false
}
