package local

import (
	"termthello/othello"
	"termthello/types"
)

// StateOf describes a game as a BoardState. Valid moves are listed only
// while the game is running. LastMove is unset and the clock reads zero.
func StateOf(game *othello.Game) *types.BoardState {
	board := game.Board()
	size := board.Size()
	state := types.NewBoardState(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			state.Board[y][x] = colorOf(board.PlayerAt(y, x))
		}
	}

	state.MoveNumber = game.HistoryLen()
	state.PlayerToMove = colorOf(game.CurrentPlayer())
	state.BlackCount = board.CountPieces(othello.Black)
	state.WhiteCount = board.CountPieces(othello.White)

	switch game.Status() {
	case othello.Finished:
		state.Phase = types.PhaseFinished
	case othello.Draw:
		state.Phase = types.PhaseDraw
	default:
		for _, m := range game.ValidMoves(game.CurrentPlayer()) {
			state.Hints = append(state.Hints, types.BoardPos{X: m.Column, Y: m.Row})
		}
	}
	state.Outcome = Outcome(game.Status(), state.BlackCount, state.WhiteCount)
	return state
}
