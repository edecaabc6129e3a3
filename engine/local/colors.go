package local

import (
	"termthello/othello"
	"termthello/types"
)

// colorOf converts a player to a BoardState color (0=none, 1=black, 2=white).
func colorOf(p othello.Player) int {
	switch p {
	case othello.Black:
		return types.CellBlack
	case othello.White:
		return types.CellWhite
	}
	return types.CellEmpty
}

// playerOf converts a configured color to a player. Anything but white
// means black.
func playerOf(color int) othello.Player {
	if color == types.CellWhite {
		return othello.White
	}
	return othello.Black
}
