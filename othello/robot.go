package othello

// PlayRandomMove plays a uniformly random legal move for the current
// player. It returns false when the game is over or there is no legal move.
func (g *Game) PlayRandomMove(elapsedMillis int64) (Coordinates, bool) {
	if g.status != InProgress {
		return Coordinates{}, false
	}
	moves := g.ValidMoves(g.current)
	if len(moves) == 0 {
		return Coordinates{}, false
	}
	choice := moves[g.rng.Intn(len(moves))]
	if res := g.PlayMove(choice.Row, choice.Column, elapsedMillis); !res.Valid {
		return Coordinates{}, false
	}
	return choice, true
}

// PlayBestMove plays the legal move that flips the most pieces. Ties go to
// the first such move in row-major order.
func (g *Game) PlayBestMove(elapsedMillis int64) (Coordinates, bool) {
	if g.status != InProgress {
		return Coordinates{}, false
	}
	best, bestFlips := Coordinates{}, -1
	for _, m := range g.ValidMoves(g.current) {
		n := len(g.board.FindAllFlippablePieces(m.Row, m.Column, g.current))
		if n > bestFlips {
			best, bestFlips = m, n
		}
	}
	if bestFlips < 0 {
		return Coordinates{}, false
	}
	if res := g.PlayMove(best.Row, best.Column, elapsedMillis); !res.Valid {
		return Coordinates{}, false
	}
	return best, true
}

// PlayRobotMove plays one move for the current player using the policy
// named by d.
func (g *Game) PlayRobotMove(d Difficulty, elapsedMillis int64) (Coordinates, bool) {
	if d == Hard {
		return g.PlayBestMove(elapsedMillis)
	}
	return g.PlayRandomMove(elapsedMillis)
}
