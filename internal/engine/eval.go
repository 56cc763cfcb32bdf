package engine

import "github.com/hailam/chessmask/internal/board"

// Evaluate returns the material balance from c's point of view: the sum of
// c's piece values minus the opponent's. Both kings count, so they cancel.
func Evaluate(g *board.GameState, c board.Color) int {
	p := g.Position()
	score := 0
	for pt := board.King; pt <= board.Pawn; pt++ {
		score += p.Pieces[c][pt].PopCount() * board.PieceValue[pt]
		score -= p.Pieces[c.Other()][pt].PopCount() * board.PieceValue[pt]
	}
	return score
}
