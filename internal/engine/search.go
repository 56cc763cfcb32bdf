package engine

import "github.com/hailam/chessmask/internal/board"

const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// Searcher runs fixed-depth negamax over material and counts the nodes it
// visits. A Searcher is not safe for concurrent use.
type Searcher struct {
	nodes uint64
}

// NewSearcher creates a searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Nodes returns the number of positions visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Negamax searches depth plies for color c and returns the best move and
// its score from c's point of view. Ties keep the first move in generation
// order. With no legal moves it returns NoMove and a mate or stalemate score.
func (s *Searcher) Negamax(g *board.GameState, depth int, c board.Color) (board.Move, int) {
	return s.negamax(g, depth, 0, c)
}

func (s *Searcher) negamax(g *board.GameState, depth, ply int, c board.Color) (board.Move, int) {
	s.nodes++

	if depth <= 0 || ply >= MaxPly {
		return board.NoMove, Evaluate(g, c)
	}

	moves := g.LegalMoves(c)
	if len(moves) == 0 {
		if g.Masks(c).Checkers != 0 {
			return board.NoMove, -MateScore + ply
		}
		return board.NoMove, 0
	}

	best, bestScore := board.NoMove, -Infinity
	for _, m := range moves {
		_, score := s.negamax(g.ApplyMove(m), depth-1, ply+1, c.Other())
		score = -score
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, bestScore
}
