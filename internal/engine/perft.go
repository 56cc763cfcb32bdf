package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hailam/chessmask/internal/board"
	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree below g at depth.
// Perft(g, 0) is 1.
func Perft(g *board.GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := g.LegalMoves(g.Active())
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		nodes += Perft(g.ApplyMove(m), depth-1)
	}
	return nodes
}

// PerftHashed is Perft with subtree counts memoized in pt.
func PerftHashed(g *board.GameState, depth int, pt *PerftTable) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := g.LegalMoves(g.Active())
	if depth == 1 {
		return uint64(len(moves))
	}
	if nodes, ok := pt.Probe(g.Hash(), depth); ok {
		return nodes
	}

	var nodes uint64
	for _, m := range moves {
		nodes += PerftHashed(g.ApplyMove(m), depth-1, pt)
	}
	pt.Store(g.Hash(), depth, nodes)
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the perft count below each legal root move, in generation
// order.
func Divide(g *board.GameState, depth int) []DivideEntry {
	moves := g.LegalMoves(g.Active())
	out := make([]DivideEntry, len(moves))
	for i, m := range moves {
		out[i] = DivideEntry{Move: m, Nodes: Perft(g.ApplyMove(m), depth-1)}
	}
	return out
}

// ParallelPerft splits the tree at the root and counts each subtree on its
// own goroutine, at most workers at a time (GOMAXPROCS when workers <= 0).
// pt may be nil. Cancelling ctx stops subtrees that have not started yet.
// depth must be at least 1.
func ParallelPerft(ctx context.Context, g *board.GameState, depth, workers int, pt *PerftTable) ([]DivideEntry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("parallel perft needs depth >= 1, got %d", depth)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := g.LegalMoves(g.Active())
	out := make([]DivideEntry, len(moves))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, m := range moves {
		i, m := i, m // per-iteration copies (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := g.ApplyMove(m)
			var nodes uint64
			if pt != nil {
				nodes = PerftHashed(child, depth-1, pt)
			} else {
				nodes = Perft(child, depth-1)
			}
			out[i] = DivideEntry{Move: m, Nodes: nodes}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Total sums the node counts of a divide.
func Total(entries []DivideEntry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}
