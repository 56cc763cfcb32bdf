package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hailam/chessmask/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int // Fixed depth; 0 uses DefaultDepth
}

// DefaultDepth is the search depth used when no limit is given.
const DefaultDepth = 4

// Cache persists perft and search results between runs, keyed by position
// hash and depth.
type Cache interface {
	LoadPerft(hash uint64, depth int) (uint64, bool, error)
	SavePerft(hash uint64, depth int, fen string, nodes uint64) error
	LoadSearch(hash uint64, depth int) (move string, score int, ok bool, err error)
	SaveSearch(hash uint64, depth int, fen string, move string, score int) error
}

// Engine runs searches and perft counts over shared lookup tables.
type Engine struct {
	tables   *board.Tables
	searcher *Searcher
	pt       *PerftTable
	cache    Cache
	workers  int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a perft hash table of the given size in MB.
// A size of 0 disables perft memoization.
func NewEngine(perftTableMB int) *Engine {
	e := &Engine{
		tables:   board.NewTables(),
		searcher: NewSearcher(),
	}
	if perftTableMB > 0 {
		e.pt = NewPerftTable(perftTableMB)
	}
	return e
}

// Tables returns the lookup tables positions for this engine should use.
func (e *Engine) Tables() *board.Tables {
	return e.tables
}

// SetCache attaches a persistent result cache. nil detaches it.
func (e *Engine) SetCache(c Cache) {
	e.cache = c
}

// SetWorkers sets how many root subtrees perft counts at once.
// Values below 2 count sequentially.
func (e *Engine) SetWorkers(n int) {
	e.workers = n
}

// Clear empties the perft table.
func (e *Engine) Clear() {
	if e.pt != nil {
		e.pt.Clear()
	}
}

// PerftHitRate reports the perft table hit rate in permille since the last
// Clear, or 0 without a table.
func (e *Engine) PerftHitRate() int {
	if e.pt == nil {
		return 0
	}
	return e.pt.HitRate()
}

// Search runs one fixed-depth negamax and returns the best move for the side
// to move with its score. OnInfo is called once when the search completes.
func (e *Engine) Search(g *board.GameState, limits SearchLimits) (board.Move, int, error) {
	depth := limits.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}

	if e.cache != nil {
		s, score, ok, err := e.cache.LoadSearch(g.Hash(), depth)
		if err != nil {
			return board.NoMove, 0, err
		}
		if ok {
			if s == board.NoMove.String() {
				return board.NoMove, score, nil
			}
			if m, err := g.ParseMove(s); err == nil {
				e.report(SearchInfo{Depth: depth, Score: score, PV: []board.Move{m}})
				return m, score, nil
			}
		}
	}

	e.searcher.Reset()
	startTime := time.Now()

	bestMove, bestScore := e.searcher.Negamax(g, depth, g.Active())

	info := SearchInfo{
		Depth: depth,
		Score: bestScore,
		Nodes: e.searcher.Nodes(),
		Time:  time.Since(startTime),
	}
	if bestMove != board.NoMove {
		info.PV = []board.Move{bestMove}
	}
	e.report(info)

	if e.cache != nil {
		if err := e.cache.SaveSearch(g.Hash(), depth, g.FEN(), bestMove.String(), bestScore); err != nil {
			return bestMove, bestScore, err
		}
	}
	return bestMove, bestScore, nil
}

func (e *Engine) report(info SearchInfo) {
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
}

// Perft counts leaf nodes at depth, consulting the persistent cache first.
func (e *Engine) Perft(ctx context.Context, g *board.GameState, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	if e.cache != nil {
		nodes, ok, err := e.cache.LoadPerft(g.Hash(), depth)
		if err != nil {
			return 0, err
		}
		if ok {
			return nodes, nil
		}
	}

	var nodes uint64
	if e.workers > 1 {
		entries, err := ParallelPerft(ctx, g, depth, e.workers, e.pt)
		if err != nil {
			return 0, err
		}
		nodes = Total(entries)
	} else if e.pt != nil {
		nodes = PerftHashed(g, depth, e.pt)
	} else {
		nodes = Perft(g, depth)
	}

	if e.cache != nil {
		if err := e.cache.SavePerft(g.Hash(), depth, g.FEN(), nodes); err != nil {
			return nodes, fmt.Errorf("saving perft result: %w", err)
		}
	}
	return nodes, nil
}

// Divide returns per-root-move perft counts.
func (e *Engine) Divide(ctx context.Context, g *board.GameState, depth int) ([]DivideEntry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("divide needs depth >= 1, got %d", depth)
	}
	return ParallelPerft(ctx, g, depth, max(e.workers, 1), e.pt)
}

// Evaluate returns the static evaluation for the side to move.
func (e *Engine) Evaluate(g *board.GameState) int {
	return Evaluate(g, g.Active())
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + strconv.Itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + strconv.Itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
