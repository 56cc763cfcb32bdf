package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/hailam/chessmask/internal/board"
)

var tables = board.NewTables()

func mustState(t testing.TB, fen string) *board.GameState {
	t.Helper()
	g, err := board.FromFEN(tables, fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return g
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		fen   string
		white int
	}{
		{board.StartFEN, 0},
		{"4k3/8/8/8/8/8/8/3QK3 w - - 0 1", 900},
		{"4k3/pppp4/8/8/8/8/8/R3K3 b - - 0 1", 100},
		{"rn2k3/8/8/8/8/8/8/4K3 w - - 0 1", -820},
	}

	for _, tc := range tests {
		g := mustState(t, tc.fen)
		if got := Evaluate(g, board.White); got != tc.white {
			t.Errorf("%s: Evaluate(white) = %d, want %d", tc.fen, got, tc.white)
		}
		if got := Evaluate(g, board.Black); got != -tc.white {
			t.Errorf("%s: Evaluate(black) = %d, want %d", tc.fen, got, -tc.white)
		}
	}
}

func TestNegamax(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		move  string
		score int
	}{
		{"takes hanging queen", "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", 1, "d1d5", 500},
		{"finds mate in one", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 2, "a1a8", MateScore - 1},
		{"first move wins ties", board.StartFEN, 1, "b1a3", 0},
		{"static at depth zero", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", 0, "0000", 900},
		{"checkmated", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", 3, "0000", -MateScore},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 3, "0000", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustState(t, tc.fen)
			s := NewSearcher()
			m, score := s.Negamax(g, tc.depth, g.Active())
			if m.String() != tc.move || score != tc.score {
				t.Errorf("Negamax = %s %d, want %s %d", m, score, tc.move, tc.score)
			}
			if s.Nodes() == 0 {
				t.Error("no nodes counted")
			}
		})
	}
}

func TestPerftVariants(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	g := mustState(t, kiwipete)

	if got := Perft(g, 0); got != 1 {
		t.Errorf("Perft(0) = %d", got)
	}
	if got := Perft(g, 2); got != 2039 {
		t.Errorf("Perft(2) = %d, want 2039", got)
	}
	if got := PerftHashed(g, 3, NewPerftTable(1)); got != 97862 {
		t.Errorf("PerftHashed(3) = %d, want 97862", got)
	}

	seq := Divide(g, 3)
	par, err := ParallelPerft(context.Background(), g, 3, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 48 || len(par) != len(seq) {
		t.Fatalf("divide sizes %d %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("entry %d: %v vs %v", i, seq[i], par[i])
		}
	}
	if Total(par) != 97862 {
		t.Errorf("Total = %d, want 97862", Total(par))
	}
}

func TestParallelPerftHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParallelPerft(ctx, board.NewStartState(tables), 3, 2, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type memCache struct {
	perft  map[[2]uint64]uint64
	search map[[2]uint64]string
	scores map[[2]uint64]int
	saves  int
}

func newMemCache() *memCache {
	return &memCache{
		perft:  map[[2]uint64]uint64{},
		search: map[[2]uint64]string{},
		scores: map[[2]uint64]int{},
	}
}

func (c *memCache) LoadPerft(hash uint64, depth int) (uint64, bool, error) {
	n, ok := c.perft[[2]uint64{hash, uint64(depth)}]
	return n, ok, nil
}

func (c *memCache) SavePerft(hash uint64, depth int, fen string, nodes uint64) error {
	c.saves++
	c.perft[[2]uint64{hash, uint64(depth)}] = nodes
	return nil
}

func (c *memCache) LoadSearch(hash uint64, depth int) (string, int, bool, error) {
	k := [2]uint64{hash, uint64(depth)}
	m, ok := c.search[k]
	return m, c.scores[k], ok, nil
}

func (c *memCache) SaveSearch(hash uint64, depth int, fen, move string, score int) error {
	c.saves++
	k := [2]uint64{hash, uint64(depth)}
	c.search[k] = move
	c.scores[k] = score
	return nil
}

func TestEnginePerftUsesCache(t *testing.T) {
	eng := NewEngine(1)
	cache := newMemCache()
	eng.SetCache(cache)
	eng.SetWorkers(2)

	g := board.NewStartState(eng.Tables())
	n, err := eng.Perft(context.Background(), g, 3)
	if err != nil || n != 8902 {
		t.Fatalf("Perft = %d, %v", n, err)
	}

	cache.perft[[2]uint64{g.Hash(), 3}] = 42
	if n, _ := eng.Perft(context.Background(), g, 3); n != 42 {
		t.Errorf("second Perft = %d, want cached 42", n)
	}
	if cache.saves != 1 {
		t.Errorf("saves = %d, want 1", cache.saves)
	}
}

func TestEnginePerftHitRate(t *testing.T) {
	eng := NewEngine(1)
	if eng.PerftHitRate() != 0 {
		t.Fatalf("fresh table hit rate = %d", eng.PerftHitRate())
	}

	// King walks transpose from the third ply on.
	g := mustState(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	want := Perft(g, 5)
	if n, err := eng.Perft(context.Background(), g, 5); err != nil || n != want {
		t.Fatalf("Perft = %d, %v; want %d", n, err, want)
	}
	if eng.PerftHitRate() == 0 {
		t.Error("expected perft table hits")
	}

	eng.Clear()
	if eng.PerftHitRate() != 0 {
		t.Errorf("hit rate after Clear = %d", eng.PerftHitRate())
	}
	if NewEngine(0).PerftHitRate() != 0 {
		t.Error("engine without table should report 0")
	}
}

func TestEngineSearch(t *testing.T) {
	eng := NewEngine(0)
	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	g := mustState(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	m, score, err := eng.Search(g, SearchLimits{Depth: 3})
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "d1d5" || score != 500 {
		t.Errorf("Search = %s %d, want d1d5 500", m, score)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d info callbacks, want 1", len(infos))
	}
	if infos[0].Depth != 3 || infos[0].Score != 500 || len(infos[0].PV) != 1 {
		t.Errorf("info = %+v", infos[0])
	}

	// One pass at the requested depth, no shallower iterations.
	s := NewSearcher()
	s.Negamax(g, 3, board.White)
	if infos[0].Nodes != s.Nodes() {
		t.Errorf("search visited %d nodes, single negamax visits %d", infos[0].Nodes, s.Nodes())
	}
}

func TestEngineSearchFindsMate(t *testing.T) {
	eng := NewEngine(0)
	cache := newMemCache()
	eng.SetCache(cache)

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	g := mustState(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	m, score, err := eng.Search(g, SearchLimits{Depth: 4})
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "a1a8" || ScoreToString(score) != "Mate in 1" {
		t.Errorf("Search = %s %s", m, ScoreToString(score))
	}
	if len(infos) != 1 || infos[0].Depth != 4 {
		t.Errorf("infos = %+v, want one report at depth 4", infos)
	}

	again, _, _ := eng.Search(g, SearchLimits{Depth: 4})
	if again != m {
		t.Errorf("cached search = %s", again)
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0.00"},
		{150, "1.50"},
		{-305, "-3.05"},
		{MateScore - 1, "Mate in 1"},
		{MateScore - 3, "Mate in 2"},
		{-MateScore + 2, "Mated in 1"},
	}

	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
