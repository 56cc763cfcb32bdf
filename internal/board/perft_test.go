package board

import "testing"

// perft counts the leaf nodes of the legal move tree to the given depth.
func perft(g *GameState, depth int) int64 {
	moves := g.LegalMoves(g.Active())
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		nodes += perft(g.ApplyMove(m), depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int64 // indexed by depth-1
	}{
		{
			name:  "start",
			fen:   StartFEN,
			nodes: []int64{20, 400, 8902, 197281},
		},
		{
			// Castling, pins and promotions in one position.
			name:  "kiwipete",
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
			nodes: []int64{48, 2039, 97862},
		},
		{
			// En passant discovered checks along the fourth and fifth ranks.
			name:  "position 3",
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
			nodes: []int64{14, 191, 2812, 43238},
		},
		{
			name:  "position 4",
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			nodes: []int64{6, 264, 9467},
		},
		{
			name:  "position 5",
			fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			nodes: []int64{44, 1486, 62379},
		},
		{
			// Taking en passant would open the rank to the rook on h4.
			name:  "en passant pin",
			fen:   "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
			nodes: []int64{6, 94},
		},
		{
			name:  "en passant available",
			fen:   "k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
			nodes: []int64{5, 19},
		},
		{
			name:  "promotion",
			fen:   "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			nodes: []int64{11},
		},
	}

	for _, tc := range tests {
		g := mustState(t, tc.fen)
		for i, want := range tc.nodes {
			depth := i + 1
			if testing.Short() && want > 100000 {
				continue
			}
			if got := perft(g, depth); got != want {
				t.Errorf("%s: perft(%d) = %d, want %d", tc.name, depth, got, want)
			}
		}
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	g, err := FromFEN(tables, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.LegalMoves(White)
	}
}

func BenchmarkApplyMove(b *testing.B) {
	g := NewStartState(tables)
	m := NewMove(E2, E4, White)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.ApplyMove(m)
	}
}
