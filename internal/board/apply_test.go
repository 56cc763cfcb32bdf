package board

import "testing"

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{
			name:  "double push without capturer leaves no target",
			fen:   StartFEN,
			moves: []string{"e2e4"},
			want:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			name:  "quiet move ticks half-move clock",
			fen:   StartFEN,
			moves: []string{"g1f3", "g8f6"},
			want:  "rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 2 2",
		},
		{
			name:  "double push next to enemy pawn sets target",
			fen:   "k7/8/8/8/3p4/8/4P3/K7 w - - 0 1",
			moves: []string{"e2e4"},
			want:  "k7/8/8/8/3pP3/8/8/K7 b - e3 0 1",
		},
		{
			name:  "en passant removes the passed pawn",
			fen:   "k7/8/8/8/3p4/8/4P3/K7 w - - 0 1",
			moves: []string{"e2e4", "d4e3"},
			want:  "k7/8/8/8/8/4p3/8/K7 w - - 0 2",
		},
		{
			name:  "castling moves both pieces",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []string{"e1g1", "e8c8"},
			want:  "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2",
		},
		{
			name:  "capturing a rook revokes its right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []string{"a1a8"},
			want:  "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
		{
			name:  "moving a rook revokes its right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []string{"h1h5"},
			want:  "r3k2r/8/8/7R/8/8/8/R3K3 b Qkq - 1 1",
		},
		{
			name:  "promotion with capture",
			fen:   "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			moves: []string{"a7b8q"},
			want:  "1Q5k/8/8/8/8/8/8/7K b - - 0 1",
		},
		{
			name:  "under-promotion",
			fen:   "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			moves: []string{"a7a8n"},
			want:  "Nn5k/8/8/8/8/8/8/7K b - - 0 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustState(t, tc.fen)
			for _, s := range tc.moves {
				m, err := g.ParseMove(s)
				if err != nil {
					t.Fatal(err)
				}
				g = g.ApplyMove(m)
			}
			if got := g.FEN(); got != tc.want {
				t.Errorf("FEN() = %q\n          want %q", got, tc.want)
			}
		})
	}
}

func TestApplyMoveLeavesReceiverUntouched(t *testing.T) {
	g := NewStartState(tables)
	before := g.FEN()
	masks := g.Masks(White)

	for _, m := range g.LegalMoves(White) {
		g.ApplyMove(m)
	}

	if g.FEN() != before {
		t.Errorf("FEN changed to %q", g.FEN())
	}
	if g.Masks(White) != masks {
		t.Error("masks changed")
	}
}

func TestApplyMoveRebuildsMasks(t *testing.T) {
	g := mustState(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	next := g.ApplyMove(NewMove(H1, H8, White))
	if next.Masks(Black).Checkers != bb(H8) {
		t.Errorf("checkers =\n%s", next.Masks(Black).Checkers)
	}
	if next.Active() != Black || !next.InCheck() {
		t.Error("black should be to move and in check")
	}
}

func TestApplyMovePanicsOnEmptySource(t *testing.T) {
	defer func() {
		if _, ok := recover().(*InvariantError); !ok {
			t.Error("expected *InvariantError panic")
		}
	}()
	NewStartState(tables).ApplyMove(NewMove(E4, E5, White))
}

func TestSAN(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "g1f3", "Nf3"},
		{StartFEN, "e2e4", "e4"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8q", "axb8=Q+"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"k7/8/8/3pP3/8/8/8/7K w - d6 0 2", "e5d6", "exd6"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			g := mustState(t, tc.fen)
			m, err := g.ParseMove(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			if got := g.SAN(m); got != tc.want {
				t.Errorf("SAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
		})
	}
}
