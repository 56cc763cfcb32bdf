package board

// zobristKeys are the random keys used to hash a game state.
// Generated from a fixed seed so hashes are stable across runs, which
// the persistent result cache depends on.
type zobristKeys struct {
	piece     [2][6][64]uint64 // [Color][PieceType][Square]
	enPassant [8]uint64        // One per file
	castling  [16]uint64       // All 16 castling combinations
	black     uint64           // XOR when black to move
}

type prng struct {
	state uint64
}

// xorshift64*
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func (t *Tables) initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}
	z := &t.zobrist

	for c := White; c <= Black; c++ {
		for pt := King; pt <= Pawn; pt++ {
			for sq := A1; sq <= H8; sq++ {
				z.piece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		z.enPassant[file] = rng.next()
	}
	for i := range z.castling {
		z.castling[i] = rng.next()
	}
	z.black = rng.next()
}

// hash computes the Zobrist key of a position and its setup from scratch.
func (t *Tables) hash(p *Position, active Color, cr CastlingRights, ep Square) uint64 {
	z := &t.zobrist
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := King; pt <= Pawn; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				h ^= z.piece[c][pt][bb.PopLSB()]
			}
		}
	}
	if active == Black {
		h ^= z.black
	}
	h ^= z.castling[cr]
	if ep != NoSquare {
		h ^= z.enPassant[ep.File()]
	}
	return h
}
