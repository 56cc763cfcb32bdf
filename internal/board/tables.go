package board

import "fmt"

// Tables holds the precomputed lookup tables used by the mask engine and
// the move generator. Build one with NewTables and share it; it is never
// written after construction and is safe for concurrent use.
type Tables struct {
	king    [64]Bitboard
	knight  [64]Bitboard
	pawn    [2][64]Bitboard // [Color][Square] capture targets
	between [64][64]Bitboard
	zobrist zobristKeys
}

// NewTables builds every lookup table.
func NewTables() *Tables {
	t := &Tables{}
	t.initKnight()
	t.initKing()
	t.initPawn()
	t.initBetween()
	t.initZobrist()
	return t
}

// King returns the squares adjacent to sq.
func (t *Tables) King(sq Square) Bitboard {
	return t.king[sq]
}

// Knight returns the knight destinations from sq.
func (t *Tables) Knight(sq Square) Bitboard {
	return t.knight[sq]
}

// Pawn returns the squares a pawn of color c on sq attacks.
func (t *Tables) Pawn(c Color, sq Square) Bitboard {
	return t.pawn[c][sq]
}

// Between returns the squares strictly between two aligned squares.
// Asking for a pair that shares no rank, file or diagonal is a bug in the
// caller and panics.
func (t *Tables) Between(a, b Square) Bitboard {
	if !Aligned(a, b) {
		panic(&InvariantError{Op: "between", Detail: fmt.Sprintf("%s and %s are not aligned", a, b)})
	}
	return t.between[a][b]
}

func (t *Tables) initKnight() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		var attacks Bitboard

		attacks |= bb.North().NorthEast() | bb.North().NorthWest()
		attacks |= bb.South().SouthEast() | bb.South().SouthWest()
		attacks |= bb.East().NorthEast() | bb.East().SouthEast()
		attacks |= bb.West().NorthWest() | bb.West().SouthWest()

		t.knight[sq] = attacks
	}
}

func (t *Tables) initKing() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		t.king[sq] = attacks
	}
}

func (t *Tables) initPawn() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		t.pawn[White][sq] = bb.NorthEast() | bb.NorthWest()
		t.pawn[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// initBetween walks from the lower square to the higher one with the stride
// of their shared line: 1 along a rank, 8 along a file, 9 along an a1-h8
// diagonal and 7 along an h1-a8 diagonal.
func (t *Tables) initBetween() {
	for a := A1; a <= H8; a++ {
		for b := a + 1; b <= H8; b++ {
			if !Aligned(a, b) {
				continue
			}

			df := b.File() - a.File()
			dr := b.Rank() - a.Rank()

			var stride Square
			switch {
			case dr == 0:
				stride = 1
			case df == 0:
				stride = 8
			case df == dr:
				stride = 9
			default:
				stride = 7
			}

			var between Bitboard
			for sq := a + stride; sq < b; sq += stride {
				between |= SquareBB(sq)
			}
			t.between[a][b] = between
			t.between[b][a] = between
		}
	}
}
