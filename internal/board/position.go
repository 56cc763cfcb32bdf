package board

import (
	"fmt"
	"strings"
)

// Position is the piece set of a game: one bitboard per color and piece
// type, the per-color occupancy, and per-square color and type lookups.
// All views are kept consistent by construction and a Position is never
// modified once built.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]Bitboard

	// Occupancy per color
	Occupied [2]Bitboard

	colors [64]Color
	types  [64]PieceType
}

// NewPosition validates a placement and builds its bitboards.
// Each side needs exactly one king, and pawns may not stand on the first
// or last rank.
func NewPosition(pl Placement) (*Position, error) {
	if pl == (Placement{}) {
		return nil, ErrZeroPlacement
	}

	p := &Position{}
	for sq := range p.colors {
		p.colors[sq] = NoColor
		p.types[sq] = NoPieceType
	}

	for i, piece := range pl {
		if piece == NoPiece {
			continue
		}
		if piece > NoPiece {
			return nil, fmt.Errorf("%w: unknown piece %d on %s", ErrInvalidFEN, piece, Square(i))
		}
		p.put(piece, Square(i))
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) validate() error {
	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%w: %s has %d", ErrKingCount, c, n)
		}
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return ErrPawnOnBackRank
	}
	return nil
}

// put places a piece on an empty square.
func (p *Position) put(piece Piece, sq Square) {
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.colors[sq] = c
	p.types[sq] = pt
}

// remove clears a square and returns what stood there.
func (p *Position) remove(sq Square) Piece {
	c, pt := p.colors[sq], p.types[sq]
	if c == NoColor {
		return NoPiece
	}
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.colors[sq] = NoColor
	p.types[sq] = NoPieceType
	return NewPiece(pt, c)
}

// All returns every occupied square.
func (p *Position) All() Bitboard {
	return p.Occupied[White] | p.Occupied[Black]
}

// EmptySquares returns every unoccupied square.
func (p *Position) EmptySquares() Bitboard {
	return ^p.All()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return NewPiece(p.types[sq], p.colors[sq])
}

// ColorAt returns the color of the piece on sq, or NoColor.
func (p *Position) ColorAt(sq Square) Color {
	return p.colors[sq]
}

// TypeAt returns the type of the piece on sq, or NoPieceType.
func (p *Position) TypeAt(sq Square) PieceType {
	return p.types[sq]
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// Placement returns the position as 64 optional pieces.
func (p *Position) Placement() Placement {
	var pl Placement
	for sq := range pl {
		pl[sq] = p.PieceAt(Square(sq))
	}
	return pl
}

// Material returns the material balance (positive favors white), kings
// excluded.
func (p *Position) Material() int {
	score := 0
	for pt := Queen; pt <= Pawn; pt++ {
		score += p.Pieces[White][pt].PopCount() * PieceValue[pt]
		score -= p.Pieces[Black][pt].PopCount() * PieceValue[pt]
	}
	return score
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
