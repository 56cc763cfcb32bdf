package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// CastleSide selects the wing a castle is made on.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

func (s CastleSide) String() string {
	if s == KingSide {
		return "O-O"
	}
	return "O-O-O"
}

// Right returns the castling right for color c on side s.
func Right(c Color, s CastleSide) CastlingRights {
	if c == White {
		if s == KingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if s == KingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// ParseCastlingRights parses a FEN castling field.
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	if s == "" {
		return NoCastling, fmt.Errorf("%w: empty field", ErrInvalidCastling)
	}

	var cr CastlingRights
	for _, c := range s {
		var r CastlingRights
		switch c {
		case 'K':
			r = WhiteKingSideCastle
		case 'Q':
			r = WhiteQueenSideCastle
		case 'k':
			r = BlackKingSideCastle
		case 'q':
			r = BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: %q", ErrInvalidCastling, s)
		}
		if cr&r != 0 {
			return NoCastling, fmt.Errorf("%w: %q repeats %c", ErrInvalidCastling, s, c)
		}
		cr |= r
	}
	return cr, nil
}

// Castle describes one castling move: where king and rook start and land,
// the squares that must be empty, and the squares the king may not cross
// while attacked (its start square included).
type Castle struct {
	KingFrom, KingTo Square
	RookFrom, RookTo Square
	Path             Bitboard
	KingPath         Bitboard
}

// CastleConfig holds the home squares for every castle, indexed by
// [Color][CastleSide].
type CastleConfig [2][2]Castle

// StandardCastling returns the orthodox layout: kings on the e-file, rooks
// in the corners.
func StandardCastling() *CastleConfig {
	cfg := &CastleConfig{}
	for c := White; c <= Black; c++ {
		rank := 0
		if c == Black {
			rank = 7
		}
		at := func(file int) Square { return NewSquare(file, rank) }

		cfg[c][KingSide] = Castle{
			KingFrom: at(4), KingTo: at(6),
			RookFrom: at(7), RookTo: at(5),
			Path:     SquareBB(at(5)) | SquareBB(at(6)),
			KingPath: SquareBB(at(4)) | SquareBB(at(5)) | SquareBB(at(6)),
		}
		cfg[c][QueenSide] = Castle{
			KingFrom: at(4), KingTo: at(2),
			RookFrom: at(0), RookTo: at(3),
			Path:     SquareBB(at(1)) | SquareBB(at(2)) | SquareBB(at(3)),
			KingPath: SquareBB(at(4)) | SquareBB(at(3)) | SquareBB(at(2)),
		}
	}
	return cfg
}

// Consistent drops every right whose king or rook is not on its home square.
func (cfg *CastleConfig) Consistent(p *Position, cr CastlingRights) CastlingRights {
	for c := White; c <= Black; c++ {
		for s := KingSide; s <= QueenSide; s++ {
			cs := cfg[c][s]
			if p.PieceAt(cs.KingFrom) != NewPiece(King, c) || p.PieceAt(cs.RookFrom) != NewPiece(Rook, c) {
				cr &^= Right(c, s)
			}
		}
	}
	return cr
}

// Revoke returns the rights left after a piece leaves from or arrives on to.
// Moving a king forfeits both of its rights; touching a rook home square
// forfeits the right that rook belongs to.
func (cfg *CastleConfig) Revoke(cr CastlingRights, from, to Square) CastlingRights {
	for c := White; c <= Black; c++ {
		for s := KingSide; s <= QueenSide; s++ {
			cs := cfg[c][s]
			if from == cs.KingFrom || from == cs.RookFrom || to == cs.RookFrom {
				cr &^= Right(c, s)
			}
		}
	}
	return cr
}

// LegalCastling reports, per side, whether color c may castle right now:
// the right is held, king and rook stand on their home squares, the squares
// between them are empty, and no square the king stands on, crosses or
// lands on is attacked. enemySpace is the opponent's attack set.
func (cfg *CastleConfig) LegalCastling(p *Position, cr CastlingRights, c Color, enemySpace Bitboard) [2]bool {
	var legal [2]bool
	occ := p.All()
	for s := KingSide; s <= QueenSide; s++ {
		cs := cfg[c][s]
		legal[s] = cr&Right(c, s) != 0 &&
			p.PieceAt(cs.KingFrom) == NewPiece(King, c) &&
			p.PieceAt(cs.RookFrom) == NewPiece(Rook, c) &&
			occ&cs.Path == 0 &&
			enemySpace&cs.KingPath == 0
	}
	return legal
}
