package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor parses a FEN active-color token ("w" or "b").
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// PieceType represents the type of a chess piece. The declaration order is
// the order in which the move generator emits moves.
type PieceType uint8

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	NoPieceType PieceType = 6
)

// PromotionTypes lists promotion choices in emission order.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the lowercase FEN letter for the piece type.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "kqrbnp"[pt]
}

// PieceValue is the material value of each piece type in centipawns,
// indexed by PieceType. The king outweighs any possible material.
var PieceValue = [7]int{20000, 900, 500, 330, 320, 100, 0}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string("KQRBNPkqrbnp"[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'K':
		return WhiteKing
	case 'Q':
		return WhiteQueen
	case 'R':
		return WhiteRook
	case 'B':
		return WhiteBishop
	case 'N':
		return WhiteKnight
	case 'P':
		return WhitePawn
	case 'k':
		return BlackKing
	case 'q':
		return BlackQueen
	case 'r':
		return BlackRook
	case 'b':
		return BlackBishop
	case 'n':
		return BlackKnight
	case 'p':
		return BlackPawn
	default:
		return NoPiece
	}
}
