package board

import "fmt"

// Move is a move of one piece. Castling is the king's two-square step;
// en passant is the pawn's diagonal step onto the target square. Promotion
// is NoPieceType unless a pawn reaches the last rank.
type Move struct {
	From      Square
	To        Square
	Color     Color
	Promotion PieceType
}

// NoMove represents the absence of a move.
var NoMove = Move{From: NoSquare, To: NoSquare, Color: NoColor, Promotion: NoPieceType}

// NewMove creates a non-promoting move.
func NewMove(from, to Square, c Color) Move {
	return Move{From: from, To: to, Color: c, Promotion: NoPieceType}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.From >= NoSquare || m.To >= NoSquare {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove resolves a UCI move string against the legal moves of the side
// to move.
func (g *GameState) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	if _, err := ParseSquare(s[0:2]); err != nil {
		return NoMove, err
	}
	if _, err := ParseSquare(s[2:4]); err != nil {
		return NoMove, err
	}

	for _, m := range g.LegalMoves(g.setup.Active) {
		if m.String() == s {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, g.FEN())
}
