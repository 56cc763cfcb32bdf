package board

import "fmt"

// Placement describes a board as 64 optional pieces, indexed by Square.
// Empty squares hold NoPiece. WhiteKing is the zero Piece, so the zero
// Placement is not an empty board: build one with EmptyPlacement or
// PlacementFromList. NewPosition rejects the zero value with
// ErrZeroPlacement.
type Placement [64]Piece

// EmptyPlacement returns a placement with every square empty.
func EmptyPlacement() Placement {
	var pl Placement
	for i := range pl {
		pl[i] = NoPiece
	}
	return pl
}

// PlacedPiece is one entry of a piece list.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// PlacementFromList builds a placement from a piece list, rejecting two
// pieces on the same square.
func PlacementFromList(pieces []PlacedPiece) (Placement, error) {
	pl := EmptyPlacement()
	for _, pp := range pieces {
		if !pp.Square.IsValid() {
			return pl, fmt.Errorf("%w: %d", ErrInvalidSquare, pp.Square)
		}
		if pl[pp.Square] != NoPiece {
			return pl, fmt.Errorf("%w: %s holds %s and %s", ErrSquareOccupied, pp.Square, pl[pp.Square], pp.Piece)
		}
		pl[pp.Square] = pp.Piece
	}
	return pl, nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}
