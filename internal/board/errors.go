package board

import (
	"errors"
	"fmt"
)

// Errors returned for malformed input.
var (
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidColor     = errors.New("invalid active color")
	ErrInvalidCastling  = errors.New("invalid castling rights")
	ErrInvalidEnPassant = errors.New("invalid en passant square")
	ErrKingCount        = errors.New("each side needs exactly one king")
	ErrSquareOccupied   = errors.New("square already occupied")
	ErrPawnOnBackRank   = errors.New("pawn on first or last rank")
	ErrIllegalMove      = errors.New("illegal move")
	ErrZeroPlacement    = errors.New("zero Placement holds 64 white kings; start from EmptyPlacement")
)

// InvariantError is the panic value raised when the position or the tables
// reach a state the generator relies on never happening.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board: invariant violated in %s: %s", e.Op, e.Detail)
}
