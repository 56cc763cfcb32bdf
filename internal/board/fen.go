package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN splits a FEN string into a placement and a setup. The move
// counters are optional and default to 0 and 1.
func ParseFEN(fen string) (Placement, Setup, error) {
	s := Setup{EnPassant: NoSquare, FullMove: 1}

	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return Placement{}, s, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pl, err := parsePiecePlacement(parts[0])
	if err != nil {
		return pl, s, err
	}

	if s.Active, err = ParseColor(parts[1]); err != nil {
		return pl, s, err
	}

	if s.Castling, err = ParseCastlingRights(parts[2]); err != nil {
		return pl, s, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return pl, s, fmt.Errorf("%w: %q", ErrInvalidEnPassant, parts[3])
		}
		s.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return pl, s, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, parts[4])
		}
		s.HalfMove = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 0 {
			return pl, s, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, parts[5])
		}
		s.FullMove = fmn
	}

	return pl, s, nil
}

// FromFEN parses a FEN string into a game state with standard castling.
func FromFEN(t *Tables, fen string) (*GameState, error) {
	pl, s, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGameState(t, StandardCastling(), pl, s)
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(field string) (Placement, error) {
	pl := EmptyPlacement()

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return pl, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return pl, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return pl, fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			pl[NewSquare(file, rank)] = piece
			file++
		}

		if file != 8 {
			return pl, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return pl, nil
}

// FEN returns the FEN representation of the state.
func (g *GameState) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := g.pos.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if g.setup.Active == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(g.setup.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(g.setup.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.setup.HalfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.setup.FullMove))

	return sb.String()
}
