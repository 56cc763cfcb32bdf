package board

import "fmt"

// ApplyMove returns the state after m. The receiver is left untouched.
// The move is not checked for legality; passing a move that did not come
// from LegalMoves gives an unspecified but well-formed result, except that
// a move from a square not holding a piece of m.Color panics.
func (g *GameState) ApplyMove(m Move) *GameState {
	pos := g.pos
	us, them := m.Color, m.Color.Other()

	pt := pos.TypeAt(m.From)
	if pt == NoPieceType || pos.ColorAt(m.From) != us {
		panic(&InvariantError{Op: "apply", Detail: fmt.Sprintf("%s: no %s piece on %s", m, us, m.From)})
	}

	s := g.setup
	s.HalfMove++
	s.EnPassant = NoSquare

	captured := pos.remove(m.To)
	pos.remove(m.From)

	switch pt {
	case Pawn:
		s.HalfMove = 0
		if m.To == g.setup.EnPassant && captured == NoPiece {
			if us == White {
				pos.remove(m.To - 8)
			} else {
				pos.remove(m.To + 8)
			}
		}
		if d := int(m.To) - int(m.From); d == 16 || d == -16 {
			skipped := Square((int(m.From) + int(m.To)) / 2)
			if g.tables.Pawn(us, skipped)&pos.Pieces[them][Pawn] != 0 {
				s.EnPassant = skipped
			}
		}
	case King:
		for side := KingSide; side <= QueenSide; side++ {
			cs := g.castles[us][side]
			if m.From == cs.KingFrom && m.To == cs.KingTo {
				if rook := pos.remove(cs.RookFrom); rook != NoPiece {
					pos.put(rook, cs.RookTo)
				}
			}
		}
	}

	placed := pt
	if m.Promotion != NoPieceType {
		placed = m.Promotion
	}
	pos.put(NewPiece(placed, us), m.To)

	if captured != NoPiece {
		s.HalfMove = 0
	}
	s.Castling = g.castles.Revoke(s.Castling, m.From, m.To)
	if us == Black {
		s.FullMove++
	}
	s.Active = them

	next := &GameState{tables: g.tables, castles: g.castles, pos: pos, setup: s}
	next.build()
	return next
}
