package board

// LegalMoves returns every legal move for color c. Moves are grouped by
// piece type (king, queen, rook, bishop, knight, pawn), then ordered by
// source square and then destination square, both ascending. Promotions
// to one square are listed queen, rook, bishop, knight. En passant is only
// generated for the side to move.
func (g *GameState) LegalMoves(c Color) []Move {
	p := &g.pos
	t := g.tables
	m := &g.masks[c]
	moves := make([]Move, 0, 48)

	ksq := p.KingSquare(c)
	targets := t.King(ksq) &^ p.Occupied[c] &^ m.KingDanger
	for s := KingSide; s <= QueenSide; s++ {
		if g.castling[c][s] {
			targets |= SquareBB(g.castles[c][s].KingTo)
		}
	}
	moves = appendMoves(moves, c, ksq, targets)

	if m.Checkers.PopCount() > 1 {
		return moves
	}

	empty := p.EmptySquares()
	for pt := Queen; pt <= Knight; pt++ {
		for bb := p.Pieces[c][pt]; bb != 0; {
			from := bb.PopLSB()
			moves = appendMoves(moves, c, from, g.filter(c, pt, from, g.reach(pt, from, empty)))
		}
	}

	return g.appendPawnMoves(moves, c)
}

// reach returns the pseudo-legal destinations of a non-pawn piece.
func (g *GameState) reach(pt PieceType, from Square, empty Bitboard) Bitboard {
	bb := SquareBB(from)
	switch pt {
	case Queen:
		return QueenFill(bb, empty)
	case Rook:
		return RookFill(bb, empty)
	case Bishop:
		return BishopFill(bb, empty)
	case Knight:
		return g.tables.Knight(from)
	}
	return Empty
}

// filter narrows pseudo-legal destinations to legal ones: never onto an
// own piece, always inside the check mask, and for a pinned piece only
// along its pin line.
func (g *GameState) filter(c Color, pt PieceType, from Square, targets Bitboard) Bitboard {
	m := &g.masks[c]
	targets &^= g.pos.Occupied[c]
	targets &= m.CheckMask
	if m.Pinned.IsSet(from) {
		axis := AxisBetween(g.pos.KingSquare(c), from)
		if !movesAlong(pt, axis) {
			return Empty
		}
		targets &= m.Pins[axis]
	}
	return targets
}

// movesAlong reports whether a piece of type pt can ever stay on axis a.
func movesAlong(pt PieceType, a Axis) bool {
	switch pt {
	case Queen, Pawn:
		return true
	case Rook:
		return a == Horizontal || a == Vertical
	case Bishop:
		return a == Diagonal || a == AntiDiagonal
	}
	return false
}

func (g *GameState) appendPawnMoves(moves []Move, c Color) []Move {
	p := &g.pos
	t := g.tables
	empty := p.EmptySquares()
	enemy := p.Occupied[c.Other()]

	for bb := p.Pieces[c][Pawn]; bb != 0; {
		from := bb.PopLSB()
		fromBB := SquareBB(from)

		var push Bitboard
		if c == White {
			push = fromBB.North() & empty
			if from.Rank() == 1 {
				push |= push.North() & empty
			}
		} else {
			push = fromBB.South() & empty
			if from.Rank() == 6 {
				push |= push.South() & empty
			}
		}

		targets := g.filter(c, Pawn, from, push|t.Pawn(c, from)&enemy)
		if g.enPassantLegal(c, from) {
			targets |= SquareBB(g.setup.EnPassant)
		}

		for targets != 0 {
			to := targets.PopLSB()
			if to.RelativeRank(c) == 7 {
				for _, promo := range PromotionTypes {
					moves = append(moves, Move{From: from, To: to, Color: c, Promotion: promo})
				}
				continue
			}
			moves = append(moves, NewMove(from, to, c))
		}
	}
	return moves
}

// enPassantLegal decides whether the pawn on from may capture en passant.
// Besides the check and pin masks, the board is re-examined with both
// pawns gone, since clearing two squares of one rank at once can expose
// the king along that rank where no single pin was visible.
func (g *GameState) enPassantLegal(c Color, from Square) bool {
	ep := g.setup.EnPassant
	if ep == NoSquare || c != g.setup.Active || !g.tables.Pawn(c, from).IsSet(ep) {
		return false
	}

	p := &g.pos
	m := &g.masks[c]
	ksq := p.KingSquare(c)
	captured := ep - 8
	if c == Black {
		captured = ep + 8
	}

	if m.Checkers != 0 && !m.CheckMask.IsSet(ep) && !m.Checkers.IsSet(captured) {
		return false
	}
	if m.Pinned.IsSet(from) && !m.Pins[AxisBetween(ksq, from)].IsSet(ep) {
		return false
	}

	them := c.Other()
	occ := p.All()&^SquareBB(from)&^SquareBB(captured) | SquareBB(ep)
	kbb := SquareBB(ksq)
	if RookFill(kbb, ^occ)&(p.Pieces[them][Rook]|p.Pieces[them][Queen]) != 0 {
		return false
	}
	if BishopFill(kbb, ^occ)&(p.Pieces[them][Bishop]|p.Pieces[them][Queen]) != 0 {
		return false
	}
	return true
}

func appendMoves(moves []Move, c Color, from Square, targets Bitboard) []Move {
	for targets != 0 {
		moves = append(moves, NewMove(from, targets.PopLSB(), c))
	}
	return moves
}
