package board

import "strings"

// SAN returns m in Standard Algebraic Notation. m must be legal in g.
func (g *GameState) SAN(m Move) string {
	pt := g.pos.TypeAt(m.From)
	if pt == NoPieceType {
		return m.String()
	}

	if pt == King {
		for side := KingSide; side <= QueenSide; side++ {
			cs := g.castles[m.Color][side]
			if m.From == cs.KingFrom && m.To == cs.KingTo {
				if side == KingSide {
					return g.checkSuffix("O-O", m)
				}
				return g.checkSuffix("O-O-O", m)
			}
		}
	}

	var sb strings.Builder

	if pt != Pawn {
		sb.WriteByte(NewPiece(pt, White).String()[0])
		sb.WriteString(g.disambiguation(m, pt))
	}

	isCapture := g.pos.ColorAt(m.To) != NoColor || (pt == Pawn && m.From.File() != m.To.File())
	if isCapture {
		if pt == Pawn {
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(NewPiece(m.Promotion, White).String()[0])
	}

	return g.checkSuffix(sb.String(), m)
}

func (g *GameState) checkSuffix(s string, m Move) string {
	next := g.ApplyMove(m)
	switch {
	case next.IsCheckmate():
		return s + "#"
	case next.InCheck():
		return s + "+"
	}
	return s
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same type can reach the same destination.
func (g *GameState) disambiguation(m Move, pt PieceType) string {
	var candidates []Square
	for _, other := range g.LegalMoves(m.Color) {
		if other.To == m.To && other.From != m.From && g.pos.TypeAt(other.From) == pt {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// MovesToSAN converts a line of moves played from g into SAN.
func (g *GameState) MovesToSAN(moves []Move) []string {
	out := make([]string, 0, len(moves))
	cur := g
	for _, m := range moves {
		out = append(out, cur.SAN(m))
		cur = cur.ApplyMove(m)
	}
	return out
}
