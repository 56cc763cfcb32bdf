package board

import "fmt"

// Axis is one of the four lines through a square.
type Axis uint8

const (
	Horizontal   Axis = iota // along a rank
	Vertical                 // along a file
	Diagonal                 // a1-h8 direction
	AntiDiagonal             // h1-a8 direction
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	}
	return "none"
}

type fillFunc func(sliders, empty Bitboard) Bitboard

// axisFills pairs the two opposite fills of each axis.
var axisFills = [4][2]fillFunc{
	Horizontal:   {FillEast, FillWest},
	Vertical:     {FillNorth, FillSouth},
	Diagonal:     {FillNorthEast, FillSouthWest},
	AntiDiagonal: {FillNorthWest, FillSouthEast},
}

// AxisBetween returns the axis shared by two aligned squares.
func AxisBetween(a, b Square) Axis {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	switch {
	case a == b:
	case dr == 0:
		return Horizontal
	case df == 0:
		return Vertical
	case df == dr:
		return Diagonal
	case df == -dr:
		return AntiDiagonal
	}
	panic(&InvariantError{Op: "pin axis", Detail: fmt.Sprintf("%s and %s share no line", a, b)})
}

// SideMasks are the constraints the move generator applies to one color.
type SideMasks struct {
	// CheckMask holds the destinations that resolve the current check:
	// every non-own square when not in check, the checker plus the squares
	// between it and the king under a single check, nothing under double
	// check.
	CheckMask Bitboard

	// Checkers are the enemy pieces attacking the king.
	Checkers Bitboard

	// Pinned are own pieces that shield the king from an enemy slider.
	Pinned Bitboard

	// Pins holds, per axis, the line a piece pinned on that axis may move
	// along: from the king up to and including the pinner.
	Pins [4]Bitboard

	// Space is every square this color attacks.
	Space Bitboard

	// KingDanger is every square the enemy attacks once this color's king
	// is lifted off the board, so the king cannot step back along a
	// checking line.
	KingDanger Bitboard
}

func (t *Tables) sideMasks(p *Position, us Color) SideMasks {
	them := us.Other()
	ksq := p.KingSquare(us)
	kbb := SquareBB(ksq)
	own := p.Occupied[us]
	empty := p.EmptySquares()
	orth := p.Pieces[them][Rook] | p.Pieces[them][Queen]
	diag := p.Pieces[them][Bishop] | p.Pieces[them][Queen]

	var m SideMasks

	m.Checkers = t.Knight(ksq)&p.Pieces[them][Knight] |
		t.Pawn(us, ksq)&p.Pieces[them][Pawn] |
		t.King(ksq)&p.Pieces[them][King] |
		RookFill(kbb, empty)&orth |
		BishopFill(kbb, empty)&diag

	var check Bitboard
	for b := m.Checkers; b != 0; {
		sq := b.PopLSB()
		check |= SquareBB(sq)
		if isSlider(p.TypeAt(sq)) {
			check |= t.Between(ksq, sq)
		}
	}

	switch m.Checkers.PopCount() {
	case 0:
		m.CheckMask = Universe &^ own
	case 1:
		m.CheckMask = check &^ own
	default:
		m.CheckMask = Empty
	}

	for a, fills := range axisFills {
		attackers := orth
		if Axis(a) >= Diagonal {
			attackers = diag
		}
		fwd, back := fills[0], fills[1]
		m.Pinned |= (fwd(kbb, empty)&back(attackers, empty) |
			back(kbb, empty)&fwd(attackers, empty)) & own
	}

	through := empty | m.Pinned
	for a, fills := range axisFills {
		m.Pins[a] = (fills[0](kbb, through) | fills[1](kbb, through)) &^ check
	}

	m.Space = t.attacks(p, us, empty)
	m.KingDanger = t.attacks(p, them, empty|kbb)
	return m
}

// attacks returns every square color c attacks given the empty set.
func (t *Tables) attacks(p *Position, c Color, empty Bitboard) Bitboard {
	pcs := &p.Pieces[c]
	a := RookFill(pcs[Rook]|pcs[Queen], empty) | BishopFill(pcs[Bishop]|pcs[Queen], empty)

	for bb := pcs[Knight]; bb != 0; {
		a |= t.Knight(bb.PopLSB())
	}
	for bb := pcs[King]; bb != 0; {
		a |= t.King(bb.PopLSB())
	}

	if c == White {
		a |= pcs[Pawn].NorthEast() | pcs[Pawn].NorthWest()
	} else {
		a |= pcs[Pawn].SouthEast() | pcs[Pawn].SouthWest()
	}
	return a
}

func isSlider(pt PieceType) bool {
	return pt == Queen || pt == Rook || pt == Bishop
}
