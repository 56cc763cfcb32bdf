package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit n standing for Square(n).
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101
	FileB          = FileA << 1
	FileC          = FileA << 2
	FileD          = FileA << 3
	FileE          = FileA << 4
	FileF          = FileA << 5
	FileG          = FileA << 6
	FileH          = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank2          = Rank1 << (8 * 1)
	Rank3          = Rank1 << (8 * 2)
	Rank4          = Rank1 << (8 * 3)
	Rank5          = Rank1 << (8 * 4)
	Rank6          = Rank1 << (8 * 5)
	Rank7          = Rank1 << (8 * 6)
	Rank8          = Rank1 << (8 * 7)

	Empty    Bitboard = 0
	Universe          = ^Empty

	// Wrap guards for shifts that move a file sideways.
	NotFileA = ^FileA
	NotFileH = ^FileH
)

// SquareBB is the singleton set {sq}.
func SquareBB(sq Square) Bitboard { return 1 << sq }

// IsSet reports whether sq is in b.
func (b Bitboard) IsSet(sq Square) bool { return b>>sq&1 == 1 }

// PopCount is the number of squares in b.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB is the lowest square in b, NoSquare when b is empty.
func (b Bitboard) LSB() Square {
	if b == Empty {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes the lowest square from b and returns it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// One-square shifts. Sideways steps drop whatever would wrap onto the
// opposite edge.
func (b Bitboard) North() Bitboard     { return b << 8 }
func (b Bitboard) South() Bitboard     { return b >> 8 }
func (b Bitboard) East() Bitboard      { return b << 1 & NotFileA }
func (b Bitboard) West() Bitboard      { return b >> 1 & NotFileH }
func (b Bitboard) NorthEast() Bitboard { return b << 9 & NotFileA }
func (b Bitboard) NorthWest() Bitboard { return b << 7 & NotFileH }
func (b Bitboard) SouthEast() Bitboard { return b >> 7 & NotFileA }
func (b Bitboard) SouthWest() Bitboard { return b >> 9 & NotFileH }

// String draws b as a grid, rank 8 first, set squares as 1.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		row := b >> (8 * rank) & Rank1
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < 8; file++ {
			cell := " ."
			if row>>file&1 == 1 {
				cell = " 1"
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Squares lists the members of b in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for b != Empty {
		out = append(out, b.PopLSB())
	}
	return out
}
