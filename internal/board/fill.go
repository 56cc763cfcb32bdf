package board

// Occluded fills. Each takes a set of sliders and the set of empty squares
// and returns every square a slider in that direction reaches: the empty
// run plus the first occupied square, excluding the sliders themselves
// unless another slider reaches them. Pieces never wrap across the a/h
// edge: eastward fills drop anything landing on file a, westward fills
// anything landing on file h.

// FillNorth returns the squares reached by sliding toward rank 8.
func FillNorth(sliders, empty Bitboard) Bitboard {
	for i := 0; i < 6; i++ {
		sliders |= (sliders << 8) & empty
	}
	return sliders << 8
}

// FillSouth returns the squares reached by sliding toward rank 1.
func FillSouth(sliders, empty Bitboard) Bitboard {
	for i := 0; i < 6; i++ {
		sliders |= (sliders >> 8) & empty
	}
	return sliders >> 8
}

// FillEast returns the squares reached by sliding toward file h.
func FillEast(sliders, empty Bitboard) Bitboard {
	empty &= NotFileA
	for i := 0; i < 6; i++ {
		sliders |= (sliders << 1) & empty
	}
	return (sliders << 1) & NotFileA
}

// FillWest returns the squares reached by sliding toward file a.
func FillWest(sliders, empty Bitboard) Bitboard {
	empty &= NotFileH
	for i := 0; i < 6; i++ {
		sliders |= (sliders >> 1) & empty
	}
	return (sliders >> 1) & NotFileH
}

// FillNorthEast returns the squares reached by sliding toward h8.
func FillNorthEast(sliders, empty Bitboard) Bitboard {
	empty &= NotFileA
	for i := 0; i < 6; i++ {
		sliders |= (sliders << 9) & empty
	}
	return (sliders << 9) & NotFileA
}

// FillNorthWest returns the squares reached by sliding toward a8.
func FillNorthWest(sliders, empty Bitboard) Bitboard {
	empty &= NotFileH
	for i := 0; i < 6; i++ {
		sliders |= (sliders << 7) & empty
	}
	return (sliders << 7) & NotFileH
}

// FillSouthEast returns the squares reached by sliding toward h1.
func FillSouthEast(sliders, empty Bitboard) Bitboard {
	empty &= NotFileA
	for i := 0; i < 6; i++ {
		sliders |= (sliders >> 7) & empty
	}
	return (sliders >> 7) & NotFileA
}

// FillSouthWest returns the squares reached by sliding toward a1.
func FillSouthWest(sliders, empty Bitboard) Bitboard {
	empty &= NotFileH
	for i := 0; i < 6; i++ {
		sliders |= (sliders >> 9) & empty
	}
	return (sliders >> 9) & NotFileH
}

// RookFill is the union of the four orthogonal fills.
func RookFill(sliders, empty Bitboard) Bitboard {
	return FillNorth(sliders, empty) | FillSouth(sliders, empty) |
		FillEast(sliders, empty) | FillWest(sliders, empty)
}

// BishopFill is the union of the four diagonal fills.
func BishopFill(sliders, empty Bitboard) Bitboard {
	return FillNorthEast(sliders, empty) | FillNorthWest(sliders, empty) |
		FillSouthEast(sliders, empty) | FillSouthWest(sliders, empty)
}

// QueenFill is the union of all eight fills.
func QueenFill(sliders, empty Bitboard) Bitboard {
	return RookFill(sliders, empty) | BishopFill(sliders, empty)
}
