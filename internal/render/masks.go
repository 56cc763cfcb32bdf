package render

import (
	"fmt"
	"sort"

	"github.com/hailam/chessmask/internal/board"
)

var maskNames = map[string]func(g *board.GameState, c board.Color) board.Bitboard{
	"space":    func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Space },
	"danger":   func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).KingDanger },
	"check":    func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).CheckMask },
	"checkers": func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Checkers },
	"pinned":   func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Pinned },
	"pin-h":    func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Pins[board.Horizontal] },
	"pin-v":    func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Pins[board.Vertical] },
	"pin-d1":   func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Pins[board.Diagonal] },
	"pin-d2":   func(g *board.GameState, c board.Color) board.Bitboard { return g.Masks(c).Pins[board.AntiDiagonal] },
	"moves": func(g *board.GameState, c board.Color) board.Bitboard {
		var b board.Bitboard
		for _, m := range g.LegalMoves(c) {
			b |= board.SquareBB(m.To)
		}
		return b
	},
}

// MaskNames lists the names Mask accepts.
func MaskNames() []string {
	names := make([]string, 0, len(maskNames))
	for n := range maskNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Mask returns the named mask of color c.
func Mask(g *board.GameState, c board.Color, name string) (board.Bitboard, error) {
	f, ok := maskNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown mask %q (want one of %v)", name, MaskNames())
	}
	return f(g, c), nil
}
