package board

import (
	"fmt"
	"strings"
)

// Setup carries everything about a game besides the pieces.
type Setup struct {
	Active    Color
	Castling  CastlingRights
	EnPassant Square // NoSquare if none
	HalfMove  int
	FullMove  int
}

// GameState is an immutable snapshot of a game: pieces, setup, and the
// masks derived from them for both colors. Successor states come from
// ApplyMove, which rebuilds every mask from scratch.
type GameState struct {
	tables  *Tables
	castles *CastleConfig

	pos   Position
	setup Setup

	masks    [2]SideMasks
	castling [2][2]bool // [Color][CastleSide]
	hash     uint64
}

// NewGameState validates a placement and setup and derives the masks.
// Castling rights whose king or rook is away from its home square in cfg
// are dropped.
func NewGameState(t *Tables, cfg *CastleConfig, pl Placement, s Setup) (*GameState, error) {
	pos, err := NewPosition(pl)
	if err != nil {
		return nil, err
	}
	if s.Active != White && s.Active != Black {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, s.Active)
	}
	if s.Castling > AllCastling {
		return nil, fmt.Errorf("%w: %04b", ErrInvalidCastling, s.Castling)
	}
	if err := validateEnPassant(pos, s.Active, s.EnPassant); err != nil {
		return nil, err
	}
	if s.HalfMove < 0 || s.FullMove < 0 {
		return nil, fmt.Errorf("%w: negative move counter", ErrInvalidFEN)
	}
	if s.FullMove == 0 {
		s.FullMove = 1
	}
	s.Castling = cfg.Consistent(pos, s.Castling)

	g := &GameState{tables: t, castles: cfg, pos: *pos, setup: s}
	g.build()
	return g, nil
}

// validateEnPassant requires the target to sit on the square a pawn of the
// side not to move just skipped, with that pawn directly beyond it.
func validateEnPassant(p *Position, active Color, ep Square) error {
	if ep == NoSquare {
		return nil
	}
	if !ep.IsValid() || ep.RelativeRank(active) != 5 {
		return fmt.Errorf("%w: %s", ErrInvalidEnPassant, ep)
	}
	pawnSq := ep - 8
	if active == Black {
		pawnSq = ep + 8
	}
	if p.ColorAt(ep) != NoColor || p.PieceAt(pawnSq) != NewPiece(Pawn, active.Other()) {
		return fmt.Errorf("%w: %s has no pawn to capture", ErrInvalidEnPassant, ep)
	}
	return nil
}

func (g *GameState) build() {
	t := g.tables
	for c := White; c <= Black; c++ {
		g.masks[c] = t.sideMasks(&g.pos, c)
	}
	for c := White; c <= Black; c++ {
		g.castling[c] = g.castles.LegalCastling(&g.pos, g.setup.Castling, c, g.masks[c.Other()].Space)
	}
	g.hash = t.hash(&g.pos, g.setup.Active, g.setup.Castling, g.setup.EnPassant)
}

// NewStartState returns the standard starting position.
func NewStartState(t *Tables) *GameState {
	g, err := FromFEN(t, StartFEN)
	if err != nil {
		panic(err)
	}
	return g
}

// Tables returns the lookup tables this state was built with.
func (g *GameState) Tables() *Tables { return g.tables }

// Castles returns the castling home squares this state was built with.
func (g *GameState) Castles() *CastleConfig { return g.castles }

// Position returns the piece set. Callers must not modify it.
func (g *GameState) Position() *Position { return &g.pos }

// Active returns the color to move.
func (g *GameState) Active() Color { return g.setup.Active }

// CastlingRights returns the rights still held by either side.
func (g *GameState) CastlingRights() CastlingRights { return g.setup.Castling }

// EnPassant returns the en passant target, or NoSquare.
func (g *GameState) EnPassant() Square { return g.setup.EnPassant }

// HalfMove returns the number of half-moves since the last capture or pawn move.
func (g *GameState) HalfMove() int { return g.setup.HalfMove }

// FullMove returns the full-move number.
func (g *GameState) FullMove() int { return g.setup.FullMove }

// Setup returns the non-piece part of the state.
func (g *GameState) Setup() Setup { return g.setup }

// Masks returns the derived masks for color c.
func (g *GameState) Masks(c Color) SideMasks { return g.masks[c] }

// CanCastle reports whether color c may castle on side s in this position.
func (g *GameState) CanCastle(c Color, s CastleSide) bool { return g.castling[c][s] }

// Hash returns the Zobrist key of the state.
func (g *GameState) Hash() uint64 { return g.hash }

// InCheck returns true if the side to move is in check.
func (g *GameState) InCheck() bool {
	return g.masks[g.setup.Active].Checkers != 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (g *GameState) IsCheckmate() bool {
	return g.InCheck() && len(g.LegalMoves(g.setup.Active)) == 0
}

// IsStalemate returns true if the side to move has no moves and is not in check.
func (g *GameState) IsStalemate() bool {
	return !g.InCheck() && len(g.LegalMoves(g.setup.Active)) == 0
}

// String returns the board followed by the setup fields.
func (g *GameState) String() string {
	var sb strings.Builder
	sb.WriteString(g.pos.String())
	fmt.Fprintf(&sb, "\nSide to move: %s\n", g.setup.Active)
	fmt.Fprintf(&sb, "Castling: %s\n", g.setup.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", g.setup.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", g.setup.HalfMove)
	fmt.Fprintf(&sb, "Full move: %d\n", g.setup.FullMove)
	fmt.Fprintf(&sb, "Fen: %s\n", g.FEN())
	fmt.Fprintf(&sb, "Key: %016X\n", g.hash)
	return sb.String()
}
