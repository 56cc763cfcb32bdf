// Package verify compares the generator against independent move
// generators.
package verify

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/hailam/chessmask/internal/board"
)

// Reference lists the legal moves of a FEN in UCI notation.
type Reference interface {
	Name() string
	LegalMoves(fen string) ([]string, error)
}

// Dragontooth is a Reference backed by dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontooth" }

func (Dragontooth) LegalMoves(fen string) ([]string, error) {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	return out, nil
}

// Notnil is a Reference backed by notnil/chess.
type Notnil struct{}

func (Notnil) Name() string { return "notnil" }

func (Notnil) LegalMoves(fen string) ([]string, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("notnil: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	var notation chess.UCINotation
	moves := pos.ValidMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = notation.Encode(pos, m)
	}
	return out, nil
}

// ByName returns the reference generator with the given name.
func ByName(name string) (Reference, error) {
	switch name {
	case "dragontooth":
		return Dragontooth{}, nil
	case "notnil":
		return Notnil{}, nil
	}
	return nil, fmt.Errorf("unknown reference %q (want dragontooth or notnil)", name)
}

// Mismatch is a position where the move lists differ.
type Mismatch struct {
	FEN     string
	Missing []string // Reference moves we did not generate
	Extra   []string // Moves we generated that the reference did not
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: missing %v, extra %v", m.FEN, m.Missing, m.Extra)
}

// Compare checks a single position.
func Compare(g *board.GameState, ref Reference) (*Mismatch, error) {
	fen := g.FEN()
	want, err := ref.LegalMoves(fen)
	if err != nil {
		return nil, err
	}

	moves := g.LegalMoves(g.Active())
	got := make([]string, len(moves))
	for i, m := range moves {
		got[i] = m.String()
	}

	missing, extra := diff(want, got)
	if len(missing) == 0 && len(extra) == 0 {
		return nil, nil
	}
	return &Mismatch{FEN: fen, Missing: missing, Extra: extra}, nil
}

// CrossCheck walks the tree below g to the given depth and returns every
// position where the generator disagrees with ref. A mismatching node is
// not expanded further.
func CrossCheck(ctx context.Context, g *board.GameState, ref Reference, depth int) ([]Mismatch, error) {
	var out []Mismatch
	var walk func(g *board.GameState, depth int) error
	walk = func(g *board.GameState, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		mm, err := Compare(g, ref)
		if err != nil {
			return err
		}
		if mm != nil {
			out = append(out, *mm)
			return nil
		}
		if depth <= 1 {
			return nil
		}
		for _, m := range g.LegalMoves(g.Active()) {
			if err := walk(g.ApplyMove(m), depth-1); err != nil {
				return err
			}
		}
		return nil
	}
	err := walk(g, depth)
	return out, err
}

func diff(want, got []string) (missing, extra []string) {
	w := slices.Clone(want)
	sort.Strings(w)
	h := slices.Clone(got)
	sort.Strings(h)

	i, j := 0, 0
	for i < len(w) || j < len(h) {
		switch {
		case j >= len(h) || (i < len(w) && w[i] < h[j]):
			missing = append(missing, w[i])
			i++
		case i >= len(w) || h[j] < w[i]:
			extra = append(extra, h[j])
			j++
		default:
			i++
			j++
		}
	}
	return missing, extra
}
