package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/chessmask/internal/board"
)

var tables = board.NewTables()

func mustState(t *testing.T, fen string) *board.GameState {
	t.Helper()
	g, err := board.FromFEN(tables, fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return g
}

func TestSVGDocument(t *testing.T) {
	g := board.NewStartState(tables)

	var buf bytes.Buffer
	if err := SVG(&buf, g, Options{SquareSize: 10, Overlay: g.Masks(board.White).Space}); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `viewBox="0 0 80 80"`) {
		t.Errorf("missing view box in\n%s", out)
	}
	if got := strings.Count(out, "<circle"); got != 32 {
		t.Errorf("pieces drawn = %d, want 32", got)
	}
	if got, want := strings.Count(out, "fill-opacity:0.45"), g.Masks(board.White).Space.PopCount(); got != want {
		t.Errorf("highlighted squares = %d, want %d", got, want)
	}
	if !strings.Contains(out, board.StartFEN) {
		t.Error("title should carry the FEN")
	}
}

func TestOriginFlip(t *testing.T) {
	o := Options{SquareSize: 10}
	if x, y := o.origin(board.A1); x != 0 || y != 70 {
		t.Errorf("a1 at (%d,%d), want (0,70)", x, y)
	}
	o.Flip = true
	if x, y := o.origin(board.A1); x != 70 || y != 0 {
		t.Errorf("flipped a1 at (%d,%d), want (70,0)", x, y)
	}
}

func TestPNGHighlight(t *testing.T) {
	g := mustState(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	var buf bytes.Buffer
	opts := Options{SquareSize: 16, Overlay: board.SquareBB(board.D4), OverlayColor: "#0000ff"}
	if err := PNG(&buf, g, opts); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("bounds = %v", b)
	}

	blueness := func(sq board.Square) int {
		x, y := opts.origin(sq)
		c := color.RGBAModel.Convert(img.At(x+8, y+8)).(color.RGBA)
		return int(c.B) - int(c.R)
	}
	if blueness(board.D4) <= blueness(board.D5) {
		t.Errorf("d4 not highlighted: %d vs %d", blueness(board.D4), blueness(board.D5))
	}
}

func TestMask(t *testing.T) {
	g := mustState(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")

	for _, name := range MaskNames() {
		if _, err := Mask(g, board.White, name); err != nil {
			t.Errorf("Mask(%q): %v", name, err)
		}
	}

	checkers, _ := Mask(g, board.White, "checkers")
	if checkers != board.SquareBB(board.E2) {
		t.Errorf("checkers =\n%s", checkers)
	}

	moves, _ := Mask(g, board.White, "moves")
	for _, sq := range moves.Squares() {
		if sq == board.E1 {
			t.Error("king square in move targets")
		}
	}

	if _, err := Mask(g, board.White, "nope"); err == nil {
		t.Error("expected error for unknown mask")
	}
}
