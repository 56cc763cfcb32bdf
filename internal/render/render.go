// Package render draws a position with a highlighted square set, for
// inspecting the masks the move generator works from.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/hailam/chessmask/internal/board"
)

// Options controls a diagram.
type Options struct {
	SquareSize   int            // Pixels per square (default 48)
	Overlay      board.Bitboard // Squares to highlight
	OverlayColor string         // CSS color of the highlight (default "#e0533a")
	Flip         bool           // Draw rank 1 on top
	Coordinates  bool           // Label files and ranks
}

const (
	lightSquare  = "#f0d9b5"
	darkSquare   = "#b58863"
	defaultColor = "#e0533a"
)

func (o Options) withDefaults() Options {
	if o.SquareSize <= 0 {
		o.SquareSize = 48
	}
	if o.OverlayColor == "" {
		o.OverlayColor = defaultColor
	}
	return o
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG writes the position as an SVG document.
func SVG(w io.Writer, g *board.GameState, opts Options) error {
	opts = opts.withDefaults()
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	size := opts.SquareSize * 8
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Title(g.FEN())

	p := g.Position()
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opts.origin(sq)
		fill := darkSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = lightSquare
		}
		canvas.Rect(x, y, opts.SquareSize, opts.SquareSize, "fill:"+fill)

		if opts.Overlay.IsSet(sq) {
			canvas.Rect(x, y, opts.SquareSize, opts.SquareSize,
				fmt.Sprintf("fill:%s;fill-opacity:0.45", opts.OverlayColor))
		}

		if piece := p.PieceAt(sq); piece != board.NoPiece {
			drawPiece(canvas, piece, x, y, opts.SquareSize)
		}
	}

	if opts.Coordinates {
		opts.drawCoordinates(canvas)
	}

	canvas.End()
	return ew.err
}

// origin returns the top-left pixel of a square.
func (o Options) origin(sq board.Square) (int, int) {
	file, rank := sq.File(), 7-sq.Rank()
	if o.Flip {
		file, rank = 7-file, sq.Rank()
	}
	return file * o.SquareSize, rank * o.SquareSize
}

func (o Options) drawCoordinates(canvas *svg.SVG) {
	style := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:#333", o.SquareSize/5)
	for i := 0; i < 8; i++ {
		file := board.NewSquare(i, 0)
		x, _ := o.origin(file)
		canvas.Text(x+o.SquareSize-o.SquareSize/5, o.SquareSize*8-3, string(rune('a'+i)), style)

		rank := board.NewSquare(0, i)
		_, y := o.origin(rank)
		canvas.Text(2, y+o.SquareSize/4, string(rune('1'+i)), style)
	}
}

// drawPiece draws a disc in the piece's color with a marker shape for its
// type, plus the FEN letter for viewers that render text.
func drawPiece(canvas *svg.SVG, piece board.Piece, x, y, size int) {
	cx, cy, r := x+size/2, y+size/2, size*2/5

	fill, ink := "#fafafa", "#111111"
	if piece.Color() == board.Black {
		fill, ink = "#222222", "#eeeeee"
	}
	canvas.Circle(cx, cy, r, fmt.Sprintf("fill:%s;stroke:#000;stroke-width:%d", fill, max(size/24, 1)))

	xs, ys := marker(piece.Type(), cx, cy, r/2)
	canvas.Polygon(xs, ys, "fill:"+ink)

	canvas.Text(cx, cy+r+size/12, strings.ToUpper(piece.String()),
		fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:middle;fill:%s;fill-opacity:0", size/4, ink))
}

// marker returns the polygon identifying a piece type, centered on (cx, cy)
// with radius r.
func marker(pt board.PieceType, cx, cy, r int) ([]int, []int) {
	var pts [][2]int
	switch pt {
	case board.King: // cross
		t := r / 3
		pts = [][2]int{{-t, -r}, {t, -r}, {t, -t}, {r, -t}, {r, t}, {t, t}, {t, r}, {-t, r}, {-t, t}, {-r, t}, {-r, -t}, {-t, -t}}
	case board.Queen: // crown
		pts = [][2]int{{-r, r}, {-r, -r}, {-r / 2, 0}, {0, -r}, {r / 2, 0}, {r, -r}, {r, r}}
	case board.Rook: // square
		pts = [][2]int{{-r, -r}, {r, -r}, {r, r}, {-r, r}}
	case board.Bishop: // diamond
		pts = [][2]int{{0, -r}, {r * 2 / 3, 0}, {0, r}, {-r * 2 / 3, 0}}
	case board.Knight: // wedge
		pts = [][2]int{{-r, r}, {-r / 2, -r}, {r, -r / 3}, {0, 0}, {r / 2, r}}
	default: // pawn: small triangle
		h := r * 2 / 3
		pts = [][2]int{{0, -h}, {h, h}, {-h, h}}
	}

	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = cx+p[0], cy+p[1]
	}
	return xs, ys
}
