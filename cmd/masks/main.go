// Command masks draws one of the move generator's masks over a position.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hailam/chessmask/internal/board"
	"github.com/hailam/chessmask/internal/render"
)

var (
	fen     = flag.String("fen", board.StartFEN, "position to draw")
	color   = flag.String("color", "", "side whose mask is drawn, w or b (default: side to move)")
	mask    = flag.String("mask", "space", "mask to highlight: "+strings.Join(render.MaskNames(), ", "))
	out     = flag.String("out", "", "output file, .svg or .png (default: SVG on stdout)")
	size    = flag.Int("size", 48, "square size in pixels")
	flip    = flag.Bool("flip", false, "draw from black's side")
	coords  = flag.Bool("coords", true, "label files and ranks")
	overlay = flag.String("color-overlay", "", "CSS color of the highlight")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	g, err := board.FromFEN(board.NewTables(), *fen)
	if err != nil {
		return err
	}

	c := g.Active()
	if *color != "" {
		if c, err = board.ParseColor(*color); err != nil {
			return err
		}
	}

	bb, err := render.Mask(g, c, *mask)
	if err != nil {
		return err
	}

	opts := render.Options{
		SquareSize:   *size,
		Overlay:      bb,
		OverlayColor: *overlay,
		Flip:         *flip,
		Coordinates:  *coords,
	}

	if *out == "" {
		return render.SVG(os.Stdout, g, opts)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		err = render.PNG(f, g, opts)
	case ".svg":
		err = render.SVG(f, g, opts)
	default:
		return fmt.Errorf("unsupported output format %q (want .svg or .png)", filepath.Ext(*out))
	}
	if err != nil {
		return err
	}
	return f.Close()
}
