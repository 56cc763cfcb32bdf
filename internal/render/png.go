package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/hailam/chessmask/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// renderScale is the supersampling factor used before downscaling.
const renderScale = 3

// Image rasterizes the SVG diagram. Text is not rasterized; pieces remain
// identifiable by their marker shapes.
func Image(g *board.GameState, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	if err := SVG(&buf, g, opts); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing diagram: %w", err)
	}

	// Render at higher resolution for quality
	size := opts.SquareSize * 8
	renderSize := size * renderScale
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	hi := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, hi, hi.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Src, nil)
	return out, nil
}

// PNG writes the rasterized diagram as a PNG.
func PNG(w io.Writer, g *board.GameState, opts Options) error {
	img, err := Image(g, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
