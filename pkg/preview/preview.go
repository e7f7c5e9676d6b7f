// Package preview rasterizes finished documents to PNG with oksvg and
// rasterx. Paint servers beyond plain gradients may be approximated.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/markup"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxPixels bounds the raster area.
const MaxPixels = 4096 * 4096

// ErrBadSize is returned for empty or oversized rasters.
var ErrBadSize = errors.New("bad raster size")

// Rasterize draws the SVG read from r into a width x height image,
// stretching its viewBox to fit.
func Rasterize(r io.Reader, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

// Document rasterizes doc at scale times its canvas size.
func Document(doc *render.Document, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	data, err := markup.Bytes(doc.Root)
	if err != nil {
		return nil, err
	}
	w := int(math.Round(doc.Canvas.Width * scale))
	h := int(math.Round(doc.Canvas.Height * scale))
	return Rasterize(bytes.NewReader(data), w, h)
}

// WritePNG rasterizes doc and encodes it as PNG.
func WritePNG(w io.Writer, doc *render.Document, scale float64) error {
	img, err := Document(doc, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
