package sink

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/matzehuels/flatbox/pkg/document"
)

// DefaultResolution is the PNG resolution in dots per millimetre.
const DefaultResolution = 8.0

// PNGOption configures raster rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpmm       float64
	background bool
}

// WithResolution sets the raster resolution in dots per millimetre.
func WithResolution(dpmm float64) PNGOption {
	return func(r *pngRenderer) {
		if dpmm > 0 {
			r.dpmm = dpmm
		}
	}
}

// WithBackground paints the sheet white instead of leaving it transparent.
func WithBackground() PNGOption { return func(r *pngRenderer) { r.background = true } }

// RenderPDF draws doc on a page of the sheet's size in millimetres.
func RenderPDF(doc document.Document) ([]byte, error) {
	c := drawCanvas(doc, false)
	var buf bytes.Buffer
	if err := renderers.PDF()(&buf, c); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG rasterises doc.
func RenderPNG(doc document.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpmm: DefaultResolution}
	for _, opt := range opts {
		opt(&r)
	}

	c := drawCanvas(doc, r.background)
	var buf bytes.Buffer
	if err := renderers.PNG(canvas.DPMM(r.dpmm))(&buf, c); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCanvas(doc document.Document, background bool) *canvas.Canvas {
	w, h := doc.WidthMM(), doc.HeightMM()
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)

	if background {
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(strokeWidth(doc))

	for _, spec := range doc.Paths {
		pts := spec.Points()
		var p canvas.Path
		p.MoveTo(float64(pts[0].X), h-float64(pts[0].Y))
		for _, pt := range pts[1:] {
			p.LineTo(float64(pt.X), h-float64(pt.Y))
		}
		p.Close()
		ctx.DrawPath(0, 0, &p)
	}
	return c
}
