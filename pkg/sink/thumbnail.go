package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/flatbox/pkg/document"
)

// DefaultThumbnailSize is the edge length of the thumbnail box in pixels.
const DefaultThumbnailSize = 256

// RenderThumbnail returns a PNG of doc that fits inside a size×size box,
// keeping the aspect ratio. Non-positive sizes use [DefaultThumbnailSize].
func RenderThumbnail(doc document.Document, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultThumbnailSize
	}

	raw, err := RenderPNG(doc, WithResolution(thumbnailResolution(doc, size)))
	if err != nil {
		return nil, err
	}
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail source: %w", err)
	}

	bg := imaging.New(src.Bounds().Dx(), src.Bounds().Dy(), color.NRGBA{255, 255, 255, 255})
	flat := imaging.Overlay(bg, src, image.Pt(0, 0), 1.0)
	thumb := imaging.Fit(flat, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailResolution picks a raster density so the longer sheet edge is
// at least twice the thumbnail size before downsampling.
func thumbnailResolution(doc document.Document, size int) float64 {
	edge := max(doc.WidthMM(), doc.HeightMM())
	if edge <= 0 {
		return DefaultResolution
	}
	return max(2*float64(size)/edge, 1)
}
