package pipeline

import (
	"fmt"

	"github.com/matzehuels/flatbox/pkg/document"
	"github.com/matzehuels/flatbox/pkg/sink"
)

// Render produces one document in a per-group format.
func Render(doc document.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(doc), nil
	case FormatJSON:
		return sink.RenderJSON(doc)
	case FormatPDF:
		return sink.RenderPDF(doc)
	case FormatPNG:
		return sink.RenderPNG(doc, sink.WithResolution(opts.Resolution), sink.WithBackground())
	case FormatThumb:
		return sink.RenderThumbnail(doc, opts.ThumbnailSize)
	default:
		return nil, fmt.Errorf("unsupported per-group format: %s", format)
	}
}

// RenderCutList produces the workbook covering groups.
func RenderCutList(groups []GroupResult) ([]byte, error) {
	sheets := make([]sink.CutSheet, len(groups))
	for i, g := range groups {
		sheets[i] = sink.CutSheet{Group: g.Group, Document: g.Document}
	}
	return sink.RenderCutList(sheets)
}
