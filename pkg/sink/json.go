package sink

import (
	"encoding/json"

	"github.com/matzehuels/flatbox/pkg/document"
)

type jsonOutput struct {
	Name        string     `json:"name"`
	ViewBox     string     `json:"view_box"`
	Width       string     `json:"width"`
	Height      string     `json:"height"`
	StrokeWidth float64    `json:"stroke_width"`
	Paths       []jsonPath `json:"paths"`
	Bounds      jsonBounds `json:"bounds"`
}

type jsonBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type jsonPath struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   string `json:"d"`
}

// RenderJSON exports the document geometry as indented JSON.
func RenderJSON(doc document.Document) ([]byte, error) {
	out := jsonOutput{
		Name:        doc.Name,
		ViewBox:     doc.ViewBox.String(),
		Width:       doc.DeclaredWidth,
		Height:      doc.DeclaredHeight,
		StrokeWidth: strokeWidth(doc),
		Paths:       make([]jsonPath, 0, len(doc.Paths)),
		Bounds:      jsonBounds{Width: doc.ViewBox.Width, Height: doc.ViewBox.Height},
	}
	for _, p := range doc.Paths {
		out.Paths = append(out.Paths, jsonPath{
			X:      p.Anchor.X,
			Y:      p.Anchor.Y,
			Width:  p.Rect.Width,
			Height: p.Rect.Height,
			Data:   p.Data(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
