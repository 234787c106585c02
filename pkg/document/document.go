// Package document wraps a finished layout into a drawing document.
//
// A [Document] is what every sink renders: the ordered outlines, the view
// box and the declared physical size of the sheet. [Assemble] performs no
// geometry of its own; it only translates a [layout.Result].
package document

import (
	"fmt"

	"github.com/matzehuels/flatbox/pkg/layout"
)

// StrokeWidth is the fixed outline stroke in millimetres.
const StrokeWidth = 0.05

// Unit is the physical unit of declared sizes.
const Unit = "mm"

// ViewBox is the user-space region of the drawing.
type ViewBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String formats the view box as an SVG viewBox attribute value.
func (v ViewBox) String() string {
	return fmt.Sprintf("%d %d %d %d", v.X, v.Y, v.Width, v.Height)
}

// Document is one cut drawing for a material group.
type Document struct {
	Name           string            `json:"name"`
	Paths          []layout.PathSpec `json:"paths"`
	ViewBox        ViewBox           `json:"view_box"`
	DeclaredWidth  string            `json:"declared_width"`
	DeclaredHeight string            `json:"declared_height"`
	StrokeWidth    float64           `json:"stroke_width"`
}

// Assemble builds the document for res. The view box is (0, 0, W, H) of the
// layout bounds and the declared size is the same W and H in millimetres.
func Assemble(name string, res layout.Result) Document {
	w, h := res.Bounds.Width, res.Bounds.Height
	return Document{
		Name:           name,
		Paths:          res.Paths,
		ViewBox:        ViewBox{Width: w, Height: h},
		DeclaredWidth:  fmt.Sprintf("%d%s", w, Unit),
		DeclaredHeight: fmt.Sprintf("%d%s", h, Unit),
		StrokeWidth:    StrokeWidth,
	}
}

// WidthMM returns the sheet width in millimetres.
func (d Document) WidthMM() float64 { return float64(d.ViewBox.Width) }

// HeightMM returns the sheet height in millimetres.
func (d Document) HeightMM() float64 { return float64(d.ViewBox.Height) }
