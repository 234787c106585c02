// Package panel derives the flat panels of a box enclosure.
//
// An [Enclosure] is described by its inner width, height and depth plus the
// thickness of its two sheet materials: perspex for the walls and lid, wood
// for the base. [Build] turns it into the ordered list of [Panel] values, and
// [Group] partitions that list into material groups according to a
// [Grouping] policy. Each group is laid out and written as one drawing.
package panel

import (
	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/layout"
)

// Material is the sheet material a panel is cut from.
type Material string

const (
	Perspex Material = "perspex"
	Wood    Material = "wood"
)

// DefaultThickness is the thickness assumed for either material when none is given.
const DefaultThickness = 1

// Enclosure holds the inner dimensions of the box and the material
// thicknesses, all in millimetres.
type Enclosure struct {
	Width            int `json:"width" toml:"width"`
	Height           int `json:"height" toml:"height"`
	Depth            int `json:"depth" toml:"depth"`
	PerspexThickness int `json:"perspex_thickness" toml:"perspex_thickness"`
	WoodThickness    int `json:"wood_thickness" toml:"wood_thickness"`
}

// NewEnclosure returns an enclosure with both thicknesses set to
// [DefaultThickness].
func NewEnclosure(width, height, depth int) Enclosure {
	return Enclosure{
		Width:            width,
		Height:           height,
		Depth:            depth,
		PerspexThickness: DefaultThickness,
		WoodThickness:    DefaultThickness,
	}
}

// Validate checks that the dimensions are positive and the thicknesses are
// not negative.
func (e Enclosure) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"width", e.Width},
		{"height", e.Height},
		{"depth", e.Depth},
	}
	for _, c := range checks {
		if err := ferrors.ValidateDimension(c.name, c.v); err != nil {
			return err
		}
	}
	if err := ferrors.ValidateThickness("perspex_thickness", e.PerspexThickness); err != nil {
		return err
	}
	return ferrors.ValidateThickness("wood_thickness", e.WoodThickness)
}

// Panel is one physical piece of material.
type Panel struct {
	Name     string           `json:"name"`
	Material Material         `json:"material"`
	Rect     layout.Rectangle `json:"rect"`
}

// Build derives every panel of the enclosure in cutting order: face, back,
// two sides, top, inner base and base.
func Build(e Enclosure) []Panel {
	p, t := e.PerspexThickness, e.WoodThickness
	outerWidth := e.Width + 2*p

	side := layout.Rectangle{Width: e.Depth, Height: e.Height}
	return []Panel{
		{Name: "face", Material: Perspex, Rect: layout.Rectangle{Width: outerWidth, Height: e.Height + p + t}},
		{Name: "back", Material: Perspex, Rect: layout.Rectangle{Width: outerWidth, Height: e.Height + p + t}},
		{Name: "side", Material: Perspex, Rect: side},
		{Name: "side", Material: Perspex, Rect: side},
		{Name: "top", Material: Perspex, Rect: layout.Rectangle{Width: outerWidth, Height: e.Depth}},
		{Name: "inner base", Material: Wood, Rect: layout.Rectangle{Width: e.Width, Height: e.Depth}},
		{Name: "base", Material: Wood, Rect: layout.Rectangle{Width: outerWidth, Height: e.Depth + p + t}},
	}
}

// Rectangles returns the rectangles of panels in order.
func Rectangles(panels []Panel) []layout.Rectangle {
	rects := make([]layout.Rectangle, len(panels))
	for i, p := range panels {
		rects[i] = p.Rect
	}
	return rects
}

// TotalArea returns the summed surface of panels in square millimetres.
func TotalArea(panels []Panel) int {
	var sum int
	for _, p := range panels {
		sum += p.Rect.Area()
	}
	return sum
}
