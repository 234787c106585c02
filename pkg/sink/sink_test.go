package sink

import (
	"github.com/matzehuels/flatbox/pkg/document"
	"github.com/matzehuels/flatbox/pkg/layout"
)

func scenarioRects() []layout.Rectangle {
	return []layout.Rectangle{
		{Width: 6, Height: 3},
		{Width: 6, Height: 3},
		{Width: 2, Height: 4},
		{Width: 2, Height: 4},
		{Width: 8, Height: 2},
	}
}

func scenarioDoc() document.Document {
	return document.Assemble("image", layout.Build(scenarioRects()))
}
