package layout

import (
	"strconv"
	"strings"
)

// CommandKind identifies a drawing instruction within a [PathSpec].
type CommandKind int

const (
	MoveCommand CommandKind = iota
	LineCommand
	CloseCommand
)

// String returns the relative SVG path letter for the command.
func (k CommandKind) String() string {
	switch k {
	case MoveCommand:
		return "m"
	case LineCommand:
		return "l"
	case CloseCommand:
		return "z"
	default:
		return "?"
	}
}

// Command is a single relative drawing instruction.
// DX and DY are ignored for [CloseCommand].
type Command struct {
	Kind CommandKind `json:"kind"`
	DX   int         `json:"dx"`
	DY   int         `json:"dy"`
}

// PathSpec is the closed outline of one rectangle: a move to the anchor,
// three line segments and a close back to the start.
type PathSpec struct {
	Anchor   Cursor    `json:"anchor"`
	Rect     Rectangle `json:"rect"`
	Commands []Command `json:"commands"`
}

// EmitOutline builds the outline of r anchored at c. The pen moves to c,
// draws down by the height, right by the width, up by the height and closes.
// Zero dimensions yield zero-length segments.
func EmitOutline(c Cursor, r Rectangle) PathSpec {
	return PathSpec{
		Anchor: c,
		Rect:   r,
		Commands: []Command{
			{Kind: MoveCommand, DX: c.X, DY: c.Y},
			{Kind: LineCommand, DX: 0, DY: r.Height},
			{Kind: LineCommand, DX: r.Width, DY: 0},
			{Kind: LineCommand, DX: 0, DY: -r.Height},
			{Kind: CloseCommand},
		},
	}
}

// Points returns the absolute corners visited by the outline, in drawing
// order, excluding the implicit return of the close.
func (p PathSpec) Points() []Cursor {
	var (
		pen Cursor
		pts = make([]Cursor, 0, 4)
	)
	for _, cmd := range p.Commands {
		switch cmd.Kind {
		case MoveCommand, LineCommand:
			pen = pen.Add(cmd.DX, cmd.DY)
			pts = append(pts, pen)
		}
	}
	return pts
}

// Data renders the outline as relative SVG path data,
// e.g. "m10,10 l0,3 l6,0 l0,-3 z".
func (p PathSpec) Data() string {
	var b strings.Builder
	for i, cmd := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cmd.Kind.String())
		if cmd.Kind == CloseCommand {
			continue
		}
		b.WriteString(strconv.Itoa(cmd.DX))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(cmd.DY))
	}
	return b.String()
}
