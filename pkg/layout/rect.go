package layout

import "fmt"

// Rectangle is the size of one panel in millimetres.
type Rectangle struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the surface of the rectangle.
func (r Rectangle) Area() int { return r.Width * r.Height }

// String formats the rectangle as "WxH".
func (r Rectangle) String() string { return fmt.Sprintf("%dx%d", r.Width, r.Height) }

// Cursor is the pen position where the next outline begins. It is the
// top-left corner of the next rectangle in drawing space (y grows downward).
type Cursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cursor moved by dx, dy.
func (c Cursor) Add(dx, dy int) Cursor { return Cursor{X: c.X + dx, Y: c.Y + dy} }

// Bounds is the sheet rectangle that contains every outline plus the margin.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the horizontal end of the bounds.
func (b Bounds) Right() int { return b.X + b.Width }

// Bottom returns the vertical end of the bounds.
func (b Bounds) Bottom() int { return b.Y + b.Height }
