package layout

const (
	// RowSize is the number of rectangles placed in a row before wrapping.
	RowSize = 4

	// Margin is the sheet inset in millimetres on every side.
	Margin = 10
)

// Result is the output of [Build]: one outline per input rectangle, in input
// order, and the sheet bounds.
type Result struct {
	Paths  []PathSpec `json:"paths"`
	Bounds Bounds     `json:"bounds"`
}

// Step describes the state of a layout right after one rectangle was placed.
// The final flush is reported with Flush set and Index equal to the number of
// rectangles.
type Step struct {
	Index       int
	Rect        Rectangle
	Before      Cursor
	After       Cursor
	Wrapped     bool
	Flush       bool
	RowItems    int
	RowHeight   int
	RowWidth    int
	TotalHeight int
	MaxRowWidth int
}

// Option configures [Build].
type Option func(*config)

type config struct {
	observer func(Step)
}

// WithObserver registers fn to receive a [Step] after every placement and
// after the final flush.
func WithObserver(fn func(Step)) Option {
	return func(c *config) { c.observer = fn }
}

// state is the bookkeeping of a single Build call.
type state struct {
	cursor      Cursor
	rowItems    int
	rowHeight   int
	rowWidth    int
	totalHeight int
	maxRowWidth int
}

func newState() state {
	return state{
		cursor:      Cursor{X: Margin, Y: Margin},
		rowWidth:    Margin,
		totalHeight: Margin,
	}
}

// Build lays rects out with row-flow packing and returns their outlines and
// the sheet bounds. It never fails; zero-sized rectangles produce degenerate
// outlines at the current pen position. An empty input yields a bare
// Margin by Margin sheet and no observer calls.
func Build(rects []Rectangle, opts ...Option) Result {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(rects) == 0 {
		return Result{Paths: []PathSpec{}, Bounds: Bounds{Width: Margin, Height: Margin}}
	}

	s := newState()
	paths := make([]PathSpec, 0, len(rects))

	for i, r := range rects {
		before := s.cursor
		paths = append(paths, EmitOutline(s.cursor, r))
		wrapped := s.place(i, r)
		cfg.notify(s.step(i, r, before, wrapped, false))
	}

	before := s.cursor
	s.flush()
	cfg.notify(s.step(len(rects), Rectangle{}, before, false, true))

	return Result{
		Paths: paths,
		Bounds: Bounds{
			Width:  s.maxRowWidth + Margin,
			Height: s.totalHeight + Margin,
		},
	}
}

// place advances the state past rectangle i and reports whether the row
// wrapped.
func (s *state) place(i int, r Rectangle) bool {
	s.rowHeight = max(s.rowHeight, r.Height)
	s.rowWidth += r.Width
	s.rowItems++

	if (i+1)%RowSize != 0 {
		s.cursor = s.cursor.Add(r.Width, 0)
		return false
	}

	s.cursor = Cursor{X: Margin, Y: s.cursor.Y + s.rowHeight}
	s.totalHeight += s.rowHeight
	s.maxRowWidth = max(s.maxRowWidth, s.rowWidth)
	s.rowHeight = 0
	s.rowWidth = Margin
	s.rowItems = 0
	return true
}

// flush folds the open row into the totals. It runs unconditionally, so a
// layout ending on a full row folds an empty row (height 0, width Margin).
func (s *state) flush() {
	s.maxRowWidth = max(s.maxRowWidth, s.rowWidth)
	s.totalHeight += s.rowHeight
}

func (s *state) step(i int, r Rectangle, before Cursor, wrapped, flush bool) Step {
	return Step{
		Index:       i,
		Rect:        r,
		Before:      before,
		After:       s.cursor,
		Wrapped:     wrapped,
		Flush:       flush,
		RowItems:    s.rowItems,
		RowHeight:   s.rowHeight,
		RowWidth:    s.rowWidth,
		TotalHeight: s.totalHeight,
		MaxRowWidth: s.maxRowWidth,
	}
}

func (c config) notify(st Step) {
	if c.observer != nil {
		c.observer(st)
	}
}
