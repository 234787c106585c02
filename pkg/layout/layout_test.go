package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var scenario = []Rectangle{
	{Width: 6, Height: 3},
	{Width: 6, Height: 3},
	{Width: 2, Height: 4},
	{Width: 2, Height: 4},
	{Width: 8, Height: 2},
}

func TestBuildEmpty(t *testing.T) {
	calls := 0
	res := Build(nil, WithObserver(func(Step) { calls++ }))

	if len(res.Paths) != 0 {
		t.Errorf("Paths = %d, want 0", len(res.Paths))
	}
	want := Bounds{X: 0, Y: 0, Width: Margin, Height: Margin}
	if res.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", res.Bounds, want)
	}
	if calls != 0 {
		t.Errorf("observer called %d times, want 0", calls)
	}
}

func TestBuildScenario(t *testing.T) {
	var steps []Step
	res := Build(scenario, WithObserver(func(s Step) { steps = append(steps, s) }))

	if want := (Bounds{Width: 36, Height: 26}); res.Bounds != want {
		t.Fatalf("Bounds = %+v, want %+v", res.Bounds, want)
	}

	var trace []Cursor
	for _, s := range steps[:len(scenario)] {
		trace = append(trace, s.Before)
	}
	trace = append(trace, steps[len(scenario)-1].After)
	wantTrace := []Cursor{{10, 10}, {16, 10}, {22, 10}, {24, 10}, {10, 14}, {18, 14}}
	if diff := cmp.Diff(wantTrace, trace); diff != "" {
		t.Errorf("cursor trace mismatch (-want +got):\n%s", diff)
	}

	fold := steps[3]
	if !fold.Wrapped {
		t.Fatal("step 3 should wrap")
	}
	if fold.TotalHeight != 14 || fold.MaxRowWidth != 26 {
		t.Errorf("after row 1: totalHeight=%d maxRowWidth=%d, want 14 and 26", fold.TotalHeight, fold.MaxRowWidth)
	}

	last := steps[len(steps)-1]
	if !last.Flush {
		t.Fatal("last step should be the flush")
	}
	if last.TotalHeight != 16 || last.MaxRowWidth != 26 {
		t.Errorf("after flush: totalHeight=%d maxRowWidth=%d, want 16 and 26", last.TotalHeight, last.MaxRowWidth)
	}
	if last.RowWidth != 18 {
		t.Errorf("row 2 width = %d, want 18", last.RowWidth)
	}
}

func TestBuildPathAnchors(t *testing.T) {
	res := Build(scenario)
	if len(res.Paths) != len(scenario) {
		t.Fatalf("Paths = %d, want %d", len(res.Paths), len(scenario))
	}
	want := []Cursor{{10, 10}, {16, 10}, {22, 10}, {24, 10}, {10, 14}}
	for i, p := range res.Paths {
		if p.Anchor != want[i] {
			t.Errorf("Paths[%d].Anchor = %+v, want %+v", i, p.Anchor, want[i])
		}
		if p.Rect != scenario[i] {
			t.Errorf("Paths[%d].Rect = %+v, want %+v", i, p.Rect, scenario[i])
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(scenario)
	b := Build(scenario)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Build not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildWrapPositions(t *testing.T) {
	for n := 1; n <= 13; n++ {
		rects := make([]Rectangle, n)
		for i := range rects {
			rects[i] = Rectangle{Width: i + 1, Height: (i % 3) + 1}
		}

		var steps []Step
		Build(rects, WithObserver(func(s Step) { steps = append(steps, s) }))

		rowMax := 0
		for i, s := range steps[:n] {
			rowMax = max(rowMax, rects[i].Height)
			wantWrap := (i+1)%RowSize == 0
			if s.Wrapped != wantWrap {
				t.Errorf("n=%d: step %d wrapped=%v, want %v", n, i, s.Wrapped, wantWrap)
			}
			if s.Wrapped {
				if s.After.X != Margin || s.After.Y != s.Before.Y+rowMax {
					t.Errorf("n=%d: step %d after wrap = %+v, want (%d,%d)", n, i, s.After, Margin, s.Before.Y+rowMax)
				}
				if s.RowItems != 0 {
					t.Errorf("n=%d: step %d row items = %d after wrap", n, i, s.RowItems)
				}
				rowMax = 0
			} else if s.RowItems < 1 || s.RowItems >= RowSize {
				t.Errorf("n=%d: step %d row items = %d out of range", n, i, s.RowItems)
			}
		}
	}
}

func TestBuildMonotonicBounds(t *testing.T) {
	rects := []Rectangle{
		{50, 10}, {1, 1}, {0, 0}, {20, 40},
		{5, 5}, {100, 2}, {3, 3}, {3, 3},
		{0, 9},
	}

	var steps []Step
	res := Build(rects, WithObserver(func(s Step) { steps = append(steps, s) }))

	prevHeight, prevWidth := 0, 0
	for _, s := range steps {
		if s.TotalHeight < prevHeight {
			t.Errorf("step %d: totalHeight decreased %d -> %d", s.Index, prevHeight, s.TotalHeight)
		}
		if s.MaxRowWidth < prevWidth {
			t.Errorf("step %d: maxRowWidth decreased %d -> %d", s.Index, prevWidth, s.MaxRowWidth)
		}
		prevHeight, prevWidth = s.TotalHeight, s.MaxRowWidth
	}

	if res.Bounds.Width < Margin || res.Bounds.Height < Margin {
		t.Errorf("Bounds %+v smaller than margin", res.Bounds)
	}
	// Row 2 is 10+5+100+3+3 = 121 wide.
	if res.Bounds.Width != 131 {
		t.Errorf("Bounds.Width = %d, want 131", res.Bounds.Width)
	}
	// Rows of 40, 5 and 9 on top of both margins.
	if res.Bounds.Height != 74 {
		t.Errorf("Bounds.Height = %d, want 74", res.Bounds.Height)
	}
}

func TestBuildSingleFullRow(t *testing.T) {
	// Width is the leading margin, the sum of the row and the far margin.
	rects := []Rectangle{{10, 1}, {20, 1}, {30, 1}, {40, 1}}
	res := Build(rects)
	if res.Bounds.Width != 10+100+10 {
		t.Errorf("Bounds.Width = %d, want 120", res.Bounds.Width)
	}
	if res.Bounds.Height != 10+1+10 {
		t.Errorf("Bounds.Height = %d, want 21", res.Bounds.Height)
	}
}

func TestBuildZeroRectangle(t *testing.T) {
	res := Build([]Rectangle{{0, 0}, {4, 2}})
	if got := res.Paths[0].Anchor; got != (Cursor{Margin, Margin}) {
		t.Errorf("zero rect anchor = %+v", got)
	}
	if got := res.Paths[1].Anchor; got != (Cursor{Margin, Margin}) {
		t.Errorf("rect after zero rect anchor = %+v, want margin", got)
	}
	if want := (Bounds{Width: 24, Height: 22}); res.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", res.Bounds, want)
	}
}
