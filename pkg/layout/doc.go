// Package layout places panel outlines on a cutting sheet.
//
// # Overview
//
// Panels are packed with row-flow packing: rectangles are taken strictly in
// input order, placed left to right, and wrapped onto a new row after every
// [RowSize] rectangles. Nothing is rotated, reordered or nested. The sheet is
// inset by [Margin] on every side.
//
// [Build] walks the input once. For each rectangle it emits a closed outline
// anchored at the current pen position (see [EmitOutline]) and advances the
// pen. When a row completes, the pen returns to the left margin and drops by
// the tallest rectangle of the finished row.
//
//	res := layout.Build([]layout.Rectangle{
//	    {Width: 6, Height: 3},
//	    {Width: 2, Height: 4},
//	})
//	fmt.Println(res.Bounds.Width, res.Bounds.Height)
//
// # Row Width
//
// The width of a row is measured as [Margin] plus the sum of the widths of
// the rectangles placed in it, not as the pen's final x coordinate. Only the
// widest row decides the sheet width, so rows of different panel widths leave
// a jagged right edge.
//
// # Bounds
//
// The returned [Bounds] always start at the origin. An empty input yields no
// paths and a sheet of [Margin] by [Margin].
//
// # Observing
//
// [WithObserver] reports every placement and the final flush as a [Step].
// This is how the CLI traces a layout in verbose mode; it never changes the
// result.
package layout
