// Package pkg provides the core libraries for flatbox cutting layouts.
//
// # Overview
//
// Flatbox turns the inner dimensions of a box enclosure into cutting
// drawings. The pkg directory is organized as:
//
//  1. [panel] - Enclosure description, derived panels and material groups
//  2. [layout] - Row-flow placement of rectangles and their outlines
//  3. [document] - Drawing documents assembled from a layout
//  4. [sink] - SVG, JSON, PDF, PNG, thumbnail and cut list renderers
//  5. [pipeline] - Orchestration (build → layout → assemble → render)
//  6. [cache], [storage] - Render cache and artifact persistence
//  7. [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The data flow through flatbox:
//
//	Enclosure
//	    ↓
//	[panel] package (derive panels, split into groups)
//	    ↓
//	[layout] package (place panels in rows of four, compute bounds)
//	    ↓
//	[document] package (viewBox, millimetre size, stroke width)
//	    ↓
//	[sink] package (SVG/JSON/PDF/PNG/thumbnail/XLSX bytes)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Enclosure: panel.NewEnclosure(100, 50, 80),
//	    Formats:   []string{pipeline.FormatSVG},
//	})
//	w, _ := storage.NewDirWriter("out")
//	names, err := runner.Write(ctx, res, w)
package pkg
