// Package sink renders a [document.Document] into output formats.
//
// # Overview
//
// A "sink" turns an assembled cut drawing into bytes. This package provides:
//
//   - SVG: the cut file itself, one stroke-only outline per panel
//   - JSON: the document geometry for external tools
//   - PDF: print-ready output at true millimetre size
//   - PNG: raster preview at a configurable resolution
//   - Thumbnail: a small PNG fitted into a square
//   - Cut list: an XLSX workbook with one sheet per material group
//
// # SVG Output
//
// [RenderSVG] is byte-deterministic: the same document always produces the
// same output. The root element declares the sheet size in millimetres and
// a view box in the same user units, so one user unit is one millimetre:
//
//	<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 36 26" width="36mm" height="26mm">
//	<path d="m10,10 l0,3 l6,0 l0,-3 z" fill="none" stroke="black" stroke-width="0.05"/>
//	</svg>
//
// # Raster and PDF Output
//
// [RenderPDF] and [RenderPNG] draw the same outlines with tdewolff/canvas.
// Canvas uses a y-up coordinate system, so every point is flipped against
// the sheet height before drawing.
//
// [RenderThumbnail] rasterises the document, flattens it onto white and
// fits it into a size×size box using disintegration/imaging.
//
// # Cut List
//
// [RenderCutList] writes an excelize workbook listing every panel with its
// size and sheet position, grouped by drawing.
package sink
