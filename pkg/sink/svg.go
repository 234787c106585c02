package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/flatbox/pkg/document"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke string
	title  bool
}

// WithStrokeColor overrides the outline colour (default "black").
func WithStrokeColor(c string) SVGOption { return func(r *svgRenderer) { r.stroke = c } }

// WithTitle emits a <title> element carrying the document name.
func WithTitle() SVGOption { return func(r *svgRenderer) { r.title = true } }

// RenderSVG writes doc as a standalone SVG file.
func RenderSVG(doc document.Document, opts ...SVGOption) []byte {
	r := svgRenderer{stroke: "black"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s" width="%s" height="%s">`+"\n",
		doc.ViewBox, doc.DeclaredWidth, doc.DeclaredHeight)

	if r.title && doc.Name != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", escapeXML(doc.Name))
	}

	sw := strconv.FormatFloat(strokeWidth(doc), 'f', -1, 64)
	for _, p := range doc.Paths {
		fmt.Fprintf(&buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			p.Data(), escapeXML(r.stroke), sw)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func strokeWidth(doc document.Document) float64 {
	if doc.StrokeWidth <= 0 {
		return document.StrokeWidth
	}
	return doc.StrokeWidth
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
