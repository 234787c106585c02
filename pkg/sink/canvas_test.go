package sink

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(scenarioDoc())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", data[:min(len(data), 8)])
	}
}

func TestRenderPNG(t *testing.T) {
	low, err := RenderPNG(scenarioDoc(), WithResolution(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	high, err := RenderPNG(scenarioDoc(), WithResolution(8), WithBackground())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	lowImg, err := png.Decode(bytes.NewReader(low))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	highImg, err := png.Decode(bytes.NewReader(high))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	if lowImg.Bounds().Dx() >= highImg.Bounds().Dx() {
		t.Errorf("width at 2dpmm = %d, at 8dpmm = %d; want growth", lowImg.Bounds().Dx(), highImg.Bounds().Dx())
	}
	if b := highImg.Bounds(); b.Dx() <= b.Dy() {
		t.Errorf("36x26 sheet rendered as %dx%d, want landscape", b.Dx(), b.Dy())
	}
}
