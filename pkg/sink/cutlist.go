package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/flatbox/pkg/document"
	"github.com/matzehuels/flatbox/pkg/panel"
)

// SummarySheet is the name of the first worksheet of a cut list.
const SummarySheet = "summary"

// CutSheet pairs a panel group with the document it was laid out into.
// Panels and document paths correspond by index.
type CutSheet struct {
	Group    panel.Group
	Document document.Document
}

var (
	summaryHeader = []any{"Group", "Panels", "Sheet width (mm)", "Sheet height (mm)", "Panel area (mm²)"}
	panelHeader   = []any{"Panel", "Material", "Width (mm)", "Height (mm)", "X", "Y"}
)

// RenderCutList writes an XLSX workbook with a summary sheet followed by one
// sheet per group listing every panel in cutting order.
func RenderCutList(sheets []CutSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := writeRow(f, SummarySheet, 1, summaryHeader, bold); err != nil {
		return nil, err
	}
	for i, s := range sheets {
		if len(s.Group.Panels) != len(s.Document.Paths) {
			return nil, fmt.Errorf("group %q: %d panels but %d paths", s.Group.Name, len(s.Group.Panels), len(s.Document.Paths))
		}
		row := []any{s.Group.Name, len(s.Group.Panels), s.Document.ViewBox.Width, s.Document.ViewBox.Height, panel.TotalArea(s.Group.Panels)}
		if err := writeRow(f, SummarySheet, i+2, row, 0); err != nil {
			return nil, err
		}
		if err := writeGroupSheet(f, s, bold); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "E", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeGroupSheet(f *excelize.File, s CutSheet, style int) error {
	name := s.Group.Name
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	if err := writeRow(f, name, 1, panelHeader, style); err != nil {
		return err
	}
	for i, p := range s.Group.Panels {
		anchor := s.Document.Paths[i].Anchor
		row := []any{p.Name, string(p.Material), p.Rect.Width, p.Rect.Height, anchor.X, anchor.Y}
		if err := writeRow(f, name, i+2, row, 0); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(name, "A", "F", 14); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	if style == 0 || len(values) == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style %s!%s:%s: %w", sheet, first, last, err)
	}
	return nil
}
