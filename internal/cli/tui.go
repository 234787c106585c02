package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flatbox/pkg/panel"
	"github.com/matzehuels/flatbox/pkg/pipeline"
)

var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tableHeader    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorder    = lipgloss.NewStyle().Foreground(colorDim)
	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// GroupPickerModel - Interactive group selection
// =============================================================================

// groupRow is one line of the picker.
type groupRow struct {
	Name   string
	Panels int
	Width  int
	Height int
	Area   int
}

// GroupPickerModel is the bubbletea model for choosing which groups to write.
// Every group starts out selected.
type GroupPickerModel struct {
	Rows      []groupRow
	Cursor    int
	Chosen    []bool
	Confirmed bool
}

// NewGroupPickerModel creates a picker over the laid out groups.
func NewGroupPickerModel(groups []pipeline.GroupResult) GroupPickerModel {
	m := GroupPickerModel{
		Rows:   make([]groupRow, len(groups)),
		Chosen: make([]bool, len(groups)),
	}
	for i, g := range groups {
		m.Rows[i] = groupRow{
			Name:   g.Group.Name,
			Panels: len(g.Group.Panels),
			Width:  g.Layout.Bounds.Width,
			Height: g.Layout.Bounds.Height,
			Area:   panel.TotalArea(g.Group.Panels),
		}
		m.Chosen[i] = true
	}
	return m
}

func (m GroupPickerModel) Init() tea.Cmd {
	return nil
}

func (m GroupPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Confirmed = false
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case " ", "space", "x":
		if len(m.Chosen) > 0 {
			m.Chosen = toggled(m.Chosen, m.Cursor)
		}
	case "a":
		all := m.countChosen() < len(m.Chosen)
		chosen := make([]bool, len(m.Chosen))
		for i := range chosen {
			chosen[i] = all
		}
		m.Chosen = chosen
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

// toggled returns a copy of chosen with index i flipped, so earlier model
// values stay untouched.
func toggled(chosen []bool, i int) []bool {
	out := append([]bool(nil), chosen...)
	out[i] = !out[i]
	return out
}

func (m GroupPickerModel) countChosen() int {
	n := 0
	for _, c := range m.Chosen {
		if c {
			n++
		}
	}
	return n
}

// Selected returns the chosen group names, or nil when the picker was
// cancelled.
func (m GroupPickerModel) Selected() []string {
	if !m.Confirmed {
		return nil
	}
	var names []string
	for i, r := range m.Rows {
		if m.Chosen[i] {
			names = append(names, r.Name)
		}
	}
	return names
}

func (m GroupPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Groups"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ write  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Rows))
	for i, r := range m.Rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Chosen[i] {
			check = "[x]"
		}
		rows[i] = []string{
			cursor + check,
			r.Name,
			strconv.Itoa(r.Panels),
			fmt.Sprintf("%d × %d", r.Width, r.Height),
			strconv.Itoa(r.Area),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("", "Group", "Panels", "Sheet (mm)", "Area (mm²)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader.Padding(0, 1)
			}
			base := tableCellStyle
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			switch {
			case row == m.Cursor && m.Chosen[row]:
				return base.Foreground(colorGreen).Bold(true)
			case row == m.Cursor:
				return base.Foreground(colorGray).Bold(true)
			case m.Chosen[row]:
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d selected]", m.countChosen(), len(m.Rows))))
	b.WriteString("\n")

	return b.String()
}

// pickGroups lays out every group of opts and lets the user choose which
// ones to write. It returns nil when the user quits.
func pickGroups(ctx context.Context, opts pipeline.Options) ([]string, error) {
	_, groups, err := pipeline.BuildGroups(opts)
	if err != nil {
		return nil, err
	}
	results := make([]pipeline.GroupResult, len(groups))
	for i, g := range groups {
		results[i] = pipeline.LayoutGroup(ctx, g, opts.Logger)
	}

	p := tea.NewProgram(NewGroupPickerModel(results), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(GroupPickerModel)
	if !ok {
		return nil, nil
	}
	return fm.Selected(), nil
}

// =============================================================================
// Panel table
// =============================================================================

// renderPanelTable formats panels as a bordered table in cutting order.
func renderPanelTable(panels []panel.Panel) string {
	rows := make([][]string, len(panels))
	for i, p := range panels {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			p.Name,
			string(p.Material),
			strconv.Itoa(p.Rect.Width),
			strconv.Itoa(p.Rect.Height),
			strconv.Itoa(p.Rect.Area()),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("#", "Panel", "Material", "Width", "Height", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader.Padding(0, 1)
			}
			switch col {
			case 0:
				return tableCellStyle.Foreground(colorDim).Align(lipgloss.Right)
			case 1:
				return tableCellStyle.Foreground(colorWhite)
			case 2:
				return tableCellStyle.Foreground(colorGray)
			}
			return tableCellStyle.Foreground(colorCyan).Align(lipgloss.Right)
		}).
		Render()
}
