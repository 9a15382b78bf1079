package tui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grimandgreedy/listpick/internal/engine"
)

// TableParams carries the render-time toggles Table needs beyond
// state/viewport themselves: whether this picker currently owns terminal
// focus (a nested/modal picker dims its parent) and whether the cursor
// highlights a single cell rather than the whole row, per spec.md §4.5's
// cell_cursor setting.
type TableParams struct {
	Focused    bool
	CellCursor bool
}

// Table renders one frame of the indexed view as a lipgloss/table grid,
// generalising the teacher's IndexTableModel/NodeTableModel.renderTable:
// a sort-arrow header, cursor/selection/zebra backgrounds per cell, and
// highlight overlays from spec.md §4.3's highlight list, driven by
// engine.State/Viewport instead of a fixed ES column set.
func Table(s *engine.State, vp engine.Viewport, p TableParams) string {
	header := visibleHeader(s, vp)
	if len(header) == 0 {
		return StyleDim.Render("  (no columns)")
	}

	t := ltable.New().
		Headers(header...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerCellStyle(s, vp, col)
			}
			return bodyCellStyle(s, vp, p, row, col)
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	for i := vp.StartIndex; i < vp.EndIndex && i < len(s.Indexed); i++ {
		t = t.Row(visibleRow(s, vp, i)...)
	}

	return t.String()
}

// visibleHeader returns the column titles in display order (honouring
// Columns.Order and Hidden), each truncated to its computed width and
// annotated with a sort-direction arrow on the active sort column. A
// leading row-number column is prepended when NumberColumns is set.
func visibleHeader(s *engine.State, vp engine.Viewport) []string {
	order := displayOrder(s)
	widthAt := widthIndexer(vp)

	out := make([]string, 0, len(order)+1)
	if vp.NumberColumns {
		out = append(out, "#")
	}
	for i, col := range order {
		title := s.Header[col]
		if col == s.Columns.SortColumn {
			arrow := "▲"
			if s.Columns.SortReverse[col] {
				arrow = "▼"
			}
			title += arrow
		}
		out = append(out, truncateCell(title, widthAt(i)))
	}
	return out
}

// visibleRow returns the display-order cells for the i'th row of the
// indexed view, truncated to their column widths and prefixed with the
// row's position when NumberColumns is set.
func visibleRow(s *engine.State, vp engine.Viewport, i int) []string {
	order := displayOrder(s)
	widthAt := widthIndexer(vp)
	row := s.Indexed[i].Row

	out := make([]string, 0, len(order)+1)
	if vp.NumberColumns {
		out = append(out, strconv.Itoa(i+1))
	}
	for j, col := range order {
		var cell string
		if col < len(row) {
			cell = row[col]
		}
		out = append(out, truncateCell(cell, widthAt(j)))
	}
	return out
}

// displayOrder returns the physical column indices to render, in logical
// order, skipping hidden columns (Columns.Order/Hidden, spec.md §4.7).
func displayOrder(s *engine.State) []int {
	cm := s.Columns
	order := cm.Order
	if len(order) == 0 {
		order = make([]int, len(s.Header))
		for i := range order {
			order[i] = i
		}
	}
	out := make([]int, 0, len(order))
	for _, col := range order {
		if cm.Hidden[col] {
			continue
		}
		out = append(out, col)
	}
	return out
}

// widthIndexer maps a logical column position (an index into the slice
// returned by displayOrder) to its computed width, accounting for the
// optional leading row-number column in vp.ColumnWidths.
func widthIndexer(vp engine.Viewport) func(int) int {
	widths := vp.ColumnWidths
	offset := 0
	if vp.NumberColumns && len(widths) > 0 {
		offset = 1
	}
	return func(i int) int {
		idx := i + offset
		if idx >= 0 && idx < len(widths) {
			return widths[idx]
		}
		return 0
	}
}

func truncateCell(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func headerCellStyle(s *engine.State, vp engine.Viewport, col int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	dataCol, ok := dataColumnAt(s, vp, col)
	if ok && dataCol == s.Columns.SortColumn {
		return base.Foreground(colorBlue)
	}
	return base
}

// dataColumnAt maps a rendered column position back to the underlying
// row column, or ok=false for the synthetic leading row-number column.
func dataColumnAt(s *engine.State, vp engine.Viewport, renderCol int) (col int, ok bool) {
	order := displayOrder(s)
	offset := 0
	if vp.NumberColumns {
		offset = 1
		if renderCol == 0 {
			return 0, false
		}
	}
	i := renderCol - offset
	if i < 0 || i >= len(order) {
		return 0, false
	}
	return order[i], true
}

func bodyCellStyle(s *engine.State, vp engine.Viewport, p TableParams, row, renderCol int) lipgloss.Style {
	base := lipgloss.NewStyle().Foreground(colorWhite)

	i := vp.StartIndex + row
	if i < 0 || i >= len(s.Indexed) {
		return base
	}
	indexed := s.Indexed[i]
	originalIndex := indexed.OriginalIndex
	dataCol, hasDataCol := dataColumnAt(s, vp, renderCol)

	isCursorRow := i == s.Cursor
	isCursorCell := isCursorRow && (!p.CellCursor || (hasDataCol && dataCol == s.Columns.SelectedColumn))
	isRowSelected := s.Sel.RowSelected[originalIndex]
	isCellSelected := hasDataCol && s.Sel.CellSelected[engine.CellKey{Row: originalIndex, Col: dataCol}]

	switch {
	case p.Focused && isCursorCell:
		base = base.Background(colorSelectedBg)
	case isRowSelected || isCellSelected:
		base = base.Background(colorIndigo)
	case row%2 == 0:
		base = base.Background(colorAlt)
	}

	if hasDataCol {
		if hl := bestHighlight(s.Highlights, indexed, dataCol); hl != nil {
			base = base.Foreground(highlightColor(hl.Color))
		}
	}
	return base
}

// bestHighlight returns the highest-Level highlight matching row/col, or
// nil. Ties favour the later entry in highlights, matching the paint
// order of footer.py's sibling highlight list: later entries win.
func bestHighlight(highlights []engine.Highlight, row engine.IndexedRow, col int) *engine.Highlight {
	var best *engine.Highlight
	for i := range highlights {
		h := &highlights[i]
		if h.Row != nil && *h.Row != row.OriginalIndex {
			continue
		}
		if !highlightMatches(h, row, col) {
			continue
		}
		if best == nil || h.Level >= best.Level {
			best = h
		}
	}
	return best
}

func highlightMatches(h *engine.Highlight, row engine.IndexedRow, col int) bool {
	re, err := regexp.Compile(h.Match)
	if err != nil {
		return false
	}
	if h.Field == engine.FieldAll {
		return re.MatchString(strings.Join(row.Row, " "))
	}
	if h.Field != col || h.Field < 0 || h.Field >= len(row.Row) {
		return false
	}
	return re.MatchString(row.Row[h.Field])
}

var highlightPalette = []lipgloss.Color{
	colorGreen, colorYellow, colorRed, colorBlue, colorCyan,
	colorPurple, colorOrange, colorIndigo,
}

func highlightColor(n int) lipgloss.Color {
	if n < 0 {
		n = -n
	}
	return highlightPalette[n%len(highlightPalette)]
}
