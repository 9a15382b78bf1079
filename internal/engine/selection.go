package engine

// ToggleVisualSelect transitions idle->selecting (recording the anchor) or
// selecting->idle (committing the union of the anchor..cursor rectangle
// into the selection maps, skipping unselectable rows). Calling it while
// deselecting is active cancels the deselect without committing, per
// spec.md §4.4's "any state --cancel--> idle" escape semantics taking
// precedence over a mismatched toggle.
func (s *Selection) ToggleVisualSelect(cursorRow, cursorCol int, view IndexedView, unselectable map[int]bool) {
	switch s.Visual.Mode {
	case VisualSelecting:
		s.CommitRectangle(view, s.Visual.AnchorRow, s.Visual.AnchorCol, cursorRow, cursorCol, unselectable, true)
		s.Visual = Visual{}
	case VisualDeselecting:
		s.Visual = Visual{}
	default:
		s.Visual = Visual{Mode: VisualSelecting, AnchorRow: cursorRow, AnchorCol: cursorCol}
	}
}

// ToggleVisualDeselect is the mirror of ToggleVisualSelect for the
// deselecting mode.
func (s *Selection) ToggleVisualDeselect(cursorRow, cursorCol int, view IndexedView, unselectable map[int]bool) {
	switch s.Visual.Mode {
	case VisualDeselecting:
		s.CommitRectangle(view, s.Visual.AnchorRow, s.Visual.AnchorCol, cursorRow, cursorCol, unselectable, false)
		s.Visual = Visual{}
	case VisualSelecting:
		s.Visual = Visual{}
	default:
		s.Visual = Visual{Mode: VisualDeselecting, AnchorRow: cursorRow, AnchorCol: cursorCol}
	}
}

// Cancel aborts any in-flight visual selection without committing it
// (escape semantics).
func (s *Selection) Cancel() {
	s.Visual = Visual{}
}

// CommitRectangle applies the rectangle spanned by (anchorRow, anchorCol)
// and (cursorRow, cursorCol), both row indices into view, unioning
// (selecting=true) or subtracting (selecting=false) every covered
// original_index/column pair, skipping unselectable rows.
func (s *Selection) CommitRectangle(view IndexedView, anchorRow, anchorCol, cursorRow, cursorCol int, unselectable map[int]bool, selecting bool) {
	rLo, rHi := orderPair(anchorRow, cursorRow)
	cLo, cHi := orderPair(anchorCol, cursorCol)

	for r := rLo; r <= rHi; r++ {
		if r < 0 || r >= len(view) {
			continue
		}
		orig := view[r].OriginalIndex
		if unselectable[orig] {
			continue
		}
		s.RowSelected[orig] = s.RowSelected[orig] || selecting
		for c := cLo; c <= cHi; c++ {
			key := CellKey{Row: orig, Col: c}
			if selecting {
				s.CellSelected[key] = true
			} else {
				s.CellSelected[key] = false
			}
		}
		// Subtracting clears the row flag of every row the rectangle
		// touches, whichever of its columns the rectangle covers.
		if !selecting {
			s.RowSelected[orig] = false
		}
	}
}

func orderPair(a, b int) (lo, hi int) {
	if a <= b {
		return a, b
	}
	return b, a
}

// ToggleCurrent flips the row selection for originalIndex, unless it is in
// unselectable.
func (s *Selection) ToggleCurrent(originalIndex int, unselectable map[int]bool) {
	if unselectable[originalIndex] {
		return
	}
	s.RowSelected[originalIndex] = !s.RowSelected[originalIndex]
}

// SelectAll marks every row in view selected, skipping unselectable rows,
// obeying an optional maxSelected cap (0 = unlimited). Rows are visited in
// view order so the cap keeps the first maxSelected eligible rows.
func (s *Selection) SelectAll(view IndexedView, unselectable map[int]bool, maxSelected int) {
	count := s.countSelected()
	for _, ir := range view {
		if unselectable[ir.OriginalIndex] {
			continue
		}
		if maxSelected > 0 && count >= maxSelected {
			return
		}
		if !s.RowSelected[ir.OriginalIndex] {
			count++
		}
		s.RowSelected[ir.OriginalIndex] = true
	}
}

// DeselectAll clears every row and cell selection.
func (s *Selection) DeselectAll() {
	for k := range s.RowSelected {
		s.RowSelected[k] = false
	}
	for k := range s.CellSelected {
		s.CellSelected[k] = false
	}
}

func (s *Selection) countSelected() int {
	n := 0
	for _, v := range s.RowSelected {
		if v {
			n++
		}
	}
	return n
}

// SelectedIndices returns the sorted original_index values currently
// row-selected.
func (s *Selection) SelectedIndices() []int {
	out := make([]int, 0, len(s.RowSelected))
	for i, v := range s.RowSelected {
		if v {
			out = append(out, i)
		}
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// RemoveRow deletes every selection entry belonging to originalIndex (used
// when a row is deleted) and shifts the keys of all rows after it down by
// one so original_index values stay contiguous with the row store.
func (s *Selection) RemoveRow(originalIndex int) {
	delete(s.RowSelected, originalIndex)
	for col := range allColsOf(s.CellSelected, originalIndex) {
		delete(s.CellSelected, CellKey{Row: originalIndex, Col: col})
	}

	newRow := make(map[int]bool, len(s.RowSelected))
	for i, v := range s.RowSelected {
		switch {
		case i < originalIndex:
			newRow[i] = v
		case i > originalIndex:
			newRow[i-1] = v
		}
	}
	s.RowSelected = newRow

	newCell := make(map[CellKey]bool, len(s.CellSelected))
	for k, v := range s.CellSelected {
		switch {
		case k.Row < originalIndex:
			newCell[k] = v
		case k.Row > originalIndex:
			newCell[CellKey{Row: k.Row - 1, Col: k.Col}] = v
		}
	}
	s.CellSelected = newCell
}

func allColsOf(m map[CellKey]bool, row int) map[int]bool {
	cols := make(map[int]bool)
	for k := range m {
		if k.Row == row {
			cols[k.Col] = true
		}
	}
	return cols
}

// InsertRow makes room for a new row at originalIndex by shifting every
// selection entry at or after it up by one; the new row starts
// unselected.
func (s *Selection) InsertRow(originalIndex int) {
	newRow := make(map[int]bool, len(s.RowSelected)+1)
	for i, v := range s.RowSelected {
		if i >= originalIndex {
			newRow[i+1] = v
		} else {
			newRow[i] = v
		}
	}
	newRow[originalIndex] = false
	s.RowSelected = newRow

	newCell := make(map[CellKey]bool, len(s.CellSelected))
	for k, v := range s.CellSelected {
		if k.Row >= originalIndex {
			newCell[CellKey{Row: k.Row + 1, Col: k.Col}] = v
		} else {
			newCell[k] = v
		}
	}
	s.CellSelected = newCell
}

// RemoveColumn deletes every cell-selection entry at colIndex and shifts
// columns after it down by one.
func (s *Selection) RemoveColumn(colIndex int) {
	newCell := make(map[CellKey]bool, len(s.CellSelected))
	for k, v := range s.CellSelected {
		switch {
		case k.Col < colIndex:
			newCell[k] = v
		case k.Col > colIndex:
			newCell[CellKey{Row: k.Row, Col: k.Col - 1}] = v
		}
	}
	s.CellSelected = newCell
}

// InsertColumn shifts cell-selection entries at or after colIndex up by
// one to make room for a new column.
func (s *Selection) InsertColumn(colIndex int) {
	newCell := make(map[CellKey]bool, len(s.CellSelected))
	for k, v := range s.CellSelected {
		if k.Col >= colIndex {
			newCell[CellKey{Row: k.Row, Col: k.Col + 1}] = v
		} else {
			newCell[k] = v
		}
	}
	s.CellSelected = newCell
}
