package engine

// InsertRowAt inserts a blank row of the current arity at originalIndex,
// shifting selection state to match, then rebuilds the indexed view.
// Exported wrapper over settings.go's insertRowAt so internal/tui can
// drive row insertion directly (spec.md §4.4's insert_row operation)
// without going through the settings mini-language.
func (s *State) InsertRowAt(originalIndex int) {
	insertRowAt(s, originalIndex)
}

// InsertColumnAt is InsertRowAt's column counterpart.
func (s *State) InsertColumnAt(colIndex int) {
	insertColumnAt(s, colIndex)
}

// DeleteRow removes the row at originalIndex, renumbering selection state
// and rebuilding the indexed view and cursor, per spec.md §4.4's
// delete_row operation. A no-op outside [0, len(Rows)).
func (s *State) DeleteRow(originalIndex int) {
	if originalIndex < 0 || originalIndex >= len(s.Rows) {
		return
	}
	s.Rows = append(s.Rows[:originalIndex], s.Rows[originalIndex+1:]...)
	delete(s.Unselectable, originalIndex)
	reindexed := make(map[int]bool, len(s.Unselectable))
	for idx, v := range s.Unselectable {
		switch {
		case idx < originalIndex:
			reindexed[idx] = v
		case idx > originalIndex:
			reindexed[idx-1] = v
		}
	}
	s.Unselectable = reindexed

	s.Sel.RemoveRow(originalIndex)
	s.Normalize()
	s.RebuildIndexed()
}

// DeleteColumn removes colIndex from every row, the header, and column
// metadata, renumbering selection state, per spec.md §4.4's
// delete_column operation. A no-op outside [0, Arity()).
func (s *State) DeleteColumn(colIndex int) {
	arity := s.Arity()
	if colIndex < 0 || colIndex >= arity {
		return
	}
	for i, row := range s.Rows {
		if colIndex >= len(row) {
			continue
		}
		s.Rows[i] = append(row[:colIndex], row[colIndex+1:]...)
	}
	if colIndex < len(s.Header) {
		s.Header = append(s.Header[:colIndex], s.Header[colIndex+1:]...)
	}

	cm := s.Columns
	cm.SortMethod = append(cm.SortMethod[:colIndex], cm.SortMethod[colIndex+1:]...)
	cm.SortReverse = append(cm.SortReverse[:colIndex], cm.SortReverse[colIndex+1:]...)
	cm.Editable = append(cm.Editable[:colIndex], cm.Editable[colIndex+1:]...)
	hidden := make(map[int]bool, len(cm.Hidden))
	for c, v := range cm.Hidden {
		switch {
		case c < colIndex:
			hidden[c] = v
		case c > colIndex:
			hidden[c-1] = v
		}
	}
	cm.Hidden = hidden

	s.Sel.RemoveColumn(colIndex)
	s.Normalize()
	s.RebuildIndexed()
}
