package engine

// refreshResult is the payload handed from the worker goroutine back to the
// main loop once a RefreshFunc completes.
type refreshResult struct {
	rows   [][]string
	header []string
	err    error
}

// refreshState holds only a pending result; the in-flight flag and the
// pending result the protocol actually uses are State.Refreshing and
// State.pendingRefresh, guarded by State.mu. Grounded on the "single task on a worker, synchronise with a mutex
// guarding (items, header, data_ready)" design of spec.md §9; unlike the
// teacher's errgroup-based FetchAll (five concurrent endpoint calls
// funnelled through a bubbletea tea.Cmd), the picker's RefreshFunc is a
// single caller-supplied call, so one goroutine plus one mutex suffices.
type refreshState struct {
	pending *refreshResult
}

// StartRefresh launches fn on a new goroutine if one is not already running,
// returning false without doing anything if a refresh is already in
// flight. The caller (the bubbletea Update loop) later calls PollRefresh on
// each key boundary to learn when it has finished.
func (s *State) StartRefresh(fn RefreshFunc) bool {
	s.mu.Lock()
	if s.Refreshing {
		s.mu.Unlock()
		return false
	}
	s.Refreshing = true
	s.mu.Unlock()

	go func() {
		rows, header, err := fn()
		s.mu.Lock()
		s.pendingRefresh = &refreshResult{rows: rows, header: header, err: err}
		s.mu.Unlock()
	}()
	return true
}

// PollRefresh reports whether a previously started refresh has completed
// and, if so, applies it: reconciling row/cell selection by id column and
// re-anchoring the cursor, per spec.md §8's refresh-reconciliation
// property. Per spec.md §4.7, a negative idColumn wraps modulo the row
// arity rather than disabling reconciliation.
//
// PollRefresh returns (done, err). done is false while the refresh is
// still running or none was started; the caller should re-poll on the next
// key boundary.
func (s *State) PollRefresh(idColumn int) (done bool, err error) {
	s.mu.Lock()
	pending := s.pendingRefresh
	s.pendingRefresh = nil
	s.mu.Unlock()

	if pending == nil {
		return false, nil
	}

	s.mu.Lock()
	s.Refreshing = false
	s.mu.Unlock()

	if pending.err != nil {
		return true, pending.err
	}

	s.applyRefresh(pending.rows, pending.header, wrapIDColumn(idColumn, s.Arity()))
	return true, nil
}

// wrapIDColumn resolves idColumn per spec.md §4.7: negative values wrap
// modulo arity rather than disabling reconciliation. An arity of 0 (no
// columns) or a column that still falls outside [0, arity) after
// wrapping has nothing to reconcile against and returns -1.
func wrapIDColumn(idColumn, arity int) int {
	if arity <= 0 {
		return -1
	}
	if idColumn < 0 {
		idColumn = ((idColumn % arity) + arity) % arity
	}
	if idColumn >= arity {
		return -1
	}
	return idColumn
}

// applyRefresh installs the freshly fetched rows/header, reconciling
// selection and cursor by the value in idColumn of the row that held them
// before the refresh (spec.md §8: "Given ids I selected before refresh,
// after refresh the selected set equals {r | rows'[r][id_column] in I}").
func (s *State) applyRefresh(rows [][]string, header []string, idColumn int) {
	var cursorID string
	hadCursorID := false
	if idColumn >= 0 {
		if orig := s.CursorOriginalIndex(); orig >= 0 && orig < len(s.Rows) && idColumn < len(s.Rows[orig]) {
			cursorID = s.Rows[orig][idColumn]
			hadCursorID = true
		}
	}

	selectedIDs := make(map[string]bool)
	if idColumn >= 0 {
		for i, sel := range s.Sel.RowSelected {
			if !sel || i >= len(s.Rows) || idColumn >= len(s.Rows[i]) {
				continue
			}
			selectedIDs[s.Rows[i][idColumn]] = true
		}
	}

	s.Rows = rows
	s.Header = header
	s.Sel = NewSelection()

	newCursor := -1
	if idColumn >= 0 {
		for i, row := range s.Rows {
			if idColumn >= len(row) {
				continue
			}
			id := row[idColumn]
			if selectedIDs[id] {
				s.Sel.RowSelected[i] = true
			}
			if hadCursorID && id == cursorID {
				newCursor = i
			}
		}
	}

	s.Normalize()
	s.RebuildIndexed()

	if newCursor >= 0 {
		for i, ir := range s.Indexed {
			if ir.OriginalIndex == newCursor {
				s.Cursor = i
				return
			}
		}
	}
}
