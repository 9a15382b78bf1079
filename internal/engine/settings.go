package engine

import (
	"strconv"
	"strings"
)

// Settings bundles the toggleable display preferences the applier mini
// language mutates. It is separate from State because these are UI
// preferences, not data-model state, but the applier operates on both
// (column visibility and sort column live on Columns).
type Settings struct {
	AutoRefresh        bool
	HighlightsHidden   bool
	CentreInTerminal   bool
	CentreInColumns    bool
	CentreVertical     bool
	ShowFooter          bool
	ShowHeader          bool
	Paginate           bool
	NumberRows         bool
	CellCursor         bool
	ThemeIndex         int
	FooterRefreshNanos int64
	WorkingDir         string
}

// NewSettings returns the spec's default display preferences.
func NewSettings() *Settings {
	return &Settings{ShowFooter: true, ShowHeader: true}
}

// ApplySettings parses a whitespace-separated command string and mutates s
// and state accordingly, one token at a time; unrecognised tokens are
// silently ignored, matching the original `apply_settings`'s best-effort
// parsing. Grounded on `list_picker.py:apply_settings`.
func ApplySettings(state *State, s *Settings, cmdline string) {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return
	}
	for _, tok := range strings.Fields(cmdline) {
		applyToken(state, s, tok)
	}
}

func applyToken(state *State, s *Settings, tok string) {
	switch {
	case tok == "":
		return

	case tok[0] == '!' && len(tok) > 1:
		applyBang(state, s, tok[1:])

	case tok == "nhl" || tok == "nohl" || tok == "nohighlights":
		filtered := state.Highlights[:0]
		for _, h := range state.Highlights {
			if h.Type != HighlightSearch {
				filtered = append(filtered, h)
			}
		}
		state.Highlights = filtered

	case tok[0] == 's' && len(tok) > 1 && isDigits(tok[1:]):
		col, _ := strconv.Atoi(tok[1:])
		setSortColumn(state, col)

	case tok == "ct":
		s.CentreInTerminal = !s.CentreInTerminal
	case tok == "cc":
		s.CentreInColumns = !s.CentreInColumns
	case tok == "cv":
		s.CentreVertical = !s.CentreVertical
	case tok == "footer":
		s.ShowFooter = !s.ShowFooter
	case tok == "header":
		s.ShowHeader = !s.ShowHeader
	case tok == "cell":
		s.CellCursor = !s.CellCursor
	case tok == "rh":
		s.NumberRows = !s.NumberRows
	case tok == "modes":
		if len(state.Modes) > 0 {
			state.ModeIndex = (state.ModeIndex + 1) % len(state.Modes)
			state.FilterQuery = state.Modes[state.ModeIndex].Filter
			state.RebuildIndexed()
		}

	case tok == "arb":
		insertRowAt(state, state.Cursor)
	case tok == "ara":
		insertRowAt(state, state.Cursor+1)
	case tok == "acb":
		insertColumnAt(state, state.Columns.SelectedColumn)
	case tok == "aca":
		insertColumnAt(state, state.Columns.SelectedColumn+1)

	case strings.HasPrefix(tok, "ir") && isDigits(tok[2:]):
		n, _ := strconv.Atoi(tok[2:])
		insertRowAt(state, n)
	case strings.HasPrefix(tok, "ic") && isDigits(tok[2:]):
		n, _ := strconv.Atoi(tok[2:])
		insertColumnAt(state, n)

	case strings.HasPrefix(tok, "ft"):
		rest := strings.TrimPrefix(tok, "ft")
		if rest == "" {
			s.FooterRefreshNanos = 0
			return
		}
		if n, err := strconv.Atoi(strings.Trim(rest, "[]")); err == nil {
			s.FooterRefreshNanos = int64(n)
		}

	case strings.HasPrefix(tok, "th"):
		rest := strings.TrimPrefix(tok, "th")
		if rest == "" {
			s.ThemeIndex++
			return
		}
		if n, err := strconv.Atoi(strings.Trim(rest, "[]")); err == nil {
			s.ThemeIndex = n
		}

	case strings.HasPrefix(tok, "cwd="):
		s.WorkingDir = strings.TrimPrefix(tok, "cwd=")

	case strings.HasPrefix(tok, "hl,"):
		applyHighlightCommand(state, tok)
	}
}

// applyBang handles the "!..." family: "!<n>[,<n>...]" toggles column
// visibility, "!r" flips Settings.AutoRefresh (shown in the header; the
// refresh timer itself follows Config.AutoRefresh and is not started or
// stopped by it), "!h" flips Settings.HighlightsHidden, which the table
// renderer does not read, so highlights are painted either way.
func applyBang(state *State, s *Settings, rest string) {
	switch {
	case rest == "r":
		s.AutoRefresh = !s.AutoRefresh
	case rest == "h":
		s.HighlightsHidden = !s.HighlightsHidden
	case isCommaDigits(rest):
		for _, c := range strings.Split(rest, ",") {
			n, err := strconv.Atoi(c)
			if err != nil {
				continue
			}
			toggleColumnVisibility(state, n)
		}
	}
}

func isCommaDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ",") {
		if !isDigits(part) {
			return false
		}
	}
	return true
}

func toggleColumnVisibility(state *State, col int) {
	if col < 0 || col >= state.Arity() {
		return
	}
	state.Columns.Hidden[col] = !state.Columns.Hidden[col]
}

// setSortColumn makes col the active sort column, preserving the row
// under the cursor across the resort (mirroring the original's
// current_pos/new_pos bookkeeping).
func setSortColumn(state *State, col int) {
	if col < 0 || col >= state.Arity() {
		return
	}
	var cursorOrig int
	haveCursor := false
	if state.Cursor >= 0 && state.Cursor < len(state.Indexed) {
		cursorOrig = state.Indexed[state.Cursor].OriginalIndex
		haveCursor = true
	}

	state.Columns.SortColumn = col
	SortIndexedView(state.Indexed, col, state.Columns.SortMethod[col], state.Columns.SortReverse[col])

	if haveCursor {
		for i, ir := range state.Indexed {
			if ir.OriginalIndex == cursorOrig {
				state.Cursor = i
				break
			}
		}
	}
}

// insertRowAt inserts a blank row of the current arity at originalIndex,
// shifting selection state to match, then rebuilds the indexed view.
func insertRowAt(state *State, originalIndex int) {
	arity := state.Arity()
	if originalIndex < 0 {
		originalIndex = 0
	}
	if originalIndex > len(state.Rows) {
		originalIndex = len(state.Rows)
	}
	blank := make([]string, arity)
	state.Rows = append(state.Rows, nil)
	copy(state.Rows[originalIndex+1:], state.Rows[originalIndex:])
	state.Rows[originalIndex] = blank

	state.Sel.InsertRow(originalIndex)
	state.Normalize()
	state.RebuildIndexed()
}

// insertColumnAt inserts a blank column at colIndex across every row, the
// header, and the per-column SortMethod/SortReverse/Editable/Hidden
// metadata, shifting selection cell keys.
func insertColumnAt(state *State, colIndex int) {
	arity := state.Arity()
	if colIndex < 0 {
		colIndex = 0
	}
	if colIndex > arity {
		colIndex = arity
	}

	for i, row := range state.Rows {
		newRow := make([]string, len(row)+1)
		copy(newRow, row[:colIndex])
		copy(newRow[colIndex+1:], row[colIndex:])
		state.Rows[i] = newRow
	}
	newHeader := make([]string, len(state.Header)+1)
	copy(newHeader, state.Header[:min(colIndex, len(state.Header))])
	copy(newHeader[colIndex+1:], state.Header[min(colIndex, len(state.Header)):])
	state.Header = newHeader

	cm := state.Columns
	cm.SortMethod = append(cm.SortMethod[:colIndex], append([]SortMode{SortOriginal}, cm.SortMethod[colIndex:]...)...)
	cm.SortReverse = append(cm.SortReverse[:colIndex], append([]bool{false}, cm.SortReverse[colIndex:]...)...)
	cm.Editable = append(cm.Editable[:colIndex], append([]bool{true}, cm.Editable[colIndex:]...)...)
	hidden := make(map[int]bool, len(cm.Hidden))
	for c, v := range cm.Hidden {
		if c >= colIndex {
			c++
		}
		hidden[c] = v
	}
	cm.Hidden = hidden

	state.Sel.InsertColumn(colIndex)
	state.Normalize()
	state.RebuildIndexed()
}

// applyHighlightCommand parses "hl,<pattern>,<field>,<color>" and appends a
// user highlight record.
func applyHighlightCommand(state *State, tok string) {
	parts := strings.Split(tok, ",")
	if len(parts) < 2 {
		return
	}
	h := Highlight{Match: parts[1], Field: FieldAll, Color: 1, Type: HighlightUser}
	if len(parts) >= 3 {
		if parts[2] == "all" {
			h.Field = FieldAll
		} else if n, err := strconv.Atoi(parts[2]); err == nil {
			h.Field = n
		}
	}
	if len(parts) >= 4 {
		if n, err := strconv.Atoi(parts[3]); err == nil {
			h.Color = n
		}
	}
	state.Highlights = append(state.Highlights, h)
}
