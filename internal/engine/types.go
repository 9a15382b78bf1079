// Package engine implements the Picker engine: the in-memory tabular view
// model, its filter/search/sort pipeline, the cell-and-row selection state
// machine, the viewport/layout calculator, and the asynchronous
// data-refresh protocol. These subsystems share one State and together
// define the interactive semantics of the picker.
package engine

import "sync"

// SortMode identifies one of the eight column sort strategies.
type SortMode int

const (
	SortOriginal SortMode = iota
	SortLexical
	SortLexicalCase
	SortAlnum
	SortAlnumCase
	SortTemporal
	SortNumeric
	SortSize
)

// sortModeNames mirrors the order of SortMode so the footer can print a
// human name for the active mode.
var sortModeNames = [...]string{
	SortOriginal:    "original",
	SortLexical:     "lexical",
	SortLexicalCase: "LEXICAL",
	SortAlnum:       "alnum",
	SortAlnumCase:   "ALNUM",
	SortTemporal:    "temporal",
	SortNumeric:     "numeric",
	SortSize:        "size",
}

// String returns the spec's lowercase/uppercase mode name.
func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return "unknown"
	}
	return sortModeNames[m]
}

// IndexedRow pairs a row with the original_index it had in the row store at
// the moment the indexed view was built. original_index is the canonical
// selection key and survives filtering and sorting.
type IndexedRow struct {
	OriginalIndex int
	Row           []string
}

// IndexedView is the ordered, filtered, sorted subset-with-index used for
// rendering, searching, and sorting. Filtering and sorting only ever
// rebuild the view; they never mutate the row store.
type IndexedView []IndexedRow

// CellKey identifies a single cell by its row's original_index and column.
type CellKey struct {
	Row int
	Col int
}

// VisualMode is the selection state machine's current mode.
type VisualMode int

const (
	VisualNone VisualMode = iota
	VisualSelecting
	VisualDeselecting
)

// Visual holds the in-flight rectangle-selection anchor.
type Visual struct {
	Mode      VisualMode
	AnchorRow int
	AnchorCol int
}

// Selection tracks row- and cell-level selection state, total over the row
// store and its cross product with columns respectively.
type Selection struct {
	RowSelected  map[int]bool
	CellSelected map[CellKey]bool
	Visual       Visual
}

// NewSelection returns an empty Selection ready for use.
func NewSelection() *Selection {
	return &Selection{
		RowSelected:  make(map[int]bool),
		CellSelected: make(map[CellKey]bool),
	}
}

// ColumnMeta holds per-column layout and behaviour metadata. All slices
// have arity equal to the row arity and are auto-extended on arity change
// by State.Normalize.
type ColumnMeta struct {
	SortMethod     []SortMode
	SortReverse    []bool
	Editable       []bool
	Hidden         map[int]bool
	SelectedColumn int
	SortColumn     int
	// Order is a logical column permutation: Order[i] is the physical
	// column index displayed at logical position i. move_column never
	// mutates rows; it only edits this permutation (see spec.md §9 open
	// question on move_column).
	Order []int
}

// NewColumnMeta returns column metadata sized for arity columns.
func NewColumnMeta(arity int) *ColumnMeta {
	cm := &ColumnMeta{Hidden: make(map[int]bool)}
	cm.resize(arity)
	return cm
}

func (cm *ColumnMeta) resize(arity int) {
	for len(cm.SortMethod) < arity {
		cm.SortMethod = append(cm.SortMethod, SortOriginal)
	}
	cm.SortMethod = cm.SortMethod[:arity]
	for len(cm.SortReverse) < arity {
		cm.SortReverse = append(cm.SortReverse, false)
	}
	cm.SortReverse = cm.SortReverse[:arity]
	for len(cm.Editable) < arity {
		cm.Editable = append(cm.Editable, true)
	}
	cm.Editable = cm.Editable[:arity]
	for len(cm.Order) < arity {
		cm.Order = append(cm.Order, len(cm.Order))
	}
	cm.Order = cm.Order[:arity]
	if cm.SelectedColumn >= arity {
		cm.SelectedColumn = arity - 1
	}
	if cm.SelectedColumn < 0 && arity > 0 {
		cm.SelectedColumn = 0
	}
	if cm.SortColumn >= arity {
		cm.SortColumn = arity - 1
	}
	if cm.SortColumn < 0 && arity > 0 {
		cm.SortColumn = 0
	}
	for c := range cm.Hidden {
		if c >= arity {
			delete(cm.Hidden, c)
		}
	}
}

// HighlightType distinguishes transient search highlights from
// user-defined ones (settings `hl,` command).
type HighlightType string

const (
	HighlightSearch HighlightType = "search"
	HighlightUser   HighlightType = "user"
)

// HighlightField selects which column(s) a Highlight applies to.
// FieldAll (-1) means "the joined row string".
const FieldAll = -1

// Highlight is a render-time decoration matching Match against a cell (or
// the joined row) with the given Color. Level controls paint order:
// 0 under selection, 1 over selection but under cursor, 2 over cursor.
type Highlight struct {
	Match string
	Field int
	Color int
	Type  HighlightType
	Row   *int
	Level int
}

// Mode is a user-defined {name, filter} pair cycled through with a single
// key (spec.md §9: modes are kept simple, not a richer sort/highlight
// bundle).
type Mode struct {
	Name   string
	Filter string
}

// RefreshFunc produces a fresh row set and header; it is invoked on the
// worker goroutine of the refresh protocol and must not touch UI state.
type RefreshFunc func() ([][]string, []string, error)

// OptionFunc is looked up in Config.OptionFuncs by the selected column and
// invoked when an options command is accepted; it returns whether the
// prompt was accepted and the chosen value. There is no per-row
// option-required flag.
type OptionFunc func(ctx OptionContext) (accepted bool, value string)

// OptionContext is passed to an OptionFunc so it can render a prompt in
// context of the row it was requested for.
type OptionContext struct {
	RowIndex int
	Row      []string
}

// Config bundles the immutable, caller-supplied parts of a Picker: limits,
// callbacks, and I/O ports. It never changes after construction.
type Config struct {
	IDColumn       int
	MaxColumnWidth int
	MaxSelected    int // 0 = unlimited
	Timer          FootTimer
	RefreshFunc    RefreshFunc
	OptionFuncs    map[int]OptionFunc
	AutoRefresh    bool
}

// FootTimer captures the two independently-configurable tick intervals
// from spec.md §5 (refresh timer, footer-string refresh timer), expressed
// in nanoseconds to keep this package free of a time.Duration import at
// the type-definition layer (callers in internal/tui use time.Duration
// directly; this alias keeps the two packages decoupled).
type FootTimer struct {
	RefreshNanos int64
	FooterNanos  int64
}

// State is the mutable core of the Picker engine: row store, header,
// indexed view, column metadata, selection, and the cursor/search/refresh
// bookkeeping that the rest of the components read and mutate. There is no
// global singleton; callers hold one State per Picker instance (including
// nested/modal Pickers).
type State struct {
	mu sync.Mutex // guards Refreshing/pendingRefresh; applyRefresh swaps Rows/Header on the main loop — see refresh.go

	Rows   [][]string
	Header []string

	Indexed IndexedView
	Columns *ColumnMeta
	Sel     *Selection

	Cursor int // row index within Indexed

	FilterQuery string
	SearchQuery string
	SearchIndex int
	SearchCount int

	Highlights []Highlight
	Modes      []Mode
	ModeIndex  int

	Unselectable map[int]bool // original_index values the UI will not let the cursor land on

	Refreshing     bool
	pendingRefresh *refreshResult
}

// NewState constructs a State from an initial row set and header, building
// the first indexed view and column metadata.
func NewState(rows [][]string, header []string) *State {
	s := &State{
		Rows:         rows,
		Header:       header,
		Sel:          NewSelection(),
		Unselectable: make(map[int]bool),
	}
	arity := 0
	if len(rows) > 0 {
		arity = len(rows[0])
	} else if len(header) > 0 {
		arity = len(header)
	}
	s.Columns = NewColumnMeta(arity)
	s.Normalize()
	s.RebuildIndexed()
	return s
}

// Arity returns the current row width, or 0 when there are no rows and no
// header to infer it from.
func (s *State) Arity() int {
	if len(s.Rows) > 0 {
		return len(s.Rows[0])
	}
	return len(s.Header)
}

// Normalize restores the data-model invariants of spec.md §3: header
// padded/truncated to row arity, column-metadata slices resized, selection
// maps extended, and selected-column/sort-column clamped into range. The
// cursor is not touched here; RebuildIndexed clamps it. Call after any
// structural mutation (ingest, refresh, row/column insert-delete).
func (s *State) Normalize() {
	arity := s.Arity()

	if len(s.Header) < arity {
		for len(s.Header) < arity {
			s.Header = append(s.Header, "")
		}
	} else if len(s.Header) > arity {
		s.Header = s.Header[:arity]
	}

	if s.Columns == nil {
		s.Columns = NewColumnMeta(arity)
	} else {
		s.Columns.resize(arity)
	}

	if s.Sel == nil {
		s.Sel = NewSelection()
	}
	for i := range s.Rows {
		if _, ok := s.Sel.RowSelected[i]; !ok {
			s.Sel.RowSelected[i] = false
		}
	}
	for i := range s.Sel.RowSelected {
		if i >= len(s.Rows) {
			delete(s.Sel.RowSelected, i)
		}
	}
	for key := range s.Sel.CellSelected {
		if key.Row >= len(s.Rows) || key.Col >= arity {
			delete(s.Sel.CellSelected, key)
		}
	}
}

// RebuildIndexed rebuilds the indexed view from the row store applying the
// current filter query, then re-sorts it by the current sort column and
// method. Called on ingest, refresh, filter change, sort change, row
// insert/delete, and column insert/delete.
func (s *State) RebuildIndexed() {
	s.Indexed = Filter(s.Rows, s.FilterQuery)
	if s.Columns != nil && s.Arity() > 0 {
		col := s.Columns.SortColumn
		if col >= 0 && col < len(s.Columns.SortMethod) {
			SortIndexedView(s.Indexed, col, s.Columns.SortMethod[col], s.Columns.SortReverse[col])
		}
	}
	if s.Cursor >= len(s.Indexed) {
		s.Cursor = len(s.Indexed) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// CursorOriginalIndex returns the original_index of the row currently
// under the cursor, or -1 when the indexed view is empty.
func (s *State) CursorOriginalIndex() int {
	if s.Cursor < 0 || s.Cursor >= len(s.Indexed) {
		return -1
	}
	return s.Indexed[s.Cursor].OriginalIndex
}
