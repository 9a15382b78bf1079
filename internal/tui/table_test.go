package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grimandgreedy/listpick/internal/engine"
)

func TestTruncateCellAppendsEllipsisWhenOverWidth(t *testing.T) {
	assert.Equal(t, "hello", truncateCell("hello", 10))
	assert.Equal(t, "hell…", truncateCell("hello world", 5))
	assert.Equal(t, "h", truncateCell("hello", 1))
	assert.Equal(t, "hello", truncateCell("hello", 0), "width<=0 means unconstrained")
}

func newTestState() *engine.State {
	s := engine.NewState([][]string{
		{"1", "Alice", "eng"},
		{"2", "Bob", "sales"},
	}, []string{"id", "name", "dept"})
	return s
}

func TestDisplayOrderSkipsHiddenColumns(t *testing.T) {
	s := newTestState()
	s.Columns.Hidden[1] = true

	assert.Equal(t, []int{0, 2}, displayOrder(s))
}

func TestDisplayOrderHonoursExplicitOrder(t *testing.T) {
	s := newTestState()
	s.Columns.Order = []int{2, 0, 1}

	assert.Equal(t, []int{2, 0, 1}, displayOrder(s))
}

func TestWidthIndexerOffsetsForNumberColumn(t *testing.T) {
	vp := engine.Viewport{ColumnWidths: []int{3, 10, 20}, NumberColumns: true}
	widthAt := widthIndexer(vp)

	assert.Equal(t, 10, widthAt(0))
	assert.Equal(t, 20, widthAt(1))
	assert.Equal(t, 0, widthAt(5), "out of range returns 0")
}

func TestWidthIndexerNoOffsetWithoutNumberColumn(t *testing.T) {
	vp := engine.Viewport{ColumnWidths: []int{10, 20}}
	widthAt := widthIndexer(vp)

	assert.Equal(t, 10, widthAt(0))
}

func TestDataColumnAtMapsRenderPositionBackToDataColumn(t *testing.T) {
	s := newTestState()
	vp := engine.Viewport{NumberColumns: true}

	col, ok := dataColumnAt(s, vp, 0)
	assert.False(t, ok, "the leading row-number column has no data column")
	assert.Equal(t, 0, col)

	col, ok = dataColumnAt(s, vp, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, col)
}

func TestDataColumnAtOutOfRange(t *testing.T) {
	s := newTestState()
	vp := engine.Viewport{}

	_, ok := dataColumnAt(s, vp, 99)
	assert.False(t, ok)
}

func TestHighlightColorWrapsAndHandlesNegative(t *testing.T) {
	assert.Equal(t, highlightColor(0), highlightColor(len(highlightPalette)))
	assert.Equal(t, highlightColor(1), highlightColor(-1))
}

func TestHighlightMatchesFieldAllSearchesWholeRow(t *testing.T) {
	h := &engine.Highlight{Match: "eng", Field: engine.FieldAll}
	row := engine.IndexedRow{OriginalIndex: 0, Row: []string{"1", "Alice", "eng"}}
	assert.True(t, highlightMatches(h, row, 0))
}

func TestHighlightMatchesSpecificFieldOnly(t *testing.T) {
	h := &engine.Highlight{Match: "eng", Field: 1}
	row := engine.IndexedRow{OriginalIndex: 0, Row: []string{"1", "eng", "Alice"}}

	assert.True(t, highlightMatches(h, row, 1), "column 1 holds eng")
	assert.False(t, highlightMatches(h, row, 0), "a field-1 highlight never matches column 0")
}

func TestHighlightMatchesInvalidRegexIsFalseNotPanic(t *testing.T) {
	h := &engine.Highlight{Match: "(", Field: engine.FieldAll}
	row := engine.IndexedRow{Row: []string{"x"}}
	assert.False(t, highlightMatches(h, row, 0))
}

func TestBestHighlightPicksHighestLevelWithLaterTieBreak(t *testing.T) {
	row := engine.IndexedRow{OriginalIndex: 0, Row: []string{"critical"}}
	highlights := []engine.Highlight{
		{Match: "critical", Field: engine.FieldAll, Level: 1},
		{Match: "critical", Field: engine.FieldAll, Level: 1},
		{Match: "critical", Field: engine.FieldAll, Level: 0},
	}

	best := bestHighlight(highlights, row, 0)
	assert.NotNil(t, best)
	assert.Equal(t, 1, best.Level)
	assert.Same(t, &highlights[1], best, "ties at the same level favour the later entry")
}

func TestBestHighlightRespectsRowScoping(t *testing.T) {
	other := 5
	row := engine.IndexedRow{OriginalIndex: 2, Row: []string{"x"}}
	highlights := []engine.Highlight{
		{Match: "x", Field: engine.FieldAll, Row: &other},
	}
	assert.Nil(t, bestHighlight(highlights, row, 0))
}
