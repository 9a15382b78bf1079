package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorDisplayCommaGroupsLargeCounts(t *testing.T) {
	s := FooterState{Cursor: 999, Total: 123456, Selected: 1000}
	got := cursorDisplay(s)
	assert.Contains(t, got, "1,000/123,456")
	assert.Contains(t, got, "Selected 1,000")
}

func TestCursorDisplayPaginatedShowsPageNumbers(t *testing.T) {
	s := FooterState{Cursor: 25, Total: 100, Selected: 0, Paginate: true, ItemsPerPage: 10}
	got := cursorDisplay(s)
	assert.Contains(t, got, "Page 3/10")
}

func TestStandardFooterHeightIsThreeLines(t *testing.T) {
	assert.Equal(t, 3, StandardFooter{}.Height(FooterState{}))
}

func TestCompactFooterHeightGrowsWithActivePrompts(t *testing.T) {
	assert.Equal(t, 1, CompactFooter{}.Height(FooterState{}))
	assert.Equal(t, 2, CompactFooter{}.Height(FooterState{FilterQuery: "x"}))
	assert.Equal(t, 3, CompactFooter{}.Height(FooterState{SearchQuery: "x"}))
}

func TestNoFooterHidesWhenNothingActive(t *testing.T) {
	assert.Equal(t, 0, NoFooter{}.Height(FooterState{}))
	assert.Equal(t, 1, NoFooter{}.Height(FooterState{UserOpts: "x"}))
}
