package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchView(rows ...string) IndexedView {
	view := make(IndexedView, len(rows))
	for i, r := range rows {
		view[i] = IndexedRow{OriginalIndex: i, Row: []string{r}}
	}
	return view
}

func TestSearchFindsNextMatchAfterCursor(t *testing.T) {
	view := searchView("Alice", "Bob", "Charlie", "Diana", "Eve")

	res := Search(view, "e", 0, false, nil, nil)
	require.True(t, res.Found)
	assert.Contains(t, view[res.Cursor].Row[0], "e")
	assert.Equal(t, 3, res.MatchCount, "Alice, Charlie and Eve contain e (case-insensitively); Bob and Diana do not")
}

func TestSearchMatchOrdinalWithinRange(t *testing.T) {
	view := searchView("cat", "dog", "cat", "cat")
	res := Search(view, "cat", 0, false, nil, nil)
	require.True(t, res.Found)
	assert.GreaterOrEqual(t, res.MatchOrdinal, 1)
	assert.LessOrEqual(t, res.MatchOrdinal, res.MatchCount)
}

func TestSearchNoMatchesYieldsFoundFalseAndZeroCount(t *testing.T) {
	view := searchView("Alice", "Bob")
	res := Search(view, "zzz", 0, false, nil, nil)
	assert.False(t, res.Found)
	assert.Equal(t, 0, res.MatchCount)
}

func TestContinueSearchWrapsModuloMatchCount(t *testing.T) {
	view := searchView("cat", "dog", "cat")

	first := Search(view, "cat", 0, false, nil, nil)
	require.True(t, first.Found)

	second := ContinueSearch(view, "cat", first.Cursor, false, nil, first.Highlights)
	require.True(t, second.Found)
	assert.NotEqual(t, first.Cursor, second.Cursor)

	third := ContinueSearch(view, "cat", second.Cursor, false, nil, second.Highlights)
	require.True(t, third.Found)
	assert.Equal(t, first.Cursor, third.Cursor, "continuation wraps back to the first match")
}

func TestSearchReplacesRatherThanAccumulatesPriorSearchHighlights(t *testing.T) {
	view := searchView("Alice", "Bob")
	prior := []Highlight{{Match: "stale", Type: HighlightSearch}, {Match: "kept", Type: HighlightUser}}

	res := Search(view, "Alice", 0, false, nil, prior)

	var searchCount, userCount int
	for _, h := range res.Highlights {
		switch h.Type {
		case HighlightSearch:
			searchCount++
			assert.NotEqual(t, "stale", h.Match)
		case HighlightUser:
			userCount++
		}
	}
	assert.Equal(t, 1, searchCount)
	assert.Equal(t, 1, userCount, "non-search highlights survive a new search")
}

func TestSearchSkipsUnselectableRowsWhenChoosingCursor(t *testing.T) {
	view := searchView("cat", "cat", "cat")
	unselectable := map[int]bool{1: true}

	res := Search(view, "cat", 0, false, unselectable, nil)
	require.True(t, res.Found)
	assert.NotEqual(t, 1, res.Cursor)
}
