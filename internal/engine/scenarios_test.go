package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioFilterThenContinueSearch is spec.md §8 end-to-end scenario 1.
func TestScenarioFilterThenContinueSearch(t *testing.T) {
	rows := [][]string{
		{"Alice", "30", "Engineer"},
		{"Bob", "25", "Designer"},
		{"Charlie", "35", "Manager"},
		{"Diana", "28", "Designer"},
		{"Eve", "22", "Analyst"},
	}

	filtered := Filter(rows, "Alice")
	require.Len(t, filtered, 1)

	cleared := Filter(rows, "")
	require.Len(t, cleared, 5)

	res := Search(cleared, "e", 0, false, nil, nil)
	assert.True(t, res.Found)
	assert.GreaterOrEqual(t, res.MatchCount, 4)
}

// TestScenarioColumnScopedFilter is spec.md §8 end-to-end scenario 2.
func TestScenarioColumnScopedFilter(t *testing.T) {
	rows := [][]string{
		{"Alice", "30", "Engineer"},
		{"Bob", "25", "Sales"},
		{"Charlie", "35", "Manager"},
	}
	view := Filter(rows, "--2 Engineer")
	require.Len(t, view, 1)
	assert.Equal(t, "Alice", view[0].Row[0])
}

// TestScenarioSizeSort is spec.md §8 end-to-end scenario 3.
func TestScenarioSizeSort(t *testing.T) {
	view := IndexedView{
		{OriginalIndex: 0, Row: []string{"1.5GB"}},
		{OriginalIndex: 1, Row: []string{"500MB"}},
		{OriginalIndex: 2, Row: []string{"2.1GB"}},
		{OriginalIndex: 3, Row: []string{"750MB"}},
	}

	asc := append(IndexedView(nil), view...)
	SortIndexedView(asc, 0, SortSize, false)
	var ascSizes []string
	for _, r := range asc {
		ascSizes = append(ascSizes, r.Row[0])
	}
	assert.Equal(t, []string{"500MB", "750MB", "1.5GB", "2.1GB"}, ascSizes)

	desc := append(IndexedView(nil), view...)
	SortIndexedView(desc, 0, SortSize, true)
	var descSizes []string
	for _, r := range desc {
		descSizes = append(descSizes, r.Row[0])
	}
	assert.Equal(t, []string{"2.1GB", "1.5GB", "750MB", "500MB"}, descSizes)
}

// TestScenarioInsertRowEditCellAndSaveRoundTrips is spec.md §8 end-to-end
// scenario 4.
func TestScenarioInsertRowEditCellAndSaveRoundTrips(t *testing.T) {
	state := NewState([][]string{{"1", "a"}, {"2", "b"}}, []string{"id", "val"})

	state.InsertRowAt(len(state.Rows))
	last := len(state.Rows) - 1
	state.Rows[last][0] = "testcelldata"
	state.Normalize()
	state.RebuildIndexed()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, SaveSnapshot(state, NewSettings(), HistoryBuffers{}, path))

	reloaded, _, _, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "testcelldata", reloaded.Rows[last][0])
}

// TestScenarioRefreshWithIdTracking is spec.md §8 end-to-end scenario 5.
func TestScenarioRefreshWithIdTracking(t *testing.T) {
	state := NewState([][]string{{"A"}, {"B"}, {"C"}}, []string{"id"})
	state.Sel.ToggleCurrent(1, state.Unselectable) // select id B (original index 1)

	require.True(t, state.StartRefresh(func() ([][]string, []string, error) {
		return [][]string{{"C"}, {"B"}, {"D"}}, []string{"id"}, nil
	}))
	for {
		done, err := state.PollRefresh(0)
		require.NoError(t, err)
		if done {
			break
		}
	}

	selectedIDs := map[string]bool{}
	for i, row := range state.Rows {
		if state.Sel.RowSelected[i] {
			selectedIDs[row[0]] = true
		}
	}
	assert.Equal(t, map[string]bool{"B": true}, selectedIDs)
}

// TestScenarioVisualSelectRectangle is spec.md §8 end-to-end scenario 6.
func TestScenarioVisualSelectRectangle(t *testing.T) {
	view := IndexedView{
		{OriginalIndex: 0, Row: []string{"r0c0", "r0c1", "r0c2", "r0c3", "r0c4"}},
		{OriginalIndex: 1, Row: []string{"r1c0", "r1c1", "r1c2", "r1c3", "r1c4"}},
		{OriginalIndex: 2, Row: []string{"r2c0", "r2c1", "r2c2", "r2c3", "r2c4"}},
		{OriginalIndex: 3, Row: []string{"r3c0", "r3c1", "r3c2", "r3c3", "r3c4"}},
	}
	sel := NewSelection()
	sel.ToggleVisualSelect(1, 2, view, nil)
	sel.ToggleVisualSelect(3, 4, view, nil)

	for i := 1; i <= 3; i++ {
		for j := 2; j <= 4; j++ {
			assert.True(t, sel.CellSelected[CellKey{Row: i, Col: j}], "expected (%d,%d) selected", i, j)
		}
	}
	assert.False(t, sel.CellSelected[CellKey{Row: 0, Col: 2}])
	assert.False(t, sel.CellSelected[CellKey{Row: 1, Col: 1}])
}
