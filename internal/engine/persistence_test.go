package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTripCoversSettingsAndHistory(t *testing.T) {
	state := NewState([][]string{
		{"1", "Alice"},
		{"2", "Bob"},
	}, []string{"id", "name"})
	state.Sel.RowSelected[0] = true
	state.Sel.CellSelected[CellKey{Row: 1, Col: 1}] = true
	state.Highlights = []Highlight{{Match: "Bob", Field: FieldAll, Type: HighlightUser}}
	state.Modes = []Mode{{Name: "all", Filter: ""}}
	state.ModeIndex = 0
	state.FilterQuery = "Alice"
	state.RebuildIndexed()
	state.Cursor = 0

	settings := NewSettings()
	settings.ThemeIndex = 3
	settings.ShowFooter = false
	settings.Paginate = true
	settings.AutoRefresh = true

	hist := HistoryBuffers{
		Filter:   []string{"Alice"},
		Search:   []string{"Bob"},
		Options:  []string{"opt1"},
		Settings: []string{"ct"},
		Pipe:     []string{"sort"},
		Edit:     []string{"42"},
	}

	encoded, err := EncodeSnapshot(state, settings, hist)
	require.NoError(t, err)

	restoredState, restoredSettings, restoredHist, err := DecodeSnapshot(bytes.NewReader(encoded))
	require.NoError(t, err)

	assert.Equal(t, state.Rows, restoredState.Rows)
	assert.Equal(t, state.Header, restoredState.Header)
	assert.True(t, restoredState.Sel.RowSelected[0])
	assert.True(t, restoredState.Sel.CellSelected[CellKey{Row: 1, Col: 1}])
	assert.Equal(t, state.Highlights, restoredState.Highlights)
	assert.Equal(t, state.Modes, restoredState.Modes)
	assert.Equal(t, state.FilterQuery, restoredState.FilterQuery)

	assert.Equal(t, *settings, *restoredSettings)
	assert.Equal(t, hist, restoredHist)

	// The indexed view is recomputed, not carried verbatim, but should
	// reflect the restored filter query.
	assert.Len(t, restoredState.Indexed, 1)
	assert.Equal(t, "Alice", restoredState.Indexed[0].Row[1])
}

func TestSnapshotOfNilSettingsDefaults(t *testing.T) {
	state := NewState([][]string{{"1"}}, []string{"id"})
	snap := SnapshotOf(state, nil, HistoryBuffers{})
	assert.Equal(t, *NewSettings(), snap.Settings)
}
