package engine

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"
)

// HistoryBuffers bundles the embedded input field's per-prompt history
// buffers (filter/search/settings/options/pipe/edit-cell), which live on
// tui.App rather than State; threaded through so a save/restore round
// trip covers them too, per spec.md §4.9.
type HistoryBuffers struct {
	Filter   []string
	Search   []string
	Options  []string
	Settings []string
	Pipe     []string
	Edit     []string
}

// Snapshot is the full on-disk state of a Picker: row store, header,
// column metadata, selection, highlights, modes, display settings, and
// prompt history. It deliberately excludes viewport/terminal geometry,
// which is recomputed on load.
//
// encoding/gob is the stdlib answer to "serialize an arbitrary struct
// graph" and is used here in place of the original Python `pickle`; no
// third-party object-graph codec appears anywhere in the retrieved pack.
type Snapshot struct {
	Rows         [][]string
	Header       []string
	Columns      ColumnMeta
	RowSelected  map[int]bool
	CellSelected map[CellKey]bool
	Highlights   []Highlight
	Modes        []Mode
	ModeIndex    int
	FilterQuery  string
	Cursor       int
	Settings     Settings
	History      HistoryBuffers
}

// SnapshotOf captures state, settings, and the prompt history buffers
// into a Snapshot value. settings may be nil, in which case the
// snapshot carries NewSettings()'s defaults.
func SnapshotOf(state *State, settings *Settings, hist HistoryBuffers) Snapshot {
	if settings == nil {
		settings = NewSettings()
	}
	return Snapshot{
		Rows:         state.Rows,
		Header:       state.Header,
		Columns:      *state.Columns,
		RowSelected:  state.Sel.RowSelected,
		CellSelected: state.Sel.CellSelected,
		Highlights:   state.Highlights,
		Modes:        state.Modes,
		ModeIndex:    state.ModeIndex,
		FilterQuery:  state.FilterQuery,
		Cursor:       state.Cursor,
		Settings:     *settings,
		History:      hist,
	}
}

// Restore rebuilds a State, Settings, and HistoryBuffers from a Snapshot,
// then re-derives the indexed view and normalizes metadata arity.
func Restore(snap Snapshot) (*State, *Settings, HistoryBuffers) {
	s := &State{
		Rows:         snap.Rows,
		Header:       snap.Header,
		Columns:      &snap.Columns,
		Sel:          &Selection{RowSelected: snap.RowSelected, CellSelected: snap.CellSelected},
		Highlights:   snap.Highlights,
		Modes:        snap.Modes,
		ModeIndex:    snap.ModeIndex,
		FilterQuery:  snap.FilterQuery,
		Cursor:       snap.Cursor,
		Unselectable: make(map[int]bool),
	}
	if s.Sel.RowSelected == nil {
		s.Sel.RowSelected = make(map[int]bool)
	}
	if s.Sel.CellSelected == nil {
		s.Sel.CellSelected = make(map[CellKey]bool)
	}
	s.Normalize()
	s.RebuildIndexed()
	settings := snap.Settings
	return s, &settings, snap.History
}

// SaveSnapshot gob-encodes state/settings/hist's Snapshot to path.
func SaveSnapshot(state *State, settings *Settings, hist HistoryBuffers, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(SnapshotOf(state, settings, hist))
}

// LoadSnapshot decodes a gob-encoded Snapshot from path and restores a
// State/Settings/HistoryBuffers from it.
func LoadSnapshot(path string) (*State, *Settings, HistoryBuffers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, HistoryBuffers{}, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// DecodeSnapshot gob-decodes a Snapshot from r and restores it.
func DecodeSnapshot(r io.Reader) (*State, *Settings, HistoryBuffers, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, nil, HistoryBuffers{}, err
	}
	s, settings, hist := Restore(snap)
	return s, settings, hist, nil
}

// EncodeSnapshot gob-encodes state/settings/hist's Snapshot into an
// in-memory buffer, useful for tests and for full-state checkpoints that
// do not touch disk.
func EncodeSnapshot(state *State, settings *Settings, hist HistoryBuffers) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(SnapshotOf(state, settings, hist)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
