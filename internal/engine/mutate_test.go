package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRowRemovesRowAndReindexesSelection(t *testing.T) {
	s := NewState([][]string{{"a"}, {"b"}, {"c"}}, []string{"col"})
	s.Sel.CellSelected[CellKey{Row: 2, Col: 0}] = true

	s.DeleteRow(1)

	require.Len(t, s.Rows, 2)
	assert.Equal(t, []string{"a"}, s.Rows[0])
	assert.Equal(t, []string{"c"}, s.Rows[1])
	assert.True(t, s.Sel.CellSelected[CellKey{Row: 1, Col: 0}], "the deleted row's successor's cell selection shifts down")
}

func TestDeleteRowOutOfRangeIsNoOp(t *testing.T) {
	s := NewState([][]string{{"a"}}, []string{"col"})
	s.DeleteRow(5)
	assert.Len(t, s.Rows, 1)
}

func TestInsertRowAtShiftsSelectionAndLeavesNewRowUnselected(t *testing.T) {
	s := NewState([][]string{{"a"}, {"b"}}, []string{"col"})
	s.Sel.RowSelected[1] = true

	s.InsertRowAt(1)

	require.Len(t, s.Rows, 3)
	assert.False(t, s.Sel.RowSelected[1], "the newly inserted row starts unselected")
	assert.True(t, s.Sel.RowSelected[2], "the row previously at index 1 shifts to index 2")
}

func TestDeleteColumnRemovesFromEveryRowAndHeader(t *testing.T) {
	s := NewState([][]string{{"1", "a", "x"}, {"2", "b", "y"}}, []string{"id", "val", "tag"})
	s.Sel.CellSelected[CellKey{Row: 0, Col: 2}] = true

	s.DeleteColumn(1)

	assert.Equal(t, []string{"id", "tag"}, s.Header)
	assert.Equal(t, []string{"1", "x"}, s.Rows[0])
	assert.True(t, s.Sel.CellSelected[CellKey{Row: 0, Col: 1}], "column 2's selection shifts down to column 1")
}

func TestDeleteColumnOutOfRangeIsNoOp(t *testing.T) {
	s := NewState([][]string{{"a", "b"}}, []string{"x", "y"})
	s.DeleteColumn(9)
	assert.Equal(t, []string{"x", "y"}, s.Header)
}
