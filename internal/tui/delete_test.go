package tui

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLineReplacesEmbeddedControlCharsWithSpace(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeLine("a\nb\tc"))
	assert.Equal(t, "plain", sanitizeLine("plain"))
}

func TestSanitizeLineDropsOtherControlBytes(t *testing.T) {
	assert.Equal(t, "ab", sanitizeLine("a\x01b"))
}

func TestRenderConfirmDialogListsAllItemsWhenHeightPermits(t *testing.T) {
	out := RenderConfirmDialog(ConfirmDialogState{
		Title:  "Delete rows",
		Items:  []string{"row1", "row2"},
		Width:  80,
		Height: 24,
	})
	assert.Contains(t, out, "Delete rows")
	assert.Contains(t, out, "row1")
	assert.Contains(t, out, "row2")
	assert.Contains(t, out, "2 item(s)")
}

func TestRenderConfirmDialogTruncatesItemsToFitHeight(t *testing.T) {
	items := make([]string, 50)
	for i := range items {
		items[i] = "row" + strconv.Itoa(i)
	}
	out := RenderConfirmDialog(ConfirmDialogState{
		Title:        "Delete rows",
		Items:        items,
		Width:        80,
		Height:       12,
		HeaderHeight: 1,
		FooterHeight: 1,
	})
	assert.Contains(t, out, "more")
	assert.Contains(t, out, "Press y to confirm")
}

func TestRenderConfirmDialogDefaultsWarningWhenEmpty(t *testing.T) {
	out := RenderConfirmDialog(ConfirmDialogState{Items: []string{"x"}, Width: 80, Height: 24})
	assert.Contains(t, out, "This action cannot be undone.")
}
