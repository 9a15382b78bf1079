package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHistoryPrevNextCyclesAndRestoresPendingEdit(t *testing.T) {
	f := New("", 0)
	f.SetHistory([]string{"a", "b"})
	f.SetValue("typing")

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "b", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "a", f.Value())

	// historyPos is already at 0; a further Up must not wrap or crash.
	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "a", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "b", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "typing", f.Value(), "cycling past the newest entry restores the pending edit")
}

func TestAcceptAppendsToHistoryUnlessDuplicate(t *testing.T) {
	f := New("", 0)
	f.SetHistory([]string{"old"})
	f.SetValue("old")

	_, res := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"old"}, f.History(), "accepting the same text as the last entry must not duplicate it")

	f.SetValue("new")
	_, res = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"old", "new"}, f.History())
}

func TestEscapeCancelsWithPendingEditValue(t *testing.T) {
	f := New("", 0)
	f.pendingEdit = "original"
	f.SetValue("scratch")

	_, res := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, res.Done)
	assert.False(t, res.Accepted)
	assert.Equal(t, "original", res.Text)
}

type stubSource struct {
	candidates []string
}

func (s stubSource) Candidates(prefix string) []string {
	return s.candidates
}

func TestCompleteCyclesThroughSourceCandidatesOnRepeatedTab(t *testing.T) {
	f := New("", 0)
	f.SetSources(stubSource{candidates: []string{"alpha", "alt"}})
	f.SetValue("al")

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "alpha", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "alt", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "alpha", f.Value(), "cycling wraps back to the first candidate")
}

func TestCompleteNoCandidatesLeavesValueUnchanged(t *testing.T) {
	f := New("", 0)
	f.SetSources(stubSource{candidates: nil})
	f.SetValue("xyz")

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "xyz", f.Value())
}

func TestKillToStartAndYankRoundTrip(t *testing.T) {
	f := New("", 0)
	f.SetValue("hello world")
	f.ti.SetCursor(len("hello world"))

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "hello world", f.Value())
}

func TestKillWordBackRemovesPrecedingWord(t *testing.T) {
	f := New("", 0)
	f.SetValue("foo bar")
	f.ti.CursorEnd()

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "foo ", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "foo bar", f.Value())
}

func TestYankRotateReplacesMostRecentYankWithNextEntry(t *testing.T) {
	f := New("", 0)
	f.SetValue("one two")
	f.ti.CursorEnd()
	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlW}) // kill "two", ring: ["two"]

	f.ti.CursorEnd()
	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlW}) // kill "one ", ring: ["one ", "two"]
	assert.Equal(t, "", f.Value())

	_, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "one ", f.Value())

	_, _ = f.Update(keyAltY())
	assert.Equal(t, "two", f.Value(), "Alt+Y rotates the just-yanked text to the next ring entry")
}

func keyAltY() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Alt: true, Runes: []rune("y")}
}

func TestRegisterSetAndGet(t *testing.T) {
	f := New("", 0)
	assert.Equal(t, "", f.Register("*"))
	f.SetRegister("*", "cell value")
	assert.Equal(t, "cell value", f.Register("*"))
}

func TestResetClearsBufferButKeepsHistoryAndRegisters(t *testing.T) {
	f := New("", 0)
	f.SetHistory([]string{"kept"})
	f.SetRegister("*", "kept too")
	f.SetValue("scratch")

	f.Reset()

	assert.Equal(t, "", f.Value())
	assert.Equal(t, []string{"kept"}, f.History())
	assert.Equal(t, "kept too", f.Register("*"))
}
