// Package input implements the picker's embedded single-line editor: the
// shared prompt used for filter, search, options, settings, edit-cell,
// and pipe input. It wraps bubbles/textinput for rendering and basic
// cursor movement, and layers on top of it the kill ring, named
// registers, per-field history, and pluggable completion sources that
// textinput does not provide, per spec.md §4.6.1.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Source supplies completion candidates for the text currently before the
// cursor. Grounded on spec.md §4.6.1's four completion kinds (path, word,
// function, formula); the field does not know which concrete Source is
// active, only that it satisfies this interface.
type Source interface {
	Candidates(prefix string) []string
}

// Field is the embedded input-field state machine.
type Field struct {
	ti textinput.Model

	killRing    []string
	killIndex   int
	lastWasKill bool

	registers map[string]string

	history     []string
	historyPos  int
	pendingEdit string

	sources      []Source
	completions  []string
	completeIdx  int
	completeBase string
}

// New returns a Field with the given placeholder text and character
// limit, mirroring the teacher's textinput.New()/CharLimit idiom.
func New(placeholder string, charLimit int) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	return &Field{
		ti:        ti,
		registers: make(map[string]string),
	}
}

// SetSources installs the completion sources tried, in order, on Tab.
func (f *Field) SetSources(sources ...Source) {
	f.sources = sources
}

// SetHistory installs the history list a prompt was opened with; accepting
// with Enter appends to it.
func (f *Field) SetHistory(history []string) {
	f.history = history
	f.historyPos = len(history)
}

// History returns the current history list, including anything accepting
// with Enter has appended.
func (f *Field) History() []string {
	return f.history
}

// SetRegister stores value under name (spec.md §4.6.1's "named
// registers, at minimum `*` = the current focus cell").
func (f *Field) SetRegister(name, value string) {
	f.registers[name] = value
}

// Register returns the value stored under name, or "" if unset.
func (f *Field) Register(name string) string {
	return f.registers[name]
}

// Focus/Blur/Value/SetValue/View delegate straight to the wrapped
// textinput.Model.
func (f *Field) Focus() tea.Cmd { return f.ti.Focus() }
func (f *Field) Blur()          { f.ti.Blur() }
func (f *Field) Value() string  { return f.ti.Value() }
func (f *Field) View() string   { return f.ti.View() }

// SetValue replaces the buffer and resets the cursor to its end.
func (f *Field) SetValue(v string) {
	f.ti.SetValue(v)
	f.ti.CursorEnd()
}

// Reset clears the buffer, kill-ring cursor, and completion state,
// keeping history and registers (a new prompt of the same kind reuses
// them).
func (f *Field) Reset() {
	f.ti.SetValue("")
	f.killIndex = 0
	f.completions = nil
}

// Result is what Update returns once the field resolves a keystroke into
// an accept or cancel.
type Result struct {
	Text     string
	Accepted bool
	Done     bool // true once Accepted is meaningful; false while still editing
}

// Update processes one key event against the editing grammar of spec.md
// §4.6.1. It returns Done=true exactly once, on Return (Accepted=true,
// Text=buffer) or Escape (Accepted=false, Text=the edit saved when Up
// last stepped from the live buffer into history, or "" if that never
// happened).
func (f *Field) Update(msg tea.KeyMsg) (tea.Cmd, Result) {
	switch msg.String() {
	case "enter":
		text := f.ti.Value()
		if len(f.history) == 0 || f.history[len(f.history)-1] != text {
			f.history = append(f.history, text)
		}
		return nil, Result{Text: text, Accepted: true, Done: true}

	case "esc":
		return nil, Result{Text: f.pendingEdit, Accepted: false, Done: true}

	case "ctrl+b":
		f.ti.SetCursor(f.ti.Position() - 1)
		return nil, Result{Done: false}
	case "ctrl+f":
		f.ti.SetCursor(f.ti.Position() + 1)
		return nil, Result{Done: false}
	case "ctrl+a":
		f.ti.CursorStart()
		return nil, Result{Done: false}
	case "ctrl+e":
		f.ti.CursorEnd()
		return nil, Result{Done: false}

	case "ctrl+u":
		f.killTo(0)
		return nil, Result{Done: false}
	case "ctrl+k":
		f.killTo(len(f.ti.Value()))
		return nil, Result{Done: false}
	case "ctrl+w":
		f.killWordBack()
		return nil, Result{Done: false}

	case "ctrl+y":
		f.yank(0)
		return nil, Result{Done: false}
	case "alt+y":
		f.yankRotate()
		return nil, Result{Done: false}

	case "up":
		f.historyPrev()
		return nil, Result{Done: false}
	case "down":
		f.historyNext()
		return nil, Result{Done: false}

	case "tab":
		f.complete()
		return nil, Result{Done: false}

	default:
		var cmd tea.Cmd
		f.ti, cmd = f.ti.Update(msg)
		return cmd, Result{Done: false}
	}
}

// killTo kills the half-open span [min(cursor, to), max(cursor, to)),
// pushing it onto the kill ring as index 0.
func (f *Field) killTo(to int) {
	v := f.ti.Value()
	pos := f.ti.Position()
	lo, hi := pos, to
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(v) {
		hi = len(v)
	}
	if lo >= hi {
		return
	}
	killed := v[lo:hi]
	f.pushKill(killed)
	f.ti.SetValue(v[:lo] + v[hi:])
	f.ti.SetCursor(lo)
}

// killWordBack kills the word immediately before the cursor (Ctrl+W).
func (f *Field) killWordBack() {
	v := f.ti.Value()
	pos := f.ti.Position()
	if pos > len(v) {
		pos = len(v)
	}
	start := pos
	for start > 0 && v[start-1] == ' ' {
		start--
	}
	for start > 0 && v[start-1] != ' ' {
		start--
	}
	if start == pos {
		return
	}
	f.pushKill(v[start:pos])
	f.ti.SetValue(v[:start] + v[pos:])
	f.ti.SetCursor(start)
}

// pushKill records killed as the most recent kill-ring entry, resetting
// the yank-rotation cursor, per spec.md §4.6.1.
func (f *Field) pushKill(killed string) {
	f.killRing = append([]string{killed}, f.killRing...)
	f.killIndex = 0
	f.lastWasKill = true
}

// yank inserts kill-ring entry idx at the cursor.
func (f *Field) yank(idx int) {
	if idx < 0 || idx >= len(f.killRing) {
		return
	}
	f.killIndex = idx
	f.insertAtCursor(f.killRing[idx])
}

// yankRotate replaces the just-yanked text with the next kill-ring entry,
// per spec.md's "Alt+Y rotates to index 1, 2, …, replacing the most
// recent yank".
func (f *Field) yankRotate() {
	if len(f.killRing) == 0 {
		return
	}
	prev := f.killRing[f.killIndex]
	next := (f.killIndex + 1) % len(f.killRing)

	v := f.ti.Value()
	pos := f.ti.Position()
	if pos >= len(prev) && v[pos-len(prev):pos] == prev {
		v = v[:pos-len(prev)] + f.killRing[next] + v[pos:]
		f.ti.SetValue(v)
		f.ti.SetCursor(pos - len(prev) + len(f.killRing[next]))
	} else {
		f.insertAtCursor(f.killRing[next])
	}
	f.killIndex = next
}

func (f *Field) insertAtCursor(s string) {
	v := f.ti.Value()
	pos := f.ti.Position()
	if pos > len(v) {
		pos = len(v)
	}
	f.ti.SetValue(v[:pos] + s + v[pos:])
	f.ti.SetCursor(pos + len(s))
}

// historyPrev/historyNext cycle the history list, per spec.md §4.6.1.
func (f *Field) historyPrev() {
	if len(f.history) == 0 {
		return
	}
	if f.historyPos == len(f.history) {
		f.pendingEdit = f.ti.Value()
	}
	if f.historyPos > 0 {
		f.historyPos--
	}
	f.SetValue(f.history[f.historyPos])
}

func (f *Field) historyNext() {
	if f.historyPos >= len(f.history) {
		return
	}
	f.historyPos++
	if f.historyPos == len(f.history) {
		f.SetValue(f.pendingEdit)
		return
	}
	f.SetValue(f.history[f.historyPos])
}

// complete triggers completion from the active sources against the text
// before the cursor, cycling through results on repeated Tab.
func (f *Field) complete() {
	v := f.ti.Value()
	pos := f.ti.Position()
	if pos > len(v) {
		pos = len(v)
	}
	prefix := v[:pos]

	if f.completions != nil && prefix == f.completeBase {
		f.completeIdx = (f.completeIdx + 1) % len(f.completions)
	} else {
		var candidates []string
		for _, src := range f.sources {
			candidates = append(candidates, src.Candidates(prefix)...)
		}
		if len(candidates) == 0 {
			return
		}
		f.completions = candidates
		f.completeIdx = 0
		f.completeBase = prefix
	}

	chosen := f.completions[f.completeIdx]
	f.ti.SetValue(chosen + v[pos:])
	f.ti.SetCursor(len(chosen))
	// The next Tab sees chosen as its prefix; matching it here makes that
	// Tab cycle to the next candidate instead of starting a new lookup.
	f.completeBase = chosen
}
