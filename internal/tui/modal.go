package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grimandgreedy/listpick/internal/keymap"
)

// ModalKind distinguishes the nested-Picker flavors spec.md §4.6/§9 group
// under "Nested Pickers": a scrollable help viewer, a settings/options
// chooser, a dismiss-on-any-key notification, and a read-only infobox.
type ModalKind int

const (
	ModalHelp ModalKind = iota
	ModalChooser
	ModalNotification
	ModalInfobox
)

// ModalConfig is the "modal_mode configuration bundle" of spec.md §9: the
// source re-spawns the whole Picker for notifications, infoboxes, choosers,
// and help; here one Modal type is reused for all four, parameterised by a
// restricted keymap, capped dimensions, and a cancel_is_back flag instead
// of four separate implementations.
type ModalConfig struct {
	Keys         *keymap.KeyMap
	MaxWidth     int
	MaxHeight    int
	CancelIsBack bool
}

// NewModalConfig derives a ModalConfig from base (normally the owning
// App's keymap), restricting it via keymap.Modal and capping the modal's
// footprint so it never grows to fill the whole terminal the way the main
// table view does.
func NewModalConfig(base *keymap.KeyMap, cancelIsBack bool, maxWidth, maxHeight int) ModalConfig {
	return ModalConfig{
		Keys:         keymap.Modal(base, cancelIsBack),
		MaxWidth:     maxWidth,
		MaxHeight:    maxHeight,
		CancelIsBack: cancelIsBack,
	}
}

// Modal is the nested Picker instance itself: a small cursor-driven list
// over either read-only lines (help/notification/infobox) or selectable
// options (chooser), owning input until it closes. Per spec.md §4.6's
// "nested pickers run their own main loop until they return, during which
// the outer loop is paused," the owning App routes every key to the modal
// instead of its own handleKey while app.modal is non-nil.
type Modal struct {
	Kind   ModalKind
	Title  string
	Config ModalConfig

	Lines   []string
	Options []string
	Cursor  int

	onChoose func(app *App, choice string)
}

// newHelpModal renders the operation/key table as lines inside a
// restricted-keymap Modal, so the help viewer behaves like every other
// nested picker instead of being a View-level special case.
func newHelpModal(keys *keymap.KeyMap, maxWidth int) *Modal {
	var lines []string
	for op := keymap.OpCursorUp; op <= keymap.OpColumnHide; op++ {
		ks := keys.Keys(op)
		if len(ks) == 0 {
			continue
		}
		lines = append(lines, padRight(op.String(), 28)+strings.Join(ks, ", "))
	}
	return &Modal{
		Kind:   ModalHelp,
		Title:  "Help — esc/q to close",
		Config: NewModalConfig(keys, true, maxWidth, 0),
		Lines:  lines,
	}
}

// newChooserModal lists options for selection, invoking onChoose with the
// highlighted entry on enter. Used by OpSettingsChooser/OpOptionsChooser to
// pick a previously entered command instead of retyping it at the plain
// prompt (OpSettingsPrompt/OpOptionsPrompt), per spec.md §4.6's "settings
// prompt/chooser" and "options prompt/chooser" being distinct operations.
func newChooserModal(keys *keymap.KeyMap, title string, options []string, onChoose func(app *App, choice string)) *Modal {
	return &Modal{
		Kind:     ModalChooser,
		Title:    title,
		Config:   NewModalConfig(keys, false, 0, 0),
		Options:  options,
		onChoose: onChoose,
	}
}

// newNotificationModal reports a transient message (an I/O error, per
// spec.md's "reported as a transient notification; never crashes the
// loop") that any key dismisses.
func newNotificationModal(title, message string) *Modal {
	return &Modal{
		Kind:   ModalNotification,
		Title:  title,
		Config: NewModalConfig(keymap.New(), true, 60, 0),
		Lines:  strings.Split(message, "\n"),
	}
}

// newInfoboxModal shows read-only informational lines, dismissed the same
// way as a notification but intended for longer-lived reference text
// rather than a one-line error.
func newInfoboxModal(title string, lines []string) *Modal {
	return &Modal{
		Kind:   ModalInfobox,
		Title:  title,
		Config: NewModalConfig(keymap.New(), true, 0, 0),
		Lines:  lines,
	}
}

// HandleKey processes one key while this modal owns input. It mutates
// app.modal to nil once the interaction completes (cancelled or, for a
// chooser, accepted), at which point the owning App's outer loop resumes.
func (m *Modal) HandleKey(app *App, msg tea.KeyMsg) {
	key := msg.String()
	switch m.Kind {
	case ModalHelp:
		switch m.Config.Keys.Resolve(key) {
		case keymap.OpCursorUp:
			m.moveCursor(-1)
		case keymap.OpCursorDown:
			m.moveCursor(1)
		case keymap.OpPageUp:
			m.moveCursor(-10)
		case keymap.OpPageDown:
			m.moveCursor(10)
		case keymap.OpCancel, keymap.OpExit, keymap.OpFullExit:
			app.modal = nil
		}

	case ModalChooser:
		switch key {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter":
			choice := ""
			if m.Cursor >= 0 && m.Cursor < len(m.Options) {
				choice = m.Options[m.Cursor]
			}
			app.modal = nil
			if choice != "" && m.onChoose != nil {
				m.onChoose(app, choice)
			}
		case "esc", "q", "ctrl+c":
			app.modal = nil
		}

	case ModalNotification, ModalInfobox:
		app.modal = nil
	}
}

func (m *Modal) moveCursor(delta int) {
	n := len(m.Options)
	if n == 0 {
		n = len(m.Lines)
	}
	if n == 0 {
		return
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
}

// Render draws the modal's title and body, capped to Config.MaxWidth when
// set so a chooser over a handful of settings tokens doesn't stretch to
// the full terminal width.
func (m *Modal) Render(width int) string {
	w := width
	if m.Config.MaxWidth > 0 && w > m.Config.MaxWidth {
		w = m.Config.MaxWidth
	}
	if w <= 0 {
		w = 60
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Width(w).Render(m.Title))
	b.WriteString("\n\n")

	switch m.Kind {
	case ModalChooser:
		if len(m.Options) == 0 {
			b.WriteString("  (nothing to choose from yet)\n")
		}
		for i, opt := range m.Options {
			cursor := "  "
			if i == m.Cursor {
				cursor = "> "
			}
			b.WriteString(cursor + opt + "\n")
		}

	default:
		for _, line := range m.Lines {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

// appendHistory appends text to hist unless it already is hist's most
// recent entry, mirroring the de-duplication input.Field applies when
// Enter accepts, so a
// chooser selection and a typed prompt build the same kind of history.
func appendHistory(hist []string, text string) []string {
	if text == "" {
		return hist
	}
	if len(hist) > 0 && hist[len(hist)-1] == text {
		return hist
	}
	return append(hist, text)
}
