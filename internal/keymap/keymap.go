// Package keymap resolves keyboard events into picker operations: a
// configurable operation->keys map, an optional raw-key remap table
// applied before dispatch, and a disabled-keys set that short-circuits to
// no-op. Grounded on the teacher's internal/tui/keys.go (bubbles/key
// binding table), generalised from its fixed field-per-binding struct
// into the enumerated, data-driven map spec.md §4.6 requires so nested
// pickers can carry their own restricted keymap value.
package keymap

// Operation is one of the fixed enumerated picker operations of spec.md
// §4.6.
type Operation int

const (
	OpNone Operation = iota

	OpCursorUp
	OpCursorDown
	OpCursorLeft
	OpCursorRight
	OpPageUp
	OpPageDown
	OpGotoTop
	OpGotoBottom

	OpToggleSelect
	OpSelectAll
	OpDeselectAll
	OpVisualSelect
	OpVisualDeselect

	OpSortColumnFocusNext
	OpSortColumnFocusPrev
	OpSortToggleReverse
	OpSortCycleMode

	OpFilterPrompt
	OpSearchPrompt
	OpContinueSearchForward
	OpContinueSearchBackward

	OpSettingsPrompt
	OpSettingsChooser
	OpOptionsPrompt
	OpOptionsChooser
	OpPipePrompt

	OpEditCell
	OpPaste
	OpCopyDialog
	OpSaveDialog
	OpLoadDialog

	OpModeCycle
	OpHelp
	OpRefresh
	OpRedraw
	OpCancel
	OpExit
	OpFullExit

	OpDeleteRow
	OpDeleteColumn
	OpInsertRow
	OpInsertColumn

	OpScrollLeft
	OpScrollRight
	OpScrollFarRight
	OpColumnHide
)

var operationNames = map[Operation]string{
	OpCursorUp:              "cursor_up",
	OpCursorDown:            "cursor_down",
	OpCursorLeft:            "cursor_left",
	OpCursorRight:           "cursor_right",
	OpPageUp:                "page_up",
	OpPageDown:              "page_down",
	OpGotoTop:               "goto_top",
	OpGotoBottom:            "goto_bottom",
	OpToggleSelect:          "toggle_select",
	OpSelectAll:             "select_all",
	OpDeselectAll:           "deselect_all",
	OpVisualSelect:          "visual_select",
	OpVisualDeselect:        "visual_deselect",
	OpSortColumnFocusNext:   "sort_column_focus_next",
	OpSortColumnFocusPrev:   "sort_column_focus_prev",
	OpSortToggleReverse:     "sort_toggle_reverse",
	OpSortCycleMode:         "sort_cycle_mode",
	OpFilterPrompt:          "filter_prompt",
	OpSearchPrompt:          "search_prompt",
	OpContinueSearchForward: "continue_search_forward",
	OpContinueSearchBackward: "continue_search_backward",
	OpSettingsPrompt:        "settings_prompt",
	OpSettingsChooser:       "settings_chooser",
	OpOptionsPrompt:         "options_prompt",
	OpOptionsChooser:        "options_chooser",
	OpPipePrompt:            "pipe_prompt",
	OpEditCell:              "edit_cell",
	OpPaste:                 "paste",
	OpCopyDialog:            "copy_dialog",
	OpSaveDialog:            "save_dialog",
	OpLoadDialog:            "load_dialog",
	OpModeCycle:             "mode_cycle",
	OpHelp:                  "help",
	OpRefresh:               "refresh",
	OpRedraw:                "redraw",
	OpCancel:                "cancel",
	OpExit:                  "exit",
	OpFullExit:              "full_exit",
	OpDeleteRow:             "delete_row",
	OpDeleteColumn:          "delete_column",
	OpInsertRow:             "insert_row",
	OpInsertColumn:          "insert_column",
	OpScrollLeft:            "scroll_left",
	OpScrollRight:           "scroll_right",
	OpScrollFarRight:        "scroll_far_right",
	OpColumnHide:            "column_hide",
}

// String returns the operation's canonical snake_case name, used by the
// help viewer.
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "none"
}

// KeyMap maps each operation to the set of raw key strings (bubbletea's
// tea.KeyMsg.String() form, e.g. "ctrl+c", "shift+tab") that trigger it.
type KeyMap struct {
	bindings map[Operation]map[string]bool
	remap    map[string]string
	disabled map[string]bool
}

// New returns an empty KeyMap; use Default for the picker's standard
// bindings.
func New() *KeyMap {
	return &KeyMap{
		bindings: make(map[Operation]map[string]bool),
		remap:    make(map[string]string),
		disabled: make(map[string]bool),
	}
}

// Bind adds keys to the set that triggers op.
func (k *KeyMap) Bind(op Operation, keys ...string) {
	set, ok := k.bindings[op]
	if !ok {
		set = make(map[string]bool)
		k.bindings[op] = set
	}
	for _, key := range keys {
		set[key] = true
	}
}

// Remap installs a raw-key remap entry applied before dispatch (spec.md
// §6.4: used by nested pickers to e.g. turn a resize event into a
// refresh event).
func (k *KeyMap) Remap(from, to string) {
	k.remap[from] = to
}

// Disable adds key to the disabled set, short-circuiting it to a no-op
// regardless of any binding.
func (k *KeyMap) Disable(key string) {
	k.disabled[key] = true
}

// Enable removes key from the disabled set.
func (k *KeyMap) Enable(key string) {
	delete(k.disabled, key)
}

// Resolve applies the remap table, then the disabled-keys short-circuit,
// then scans bindings for the operation key belongs to. Returns OpNone if
// key is disabled or bound to nothing.
func (k *KeyMap) Resolve(key string) Operation {
	if mapped, ok := k.remap[key]; ok {
		key = mapped
	}
	if k.disabled[key] {
		return OpNone
	}
	for op, set := range k.bindings {
		if set[key] {
			return op
		}
	}
	return OpNone
}

// Clone returns a deep copy, used when a nested Picker needs to start
// from the parent's keymap and then restrict it further.
func (k *KeyMap) Clone() *KeyMap {
	c := New()
	for op, set := range k.bindings {
		keys := make([]string, 0, len(set))
		for key := range set {
			keys = append(keys, key)
		}
		c.Bind(op, keys...)
	}
	for from, to := range k.remap {
		c.remap[from] = to
	}
	for key := range k.disabled {
		c.disabled[key] = true
	}
	return c
}

// Keys returns the bound key strings for op, for help-text generation.
func (k *KeyMap) Keys(op Operation) []string {
	set := k.bindings[op]
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}

// Default returns the picker's standard keymap, grounded on the
// teacher's internal/tui/keys.go binding choices where the operations
// overlap (cursor up/down, search, escape, help, page left/right,
// toggle-select, refresh) and spec.md §4.6/§6 for the rest.
func Default() *KeyMap {
	k := New()
	k.Bind(OpCursorUp, "up", "k")
	k.Bind(OpCursorDown, "down", "j")
	k.Bind(OpCursorLeft, "left", "h")
	k.Bind(OpCursorRight, "right", "l")
	k.Bind(OpPageUp, "pgup", "ctrl+b")
	k.Bind(OpPageDown, "pgdown", "ctrl+f")
	k.Bind(OpGotoTop, "g")
	k.Bind(OpGotoBottom, "G")

	k.Bind(OpToggleSelect, " ")
	k.Bind(OpSelectAll, "ctrl+a")
	k.Bind(OpDeselectAll, "ctrl+d")
	k.Bind(OpVisualSelect, "v")
	k.Bind(OpVisualDeselect, "V")

	k.Bind(OpSortColumnFocusNext, "tab")
	k.Bind(OpSortColumnFocusPrev, "shift+tab")
	k.Bind(OpSortToggleReverse, "s")
	k.Bind(OpSortCycleMode, "S")

	k.Bind(OpFilterPrompt, "f")
	k.Bind(OpSearchPrompt, "/")
	k.Bind(OpContinueSearchForward, "n")
	k.Bind(OpContinueSearchBackward, "N")

	k.Bind(OpSettingsPrompt, ":")
	k.Bind(OpSettingsChooser, "ctrl+s")
	k.Bind(OpOptionsPrompt, "o")
	k.Bind(OpOptionsChooser, "O")
	k.Bind(OpPipePrompt, "|")

	k.Bind(OpEditCell, "e", "enter")
	k.Bind(OpPaste, "p")
	k.Bind(OpCopyDialog, "y")
	k.Bind(OpSaveDialog, "ctrl+w")
	k.Bind(OpLoadDialog, "ctrl+o")

	k.Bind(OpModeCycle, "m")
	k.Bind(OpHelp, "?")
	k.Bind(OpRefresh, "r")
	k.Bind(OpRedraw, "ctrl+l")
	k.Bind(OpCancel, "esc")
	k.Bind(OpExit, "q")
	k.Bind(OpFullExit, "ctrl+c")

	k.Bind(OpDeleteRow, "d")
	k.Bind(OpDeleteColumn, "D")
	k.Bind(OpInsertRow, "i")
	k.Bind(OpInsertColumn, "I")

	k.Bind(OpScrollLeft, "<")
	k.Bind(OpScrollRight, ">")
	k.Bind(OpScrollFarRight, "$")
	k.Bind(OpColumnHide, "c")

	return k
}

// Modal returns a restricted KeyMap suitable for nested pickers (spec.md
// §9's "modal_mode configuration bundle"): navigation, selection, and
// cancel/accept survive; structural-mutation and persistence operations
// are stripped. cancelIsBack remaps escape to exit instead of cancel when
// the modal has no separate cancel concept of its own (e.g. the help
// viewer).
func Modal(base *KeyMap, cancelIsBack bool) *KeyMap {
	allowed := map[Operation]bool{
		OpCursorUp: true, OpCursorDown: true, OpCursorLeft: true, OpCursorRight: true,
		OpPageUp: true, OpPageDown: true, OpGotoTop: true, OpGotoBottom: true,
		OpToggleSelect: true, OpSearchPrompt: true,
		OpContinueSearchForward: true, OpContinueSearchBackward: true,
		OpHelp: true, OpRedraw: true, OpCancel: true, OpExit: true, OpFullExit: true,
		OpScrollLeft: true, OpScrollRight: true, OpScrollFarRight: true,
	}
	m := New()
	for op, set := range base.bindings {
		if !allowed[op] {
			continue
		}
		keys := make([]string, 0, len(set))
		for key := range set {
			keys = append(keys, key)
		}
		m.Bind(op, keys...)
	}
	if cancelIsBack {
		m.Remap("esc", "q")
	}
	return m
}
