package tui

import (
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grimandgreedy/listpick/internal/engine"
	"github.com/grimandgreedy/listpick/internal/format"
	"github.com/grimandgreedy/listpick/internal/input"
	"github.com/grimandgreedy/listpick/internal/ioports"
	"github.com/grimandgreedy/listpick/internal/keymap"
)

// Prompt identifies which single-line prompt, if any, currently owns the
// embedded input field, per spec.md §4.6.1.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptFilter
	PromptSearch
	PromptSettings
	PromptOptions
	PromptPipe
	PromptEditCell
	PromptSaveDialog
	PromptLoadDialog
)

// pendingConfirm holds a destructive action awaiting a y/n/esc answer
// from RenderConfirmDialog, generalising the teacher's delete-confirm
// flow to rows and columns alike (spec.md §4.4).
type pendingConfirm struct {
	title   string
	warning string
	items   []string
	apply   func(a *App)
}

// App is the root Bubble Tea model for the picker. One App wraps one
// engine.State plus the layout/prompt/refresh bookkeeping the teacher's
// App kept for its ES connection. Nested pickers (help, chooser,
// notification, infobox) are Modal values held in the modal field, which
// receives keys while it is set.
type App struct {
	Title string

	state    *engine.State
	settings *engine.Settings
	config   engine.Config
	keys     *keymap.KeyMap

	clipboard  ioports.ClipboardPort
	spawn      ioports.SpawnPort
	filePicker ioports.FilePickerPort

	width, height int
	viewport      engine.Viewport

	prompt       Prompt
	field        *input.Field
	filterHist   []string
	searchHist   []string
	optionsHist  []string
	settingsHist []string
	pipeHist     []string
	editHist     []string

	confirm *pendingConfirm

	footer Footer

	refreshGen  int
	footerGen   int
	lastRefresh time.Time
	refreshErr  error

	statusMsg string
	modal     *Modal

	quitting bool
}

// NewApp constructs an App from an already-built engine.State.
func NewApp(title string, state *engine.State, cfg engine.Config) *App {
	return &App{
		Title:      title,
		state:      state,
		settings:   engine.NewSettings(),
		config:     cfg,
		keys:       keymap.Default(),
		clipboard:  ioports.SystemClipboard{},
		spawn:      ioports.SystemSpawn{},
		filePicker: ioports.EnvFilePicker{FileEnvVar: "LISTPICK_FILE_PICKER", DirEnvVar: "LISTPICK_DIR_PICKER"},
		footer:     StandardFooter{},
	}
}

// Init implements tea.Model. Starts the first auto-refresh tick when
// configured, per spec.md §6.5.
func (app *App) Init() tea.Cmd {
	if app.config.AutoRefresh && app.config.RefreshFunc != nil {
		app.refreshGen++
		return refreshTickCmd(app.refreshTimerInterval(), app.refreshGen)
	}
	return nil
}

func (app *App) refreshTimerInterval() time.Duration {
	if app.config.Timer.RefreshNanos > 0 {
		return time.Duration(app.config.Timer.RefreshNanos)
	}
	return 30 * time.Second
}

// Update implements tea.Model.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		app.recomputeViewport()
		return app, nil

	case RefreshTickMsg:
		if msg.Gen != app.refreshGen {
			return app, nil
		}
		var started tea.Cmd
		if app.config.RefreshFunc != nil && app.state.StartRefresh(app.config.RefreshFunc) {
			started = pollTickCmd(app.refreshGen)
		}
		return app, tea.Batch(refreshTickCmd(app.refreshTimerInterval(), app.refreshGen), started)

	case pollTickMsg:
		if msg.gen != app.refreshGen {
			return app, nil
		}
		done, err := app.state.PollRefresh(app.config.IDColumn)
		if !done {
			return app, pollTickCmd(app.refreshGen)
		}
		return app.Update(RefreshDoneMsg{Err: err})

	case RefreshDoneMsg:
		app.refreshErr = msg.Err
		if msg.Err == nil {
			app.lastRefresh = time.Now()
		}
		app.recomputeViewport()
		return app, nil

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

// pollTickMsg drives a short-interval poll of State.PollRefresh while a
// background RefreshFunc is in flight, distinct from RefreshTickMsg's
// longer auto-refresh schedule interval.
type pollTickMsg struct{ gen int }

func pollTickCmd(gen int) tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if app.confirm != nil {
		return app.handleConfirmKey(msg)
	}
	if app.prompt != PromptNone {
		return app.handlePromptKey(msg)
	}
	if app.modal != nil {
		app.modal.HandleKey(app, msg)
		return app, nil
	}

	op := app.keys.Resolve(msg.String())
	switch op {
	case keymap.OpFullExit:
		app.quitting = true
		return app, tea.Quit
	case keymap.OpExit:
		app.quitting = true
		return app, tea.Quit

	case keymap.OpCursorUp:
		app.moveCursor(-1)
	case keymap.OpCursorDown:
		app.moveCursor(1)
	case keymap.OpCursorLeft:
		app.moveColumn(-1)
	case keymap.OpCursorRight:
		app.moveColumn(1)
	case keymap.OpPageUp:
		app.moveCursor(-app.pageSize())
	case keymap.OpPageDown:
		app.moveCursor(app.pageSize())
	case keymap.OpGotoTop:
		app.setCursor(0)
	case keymap.OpGotoBottom:
		app.setCursor(len(app.state.Indexed) - 1)

	case keymap.OpToggleSelect:
		app.state.Sel.ToggleCurrent(app.state.CursorOriginalIndex(), app.state.Unselectable)
	case keymap.OpSelectAll:
		app.state.Sel.SelectAll(app.state.Indexed, app.state.Unselectable, app.config.MaxSelected)
	case keymap.OpDeselectAll:
		app.state.Sel.DeselectAll()
	case keymap.OpVisualSelect:
		app.state.Sel.ToggleVisualSelect(app.state.Cursor, app.state.Columns.SelectedColumn, app.state.Indexed, app.state.Unselectable)
	case keymap.OpVisualDeselect:
		app.state.Sel.ToggleVisualDeselect(app.state.Cursor, app.state.Columns.SelectedColumn, app.state.Indexed, app.state.Unselectable)

	case keymap.OpSortColumnFocusNext:
		app.moveColumn(1)
	case keymap.OpSortColumnFocusPrev:
		app.moveColumn(-1)
	case keymap.OpSortToggleReverse:
		app.toggleSortReverse()
	case keymap.OpSortCycleMode:
		app.cycleSortMode()

	case keymap.OpFilterPrompt:
		app.openPrompt(PromptFilter, "filter: ", app.state.FilterQuery, app.filterHist)
	case keymap.OpSearchPrompt:
		app.openPrompt(PromptSearch, "search: ", app.state.SearchQuery, app.searchHist)
	case keymap.OpContinueSearchForward:
		app.continueSearch(false)
	case keymap.OpContinueSearchBackward:
		app.continueSearch(true)

	case keymap.OpSettingsPrompt:
		app.openPrompt(PromptSettings, "settings: ", "", app.settingsHist)
	case keymap.OpSettingsChooser:
		app.openSettingsChooser()
	case keymap.OpOptionsPrompt:
		app.openPrompt(PromptOptions, "opts: ", "", app.optionsHist)
	case keymap.OpOptionsChooser:
		app.openOptionsChooser()
	case keymap.OpPipePrompt:
		app.openPrompt(PromptPipe, "pipe: ", "", app.pipeHist)

	case keymap.OpEditCell:
		app.openEditCell()
	case keymap.OpPaste:
		app.pasteIntoCell()
	case keymap.OpCopyDialog:
		app.copySelectionToClipboard()
	case keymap.OpSaveDialog:
		app.openPrompt(PromptSaveDialog, "save to: ", app.settings.WorkingDir, nil)
	case keymap.OpLoadDialog:
		app.openPrompt(PromptLoadDialog, "load from: ", app.settings.WorkingDir, nil)

	case keymap.OpModeCycle:
		app.cycleMode()
	case keymap.OpHelp:
		app.modal = newHelpModal(app.keys, app.width)
	case keymap.OpRefresh:
		if app.config.RefreshFunc != nil && app.state.StartRefresh(app.config.RefreshFunc) {
			return app, pollTickCmd(app.refreshGen)
		}
	case keymap.OpRedraw:
		return app, tea.ClearScreen
	case keymap.OpCancel:
		app.state.Sel.Cancel()

	case keymap.OpDeleteRow:
		app.confirmDeleteRow()
	case keymap.OpDeleteColumn:
		app.confirmDeleteColumn()
	case keymap.OpInsertRow:
		app.state.InsertRowAt(app.state.Cursor)
		app.recomputeViewport()
	case keymap.OpInsertColumn:
		app.state.InsertColumnAt(app.state.Columns.SelectedColumn)
		app.recomputeViewport()

	case keymap.OpScrollLeft:
		app.viewport.LeftmostChar = engine.ScrollToColumn(app.viewport.LeftmostChar, app.viewport.ColumnWidths, app.state.Columns.SelectedColumn-1, app.width)
	case keymap.OpScrollRight:
		app.viewport.LeftmostChar = engine.ScrollToColumn(app.viewport.LeftmostChar, app.viewport.ColumnWidths, app.state.Columns.SelectedColumn+1, app.width)
	case keymap.OpScrollFarRight:
		app.viewport.LeftmostChar = engine.ScrollFarRight(app.viewport.ColumnWidths, app.width)
	case keymap.OpColumnHide:
		app.toggleColumnHidden()
	}

	return app, nil
}

func (app *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		c := app.confirm
		app.confirm = nil
		c.apply(app)
		app.recomputeViewport()
	case "n", "esc":
		app.confirm = nil
	}
	return app, nil
}

func (app *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, res := app.field.Update(msg)
	if !res.Done {
		return app, cmd
	}

	prompt := app.prompt
	app.prompt = PromptNone
	if !res.Accepted {
		app.field = nil
		return app, nil
	}

	text := res.Text
	switch prompt {
	case PromptFilter:
		app.filterHist = app.field.History()
		app.state.FilterQuery = text
		app.state.RebuildIndexed()
	case PromptSearch:
		app.searchHist = app.field.History()
		app.state.SearchQuery = text
		app.runSearch(false)
	case PromptSettings:
		app.settingsHist = app.field.History()
		engine.ApplySettings(app.state, app.settings, text)
		app.footer = footerForSettings(app.settings)
	case PromptOptions:
		app.optionsHist = app.field.History()
		app.applyOptionsCommand(text)
	case PromptPipe:
		app.pipeHist = app.field.History()
		app.pipeSelection(text)
	case PromptEditCell:
		app.editHist = app.field.History()
		app.commitCellEdit(text)
	case PromptSaveDialog:
		app.saveToPath(text)
	case PromptLoadDialog:
		app.loadFromPath(text)
	}

	app.field = nil
	app.recomputeViewport()
	return app, nil
}

// View implements tea.Model.
func (app *App) View() string {
	if app.quitting {
		return ""
	}
	if app.modal != nil {
		return app.modal.Render(app.width)
	}

	var parts []string

	headerHeight := 0
	if app.settings.ShowHeader {
		h := RenderHeader(app.headerState())
		parts = append(parts, h)
		headerHeight = lipgloss.Height(h)
	}

	if app.confirm != nil {
		footerHeight := 0
		if app.settings.ShowFooter {
			footerHeight = app.footer.Height(app.footerState())
		}
		parts = append(parts, RenderConfirmDialog(ConfirmDialogState{
			Title:        app.confirm.title,
			Warning:      app.confirm.warning,
			Items:        app.confirm.items,
			Width:        app.width,
			Height:       app.height,
			HeaderHeight: headerHeight,
			FooterHeight: footerHeight,
		}))
		return strings.Join(parts, "\n")
	}

	parts = append(parts, Table(app.state, app.viewport, TableParams{
		Focused:    true,
		CellCursor: app.settings.CellCursor,
	}))

	if app.prompt != PromptNone && app.field != nil {
		parts = append(parts, app.field.View())
	}

	if app.settings.ShowFooter {
		fs := app.footerState()
		parts = append(parts, app.footer.Render(fs))
	}

	if app.statusMsg != "" {
		parts = append(parts, StyleDim.Render(app.statusMsg))
	}

	return strings.Join(parts, "\n")
}

func (app *App) headerState() HeaderState {
	var mode string
	if app.state.ModeIndex >= 0 && app.state.ModeIndex < len(app.state.Modes) {
		mode = app.state.Modes[app.state.ModeIndex].Name
	}
	return HeaderState{
		Title:           app.Title,
		Mode:            mode,
		Refreshing:      app.state.Refreshing,
		AutoRefresh:     app.settings.AutoRefresh,
		LastRefresh:     app.lastRefresh,
		RefreshInterval: app.refreshTimerInterval(),
		RefreshErr:      app.refreshErr,
		Width:           app.width,
	}
}

func (app *App) footerState() FooterState {
	return FooterState{
		FilterQuery:  app.state.FilterQuery,
		SearchQuery:  app.state.SearchQuery,
		SearchIndex:  app.state.SearchIndex,
		SearchCount:  app.state.SearchCount,
		SortColumn:   app.state.Columns.SortColumn,
		SortMethod:   app.state.Columns.SortMethod[app.state.Columns.SortColumn],
		SortReverse:  app.state.Columns.SortReverse[app.state.Columns.SortColumn],
		Cursor:       app.state.Cursor,
		Total:        len(app.state.Indexed),
		Selected:     len(app.state.Sel.SelectedIndices()),
		Paginate:     app.settings.Paginate,
		ItemsPerPage: app.viewport.ItemsPerPage,
		Selecting:    app.state.Sel.Visual.Mode == engine.VisualSelecting,
		Deselecting:  app.state.Sel.Visual.Mode == engine.VisualDeselecting,
		Width:        app.width,
	}
}

func footerForSettings(s *engine.Settings) Footer {
	return StandardFooter{}
}

func (app *App) pageSize() int {
	if app.viewport.ItemsPerPage > 0 {
		return app.viewport.ItemsPerPage
	}
	return 1
}

func (app *App) recomputeViewport() {
	headerHeight := 0
	if app.settings.ShowHeader {
		headerHeight = 1
	}
	footerHeight := 0
	if app.settings.ShowFooter {
		footerHeight = app.footer.Height(app.footerState())
	}
	app.viewport = engine.ComputeViewport(app.state.Indexed, app.state.Header, app.state.Cursor, app.viewport, engine.LayoutParams{
		Height:         app.height,
		Width:          app.width,
		HeaderHeight:   headerHeight,
		FooterHeight:   footerHeight,
		MaxColumnWidth: app.config.MaxColumnWidth,
		NumberColumns:  app.settings.NumberRows,
		Paginate:       app.settings.Paginate,
	})
}

func (app *App) setCursor(c int) {
	if c < 0 {
		c = 0
	}
	if c >= len(app.state.Indexed) {
		c = len(app.state.Indexed) - 1
	}
	if c < 0 {
		c = 0
	}
	app.state.Cursor = c
	app.recomputeViewport()
}

func (app *App) moveCursor(delta int) {
	app.setCursor(app.state.Cursor + delta)
}

func (app *App) moveColumn(delta int) {
	cm := app.state.Columns
	order := displayOrder(app.state)
	if len(order) == 0 {
		return
	}
	pos := 0
	for i, col := range order {
		if col == cm.SelectedColumn {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(order) {
		pos = len(order) - 1
	}
	cm.SelectedColumn = order[pos]
	app.viewport.LeftmostChar = engine.ScrollToColumn(app.viewport.LeftmostChar, app.viewport.ColumnWidths, pos, app.width)
}

func (app *App) toggleSortReverse() {
	col := app.state.Columns.SortColumn
	app.state.Columns.SortReverse[col] = !app.state.Columns.SortReverse[col]
	app.state.RebuildIndexed()
}

func (app *App) cycleSortMode() {
	col := app.state.Columns.SortColumn
	app.state.Columns.SortMethod[col] = (app.state.Columns.SortMethod[col] + 1) % (engine.SortSize + 1)
	app.state.RebuildIndexed()
}

func (app *App) toggleColumnHidden() {
	col := app.state.Columns.SelectedColumn
	if app.state.Columns.Hidden == nil {
		app.state.Columns.Hidden = make(map[int]bool)
	}
	app.state.Columns.Hidden[col] = !app.state.Columns.Hidden[col]
}

func (app *App) openPrompt(p Prompt, placeholder, value string, history []string) {
	f := input.New(placeholder, 4096)
	f.SetHistory(history)
	f.SetValue(value)
	app.prompt = p
	app.field = f
}

// settingsChooserTokens seeds a known set of single-word settings tokens
// ahead of anything already typed at the plain settings prompt, so the
// chooser (OpSettingsChooser) isn't empty the first time it opens.
var settingsChooserTokens = []string{
	"ct", "cc", "cv", "footer", "header", "cell", "rh", "modes", "!r", "!h",
}

// openSettingsChooser opens a chooser Modal over previously entered
// settings commands plus a seed list of known tokens, applying the chosen
// entry the same way PromptSettings does. This is OpSettingsChooser's
// distinct behaviour from OpSettingsPrompt's blank free-text prompt.
func (app *App) openSettingsChooser() {
	options := append(append([]string{}, settingsChooserTokens...), app.settingsHist...)
	app.modal = newChooserModal(app.keys, "Settings", options, func(a *App, choice string) {
		a.settingsHist = appendHistory(a.settingsHist, choice)
		engine.ApplySettings(a.state, a.settings, choice)
		a.footer = footerForSettings(a.settings)
		a.recomputeViewport()
	})
}

// openOptionsChooser opens a chooser Modal over previously entered options
// commands (there is no fixed token set for options, since OptionFuncs are
// caller-registered per column), applying the chosen entry the same way
// PromptOptions does.
func (app *App) openOptionsChooser() {
	app.modal = newChooserModal(app.keys, "Options", app.optionsHist, func(a *App, choice string) {
		a.optionsHist = appendHistory(a.optionsHist, choice)
		a.applyOptionsCommand(choice)
		a.recomputeViewport()
	})
}

func (app *App) runSearch(reverse bool) {
	res := engine.Search(app.state.Indexed, app.state.SearchQuery, app.state.Cursor, reverse, app.state.Unselectable, app.state.Highlights)
	app.state.Highlights = res.Highlights
	app.state.SearchCount = res.MatchCount
	if res.Found {
		app.state.Cursor = res.Cursor
		app.state.SearchIndex = res.MatchOrdinal
	}
	app.recomputeViewport()
}

func (app *App) continueSearch(reverse bool) {
	if app.state.SearchQuery == "" {
		return
	}
	res := engine.ContinueSearch(app.state.Indexed, app.state.SearchQuery, app.state.Cursor, reverse, app.state.Unselectable, app.state.Highlights)
	app.state.Highlights = res.Highlights
	app.state.SearchCount = res.MatchCount
	if res.Found {
		app.state.Cursor = res.Cursor
		app.state.SearchIndex = res.MatchOrdinal
	}
	app.recomputeViewport()
}

func (app *App) cycleMode() {
	if len(app.state.Modes) == 0 {
		return
	}
	app.state.ModeIndex = (app.state.ModeIndex + 1) % len(app.state.Modes)
	app.state.FilterQuery = app.state.Modes[app.state.ModeIndex].Filter
	app.state.RebuildIndexed()
}

func (app *App) applyOptionsCommand(text string) {
	fn, ok := app.config.OptionFuncs[app.state.Columns.SelectedColumn]
	if !ok {
		return
	}
	originalIndex := app.state.CursorOriginalIndex()
	if originalIndex < 0 {
		return
	}
	accepted, value := fn(engine.OptionContext{RowIndex: originalIndex, Row: app.state.Rows[originalIndex]})
	if accepted {
		app.state.Rows[originalIndex][app.state.Columns.SelectedColumn] = value
		app.state.RebuildIndexed()
	}
	_ = text
}

func (app *App) pipeSelection(command string) {
	if command == "" || app.spawn == nil {
		return
	}
	if err := app.spawn.Spawn("sh", "-c", command); err != nil {
		app.notify("Pipe failed", err.Error())
	}
}

func (app *App) openEditCell() {
	originalIndex := app.state.CursorOriginalIndex()
	if originalIndex < 0 {
		return
	}
	col := app.state.Columns.SelectedColumn
	if !app.state.Columns.Editable[col] {
		return
	}
	current := ""
	if col < len(app.state.Rows[originalIndex]) {
		current = app.state.Rows[originalIndex][col]
	}
	f := input.New("value: ", 4096)
	f.SetHistory(app.editHist)
	f.SetValue(current)
	f.SetSources(input.FormulaSource{Names: engine.FunctionNames})
	app.prompt = PromptEditCell
	app.field = f
}

func (app *App) commitCellEdit(text string) {
	originalIndex := app.state.CursorOriginalIndex()
	if originalIndex < 0 {
		return
	}
	col := app.state.Columns.SelectedColumn
	if strings.HasPrefix(text, engine.FormulaPrefix) {
		result, err := engine.EvalFormula(strings.TrimPrefix(text, engine.FormulaPrefix), app.state.Header, app.state.Rows[originalIndex])
		if err == nil {
			text = result
		}
	}
	if col < len(app.state.Rows[originalIndex]) {
		app.state.Rows[originalIndex][col] = text
	}
	app.state.RebuildIndexed()
}

func (app *App) pasteIntoCell() {
	if app.clipboard == nil {
		return
	}
	text, err := app.clipboard.Paste()
	if err != nil {
		app.notify("Paste failed", err.Error())
		return
	}
	originalIndex := app.state.CursorOriginalIndex()
	if originalIndex < 0 {
		return
	}
	col := app.state.Columns.SelectedColumn
	if col < len(app.state.Rows[originalIndex]) {
		app.state.Rows[originalIndex][col] = text
		app.state.RebuildIndexed()
	}
}

func (app *App) copySelectionToClipboard() {
	if app.clipboard == nil {
		return
	}
	indices := app.state.Sel.SelectedIndices()
	var lines []string
	if len(indices) == 0 {
		if oi := app.state.CursorOriginalIndex(); oi >= 0 {
			lines = append(lines, strings.Join(app.state.Rows[oi], "\t"))
		}
	} else {
		for _, oi := range indices {
			if oi < len(app.state.Rows) {
				lines = append(lines, strings.Join(app.state.Rows[oi], "\t"))
			}
		}
	}
	if err := app.clipboard.Copy(strings.Join(lines, "\n")); err != nil {
		app.notify("Copy failed", err.Error())
		return
	}
	app.statusMsg = "copied"
}

// notify opens a dismiss-on-any-key notification Modal, the nested-Picker
// surface spec.md's I/O error handling routes through instead of crashing
// or silently dropping the error.
func (app *App) notify(title, message string) {
	app.modal = newNotificationModal(title, message)
}

func (app *App) confirmDeleteRow() {
	originalIndex := app.state.CursorOriginalIndex()
	if originalIndex < 0 {
		return
	}
	row := app.state.Rows[originalIndex]
	app.confirm = &pendingConfirm{
		title:   "Delete row",
		warning: "This action cannot be undone.",
		items:   []string{strings.Join(row, " | ")},
		apply: func(a *App) {
			a.state.DeleteRow(originalIndex)
		},
	}
}

func (app *App) confirmDeleteColumn() {
	col := app.state.Columns.SelectedColumn
	if col < 0 || col >= len(app.state.Header) {
		return
	}
	app.confirm = &pendingConfirm{
		title:   "Delete column",
		warning: "This action cannot be undone.",
		items:   []string{app.state.Header[col]},
		apply: func(a *App) {
			a.state.DeleteColumn(col)
		},
	}
}

// saveToPath writes the current state to path, falling back to the
// external file-picker port (spec.md §6.6) when the prompt was accepted
// empty.
func (app *App) saveToPath(path string) {
	if path == "" && app.filePicker != nil {
		picked, err := app.filePicker.PickFile()
		if err != nil || picked == "" {
			return
		}
		path = picked
	}
	if path == "" {
		return
	}
	hist := engine.HistoryBuffers{
		Filter:   app.filterHist,
		Search:   app.searchHist,
		Options:  app.optionsHist,
		Settings: app.settingsHist,
		Pipe:     app.pipeHist,
		Edit:     app.editHist,
	}
	if err := engine.SaveSnapshot(app.state, app.settings, hist, path); err != nil {
		app.notify("Save failed", err.Error())
		return
	}
	app.statusMsg = "saved to " + path
	if info, err := os.Stat(path); err == nil {
		app.statusMsg += " (" + format.FormatBytes(info.Size()) + ")"
	}
}

// loadFromPath is saveToPath's counterpart for OpLoadDialog.
func (app *App) loadFromPath(path string) {
	if path == "" && app.filePicker != nil {
		picked, err := app.filePicker.PickFile()
		if err != nil || picked == "" {
			return
		}
		path = picked
	}
	if path == "" {
		return
	}
	loaded, settings, hist, err := engine.LoadSnapshot(path)
	if err != nil {
		app.notify("Load failed", err.Error())
		return
	}
	app.state = loaded
	app.settings = settings
	app.filterHist = hist.Filter
	app.searchHist = hist.Search
	app.optionsHist = hist.Options
	app.settingsHist = hist.Settings
	app.pipeHist = hist.Pipe
	app.editHist = hist.Edit
	app.statusMsg = "loaded " + path
}

// LastError returns the most recent refresh error, or nil.
func (app *App) LastError() error {
	return app.refreshErr
}

// refreshTickCmd schedules the next auto-refresh after duration d,
// embedding gen so stale ticks from a superseded schedule are dropped.
func refreshTickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t, Gen: gen}
	})
}
