package tui

import (
	"fmt"
	"strings"

	"github.com/grimandgreedy/listpick/internal/engine"
	"github.com/grimandgreedy/listpick/internal/format"
)

// FooterState is the read-only snapshot a Footer renders from, grounded
// on the original's Footer.get_state callback contract
// (src/listpick/ui/footer.py).
type FooterState struct {
	FilterQuery  string
	SearchQuery  string
	SearchIndex  int
	SearchCount  int
	UserOpts     string
	SortColumn   int
	SortMethod   engine.SortMode
	SortReverse  bool
	FooterString string
	Cursor       int
	Total        int
	Selected     int
	Paginate     bool
	ItemsPerPage int
	Selecting    bool
	Deselecting  bool
	Width        int
}

// Footer renders the bottom status strip. Three implementations trade
// off height for information density, per the original's
// StandardFooter/CompactFooter/NoFooter trio.
type Footer interface {
	Height(s FooterState) int
	Render(s FooterState) string
}

// StandardFooter is the 3-line footer: search/filter/opts prompts on
// their own lines, sort info and cursor/selection counters on the right.
// Grounded on footer.py's StandardFooter.draw.
type StandardFooter struct{}

func (StandardFooter) Height(FooterState) int { return 3 }

func (StandardFooter) Render(s FooterState) string {
	w := s.Width
	if w <= 0 {
		w = 80
	}
	lines := make([]string, 3)

	if s.SearchQuery != "" {
		lines[0] = fmt.Sprintf(" Search: %s [%d/%d] ", s.SearchQuery, s.SearchIndex, s.SearchCount)
	}
	if s.FilterQuery != "" {
		lines[1] = fmt.Sprintf(" Filter: %s ", s.FilterQuery)
	}
	if s.UserOpts != "" {
		lines[2] = fmt.Sprintf(" Opts: %s ", s.UserOpts)
	}

	sortDisp := sortDisplay(s)
	lines[1] = padRight(lines[1], w-35) + fmt.Sprintf("%34s", sortDisp)

	right := cursorDisplay(s)
	if s.FooterString != "" {
		lines[2] = padRight(lines[2], w-len(s.FooterString)-3) + " " + s.FooterString + " "
	} else {
		lines[2] = padRight(lines[2], w-35) + fmt.Sprintf("%33s ", selectModeDisplay(s))
	}
	lines[0] = padRight(lines[0], w-35) + fmt.Sprintf("%33s ", right)

	for i := range lines {
		lines[i] = StyleDim.Width(w).Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

// CompactFooter collapses to 1-3 lines depending on which of
// search/filter/opts/footer-string are active, per footer.py's
// CompactFooter.draw height logic.
type CompactFooter struct{}

func (CompactFooter) Height(s FooterState) int {
	switch {
	case s.SearchQuery != "":
		return 3
	case s.FilterQuery != "":
		return 2
	case s.FooterString != "":
		return 2
	default:
		return 1
	}
}

func (CompactFooter) Render(s FooterState) string {
	w := s.Width
	if w <= 0 {
		w = 80
	}
	h := CompactFooter{}.Height(s)
	lines := make([]string, h)

	if s.UserOpts != "" && h >= 1 {
		lines[h-1] = fmt.Sprintf(" Opts: %s ", s.UserOpts)
	}
	if s.FilterQuery != "" && h >= 2 {
		lines[h-2] = fmt.Sprintf(" Filter: %s ", s.FilterQuery)
	}
	if s.SearchQuery != "" && h >= 3 {
		lines[h-3] = fmt.Sprintf(" Search: %s [%d/%d] ", s.SearchQuery, s.SearchIndex, s.SearchCount)
	}

	right := cursorDisplay(s)
	lines[h-1] = padRight(lines[h-1], w-40) + fmt.Sprintf("%39s", right)

	for i := range lines {
		lines[i] = StyleDim.Width(w).Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

// NoFooter occupies zero lines except while a search/filter/opts prompt
// is active, matching footer.py's NoFooter — disabling the footer never
// hides an in-progress prompt.
type NoFooter struct{}

func (NoFooter) Height(s FooterState) int {
	switch {
	case s.SearchQuery != "":
		return 3
	case s.FilterQuery != "":
		return 2
	case s.UserOpts != "":
		return 1
	default:
		return 0
	}
}

func (NoFooter) Render(s FooterState) string {
	h := NoFooter{}.Height(s)
	if h == 0 {
		return ""
	}
	w := s.Width
	if w <= 0 {
		w = 80
	}
	lines := make([]string, h)
	if s.UserOpts != "" && h >= 1 {
		lines[h-1] = fmt.Sprintf(" Opts: %s ", s.UserOpts)
	}
	if s.FilterQuery != "" && h >= 2 {
		lines[h-2] = fmt.Sprintf(" Filter: %s ", s.FilterQuery)
	}
	if s.SearchQuery != "" && h >= 3 {
		lines[h-3] = fmt.Sprintf(" Search: %s [%d/%d] ", s.SearchQuery, s.SearchIndex, s.SearchCount)
	}
	for i := range lines {
		lines[i] = StyleDim.Width(w).Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

func sortDisplay(s FooterState) string {
	dir := "▲"
	if s.SortReverse {
		dir = "▼"
	}
	return fmt.Sprintf(" Sort: (%d, %s, %s) ", s.SortColumn, s.SortMethod, dir)
}

func selectModeDisplay(s FooterState) string {
	switch {
	case s.Selecting:
		return "Visual Selection"
	case s.Deselecting:
		return "Visual deselection"
	default:
		return "Cursor"
	}
}

// cursorDisplay formats the cursor/total/selected counters, using
// format.FormatNumber's comma grouping so a large row count (a wide CSV,
// a refreshed index dump) stays readable at a glance.
func cursorDisplay(s FooterState) string {
	total := format.FormatNumber(int64(s.Total))
	cursor := format.FormatNumber(int64(s.Cursor + 1))
	selected := format.FormatNumber(int64(s.Selected))
	if s.Paginate && s.ItemsPerPage > 0 {
		page := s.Cursor/s.ItemsPerPage + 1
		pages := (s.Total + s.ItemsPerPage - 1) / s.ItemsPerPage
		return fmt.Sprintf(" %s/%s  Page %d/%d  Selected %s", cursor, total, page, pages, selected)
	}
	return fmt.Sprintf(" %s/%s  |  Selected %s", cursor, total, selected)
}

func padRight(s string, width int) string {
	if width < 0 {
		width = 0
	}
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
