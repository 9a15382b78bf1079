package engine

import "github.com/mattn/go-runewidth"

// Viewport is the computed geometry for one frame: page bounds, per-column
// display widths, and the horizontal scroll offset. It is recomputed every
// time the terminal size, cursor, indexed view, or column metadata changes,
// per spec.md §4.5.
type Viewport struct {
	StartIndex    int // first visible row, inclusive
	EndIndex      int // last visible row, exclusive
	ItemsPerPage  int
	ColumnWidths  []int
	LeftmostChar  int
	NumberColumns bool
}

// LayoutParams bundles the inputs to ComputeViewport that do not live on
// State itself (terminal geometry and display toggles), per spec.md §4.5.
type LayoutParams struct {
	Height         int
	Width          int
	HeaderHeight   int
	FooterHeight   int
	MaxColumnWidth int
	NumberColumns  bool
	Paginate       bool
}

// ComputeViewport derives a Viewport for view/header under cursor and the
// previous viewport (for horizontal-scroll continuity), following the
// scrolloff rule of spec.md §4.5: the cursor stays within
// items_per_page/2 of the page edges except when the view clamps at an
// end of the data.
func ComputeViewport(view IndexedView, header []string, cursor int, prev Viewport, p LayoutParams) Viewport {
	vp := Viewport{NumberColumns: p.NumberColumns}

	vp.ItemsPerPage = p.Height - p.HeaderHeight - p.FooterHeight
	if vp.ItemsPerPage < 1 {
		vp.ItemsPerPage = 1
	}

	n := len(view)
	if p.Paginate {
		vp.StartIndex, vp.EndIndex = paginateBounds(cursor, n, vp.ItemsPerPage)
	} else {
		vp.StartIndex, vp.EndIndex = scrolloffBounds(cursor, n, vp.ItemsPerPage)
	}

	vp.ColumnWidths = columnWidths(view, header, vp.StartIndex, vp.EndIndex, p.MaxColumnWidth, p.NumberColumns, n)
	vp.LeftmostChar = horizontalScroll(prev.LeftmostChar, vp.ColumnWidths, p.Width)

	return vp
}

// paginateBounds returns fixed itemsPerPage-sized blocks: the page
// containing cursor, clamped so it never starts past the end of n rows.
func paginateBounds(cursor, n, itemsPerPage int) (start, end int) {
	if n == 0 {
		return 0, 0
	}
	page := cursor / itemsPerPage
	start = page * itemsPerPage
	end = start + itemsPerPage
	if end > n {
		end = n
	}
	return start, end
}

// scrolloffBounds keeps the cursor within itemsPerPage/2 of the window
// edges, clamping at the top and bottom of the data.
func scrolloffBounds(cursor, n, itemsPerPage int) (start, end int) {
	if n <= itemsPerPage {
		return 0, n
	}
	half := itemsPerPage / 2
	start = cursor - half
	if start < 0 {
		start = 0
	}
	end = start + itemsPerPage
	if end > n {
		end = n
		start = end - itemsPerPage
	}
	return start, end
}

// columnWidths computes the display width of each column as the max
// wcswidth over the visible page's cells (and the header, which is always
// visible), clipped to maxColumnWidth. When numberColumns is set, an
// implicit leading "row number" column is prepended sized to fit the
// largest row number in the full (unfiltered-page) view.
func columnWidths(view IndexedView, header []string, start, end, maxColumnWidth int, numberColumns bool, totalRows int) []int {
	arity := len(header)
	widths := make([]int, arity)
	for c := 0; c < arity; c++ {
		widths[c] = runewidth.StringWidth(header[c])
	}
	for i := start; i < end && i < len(view); i++ {
		row := view[i].Row
		for c := 0; c < arity && c < len(row); c++ {
			w := runewidth.StringWidth(row[c])
			if w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c := range widths {
		if maxColumnWidth > 0 && widths[c] > maxColumnWidth {
			widths[c] = maxColumnWidth
		}
	}
	if numberColumns {
		numWidth := runewidth.StringWidth(itoaWidth(totalRows))
		widths = append([]int{numWidth}, widths...)
	}
	return widths
}

func itoaWidth(n int) string {
	if n <= 0 {
		return "0"
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	out := make([]byte, digits)
	for i := range out {
		out[i] = '9'
	}
	return string(out)
}

// horizontalScroll clamps the previous leftmost character offset into
// [0, maxScroll], where maxScroll is the total column width (one
// separator per column included) minus width. It does not look at which
// column is selected.
func horizontalScroll(prevLeftmost int, widths []int, width int) int {
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	maxScroll := total - width
	if maxScroll < 0 {
		maxScroll = 0
	}
	if prevLeftmost > maxScroll {
		return maxScroll
	}
	if prevLeftmost < 0 {
		return 0
	}
	return prevLeftmost
}

// ScrollToColumn advances leftmostChar just enough to bring the column at
// selectedCol (0-indexed into widths) fully into view, per spec.md §4.5's
// "advanced when selected_column passes the visible band".
func ScrollToColumn(leftmostChar int, widths []int, selectedCol, width int) int {
	colStart := 0
	for c := 0; c < selectedCol && c < len(widths); c++ {
		colStart += widths[c] + 1
	}
	colEnd := colStart
	if selectedCol >= 0 && selectedCol < len(widths) {
		colEnd += widths[selectedCol]
	}

	if colStart < leftmostChar {
		return colStart
	}
	if colEnd > leftmostChar+width {
		return colEnd - width
	}
	return leftmostChar
}

// ScrollFarRight sets leftmostChar so the last column is fully visible,
// per spec.md §4.5's scroll_far_right.
func ScrollFarRight(widths []int, width int) int {
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	scroll := total - width
	if scroll < 0 {
		return 0
	}
	return scroll
}
