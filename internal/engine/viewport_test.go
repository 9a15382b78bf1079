package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateBoundsFixedPages(t *testing.T) {
	start, end := paginateBounds(7, 20, 5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 10, end)
}

func TestPaginateBoundsClampsFinalPage(t *testing.T) {
	start, end := paginateBounds(18, 20, 5)
	assert.Equal(t, 15, start)
	assert.Equal(t, 20, end)
}

func TestScrolloffBoundsKeepsCursorCentered(t *testing.T) {
	start, end := scrolloffBounds(50, 1000, 10)
	assert.Equal(t, 45, start)
	assert.Equal(t, 55, end)
}

func TestScrolloffBoundsClampsAtTop(t *testing.T) {
	start, end := scrolloffBounds(2, 1000, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
}

func TestScrolloffBoundsClampsAtBottom(t *testing.T) {
	start, end := scrolloffBounds(998, 1000, 10)
	assert.Equal(t, 990, start)
	assert.Equal(t, 1000, end)
}

func TestScrolloffBoundsShowsEverythingWhenViewFits(t *testing.T) {
	start, end := scrolloffBounds(3, 8, 20)
	assert.Equal(t, 0, start)
	assert.Equal(t, 8, end)
}

func TestComputeViewportClampsItemsPerPageToOne(t *testing.T) {
	view := viewOf("a", "b")
	vp := ComputeViewport(view, []string{"col"}, 0, Viewport{}, LayoutParams{Height: 1, HeaderHeight: 2, FooterHeight: 2})
	assert.Equal(t, 1, vp.ItemsPerPage)
}

func TestScrollToColumnBringsColumnIntoView(t *testing.T) {
	widths := []int{10, 10, 10, 10}
	// Column 3 spans [33, 43) (each preceding column contributes width+1
	// for its separator) and the viewport is 15 wide starting at 0:
	// scrolling right should advance just enough to show its right edge.
	got := ScrollToColumn(0, widths, 3, 15)
	assert.Equal(t, 43-15, got)

	// Column 0 is left of a viewport that starts at 20: scroll left to 0.
	got = ScrollToColumn(20, widths, 0, 15)
	assert.Equal(t, 0, got)
}

func TestScrollFarRightShowsLastColumn(t *testing.T) {
	widths := []int{10, 10, 10}
	got := ScrollFarRight(widths, 15)
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	assert.Equal(t, total-15, got)
}

func TestHorizontalScrollClampsToRange(t *testing.T) {
	widths := []int{10, 10, 10}
	assert.Equal(t, 0, horizontalScroll(-5, widths, 100))
	assert.Equal(t, 0, horizontalScroll(5, widths, 100), "content narrower than width never scrolls")
}
