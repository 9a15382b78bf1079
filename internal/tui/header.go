package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderState is the read-only snapshot RenderHeader draws from: the
// picker's title, its active user-defined mode (if any), and the
// background-refresh bookkeeping from spec.md §6.5's refresh protocol.
// Generalises the teacher's App fields (cluster name, connState,
// lastUpdated, pollInterval) into a connection-agnostic title bar.
type HeaderState struct {
	Title           string
	Mode            string
	Refreshing      bool
	AutoRefresh     bool
	LastRefresh     time.Time
	RefreshInterval time.Duration
	RefreshErr      error
	Width           int
}

// RenderHeader renders the top bar: title on the left, mode/refresh
// status centered, last-refresh timing on the right — the same
// left/center/right layout as the teacher's renderHeader, built from a
// state snapshot instead of *App so internal/tui/app.go only has to
// assemble a HeaderState each frame.
func RenderHeader(s HeaderState) string {
	width := s.Width
	if width <= 0 {
		width = 80
	}

	left := s.Title
	if left == "" {
		left = "listpick"
	}

	var center, right string
	switch {
	case s.RefreshErr != nil:
		errMsg := s.RefreshErr.Error()
		if len(errMsg) > 40 {
			errMsg = errMsg[:40] + "..."
		}
		center = StyleError.Render("● refresh failed  " + errMsg)
		right = StyleError.Render("Press r to retry")
	case s.Refreshing:
		center = StyleYellow.Render("● refreshing")
	case s.Mode != "":
		center = StyleBlue.Render("● " + s.Mode)
	}

	if right == "" {
		switch {
		case !s.LastRefresh.IsZero() && s.AutoRefresh:
			right = StyleDim.Render(fmt.Sprintf("Last: %s  Every: %s",
				s.LastRefresh.Format("15:04:05"), formatDuration(s.RefreshInterval)))
		case !s.LastRefresh.IsZero():
			right = StyleDim.Render("Last: " + s.LastRefresh.Format("15:04:05"))
		}
	}

	innerWidth := width - 2
	leftVW := lipgloss.Width(left)
	centerVW := lipgloss.Width(center)
	rightVW := lipgloss.Width(right)

	spacing := innerWidth - leftVW - centerVW - rightVW
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// formatDuration formats a refresh interval as a compact string, e.g.
// "10s" or "2m".
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
