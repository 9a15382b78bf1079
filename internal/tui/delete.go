package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDialogState is the read-only snapshot RenderConfirmDialog draws
// from: a title, a list of item labels pending a destructive action, and
// the layout heights already consumed by the surrounding header/footer.
// Generalises the teacher's renderDeleteConfirm (which listed index names
// ahead of an irreversible DELETE) into spec.md §4.4's row/column delete
// confirmation, reusable for any "confirm before mutating" prompt.
type ConfirmDialogState struct {
	Title        string
	Warning      string
	Items        []string
	Width        int
	Height       int
	HeaderHeight int
	FooterHeight int
}

// RenderConfirmDialog renders a full-screen confirmation dialog listing
// Items. The caller accounts for header/footer heights via HeaderHeight/
// FooterHeight so the dialog's item list fills exactly the remaining rows.
func RenderConfirmDialog(s ConfirmDialogState) string {
	width := s.Width
	if width <= 0 {
		width = 80
	}
	height := s.Height
	if height <= 0 {
		height = 24
	}

	titleText := s.Title
	if titleText == "" {
		titleText = "Confirm"
	}
	hintText := StyleDim.Render("[y: confirm  n/esc: cancel]")
	hintVW := lipgloss.Width(hintText)
	titleVW := lipgloss.Width(titleText)
	innerWidth := width - 2 // StyleHeader has Padding(0,1) -> 1 char per side
	gap := innerWidth - titleVW - hintVW
	if gap < 1 {
		gap = 1
	}
	titleRow := titleText + strings.Repeat(" ", gap) + hintText
	titleBar := StyleHeader.Width(width).MaxWidth(width).Render(titleRow)
	titleH := lipgloss.Height(titleBar)

	availH := height - s.HeaderHeight - titleH - s.FooterHeight
	if availH < 1 {
		availH = 1
	}

	warning := s.Warning
	if warning == "" {
		warning = "This action cannot be undone."
	}

	// Fixed header and footer lines that must always be visible.
	headerLines := []string{
		"",
		"  " + StyleRed.Bold(true).Render("WARNING: "+warning),
		"",
		fmt.Sprintf("  The following %d item(s) will be removed:", len(s.Items)),
		"",
	}
	footerLines := []string{
		"",
		"  " + StyleYellow.Render("Press y to confirm, n or esc to cancel."),
	}

	// Build the item list respecting available height.
	// footerLines (confirmation prompt) takes priority: trim nameLines first,
	// then headerLines from the bottom if needed. footerLines are never trimmed.
	nameLines := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		nameLines = append(nameLines, "    • "+sanitizeLine(item))
	}

	fLen := len(footerLines)
	hLen := len(headerLines)

	// Space available for item names after reserving header and footer slots.
	nameSlots := availH - hLen - fLen
	if nameSlots < 0 {
		nameSlots = 0
	}

	// Truncate nameLines to fit nameSlots with an overflow indicator.
	displayNames := nameLines
	if len(nameLines) > nameSlots {
		switch {
		case nameSlots == 0:
			displayNames = nil
		case nameSlots == 1:
			displayNames = []string{fmt.Sprintf("    ...%d items total", len(nameLines))}
		default:
			visible := nameSlots - 1
			hidden := len(nameLines) - visible
			dn := make([]string, visible+1)
			copy(dn, nameLines[:visible])
			dn[visible] = fmt.Sprintf("    ...and %d more", hidden)
			displayNames = dn
		}
	}

	// If header + footer alone exceed availH, trim header from the bottom
	// to protect footerLines (they contain the confirmation prompt).
	// If availH is smaller than fLen itself, trim footerLines from the top,
	// keeping only the last availH lines (the actual confirmation prompt).
	displayHeader := headerLines
	displayFooter := footerLines
	if hLen+fLen > availH {
		keep := availH - fLen
		if keep < 0 {
			keep = 0
			// availH < fLen: show only the last availH lines of the footer.
			trimFrom := fLen - availH
			displayFooter = footerLines[trimFrom:]
		}
		displayHeader = headerLines[:keep]
	}

	lines := make([]string, 0, availH)
	lines = append(lines, displayHeader...)
	lines = append(lines, displayNames...)
	lines = append(lines, displayFooter...)

	// Pad content area to availH.
	for len(lines) < availH {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return titleBar + "\n" + content
}

// sanitizeLine strips control characters (embedded newlines/tabs from a
// cell's raw value) so one list entry never spans more than one screen
// line.
func sanitizeLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteByte(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
