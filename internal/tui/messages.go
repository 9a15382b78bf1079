package tui

import "time"

// RefreshTickMsg is the auto_refresh timer tick: it starts
// State.StartRefresh, whose completion App then polls with pollTickMsg.
// Gen must match App.refreshGen (set in Init); ticks carrying another Gen
// are dropped.
type RefreshTickMsg struct {
	Time time.Time
	Gen  int
}

// FooterTickMsg is a footer tick message separate from the row-refresh
// timer. Nothing schedules it, and App.Update has no case for it.
type FooterTickMsg struct {
	Time time.Time
	Gen  int
}

// RefreshDoneMsg is posted once State.PollRefresh observes the
// background RefreshFunc has completed; it carries only the error (if
// any) since PollRefresh already applied the new rows/header/selection
// reconciliation into State before returning.
type RefreshDoneMsg struct{ Err error }
