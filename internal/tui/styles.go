package tui

import "github.com/charmbracelet/lipgloss"

// Color constants, carried from the teacher's palette and extended with
// colorSelectedBg for the cursor background.
var (
	colorGreen      = lipgloss.Color("#10b981")
	colorYellow     = lipgloss.Color("#f59e0b")
	colorRed        = lipgloss.Color("#ef4444")
	colorGray       = lipgloss.Color("#6b7280")
	colorBlue       = lipgloss.Color("#3b82f6")
	colorCyan       = lipgloss.Color("#06b6d4")
	colorPurple     = lipgloss.Color("#8b5cf6")
	colorIndigo     = lipgloss.Color("#6366f1")
	colorOrange     = lipgloss.Color("#f97316")
	colorWhite      = lipgloss.Color("#f8fafc")
	colorDark       = lipgloss.Color("#1e293b")
	colorAlt        = lipgloss.Color("#0f172a")
	colorSelectedBg = lipgloss.Color("#334155")
)

// StyleHeader — full-width dark header bar, used by the title bar and
// modal dialog chrome.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard — centred, padded card on the alternate background;
// it has no border, and the modal dialogs render with StyleHeader instead.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// Named color styles, one per accent colour. The table's highlight palette
// and the settings th[n] theme index do not use them.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(colorOrange)
	StyleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	StyleCyan   = lipgloss.NewStyle().Foreground(colorCyan)
	StylePurple = lipgloss.NewStyle().Foreground(colorPurple)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
)
