// Package components provides the TUI building blocks and their styles.
package components

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette - Single Source of Truth
// =============================================================================

const (
	ColorPrimary   = "#7C3AED" // Violet - prompt char, title
	ColorSecondary = "#10B981" // Green/Emerald - selection, success
	ColorAccent    = "#60A5FA" // Blue - labels
	ColorWarning   = "#F59E0B" // Amber - confirmations
	ColorError     = "#EF4444" // Red - errors

	ColorMuted   = "#6B7280" // Gray - hints, empty state
	ColorBorder  = "#374151" // Dark gray - separators
	ColorSurface = "#1E293B" // Header background

	ColorText    = "#E5E7EB" // Base text
	ColorTextDim = "#9CA3AF" // Secondary text
)

var (
	Primary   = lipgloss.Color(ColorPrimary)
	Secondary = lipgloss.Color(ColorSecondary)
	Accent    = lipgloss.Color(ColorAccent)
	Warning   = lipgloss.Color(ColorWarning)
	Error     = lipgloss.Color(ColorError)
	Muted     = lipgloss.Color(ColorMuted)
	Border    = lipgloss.Color(ColorBorder)
	Surface   = lipgloss.Color(ColorSurface)
	Text      = lipgloss.Color(ColorText)
	TextDim   = lipgloss.Color(ColorTextDim)
)

// =============================================================================
// List Styles
// =============================================================================

var (
	ItemStyle = lipgloss.NewStyle().
			Foreground(Text)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	// InactiveCursorStyle marks the selection while the input has focus.
	InactiveCursorStyle = lipgloss.NewStyle().
				Foreground(TextDim)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// =============================================================================
// Input Styles
// =============================================================================

var (
	InputSeparatorStyle  = lipgloss.NewStyle().Foreground(Border)
	InputPromptCharStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	OptionStyle = lipgloss.NewStyle().
			Foreground(Text)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	ConfirmLabelStyle = lipgloss.NewStyle().
				Foreground(Warning).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// =============================================================================
// Header Styles
// =============================================================================

var (
	HeaderStyle = lipgloss.NewStyle().
			Background(Surface).
			Foreground(Text).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(Secondary)

	HeaderFilterStyle = lipgloss.NewStyle().
				Foreground(Accent)
)
