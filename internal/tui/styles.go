package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	highlightColor = lipgloss.Color("#43BF6D") // Green
	errorColor     = lipgloss.Color("#FF5F5F") // Red
	subtleColor    = lipgloss.Color("#626262") // Gray
	borderColor    = primaryColor
)

var (
	// Title above the query box.
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// Bordered box holding the query text or input.
	queryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// Committed query text.
	queryTextStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	// Prompt shown before any query is entered.
	placeholderStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Italic(true)

	// Scan failure line.
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Troubleshooting hint under a failure.
	hintStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)
