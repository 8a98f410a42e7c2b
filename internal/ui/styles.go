package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#00BFFF") // Deep sky blue
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger    = lipgloss.Color("#FF6B6B") // Red for errors
	colorWarning   = lipgloss.Color("#FFD93D") // Yellow for highlights
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A90E2") // Border blue

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	bigTempStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	// Search box and suggestions
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(colorPrimary)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	highlightedSuggestionStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("#000000")).
					Background(colorSecondary)

	// Error banner
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorDanger).
			Bold(true).
			Padding(0, 1)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	toggleOnStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Section header styles
	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 0, 1, 0) // Padding bottom 1

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginBottom(1)
)
