package tui

import "github.com/charmbracelet/lipgloss"

var (
	// palette
	primaryColor = lipgloss.Color("#007AFF")
	successColor = lipgloss.Color("#34C759")
	dangerColor  = lipgloss.Color("#FF3B30")
	accentColor  = lipgloss.Color("#5AC8FA")
	starColor    = lipgloss.Color("#FFCC00")
	subtleColor  = lipgloss.Color("#8E8E93")

	// header bar
	projectNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	projectPathStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	managerStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// tab bar
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	// search line
	searchStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// list rows
	cursorRowStyle = lipgloss.NewStyle().Bold(true)
	starStyle      = lipgloss.NewStyle().Foreground(starColor)
	commandStyle   = lipgloss.NewStyle().Foreground(subtleColor)
	emptyListStyle = lipgloss.NewStyle().Foreground(subtleColor)

	// status line feedback
	successMessageStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(dangerColor).
				Bold(true)

	// key hints
	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	// modal dialogs
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// env selector
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	dividerStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	pickedRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(starColor)

	checkedRowStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// args input
	exampleStyle = lipgloss.NewStyle().
			Foreground(successColor)

	historyStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	// confirmation
	previewStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	detailStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)
