package cli

import "github.com/charmbracelet/lipgloss"

// Output styles, aligned with the default terminal palette.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	answerStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Width(80)

	sourceStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))
)
