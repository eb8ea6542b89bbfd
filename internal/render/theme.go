package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the text output styles.
type Theme struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Faint   lipgloss.Style
}

// DefaultTheme returns the styles used on a terminal. Styles degrade to
// plain text when the output is not a terminal.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Faint:   lipgloss.NewStyle().Faint(true),
	}
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle(),
		Section: lipgloss.NewStyle(),
		Faint:   lipgloss.NewStyle(),
	}
}
