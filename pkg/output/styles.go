package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles used when reporting matches to a color-capable terminal.
var (
	DirectoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
