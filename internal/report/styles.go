package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by the reporters. Lipgloss degrades the colors to
// what the terminal supports.
var (
	// StyleHeading marks file paths and section headers.
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleUncovered marks selectors no class covers.
	StyleUncovered = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleMissing marks missing declarations and warnings.
	StyleMissing = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleClasses marks matched utility classes.
	StyleClasses = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleMuted marks variant names and hints.
	StyleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle renders text with style, or returns it as is when colors are off.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
