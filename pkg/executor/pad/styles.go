package pad

import "github.com/charmbracelet/lipgloss"

var (
	salmonPink = lipgloss.Color("#FFB3BA")
	coralPink  = lipgloss.Color("#FFCCCB")
	mintGreen  = lipgloss.Color("#A8E6CF")
	mutedGray  = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	patternStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	historyStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)
)

// trailStyle returns the style for trail cells in the configured color.
func trailStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
