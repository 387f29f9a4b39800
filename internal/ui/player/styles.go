package player

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle     = lipgloss.Color("33")
	colorMuted     = lipgloss.Color("242")
	colorCursor    = lipgloss.Color("212")
	colorCorrect   = lipgloss.Color("42")
	colorIncorrect = lipgloss.Color("196")
	colorNotice    = lipgloss.Color("214")
)

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// bold applies optional bold styling.
func bold(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)
}

func tierColor(percentage int) lipgloss.Color {
	switch {
	case percentage >= 70:
		return colorCorrect
	case percentage >= 50:
		return colorNotice
	default:
		return colorIncorrect
	}
}
