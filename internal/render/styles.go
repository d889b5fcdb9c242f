package render

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorGray   = lipgloss.Color("8")

	boldStyle     = lipgloss.NewStyle().Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle      = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	readStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	untestedStyle = lipgloss.NewStyle().Foreground(colorGray)
	plainStyle    = lipgloss.NewStyle()
)

// styleFor maps a rendered glyph class to its style, honoring noColor.
func styleFor(s lipgloss.Style, noColor bool) lipgloss.Style {
	if noColor {
		return plainStyle
	}
	return s
}
