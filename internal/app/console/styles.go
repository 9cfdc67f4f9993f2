package console

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle  = lipgloss.Color("#7aa2f7")
	colorAccent = lipgloss.Color("#bb9af7")
	colorOK     = lipgloss.Color("#9ece6a")
	colorError  = lipgloss.Color("#f7768e")
	colorDim    = lipgloss.Color("#565f89")
	colorBorder = lipgloss.Color("#3b4261")
	colorSelBg  = lipgloss.Color("#283457")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	selectedStyle  = lipgloss.NewStyle().Background(colorSelBg).Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)
