package tui

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#C17D00", Dark: "#F2B233"}
	danger    = lipgloss.AdaptiveColor{Light: "#C4262E", Dark: "#FF5F5F"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(highlight)

	labelStyle        = lipgloss.NewStyle().Width(9).Foreground(subtle)
	focusedLabelStyle = labelStyle.Foreground(highlight).Bold(true)

	regionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)
	focusedRegionStyle = regionStyle.BorderForeground(highlight)

	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	wordStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	togglerStyle = lipgloss.NewStyle().Foreground(highlight)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(special)
	infoStyle    = lipgloss.NewStyle().Foreground(warning)
	successStyle = lipgloss.NewStyle().Foreground(special)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	helpStyle    = lipgloss.NewStyle().Foreground(subtle)
	statusStyle  = lipgloss.NewStyle().Italic(true)
	emptyRegion  = lipgloss.NewStyle().Foreground(subtle).Render("nothing to show yet")
)
