package tui

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 60
)

// Style holds the lipgloss styles of the session view.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
}

// NewStyle returns the styles for a dark or light terminal.
func NewStyle(dark bool) Style {
	main := lipgloss.Color("#1f2335")
	hint := lipgloss.Color("#6b6b6b")

	if dark {
		main = lipgloss.Color("#f2e9de")
		hint = lipgloss.Color("#8a8a8a")
	}

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#e48737")),
		Hint:      lipgloss.NewStyle().Foreground(hint),
	}
}
