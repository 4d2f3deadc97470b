package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kilianp07/dockyard/core/model"
)

var (
	colorMuted    = lipgloss.Color("242")
	colorSelected = lipgloss.Color("39")
	colorWhite    = lipgloss.Color("15")
	colorTimer    = lipgloss.Color("#facc15")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	kpiStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Width(24).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(colorWhite).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	timerStyle = lipgloss.NewStyle().Foreground(colorTimer).Bold(true)

	statusLineStyle = lipgloss.NewStyle().Foreground(colorSelected)
)

// badge renders a status label in its palette.
func badge(s model.Status) string {
	p := s.Colors()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p.BadgeBg)).
		Foreground(lipgloss.Color(p.BadgeFg)).
		Padding(0, 1).
		Render(s.Label())
}

// card styles a dock tile with its status ring colour.
func card(s model.Status, selected bool) lipgloss.Style {
	st := cardStyle.BorderForeground(lipgloss.Color(s.Colors().Ring))
	if selected {
		st = st.Border(lipgloss.ThickBorder()).BorderForeground(colorSelected)
	}
	return st
}
