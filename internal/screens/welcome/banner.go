package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

const bannerReading = "k · o · t · o · b · a"

// RenderBanner returns the 言葉 plate with its reading underneath. The plate
// is dropped on terminals narrower than 24 columns.
func RenderBanner(width int) string {
	reading := lipgloss.NewStyle().Foreground(theme.TextDim).Render(bannerReading)
	if width < 24 {
		return reading
	}

	plate := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Padding(0, 3).
		Render("言  葉")
	return lipgloss.JoinVertical(lipgloss.Center, plate, reading)
}
