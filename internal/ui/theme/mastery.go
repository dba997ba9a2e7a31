package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/vocab"
)

// MasteryColor maps a tier to its word colour.
func MasteryColor(m vocab.Mastery) color.Color {
	switch m {
	case vocab.MasterySeen:
		return MasterySeen
	case vocab.MasteryLearning:
		return MasteryLearning
	case vocab.MasteryKnown:
		return MasteryKnown
	default:
		return MasteryNew
	}
}

// Word styles a word segment by its tier.
func Word(m vocab.Mastery) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MasteryColor(m)).Underline(true)
}

// Badge renders the tier icon in the tier colour.
func Badge(m vocab.Mastery) string {
	return lipgloss.NewStyle().Foreground(MasteryColor(m)).Render(m.Icon())
}
