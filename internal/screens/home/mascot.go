package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold: a quiz was cleared since the last visit
	MascotTired                            // Orange: energy is running low
)

const mascotIdle = `  ╭───╮
 ╭┤ 言 ├╮
 │╰───╯│
 ╰─┬─┬─╯`

const mascotCelebrating = ` ✦╭───╮✦
 ╭┤ 言 ├╮
 │╰───╯│
 ╰─┬─┬─╯`

const mascotTired = `  ╭───╮ z
 ╭┤ 言 ├╮
 │╰─‿─╯│
 ╰─┬─┬─╯`

// RenderMascot returns the lantern art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotTired:
		art = mascotTired
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// pickMascot chooses the variant from the wallet and quest progress.
func pickMascot(energyRatio float64, newQuests bool) MascotVariant {
	switch {
	case energyRatio < 0.2:
		return MascotTired
	case newQuests:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
