package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
	"github.com/abhisek/kotoba/internal/vocab"
)

// lowEnergy is the ratio at or below which the energy meter turns red.
const lowEnergy = 0.25

// Meter is a single-value bar with an optional label and percentage.
type Meter struct {
	Label       string
	Ratio       float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewEnergyMeter builds the wallet meter shown under a dialogue.
func NewEnergyMeter(energy, maxEnergy, width int) Meter {
	ratio := 0.0
	if maxEnergy > 0 {
		ratio = float64(energy) / float64(maxEnergy)
	}
	fill := theme.Energy
	if ratio <= lowEnergy {
		fill = theme.Error
	}
	return Meter{
		Label: fmt.Sprintf("Energy %d/%d", energy, maxEnergy),
		Ratio: ratio,
		Width: width,
		Fill:  fill,
	}
}

// View renders the meter. Ratios outside [0, 1] are clamped.
func (m Meter) View() string {
	ratio := min(max(m.Ratio, 0), 1)

	var label string
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	suffix := ""
	if m.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(ratio*100+0.5)))
	}

	barWidth := max(m.Width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth)*ratio + 0.5)

	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return label + StackedBar([]Segment{
		{Cells: filled, Color: fill},
		{Cells: barWidth - filled, Color: theme.Border},
	}) + suffix
}

// Segment is one coloured run of a stacked bar.
type Segment struct {
	Cells int
	Color color.Color
}

// StackedBar renders segments left to right as background-coloured cells.
func StackedBar(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Cells <= 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Background(s.Color).Render(strings.Repeat(" ", s.Cells)))
	}
	return b.String()
}

// SegmentWidths splits width cells across values in proportion. Leftover
// cells go to the largest remainders, so the result always sums to width
// when any value is positive. A positive value never rounds to zero cells
// while there are at least as many cells as positive values.
func SegmentWidths(values []int, width int) []int {
	out := make([]int, len(values))
	total := 0
	for _, v := range values {
		total += max(v, 0)
	}
	if total == 0 || width <= 0 {
		return out
	}

	rem := make([]int, len(values))
	used := 0
	for i, v := range values {
		v = max(v, 0)
		out[i] = v * width / total
		rem[i] = v * width % total
		used += out[i]
	}
	for ; used < width; used++ {
		best := -1
		for i := range values {
			if best < 0 || rem[i] > rem[best] {
				best = i
			}
		}
		out[best]++
		rem[best] = -1
	}

	// Steal from the widest segment so small tiers stay visible.
	for i, v := range values {
		if v <= 0 || out[i] > 0 {
			continue
		}
		widest := 0
		for j := range out {
			if out[j] > out[widest] {
				widest = j
			}
		}
		if out[widest] > 1 {
			out[widest]--
			out[i]++
		}
	}
	return out
}

// MasteryBar draws the word list as one bar split by tier in display order.
func MasteryBar(counts map[vocab.Mastery]int, width int) string {
	tiers := vocab.AllMasteries()
	values := make([]int, len(tiers))
	for i, m := range tiers {
		values[i] = counts[m]
	}
	widths := SegmentWidths(values, width)

	segs := make([]Segment, 0, len(tiers)+1)
	used := 0
	for i, m := range tiers {
		segs = append(segs, Segment{Cells: widths[i], Color: theme.MasteryColor(m)})
		used += widths[i]
	}
	segs = append(segs, Segment{Cells: width - used, Color: theme.Border})
	return StackedBar(segs)
}
