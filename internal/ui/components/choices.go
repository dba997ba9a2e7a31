package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// ChoiceState is how a single choice row is drawn.
type ChoiceState int

const (
	ChoiceIdle ChoiceState = iota
	ChoiceFocused
	ChoiceCorrect
	ChoiceWrong
	ChoiceDisabled
)

// ChoiceRow is one labelled answer in a ChoiceList.
type ChoiceRow struct {
	Text  string
	Gloss string // secondary text, shown dimmed when non-empty
	State ChoiceState
}

// ChoiceList renders numbered dialogue choices.
type ChoiceList struct {
	Rows []ChoiceRow
}

// View renders the list, one row per line.
func (c ChoiceList) View() string {
	lines := make([]string, 0, len(c.Rows))
	for i, row := range c.Rows {
		prefix := "  "
		if row.State == ChoiceFocused {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, row.Text)

		var style lipgloss.Style
		switch row.State {
		case ChoiceFocused:
			style = theme.Selected
		case ChoiceCorrect:
			style = theme.Correct
			line += "  ✓"
		case ChoiceWrong:
			style = theme.Incorrect
			line += "  ✗"
		case ChoiceDisabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		default:
			style = theme.Unselected
		}

		rendered := style.Render(line)
		if row.Gloss != "" {
			rendered += "  " + theme.Hint.Render(row.Gloss)
		}
		lines = append(lines, rendered)
	}
	return strings.Join(lines, "\n")
}
