package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
	"github.com/abhisek/kotoba/internal/vocab"
)

// SummaryScreen shows the recap of a finished conversation.
type SummaryScreen struct {
	recap *Recap
	words *vocab.Catalog
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(recap *Recap, words *vocab.Catalog) *SummaryScreen {
	return &SummaryScreen{recap: recap, words: words}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Conversation Recap"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.recap
	if r == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 48), 0)))
	section := func(b *strings.Builder, title string) {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")
	}

	var b strings.Builder

	heading := "おつかれさま！"
	if r.Speaker != "" {
		heading = fmt.Sprintf("おつかれさま！  You talked with %s", r.Speaker)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(heading)))
	b.WriteString("\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Time %d:%02d    %s -%d    %s +%d",
		mins, secs, economy.Energy.Icon(), r.EnergySpent, economy.Currency.Icon(), r.Coins)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats)))
	b.WriteString("\n")

	if r.Answers > 0 {
		quiz := fmt.Sprintf("Answers: %d    Correct: %d    Accuracy: %.0f%%", r.Answers, r.Correct, r.Accuracy()*100)
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(quiz)))
		b.WriteString("\n")
		for _, q := range r.Quests {
			b.WriteString(center(theme.Correct.Render("✓ Quest cleared: " + q)))
			b.WriteString("\n")
		}
	}

	if len(r.NewWords) > 0 {
		section(&b, fmt.Sprintf("New words (%d)", len(r.NewWords)))
		for _, w := range r.NewWords {
			line := fmt.Sprintf("%s  %s  %s", theme.Badge(vocab.MasterySeen), theme.Word(vocab.MasterySeen).Render(w.Display()), w.Meaning)
			if w.Kanji != "" {
				line = fmt.Sprintf("%s  %s (%s)  %s", theme.Badge(vocab.MasterySeen), theme.Word(vocab.MasterySeen).Render(w.Kanji), w.Kana, w.Meaning)
			}
			b.WriteString(center(line))
			b.WriteString("\n")
		}
	}

	if len(r.Progressed) > 0 {
		section(&b, "Progress")
		for _, t := range r.Progressed {
			line := fmt.Sprintf("%s  %s → %s", s.words.Display(t.WordID),
				lipgloss.NewStyle().Foreground(theme.MasteryColor(t.From)).Render(t.From.Label()),
				lipgloss.NewStyle().Foreground(theme.MasteryColor(t.To)).Render(t.To.Label()))
			b.WriteString(center(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}
