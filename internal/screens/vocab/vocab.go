// Package vocab renders the vocabulary list: every catalog word grouped by
// category with its mastery badge.
package vocab

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
	"github.com/abhisek/kotoba/internal/vocab"
)

// VocabScreen is the scrollable word list.
type VocabScreen struct {
	eng    *engine.Engine
	offset int
}

var _ screen.Screen = (*VocabScreen)(nil)
var _ screen.KeyHintProvider = (*VocabScreen)(nil)

// New creates a VocabScreen.
func New(eng *engine.Engine) *VocabScreen {
	return &VocabScreen{eng: eng}
}

func (s *VocabScreen) Init() tea.Cmd { return nil }

func (s *VocabScreen) Title() string { return "Vocabulary" }

func (s *VocabScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VocabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown":
		s.offset += 10
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *VocabScreen) View(width, height int) string {
	return RenderList(s.eng, width, height, &s.offset)
}

// RenderList draws the summary and the word list scrolled to *offset, which
// is clamped to the list length.
func RenderList(eng *engine.Engine, width, height int, offset *int) string {
	cw := components.PanelWidth(width, 72)
	summary := renderSummary(eng, cw)
	lines := Lines(eng.Words(), eng.Tracker())

	visible := height - lipgloss.Height(summary) - 3
	if visible < 1 {
		visible = 1
	}
	maxOffset := max(len(lines)-visible, 0)
	*offset = min(max(*offset, 0), maxOffset)

	end := min(*offset+visible, len(lines))
	body := strings.Join(lines[*offset:end], "\n")

	return lipgloss.NewStyle().Padding(0, 2).Render(summary + "\n\n" + body)
}

// Lines renders one line per word under category headings. Words never
// encountered keep their meaning hidden.
func Lines(words *vocab.Catalog, tracker *vocab.Tracker) []string {
	names, groups := words.ByCategory()
	var lines []string
	for i, name := range names {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, theme.Subtitle.Align(lipgloss.Left).Bold(true).Render(strings.ToUpper(name)))
		for _, w := range groups[name] {
			lines = append(lines, wordLine(w, tracker))
		}
	}
	return lines
}

func wordLine(w vocab.Word, tracker *vocab.Tracker) string {
	p, ok := tracker.Progress(w.ID)
	if !ok {
		return fmt.Sprintf("  %s %s  %s",
			theme.Badge(vocab.MasteryNew),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Display()),
			theme.Hint.Render("???"))
	}

	reading := ""
	if w.Kanji != "" {
		reading = theme.Hint.Render(" (" + w.Kana + ")")
	}
	stats := theme.Hint.Render(fmt.Sprintf("seen %d · looked up %d", p.TimesEncountered, p.TimesTapped))
	return fmt.Sprintf("  %s %s%s  %s  %s",
		theme.Badge(p.Mastery),
		lipgloss.NewStyle().Foreground(theme.MasteryColor(p.Mastery)).Bold(true).Render(w.Display()),
		reading,
		theme.Body.Render(w.Meaning),
		stats)
}

func renderSummary(eng *engine.Engine, cw int) string {
	counts := eng.Tracker().CountByMastery()
	total := eng.Words().Len()

	counts[vocab.MasteryNew] = max(total-eng.Tracker().Count(), 0)

	parts := make([]string, 0, len(vocab.AllMasteries()))
	for _, m := range vocab.AllMasteries() {
		parts = append(parts, fmt.Sprintf("%s %s %d", theme.Badge(m), m.Label(), counts[m]))
	}
	return strings.Join(parts, "   ") + "\n" + components.MasteryBar(counts, cw)
}
