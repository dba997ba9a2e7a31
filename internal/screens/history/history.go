package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// answerLimit caps how many past answers are loaded for the journal.
const answerLimit = 200

type historyLoadedMsg struct {
	Stats   []store.QuizStat
	Answers map[string][]store.QuizEventRecord // quizID → answers, newest first
	Err     error
}

// HistoryScreen is the quiz journal: totals per quiz, expandable into the
// individual answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	stats     []store.QuizStat
	answers   map[string][]store.QuizEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := s.eventRepo.QuizStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		answers, err := s.eventRepo.QueryQuizEvents(ctx, store.QueryOpts{Limit: answerLimit})
		if err != nil {
			return historyLoadedMsg{Stats: stats, Answers: map[string][]store.QuizEventRecord{}}
		}
		return historyLoadedMsg{
			Stats: stats,
			Answers: lo.GroupBy(answers, func(r store.QuizEventRecord) string {
				return r.QuizID
			}),
		}
	}
}

func (s *HistoryScreen) Title() string {
	return "Journal"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading journal...")
	}
	if len(s.stats) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes answered yet. Go talk to the villagers!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, st := range s.stats {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		bonus := ""
		if st.Bonus > 0 {
			bonus = fmt.Sprintf("  %s +%d", economy.Currency.Icon(), st.Bonus)
		}
		line := fmt.Sprintf("%s%-14s  %d answers  %.0f%% correct%s",
			prefix, st.QuizID, st.Attempts, st.Accuracy()*100, bonus)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(st.QuizID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(quizID string, width int) string {
	answers := s.answers[quizID]
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers in the recent journal")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		verdict := theme.Incorrect.Render("✗")
		if a.Correct {
			verdict = theme.Correct.Render("✓")
		}
		note := ""
		if a.Correct && a.FirstTry {
			note = "  first try"
		}
		line := fmt.Sprintf("    %s  %s  choice %d%s",
			a.Timestamp.Local().Format("Jan 02 15:04"), verdict, a.ChoiceIndex+1, note)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
