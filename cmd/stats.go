package cmd

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/theme"
	"github.com/abhisek/kotoba/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary and quiz statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent wallet changes to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	recent, _ := cmd.Flags().GetInt("recent")

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	pack, err := e.loadPack()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	eng, err := e.loadEngine(ctx, pack)
	if err != nil {
		return err
	}
	defer eng.Close()

	events := e.store.EventRepo()
	quizzes, err := events.QuizStats(ctx)
	if err != nil {
		return fmt.Errorf("quiz stats: %w", err)
	}
	var ledger []store.LedgerEventRecord
	if recent > 0 {
		ledger, err = events.QueryLedgerEvents(ctx, store.QueryOpts{Limit: recent})
		if err != nil {
			return fmt.Errorf("ledger events: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	renderWallet(w, eng)
	renderMastery(w, eng)
	renderQuizzes(w, quizzes, eng.Ledger().Quests())
	renderLedger(w, ledger)
	return nil
}

func statsTable(headers ...string) *table.Table {
	header := theme.Subtitle.Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func renderWallet(w io.Writer, eng *engine.Engine) {
	wallet := eng.Ledger().Wallet()
	lipgloss.Fprintln(w, theme.Title.Render("Wallet"))
	lipgloss.Fprintln(w, fmt.Sprintf("  %s %d/%d   %s %d",
		economy.Energy.Icon(), wallet.Energy, wallet.MaxEnergy,
		economy.Currency.Icon(), wallet.Currency))
	fmt.Fprintln(w)
}

func renderMastery(w io.Writer, eng *engine.Engine) {
	counts := eng.Tracker().CountByMastery()
	total := eng.Words().Len()
	counts[vocab.MasteryNew] = max(total-eng.Tracker().Count(), 0)

	t := statsTable("Mastery", "Words", "Share")
	for _, m := range vocab.AllMasteries() {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.0f%%", 100*float64(counts[m])/float64(total))
		}
		label := lipgloss.NewStyle().Foreground(theme.MasteryColor(m)).Render(m.Icon() + " " + m.Label())
		t.Row(label, strconv.Itoa(counts[m]), share)
	}

	exported := lo.CountBy(eng.Tracker().All(), func(p vocab.WordProgress) bool { return p.ExportedToAnki })
	lipgloss.Fprintln(w, theme.Title.Render("Vocabulary"))
	lipgloss.Fprintln(w, t.String())
	lipgloss.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("  %d of %d words exported to Anki", exported, total)))
	fmt.Fprintln(w)
}

func renderQuizzes(w io.Writer, stats []store.QuizStat, quests *economy.QuestLog) {
	lipgloss.Fprintln(w, theme.Title.Render("Quizzes"))
	if len(stats) == 0 {
		lipgloss.Fprintln(w, theme.Subtitle.Render("  No quizzes answered yet."))
		fmt.Fprintln(w)
		return
	}

	t := statsTable("Quiz", "Answers", "Correct", "Accuracy", "Bonus", "Quest")
	for _, s := range stats {
		quest := ""
		if quests.IsComplete(s.QuizID) {
			quest = theme.Correct.Render("✓")
		}
		t.Row(s.QuizID,
			strconv.Itoa(s.Attempts),
			strconv.Itoa(s.Correct),
			fmt.Sprintf("%.0f%%", 100*s.Accuracy()),
			strconv.Itoa(s.Bonus),
			quest)
	}
	lipgloss.Fprintln(w, t.String())
	fmt.Fprintln(w)
}

func renderLedger(w io.Writer, records []store.LedgerEventRecord) {
	if len(records) == 0 {
		return
	}
	t := statsTable("When", "Change", "Reason")
	for _, r := range records {
		res := economy.Resource(r.Resource)
		t.Row(r.Timestamp.Local().Format("Jan 2 15:04"),
			fmt.Sprintf("%s %+d", res.Icon(), r.Delta),
			r.Reason)
	}
	lipgloss.Fprintln(w, theme.Title.Render("Recent"))
	lipgloss.Fprintln(w, t.String())
}
