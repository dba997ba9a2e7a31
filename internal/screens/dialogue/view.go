package dialogue

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	dlg "github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/engine"
	vocabscreen "github.com/abhisek/kotoba/internal/screens/vocab"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const panelMaxWidth = 76

func (s *DialogueScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderCentered(width, height, theme.Incorrect.Render(s.errMsg))
	}
	if s.confirmQuit {
		return renderCentered(width, height,
			theme.Body.Bold(true).Render("Leave this conversation? (y/n)")+"\n\n"+
				theme.Hint.Render("Words you met stay in your vocabulary."))
	}

	v := s.eng.View()
	switch v.Menu {
	case engine.MenuVocab:
		return vocabscreen.RenderList(s.eng, width, height, &s.vocabOffset)
	case engine.MenuSettings:
		return s.renderSettings(v, width, height)
	}

	cw := components.PanelWidth(width, panelMaxWidth)
	var sections []string

	sections = append(sections, renderSpeaker(v, cw))
	sections = append(sections, renderLine(v, cw))

	if v.ChoicesVisible {
		sections = append(sections, renderChoices(v))
	}
	if v.Feedback != nil {
		sections = append(sections, renderFeedback(*v.Feedback))
	}
	if v.Popup != nil {
		sections = append(sections, renderPopup(*v.Popup, cw))
	}

	sections = append(sections, renderEnergy(v, cw))
	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderSpeaker(v engine.View, cw int) string {
	name := theme.Speaker.Render(v.Speaker)
	if v.SpeakerWordID != "" {
		name = theme.Badge(v.SpeakerMastery) + " " + name
	}
	if v.SpeakerPortrait != "" {
		name = v.SpeakerPortrait + "  " + name
	}
	if v.Tutorial {
		name += "  " + theme.Hint.Render("(tutorial)")
	}
	if v.Quiz {
		name += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("QUIZ")
	}
	return lipgloss.NewStyle().Width(cw).Render(name)
}

// renderLine draws the current line with words coloured by mastery.
func renderLine(v engine.View, cw int) string {
	var b strings.Builder
	for _, seg := range v.Segments {
		switch {
		case seg.WordID == "":
			b.WriteString(theme.Body.Render(seg.Text))
		case seg.Focused:
			b.WriteString(theme.Word(seg.Mastery).Inherit(theme.Focused).Render(seg.Text))
		default:
			b.WriteString(theme.Word(seg.Mastery).Render(seg.Text))
		}
	}

	text := b.String()
	if v.English != "" {
		text += "\n" + theme.Hint.Render(v.English)
	}
	counter := theme.Hint.Render(fmt.Sprintf("%d/%d", v.LineIndex+1, v.LineCount))
	return components.Card(text+"\n"+counter, cw, theme.Border)
}

func renderChoices(v engine.View) string {
	rows := make([]components.ChoiceRow, 0, len(v.Choices))
	for _, c := range v.Choices {
		row := components.ChoiceRow{Text: c.Japanese}
		if v.ShowTranslation {
			row.Gloss = c.English
		}
		switch {
		case c.Selected && c.Outcome == dlg.OutcomeCorrect:
			row.State = components.ChoiceCorrect
		case c.Selected && c.Outcome == dlg.OutcomeWrong:
			row.State = components.ChoiceWrong
		case c.Focused:
			row.State = components.ChoiceFocused
		case !c.Interactive:
			row.State = components.ChoiceDisabled
		}
		rows = append(rows, row)
	}
	return components.ChoiceList{Rows: rows}.View()
}

func renderFeedback(fb dlg.Feedback) string {
	if fb.Outcome == dlg.OutcomeCorrect {
		msg := "正解！ Correct!"
		if fb.Bonus > 0 {
			msg += fmt.Sprintf("  +%d coins", fb.Bonus)
		}
		return theme.Correct.Render(msg)
	}
	return theme.Incorrect.Render("ちがう… Not quite. Listen again.")
}

func renderPopup(p engine.Popup, cw int) string {
	if !p.Known {
		return theme.Popup.Width(cw - 2).Render(
			theme.Body.Bold(true).Render(p.WordID) + "\n" + theme.Hint.Render("No dictionary entry."))
	}

	w := p.Word
	title := lipgloss.NewStyle().Foreground(theme.MasteryColor(p.Progress.Mastery)).Bold(true).Render(w.Display())
	if w.Kanji != "" {
		title += "  " + theme.Hint.Render(w.Kana)
	}
	body := theme.Body.Render(w.Meaning)
	meta := fmt.Sprintf("%s %s · seen %d · looked up %d",
		theme.Badge(p.Progress.Mastery), p.Progress.Mastery.Label(),
		p.Progress.TimesEncountered, p.Progress.TimesTapped)

	return theme.Popup.Width(cw - 2).Render(title + "\n" + body + "\n" + theme.Hint.Render(meta))
}

func renderEnergy(v engine.View, cw int) string {
	return components.NewEnergyMeter(v.Wallet.Energy, v.Wallet.MaxEnergy, cw).View()
}

func (s *DialogueScreen) renderSettings(v engine.View, width, height int) string {
	state := "off"
	if v.ShowTranslation {
		state = "on"
	}
	cw := components.PanelWidth(width, panelMaxWidth)

	s.help.SetWidth(cw)
	body := theme.Title.Render("Settings") + "\n\n" +
		theme.Body.Render("Translation: "+state) + "\n\n" +
		s.help.FullHelpView(s.keys.FullHelp())

	return renderCentered(width, height, theme.Card.Width(cw).Render(body))
}
