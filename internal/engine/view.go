package engine

import (
	"github.com/samber/lo"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/focus"
	"github.com/abhisek/kotoba/internal/vocab"
)

// SegmentView is one rendered piece of the current line.
type SegmentView struct {
	Text string

	// WordID is empty for plain text.
	WordID    string
	WordIndex int // -1 for plain text
	Mastery   vocab.Mastery
	Focused   bool
}

// ChoiceView is one rendered choice.
type ChoiceView struct {
	Index       int
	Japanese    string
	English     string
	Focused     bool
	Interactive bool

	// Selected and Outcome are set for the choice under quiz feedback.
	Selected bool
	Outcome  dialogue.Outcome
}

// View is a point-in-time read model of everything the presentation layer
// draws.
type View struct {
	Active          bool
	NodeID          string
	Speaker         string
	SpeakerPortrait string
	SpeakerWordID   string
	SpeakerMastery  vocab.Mastery

	Phase     dialogue.Phase
	LineIndex int
	LineCount int
	Segments  []SegmentView

	// English is the translation, set only when ShowTranslation is on.
	English string

	Choices        []ChoiceView
	ChoicesVisible bool
	Quiz           bool
	Feedback       *dialogue.Feedback

	FocusID         string
	Wallet          economy.Wallet
	ShowTranslation bool
	Menu            Menu
	Popup           *Popup
	Tutorial        bool
	Version         uint64
}

// View builds the current read model.
func (e *Engine) View() View {
	v := View{
		Phase:           e.ctrl.Phase(),
		FocusID:         e.focusID,
		Wallet:          e.ledger.Wallet(),
		ShowTranslation: e.showTranslation,
		Menu:            e.menu,
		Tutorial:        e.InTutorial(),
		Version:         e.ctrl.Version(),
	}
	if p, ok := e.Popup(); ok {
		v.Popup = &p
	}

	n := e.ctrl.Node()
	if n == nil {
		return v
	}
	v.Active = true
	v.NodeID = n.ID
	v.Speaker = n.Speaker
	v.SpeakerPortrait = n.SpeakerPortrait
	v.SpeakerWordID = n.SpeakerWordID
	if n.SpeakerWordID != "" {
		v.SpeakerMastery = e.mastery(n.SpeakerWordID)
	}
	v.LineIndex = e.ctrl.LineIndex()
	v.LineCount = len(n.Lines)
	v.Quiz = n.IsQuiz()

	if line, ok := e.ctrl.Line(); ok {
		v.Segments = e.segmentViews(line)
		if e.showTranslation {
			v.English = line.English
		}
	}

	if fb, ok := e.ctrl.Feedback(); ok {
		v.Feedback = &fb
	}

	v.ChoicesVisible = e.ctrl.ChoicesVisible()
	if v.ChoicesVisible {
		interactive := e.ctrl.ChoicesInteractive()
		v.Choices = lo.Map(n.Choices, func(c dialogue.Choice, i int) ChoiceView {
			cv := ChoiceView{
				Index:       i,
				Japanese:    c.Japanese,
				English:     c.English,
				Interactive: interactive,
				Focused:     interactive && e.focusID == focus.ItemID(focus.KindChoice, i),
			}
			if v.Feedback != nil && v.Feedback.ChoiceIndex == i {
				cv.Selected = true
				cv.Outcome = v.Feedback.Outcome
			}
			return cv
		})
	}
	return v
}

func (e *Engine) segmentViews(line dialogue.Line) []SegmentView {
	out := make([]SegmentView, 0, len(line.Segments))
	wordIndex := 0
	for _, s := range line.Segments {
		sv := SegmentView{Text: s.Text, WordIndex: -1}
		if s.IsWord() {
			sv.WordID = s.WordID
			sv.WordIndex = wordIndex
			sv.Mastery = e.mastery(s.WordID)
			sv.Focused = e.focusID == focus.ItemID(focus.KindWord, wordIndex)
			if sv.Text == "" {
				sv.Text = e.words.Display(s.WordID)
			}
			wordIndex++
		}
		out = append(out, sv)
	}
	return out
}

func (e *Engine) mastery(wordID string) vocab.Mastery {
	if p, ok := e.tracker.Progress(wordID); ok {
		return p.Mastery
	}
	return vocab.MasteryNew
}
