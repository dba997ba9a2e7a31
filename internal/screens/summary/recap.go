package summary

import (
	"time"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/vocab"
)

// Recap is what happened during one conversation.
type Recap struct {
	Speaker     string
	Duration    time.Duration
	NewWords    []vocab.Word
	Progressed  []vocab.Transition
	Answers     int
	Correct     int
	Coins       int
	EnergySpent int
	Quests      []string
}

// Empty reports whether there is nothing worth showing.
func (r *Recap) Empty() bool {
	return len(r.NewWords) == 0 && len(r.Progressed) == 0 && r.Answers == 0
}

// Accuracy returns Correct/Answers, or 0 when no quiz was answered.
func (r *Recap) Accuracy() float64 {
	if r.Answers == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answers)
}

// Recorder builds a Recap from engine changes.
type Recorder struct {
	words       *vocab.Catalog
	started     time.Time
	startEnergy int
	recap       Recap

	// Net tier movement per word, in first-seen order.
	from  map[string]vocab.Mastery
	to    map[string]vocab.Mastery
	order []string
}

// NewRecorder starts recording against the current wallet.
func NewRecorder(words *vocab.Catalog, wallet economy.Wallet, now time.Time) *Recorder {
	return &Recorder{
		words:       words,
		started:     now,
		startEnergy: wallet.Energy,
		from:        make(map[string]vocab.Mastery),
		to:          make(map[string]vocab.Mastery),
	}
}

// Observe folds one engine change into the recap.
func (r *Recorder) Observe(c engine.Change) {
	if c.Encounter != nil && c.Encounter.First {
		if w, ok := r.words.Lookup(c.Encounter.WordID); ok {
			r.recap.NewWords = append(r.recap.NewWords, w)
		}
	}

	if t := c.Transition; t != nil && t.From != vocab.MasteryNew {
		if _, seen := r.from[t.WordID]; !seen {
			r.from[t.WordID] = t.From
			r.order = append(r.order, t.WordID)
		}
		r.to[t.WordID] = t.To
	}

	if c.Kind != engine.ChangeDialogue || c.Event == nil {
		return
	}
	switch c.Event.Kind {
	case dialogue.EventNodeEntered:
		if c.Event.Node != nil && c.Event.Node.Speaker != "" {
			r.recap.Speaker = c.Event.Node.Speaker
		}
	case dialogue.EventQuizAnswered:
		sel := c.Event.Selection
		r.recap.Answers++
		if sel.Outcome == dialogue.OutcomeCorrect {
			r.recap.Correct++
		}
		r.recap.Coins += sel.Reward.Bonus
		if sel.Reward.FirstCompletion {
			r.recap.Quests = append(r.recap.Quests, sel.QuizID)
		}
	}
}

// Finish closes the recap against the final wallet.
func (r *Recorder) Finish(wallet economy.Wallet, now time.Time) *Recap {
	out := r.recap
	out.Duration = now.Sub(r.started)
	out.EnergySpent = max(r.startEnergy-wallet.Energy, 0)
	for _, id := range r.order {
		if r.from[id] != r.to[id] {
			out.Progressed = append(out.Progressed, vocab.Transition{WordID: id, From: r.from[id], To: r.to[id]})
		}
	}
	return &out
}
