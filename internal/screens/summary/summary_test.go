package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/vocab"
)

func testWords() *vocab.Catalog {
	return vocab.NewCatalog([]vocab.Word{
		{ID: "neko", Kanji: "猫", Kana: "ねこ", Meaning: "cat"},
		{ID: "inu", Kanji: "犬", Kana: "いぬ", Meaning: "dog"},
		{ID: "matane", Kana: "またね", Meaning: "see you"},
	})
}

func encounter(id string, first bool, from, to vocab.Mastery) engine.Change {
	var tr *vocab.Transition
	if from != to {
		tr = &vocab.Transition{WordID: id, From: from, To: to, Trigger: "encounter"}
	}
	return engine.Change{
		Kind:       engine.ChangeVocab,
		WordID:     id,
		Encounter:  &vocab.Encounter{WordID: id, First: first},
		Transition: tr,
	}
}

func answered(quizID string, correct bool, reward dialogue.Reward) engine.Change {
	sel := &dialogue.Selection{Quiz: true, QuizID: quizID, Reward: reward, Outcome: dialogue.OutcomeWrong}
	if correct {
		sel.Outcome = dialogue.OutcomeCorrect
	}
	return engine.Change{
		Kind:  engine.ChangeDialogue,
		Event: &dialogue.Event{Kind: dialogue.EventQuizAnswered, Selection: sel},
	}
}

func TestRecorderCollectsConversation(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecorder(testWords(), economy.Wallet{Energy: 50, MaxEnergy: 100}, start)

	rec.Observe(engine.Change{Kind: engine.ChangeDialogue, Event: &dialogue.Event{
		Kind: dialogue.EventNodeEntered, Node: &dialogue.Node{ID: "village", Speaker: "村人"},
	}})
	rec.Observe(encounter("neko", true, vocab.MasteryNew, vocab.MasterySeen))
	rec.Observe(encounter("ghost", true, vocab.MasteryNew, vocab.MasterySeen))
	rec.Observe(encounter("inu", false, vocab.MasterySeen, vocab.MasteryLearning))
	rec.Observe(encounter("matane", false, vocab.MasteryLearning, vocab.MasteryKnown))
	rec.Observe(engine.Change{Kind: engine.ChangeVocab, WordID: "matane",
		Transition: &vocab.Transition{WordID: "matane", From: vocab.MasteryKnown, To: vocab.MasteryLearning, Trigger: "tap"}})
	rec.Observe(answered("animals-1", false, dialogue.Reward{}))
	rec.Observe(answered("animals-1", true, dialogue.Reward{Bonus: 0, FirstCompletion: true}))

	recap := rec.Finish(economy.Wallet{Energy: 44, MaxEnergy: 100}, start.Add(95*time.Second))

	assert.Equal(t, "村人", recap.Speaker)
	assert.Equal(t, 95*time.Second, recap.Duration)
	require.Len(t, recap.NewWords, 1, "unknown words are skipped")
	assert.Equal(t, "neko", recap.NewWords[0].ID)
	require.Len(t, recap.Progressed, 1, "matane went back to where it started")
	assert.Equal(t, vocab.Transition{WordID: "inu", From: vocab.MasterySeen, To: vocab.MasteryLearning}, recap.Progressed[0])
	assert.Equal(t, 2, recap.Answers)
	assert.Equal(t, 1, recap.Correct)
	assert.InDelta(t, 0.5, recap.Accuracy(), 1e-9)
	assert.Equal(t, []string{"animals-1"}, recap.Quests)
	assert.Equal(t, 6, recap.EnergySpent)
	assert.False(t, recap.Empty())
}

func TestRecapEmpty(t *testing.T) {
	rec := NewRecorder(testWords(), economy.Wallet{Energy: 10}, time.Now())
	recap := rec.Finish(economy.Wallet{Energy: 20}, time.Now())
	assert.True(t, recap.Empty())
	assert.Equal(t, 0, recap.EnergySpent, "restored energy is not negative spending")
	assert.Equal(t, 0.0, recap.Accuracy())
}

func TestSummaryScreen_Display(t *testing.T) {
	recap := &Recap{
		Speaker:     "村人",
		Duration:    2*time.Minute + 5*time.Second,
		NewWords:    []vocab.Word{{ID: "neko", Kanji: "猫", Kana: "ねこ", Meaning: "cat"}},
		Progressed:  []vocab.Transition{{WordID: "inu", From: vocab.MasterySeen, To: vocab.MasteryLearning}},
		Answers:     2,
		Correct:     1,
		Coins:       5,
		EnergySpent: 3,
		Quests:      []string{"animals-1"},
	}
	s := New(recap, testWords())
	assert.Equal(t, "Conversation Recap", s.Title())

	view := ansi.Strip(s.View(80, 30))
	for _, want := range []string{"村人", "2:05", "+5", "-3", "Accuracy: 50%", "animals-1", "猫 (ねこ)", "cat", "New words (1)", "犬", "Learning"} {
		assert.True(t, strings.Contains(view, want), "view should contain %q", want)
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(&Recap{}, testWords())

	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := s.Update(k)
		require.NotNil(t, cmd)
		_, ok := cmd().(router.PopScreenMsg)
		assert.True(t, ok)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd)
}
