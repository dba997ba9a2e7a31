package dialogue

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/kotoba/internal/content"
	dlg "github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/input"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/schedule"
	"github.com/abhisek/kotoba/internal/screens/summary"
)

func key(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func char(r rune) tea.KeyPressMsg {
	return key(r, string(r))
}

var enter = key(tea.KeyEnter, "")

func newScreen(t *testing.T, start string) (*DialogueScreen, *engine.Engine, *schedule.Manual) {
	t.Helper()
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	clock := schedule.NewManual(time.Time{})
	eng := engine.New(engine.Deps{
		Words:     pack.WordCatalog(),
		Nodes:     pack.NodeCatalog(),
		Scheduler: clock,
		Timing:    dlg.DefaultTiming(),
		Economy:   economy.DefaultConfig(),
	})
	t.Cleanup(eng.Close)

	s := New(eng, input.NewKeyMap(nil), start, nil)
	s.Init()
	return s, eng, clock
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

// recapOf returns the recap screen a leaving dialogue swaps in, if any.
func recapOf(cmd tea.Cmd) (*summary.SummaryScreen, bool) {
	if cmd == nil {
		return nil, false
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		return nil, false
	}
	s, ok := msg.Screen.(*summary.SummaryScreen)
	return s, ok
}

func TestInitStartsDialogue(t *testing.T) {
	s, eng, _ := newScreen(t, "intro")

	v := eng.View()
	if !v.Active || v.NodeID != "intro" {
		t.Fatalf("View() = active %v node %q, want intro", v.Active, v.NodeID)
	}
	if got := s.Title(); got != "Sensei" {
		t.Errorf("Title() = %q, want %q", got, "Sensei")
	}
	if out := ansi.Strip(s.View(100, 30)); !strings.Contains(out, "こんにちは") {
		t.Errorf("View() missing the first line:\n%s", out)
	}
}

func TestUnknownStartShowsErrorThenPops(t *testing.T) {
	s, _, _ := newScreen(t, "missing")

	if out := ansi.Strip(s.View(100, 30)); !strings.Contains(out, "does not exist") {
		t.Errorf("View() = %q, want error message", out)
	}
	_, cmd := s.Update(char('x'))
	if !isPop(cmd) {
		t.Error("any key on the error screen should pop")
	}
}

func TestTranslationToggle(t *testing.T) {
	s, eng, _ := newScreen(t, "intro")

	if strings.Contains(ansi.Strip(s.View(100, 30)), "Hello!") {
		t.Fatal("translation shown before toggling")
	}
	s.Update(char('t'))
	if !eng.ShowTranslation() {
		t.Fatal("t should toggle translation")
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Hello!") {
		t.Error("translation missing after toggle")
	}
}

func TestDigitSelectsChoice(t *testing.T) {
	s, eng, _ := newScreen(t, "village")

	// Digits do nothing before the choices appear.
	s.Update(char('1'))
	if got := eng.View().LineIndex; got != 0 {
		t.Fatalf("LineIndex = %d after early digit, want 0", got)
	}

	s.Update(enter)
	s.Update(enter)
	if eng.View().Phase != dlg.PhaseAwaitingChoice {
		t.Fatalf("Phase = %v, want awaiting-choice", eng.View().Phase)
	}

	s.Update(char('1'))
	if got := eng.View().NodeID; got != "quiz-animals" {
		t.Errorf("NodeID = %q, want quiz-animals", got)
	}
}

func TestQuizFeedbackHintsAndSkip(t *testing.T) {
	s, eng, clock := newScreen(t, "quiz-animals")

	s.Update(char('1')) // いぬ is wrong
	if eng.View().Phase != dlg.PhaseQuizFeedback {
		t.Fatalf("Phase = %v, want quiz-feedback", eng.View().Phase)
	}
	if out := ansi.Strip(s.View(100, 30)); !strings.Contains(out, "Not quite") {
		t.Errorf("View() missing wrong-answer feedback:\n%s", out)
	}

	found := false
	for _, h := range s.KeyHints() {
		if h.Description == "Skip" {
			found = true
		}
	}
	if !found {
		t.Errorf("KeyHints() = %v, want a Skip hint", s.KeyHints())
	}

	s.Update(enter)
	if eng.View().Phase != dlg.PhaseAwaitingChoice {
		t.Errorf("Phase = %v after skip, want awaiting-choice", eng.View().Phase)
	}

	// The original timer is stale and must not disturb the retry.
	clock.Flush()
	if eng.View().Phase != dlg.PhaseAwaitingChoice {
		t.Errorf("Phase = %v after stale timer, want awaiting-choice", eng.View().Phase)
	}
}

func TestExhaustedNodeShowsRecap(t *testing.T) {
	s, eng, _ := newScreen(t, "farewell")

	_, cmd := s.Update(enter)
	if eng.View().Active {
		t.Fatal("confirm on the last line of a choiceless node should close it")
	}
	recap, ok := recapOf(cmd)
	if !ok {
		t.Fatal("closing the dialogue should swap in the recap")
	}
	view := ansi.Strip(recap.View(80, 30))
	if !strings.Contains(view, "さようなら") || !strings.Contains(view, "New words (3)") {
		t.Errorf("recap should list the speaker and farewell words, got:\n%s", view)
	}
}

func TestTimerCloseSeenOnNextMessage(t *testing.T) {
	s, eng, clock := newScreen(t, "quiz-nature")

	s.Update(enter)
	s.Update(char('2')) // 山 is right and leads to farewell
	clock.Flush()
	if got := eng.View().NodeID; got != "farewell" {
		t.Fatalf("NodeID = %q, want farewell", got)
	}

	eng.CloseDialogue()
	_, cmd := s.Update(struct{}{})
	if _, ok := recapOf(cmd); !ok {
		t.Error("a close outside key handling should leave on the next update")
	}
}

func TestQuitConfirm(t *testing.T) {
	s, eng, _ := newScreen(t, "village")

	s.Update(char('q'))
	if !s.confirmQuit {
		t.Fatal("q should ask for confirmation")
	}
	s.Update(char('n'))
	if s.confirmQuit || !eng.View().Active {
		t.Fatal("n should keep the dialogue open")
	}

	s.Update(char('q'))
	_, cmd := s.Update(char('y'))
	if eng.View().Active {
		t.Error("y should close the dialogue")
	}
	if _, ok := recapOf(cmd); !ok {
		t.Error("y should leave through the recap")
	}
}

func TestVocabMenuScrollsInsteadOfFocusing(t *testing.T) {
	s, eng, _ := newScreen(t, "village")

	s.Update(char('v'))
	if eng.ActiveMenu() != engine.MenuVocab {
		t.Fatalf("ActiveMenu() = %q, want vocab", eng.ActiveMenu())
	}
	s.Update(key(tea.KeyDown, ""))
	if s.vocabOffset != 1 {
		t.Errorf("vocabOffset = %d, want 1", s.vocabOffset)
	}
	if eng.FocusID() != "" {
		t.Errorf("FocusID() = %q, want none while the menu is open", eng.FocusID())
	}

	out := ansi.Strip(s.View(100, 40))
	if !strings.Contains(out, "Known") {
		t.Errorf("vocab overlay missing summary:\n%s", out)
	}

	s.Update(key(tea.KeyEscape, ""))
	if eng.ActiveMenu() != engine.MenuNone {
		t.Errorf("esc should close the menu, got %q", eng.ActiveMenu())
	}
}

func TestTapShowsPopupAndStatus(t *testing.T) {
	s, eng, _ := newScreen(t, "village")

	s.Update(key(tea.KeyRight, ""))
	if eng.FocusID() != "word:0" {
		t.Fatalf("FocusID() = %q, want word:0", eng.FocusID())
	}
	s.Update(enter)

	out := ansi.Strip(s.View(100, 40))
	if !strings.Contains(out, "cat") {
		t.Errorf("popup should show the meaning:\n%s", out)
	}
}
