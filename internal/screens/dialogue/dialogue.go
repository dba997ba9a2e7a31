// Package dialogue is the play screen: it feeds key presses into the engine
// as actions and draws the engine's read model.
package dialogue

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/action"
	dlg "github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/input"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/summary"
	"github.com/abhisek/kotoba/internal/ui/layout"
)

// DialogueScreen implements screen.Screen for an open conversation.
type DialogueScreen struct {
	eng     *engine.Engine
	keys    *input.KeyMap
	help    help.Model
	startID string
	log     *logrus.Entry

	unsubscribe func()
	recorder    *summary.Recorder

	// status is the latest mastery or reward note shown under the dialogue.
	status      string
	closed      bool
	confirmQuit bool
	errMsg      string
	vocabOffset int
}

var _ screen.Screen = (*DialogueScreen)(nil)
var _ screen.KeyHintProvider = (*DialogueScreen)(nil)

// New creates a DialogueScreen that opens startID when pushed.
func New(eng *engine.Engine, keys *input.KeyMap, startID string, logger *logrus.Logger) *DialogueScreen {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &DialogueScreen{
		eng:     eng,
		keys:    keys,
		help:    help.New(),
		startID: startID,
		log:     logger.WithField("component", "dialogue-screen"),
	}
}

func (s *DialogueScreen) Init() tea.Cmd {
	s.recorder = summary.NewRecorder(s.eng.Words(), s.eng.Ledger().Wallet(), time.Now())
	s.unsubscribe = s.eng.Subscribe(s.onChange)
	if !s.eng.StartDialogue(s.startID) {
		s.errMsg = fmt.Sprintf("Conversation %q does not exist in this content pack.", s.startID)
		s.log.WithField("node", s.startID).Warn("start node missing")
	}
	return nil
}

func (s *DialogueScreen) Title() string {
	v := s.eng.View()
	if v.Speaker != "" {
		return v.Speaker
	}
	return "Dialogue"
}

func (s *DialogueScreen) onChange(c engine.Change) {
	s.recorder.Observe(c)
	switch {
	case c.Transition != nil:
		t := c.Transition
		s.status = fmt.Sprintf("%s  %s → %s", s.eng.Words().Display(t.WordID), t.From.Label(), t.To.Label())
	case c.Kind == engine.ChangeDialogue && c.Event != nil:
		switch c.Event.Kind {
		case dlg.EventQuizAnswered:
			sel := c.Event.Selection
			switch {
			case sel.Reward.Bonus > 0:
				s.status = fmt.Sprintf("Quest complete  +%d coins", sel.Reward.Bonus)
			case sel.Reward.FirstCompletion:
				s.status = "Quest complete"
			}
		case dlg.EventClosed:
			s.closed = true
		}
	}
}

func (s *DialogueScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		s.handleKey(kmsg)
	}
	if s.closed {
		return s, s.leave()
	}
	return s, nil
}

func (s *DialogueScreen) handleKey(msg tea.KeyPressMsg) {
	key := msg.String()

	if s.errMsg != "" {
		s.closed = true
		return
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.eng.CloseDialogue()
			s.closed = true
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return
	}

	v := s.eng.View()

	if key == "q" && v.Menu == engine.MenuNone {
		s.confirmQuit = true
		return
	}

	// Digits pick a choice directly, like clicking it.
	if n, err := strconv.Atoi(key); err == nil && v.Menu == engine.MenuNone && s.eng.Controller().ChoicesInteractive() {
		s.eng.SelectChoice(n - 1)
		return
	}

	a, ok := s.keys.Action(msg)
	if !ok {
		return
	}

	// The vocabulary overlay scrolls with the vertical actions.
	if v.Menu == engine.MenuVocab {
		switch a {
		case action.NavigateUp:
			s.vocabOffset--
			return
		case action.NavigateDown:
			s.vocabOffset++
			return
		}
	}

	s.eng.Emit(a)
}

// leave detaches from the engine and swaps in the recap, or pops back to
// the menu when nothing happened.
func (s *DialogueScreen) leave() tea.Cmd {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.recorder != nil && s.errMsg == "" {
		recap := s.recorder.Finish(s.eng.Ledger().Wallet(), time.Now())
		s.recorder = nil
		if !recap.Empty() {
			next := summary.New(recap, s.eng.Words())
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *DialogueScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Stay"},
		}
	}

	v := s.eng.View()
	hint := func(a action.Action, desc string) layout.KeyHint {
		return layout.KeyHint{Key: s.keys.Binding(a).Help().Key, Description: desc}
	}

	if v.Menu != engine.MenuNone {
		hints := []layout.KeyHint{hint(action.Cancel, "Close")}
		if v.Menu == engine.MenuSettings {
			hints = append(hints, hint(action.ToggleTranslation, "Translation"))
		}
		return hints
	}

	var confirm layout.KeyHint
	switch {
	case v.Popup != nil:
		confirm = hint(action.Confirm, "Close")
	case v.Phase == dlg.PhaseQuizFeedback:
		confirm = hint(action.Confirm, "Skip")
	case v.Phase == dlg.PhaseAwaitingChoice:
		confirm = hint(action.Confirm, "Choose")
	case s.eng.Controller().Exhausted():
		confirm = hint(action.Confirm, "End")
	default:
		confirm = hint(action.Confirm, "Next")
	}

	hints := []layout.KeyHint{confirm, {Key: "←↑↓→", Description: "Focus"}}
	if v.Phase == dlg.PhaseAwaitingChoice {
		hints = append(hints, layout.KeyHint{Key: "1-" + strconv.Itoa(len(v.Choices)), Description: "Pick"})
	}
	return append(hints,
		hint(action.ToggleTranslation, "Translate"),
		hint(action.OpenMenuVocab, "Words"),
		hint(action.OpenMenuSettings, "Settings"),
		layout.KeyHint{Key: "Q", Description: "Leave"},
	)
}
