// Package engine owns one play-through: vocabulary progress, the dialogue
// controller, the economy and the focus state, wired to a single action bus.
package engine

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/action"
	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/focus"
	"github.com/abhisek/kotoba/internal/schedule"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

// Menu identifies an overlay menu.
type Menu string

const (
	MenuNone     Menu = ""
	MenuVocab    Menu = "vocab"
	MenuSettings Menu = "settings"
)

// Deps are the collaborators and tuning an engine is built from.
type Deps struct {
	Words     *vocab.Catalog
	Nodes     *dialogue.Catalog
	Scheduler schedule.Scheduler
	Timing    dialogue.Timing
	Economy   economy.Config

	// Snapshot restores a saved game when non-nil.
	Snapshot *store.SnapshotData

	// Logger receives debug traces. Nil discards them.
	Logger *logrus.Logger
}

// Popup is the definition shown after a word is tapped.
type Popup struct {
	WordID   string
	Word     vocab.Word
	Known    bool // Word came from the catalog
	Progress vocab.WordProgress
}

// Engine is the explicit context object for a game. It is not safe for
// concurrent use.
type Engine struct {
	log *logrus.Entry

	bus     *action.Bus
	words   *vocab.Catalog
	nodes   *dialogue.Catalog
	tracker *vocab.Tracker
	ctrl    *dialogue.Controller
	ledger  *economy.Ledger
	hooks   []vocab.EncounterHook

	listeners []changeEntry
	nextID    int

	focusID         string
	showTranslation bool
	menu            Menu
	popup           *Popup
	tutorial        bool

	unsubscribe []func()
}

type changeEntry struct {
	id int
	fn func(Change)
}

// New builds an engine from deps. It is the only construction point; every
// collaborator is created here and owned by the returned engine.
func New(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	words := deps.Words
	if words == nil {
		words = vocab.NewCatalog(nil)
	}
	nodes := deps.Nodes
	if nodes == nil {
		nodes = dialogue.NewCatalog(nil)
	}
	sched := deps.Scheduler
	if sched == nil {
		sched = schedule.NewManual(time.Time{})
	}

	var (
		vocabSnap    *store.VocabSnapshotData
		economySnap  *store.EconomySnapshotData
		settingsSnap *store.SettingsSnapshotData
	)
	if deps.Snapshot != nil {
		vocabSnap = deps.Snapshot.Vocab
		economySnap = deps.Snapshot.Economy
		settingsSnap = deps.Snapshot.Settings
	}

	e := &Engine{
		log:     logger.WithField("component", "engine"),
		bus:     action.NewBus(),
		words:   words,
		nodes:   nodes,
		tracker: vocab.NewTracker(vocabSnap),
		ctrl:    dialogue.NewController(nodes, sched, deps.Timing),
		ledger:  economy.NewLedger(deps.Economy, economySnap),
	}
	if settingsSnap != nil {
		e.showTranslation = settingsSnap.ShowTranslation
		switch m := Menu(settingsSnap.ActiveMenu); m {
		case MenuVocab, MenuSettings:
			e.menu = m
		}
	}

	e.ctrl.SetRewarder(e.ledger)
	e.hooks = append(e.hooks, e.ledger.EnergyDrainHook(e.InTutorial))

	e.unsubscribe = append(e.unsubscribe,
		e.bus.Subscribe(e.handleAction),
		e.ctrl.Subscribe(e.handleDialogueEvent),
	)
	return e
}

// Close detaches the engine from its bus and controller.
func (e *Engine) Close() {
	for _, u := range e.unsubscribe {
		u()
	}
	e.unsubscribe = nil
}

// Bus returns the action bus input adapters emit on.
func (e *Engine) Bus() *action.Bus { return e.bus }

// Emit publishes a on the engine's bus.
func (e *Engine) Emit(a action.Action) { e.bus.Emit(a) }

// Tracker returns the vocabulary tracker.
func (e *Engine) Tracker() *vocab.Tracker { return e.tracker }

// Controller returns the dialogue controller.
func (e *Engine) Controller() *dialogue.Controller { return e.ctrl }

// Ledger returns the economy ledger.
func (e *Engine) Ledger() *economy.Ledger { return e.ledger }

// Words returns the vocabulary catalog.
func (e *Engine) Words() *vocab.Catalog { return e.words }

// Nodes returns the dialogue catalog.
func (e *Engine) Nodes() *dialogue.Catalog { return e.nodes }

// AddEncounterHook registers fn to run after every recorded encounter.
func (e *Engine) AddEncounterHook(fn vocab.EncounterHook) {
	e.hooks = append(e.hooks, fn)
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe function.
func (e *Engine) Subscribe(fn func(Change)) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, changeEntry{id: id, fn: fn})
	return func() {
		kept := make([]changeEntry, 0, len(e.listeners))
		for _, l := range e.listeners {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		e.listeners = kept
	}
}

// StartDialogue opens a node. Unknown IDs are ignored.
func (e *Engine) StartDialogue(nodeID string) bool {
	ok := e.ctrl.Start(nodeID)
	if !ok {
		e.log.WithField("node", nodeID).Debug("start ignored: unknown node")
	}
	return ok
}

// CloseDialogue closes any open dialogue.
func (e *Engine) CloseDialogue() {
	e.ctrl.Close()
}

// SetTutorial marks the introductory context in which encounters are free.
func (e *Engine) SetTutorial(on bool) {
	e.tutorial = on
}

// InTutorial reports whether encounters are currently free, either because
// of SetTutorial or because the active node is a tutorial node.
func (e *Engine) InTutorial() bool {
	if e.tutorial {
		return true
	}
	n := e.ctrl.Node()
	return n != nil && n.Tutorial
}

// ResetForNewGame clears all progress and returns to a fresh state.
func (e *Engine) ResetForNewGame() {
	e.ctrl.Close()
	e.tracker.Reset()
	e.ledger.Reset()
	e.focusID = ""
	e.popup = nil
	e.menu = MenuNone
	e.showTranslation = false
	e.tutorial = false
	e.log.Info("new game")
	e.notify(Change{Kind: ChangeReset})
}

// MarkExported flags a word as exported to Anki.
func (e *Engine) MarkExported(wordID string) bool {
	ok := e.tracker.RecordExported(wordID)
	if ok {
		e.notify(Change{Kind: ChangeVocab})
	}
	return ok
}

// TapWord taps the n-th word of the current line by pointer. Pointer input
// leaves directional mode, so focus is cleared.
func (e *Engine) TapWord(n int) bool {
	e.clearFocus()
	return e.tapWordAt(n)
}

// SelectChoice selects a choice by pointer and clears focus.
func (e *Engine) SelectChoice(n int) bool {
	e.clearFocus()
	_, ok := e.ctrl.SelectChoice(n)
	return ok
}

// FocusID returns the focused item, or "" when nothing is focused.
func (e *Engine) FocusID() string { return e.focusID }

// ShowTranslation reports whether English lines are shown.
func (e *Engine) ShowTranslation() bool { return e.showTranslation }

// ActiveMenu returns the open overlay menu.
func (e *Engine) ActiveMenu() Menu { return e.menu }

// Popup returns the open definition popup.
func (e *Engine) Popup() (Popup, bool) {
	if e.popup == nil {
		return Popup{}, false
	}
	return *e.popup, true
}

// Items returns the focusable elements for the current state. Choices are
// included only while they can be selected, even on a node without lines.
func (e *Engine) Items() []focus.Item {
	if !e.ctrl.Active() {
		return nil
	}
	words := 0
	if line, ok := e.ctrl.Line(); ok {
		words = len(line.Words())
	}
	choices := 0
	if e.ctrl.ChoicesInteractive() {
		choices = len(e.ctrl.Node().Choices)
	}
	return focus.Build(words, choices)
}

// Snapshot exports the game state for persistence.
func (e *Engine) Snapshot() store.SnapshotData {
	return store.SnapshotData{
		Version: store.CurrentSnapshotVersion,
		Vocab:   e.tracker.SnapshotData(),
		Economy: e.ledger.SnapshotData(),
		Settings: &store.SettingsSnapshotData{
			ShowTranslation: e.showTranslation,
			ActiveMenu:      string(e.menu),
		},
	}
}

func (e *Engine) handleAction(a action.Action) {
	e.log.WithFields(logrus.Fields{"action": a, "phase": e.ctrl.Phase()}).Debug("action")

	if e.menu != MenuNone {
		e.handleMenuAction(a)
		return
	}

	switch a {
	case action.Confirm:
		e.confirm()
	case action.Cancel:
		e.cancel()
	case action.NavigateUp:
		e.navigate(focus.Up)
	case action.NavigateDown:
		e.navigate(focus.Down)
	case action.NavigateLeft:
		e.navigate(focus.Left)
	case action.NavigateRight:
		e.navigate(focus.Right)
	case action.ToggleTranslation:
		e.showTranslation = !e.showTranslation
		e.notify(Change{Kind: ChangeSettings})
	case action.OpenMenuVocab:
		e.openMenu(MenuVocab)
	case action.OpenMenuSettings:
		e.openMenu(MenuSettings)
	}
}

// handleMenuAction handles input while a menu covers the dialogue. Only
// closing and switching menus are possible.
func (e *Engine) handleMenuAction(a action.Action) {
	switch a {
	case action.Cancel:
		e.closeMenu()
	case action.OpenMenuVocab:
		e.toggleMenu(MenuVocab)
	case action.OpenMenuSettings:
		e.toggleMenu(MenuSettings)
	case action.ToggleTranslation:
		if e.menu == MenuSettings {
			e.showTranslation = !e.showTranslation
			e.notify(Change{Kind: ChangeSettings})
		}
	}
}

func (e *Engine) confirm() {
	if e.popup != nil {
		e.dismissPopup()
		return
	}
	if !e.ctrl.Active() {
		return
	}
	if e.ctrl.Phase() == dialogue.PhaseQuizFeedback {
		e.ctrl.Skip()
		return
	}

	if e.focusID != "" {
		if it, ok := focus.Find(e.Items(), e.focusID); ok {
			switch it.Kind {
			case focus.KindWord:
				e.tapWordAt(it.Index)
			case focus.KindChoice:
				e.ctrl.SelectChoice(it.Index)
			}
			return
		}
	}

	switch {
	case e.ctrl.ChoicesInteractive():
		// Nothing focused yet: land on the first choice.
		e.setFocus(focus.ItemID(focus.KindChoice, 0))
	case e.ctrl.Exhausted():
		e.ctrl.Close()
	default:
		e.ctrl.AdvanceLine()
	}
}

func (e *Engine) cancel() {
	switch {
	case e.popup != nil:
		e.dismissPopup()
	case e.focusID != "":
		e.clearFocus()
	}
}

func (e *Engine) navigate(dir focus.Direction) {
	if e.popup != nil {
		e.popup = nil
		e.notify(Change{Kind: ChangePopup})
	}
	next := focus.Next(e.Items(), e.focusID, dir)
	e.setFocus(next)
}

func (e *Engine) tapWordAt(n int) bool {
	line, ok := e.ctrl.Line()
	if !ok {
		return false
	}
	words := line.Words()
	if n < 0 || n >= len(words) {
		return false
	}
	id := words[n].WordID

	transition, recorded := e.tracker.RecordTap(id)
	w, known := e.words.Lookup(id)
	progress, _ := e.tracker.Progress(id)
	e.popup = &Popup{WordID: id, Word: w, Known: known, Progress: progress}

	e.log.WithFields(logrus.Fields{"word": id, "recorded": recorded}).Debug("word tapped")
	if recorded {
		e.notify(Change{Kind: ChangeVocab, WordID: id, Transition: transition})
	}
	e.notify(Change{Kind: ChangePopup, WordID: id})
	return true
}

func (e *Engine) handleDialogueEvent(ev dialogue.Event) {
	switch ev.Kind {
	case dialogue.EventNodeEntered:
		e.resetLineState()
		if ev.Node.SpeakerWordID != "" {
			e.encounter(ev.Node.SpeakerWordID)
		}
	case dialogue.EventLineShown:
		e.resetLineState()
		if ev.LineIndex < len(ev.Node.Lines) {
			for _, id := range ev.Node.Lines[ev.LineIndex].WordIDs() {
				e.encounter(id)
			}
		}
	case dialogue.EventQuizAnswered:
		e.clearFocus()
		e.log.WithFields(logrus.Fields{
			"quiz":      ev.Selection.QuizID,
			"outcome":   ev.Selection.Outcome,
			"first_try": ev.Selection.FirstTry,
			"bonus":     ev.Selection.Reward.Bonus,
		}).Debug("quiz answered")
		if ev.Selection.Reward.Bonus > 0 {
			e.notify(Change{Kind: ChangeEconomy})
		}
	case dialogue.EventClosed:
		e.resetLineState()
	}
	e.notify(Change{Kind: ChangeDialogue, Event: &ev})
}

// resetLineState drops focus and popup whenever the line or node changes.
func (e *Engine) resetLineState() {
	e.focusID = ""
	e.popup = nil
}

func (e *Engine) encounter(wordID string) {
	enc := e.tracker.RecordEncounter(wordID)
	before := e.ledger.Wallet()
	for _, h := range e.hooks {
		h(enc)
	}
	if enc.Transition != nil {
		e.log.WithFields(logrus.Fields{
			"word": wordID,
			"from": enc.Transition.From,
			"to":   enc.Transition.To,
		}).Debug("mastery changed")
	}
	e.notify(Change{Kind: ChangeVocab, WordID: wordID, Encounter: &enc, Transition: enc.Transition})
	if e.ledger.Wallet() != before {
		e.notify(Change{Kind: ChangeEconomy})
	}
}

func (e *Engine) setFocus(id string) {
	if id == e.focusID {
		return
	}
	e.focusID = id
	e.notify(Change{Kind: ChangeFocus})
}

func (e *Engine) clearFocus() {
	e.setFocus("")
}

func (e *Engine) dismissPopup() {
	e.popup = nil
	e.notify(Change{Kind: ChangePopup})
}

func (e *Engine) openMenu(m Menu) {
	e.menu = m
	e.popup = nil
	e.notify(Change{Kind: ChangeMenu})
}

func (e *Engine) toggleMenu(m Menu) {
	if e.menu == m {
		e.closeMenu()
		return
	}
	e.openMenu(m)
}

func (e *Engine) closeMenu() {
	e.menu = MenuNone
	e.notify(Change{Kind: ChangeMenu})
}

func (e *Engine) notify(c Change) {
	snapshot := e.listeners
	for _, l := range snapshot {
		l.fn(c)
	}
}
