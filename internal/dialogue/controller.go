package dialogue

import (
	"time"

	"github.com/abhisek/kotoba/internal/schedule"
)

// Controller is the dialogue and quiz state machine. It is not safe for
// concurrent use; every call, including scheduler callbacks, must happen on
// the goroutine that owns the engine.
type Controller struct {
	catalog  *Catalog
	sched    schedule.Scheduler
	timing   Timing
	rewarder QuizRewarder

	listeners []listenerEntry
	nextID    int

	active    *Node
	lineIndex int
	phase     Phase
	feedback  *Feedback

	// pending is the transition that ends the current feedback window.
	pending func()

	quizID        string
	wrongThisQuiz bool

	// version increases on every transition. Timer callbacks remember the
	// version they were scheduled under and do nothing if it moved.
	version uint64
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewController creates an idle controller.
func NewController(catalog *Catalog, sched schedule.Scheduler, timing Timing) *Controller {
	return &Controller{
		catalog: catalog,
		sched:   sched,
		timing:  timing,
	}
}

// SetRewarder installs the quiz rewarder. Without one, correct answers earn nothing.
func (c *Controller) SetRewarder(r QuizRewarder) {
	c.rewarder = r
}

// Subscribe registers fn for controller events and returns its unsubscribe
// function. Unsubscribing twice is harmless.
func (c *Controller) Subscribe(fn Listener) func() {
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		kept := make([]listenerEntry, 0, len(c.listeners))
		for _, l := range c.listeners {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		c.listeners = kept
	}
}

// Start opens the node at line 0. Unknown IDs are ignored and return false.
func (c *Controller) Start(nodeID string) bool {
	n, ok := c.catalog.Node(nodeID)
	if !ok {
		return false
	}
	c.enter(n)
	return true
}

// AdvanceLine moves to the next line. It does nothing on the final line or
// outside PhaseLineActive.
func (c *Controller) AdvanceLine() bool {
	if c.phase != PhaseLineActive || c.lineIndex >= c.active.LastLine() {
		return false
	}
	c.lineIndex++
	c.phase = c.linePhase()
	c.version++
	c.emit(Event{Kind: EventLineShown, Node: c.active, LineIndex: c.lineIndex})
	return true
}

// SelectChoice resolves the choice at index. Only valid in PhaseAwaitingChoice.
func (c *Controller) SelectChoice(index int) (Selection, bool) {
	if c.phase != PhaseAwaitingChoice || index < 0 || index >= len(c.active.Choices) {
		return Selection{}, false
	}

	n := c.active
	choice := n.Choices[index]
	sel := Selection{NodeID: n.ID, ChoiceIndex: index, Choice: choice}

	if !n.IsQuiz() {
		c.emit(Event{Kind: EventChoiceSelected, Node: n, LineIndex: c.lineIndex, Selection: &sel})
		c.follow(choice.LeadsTo)
		return sel, true
	}

	sel.Quiz = true
	sel.QuizID = c.quizID
	sel.FirstTry = !c.wrongThisQuiz

	if choice.Correct() {
		sel.Outcome = OutcomeCorrect
		if c.rewarder != nil {
			sel.Reward = c.rewarder.ResolveQuiz(c.quizID, sel.FirstTry, n.QuizBonus)
		}
		leadsTo := choice.LeadsTo
		c.enterFeedback(Feedback{ChoiceIndex: index, Outcome: OutcomeCorrect, Bonus: sel.Reward.Bonus},
			c.timing.CorrectFeedback, func() { c.follow(leadsTo) })
	} else {
		sel.Outcome = OutcomeWrong
		c.wrongThisQuiz = true
		c.enterFeedback(Feedback{ChoiceIndex: index, Outcome: OutcomeWrong},
			c.timing.WrongFeedback, func() { c.enter(n) })
	}

	c.emit(Event{Kind: EventChoiceSelected, Node: n, LineIndex: c.lineIndex, Selection: &sel})
	c.emit(Event{Kind: EventQuizAnswered, Node: n, LineIndex: c.lineIndex, Selection: &sel})
	return sel, true
}

// Skip ends the feedback window now. The timer that was scheduled for it
// becomes stale and is dropped when it fires.
func (c *Controller) Skip() bool {
	if c.phase != PhaseQuizFeedback {
		return false
	}
	c.resolvePending()
	return true
}

// Close returns to idle and clears all quiz state. Always allowed.
func (c *Controller) Close() {
	wasActive := c.active != nil
	c.active = nil
	c.lineIndex = 0
	c.phase = PhaseIdle
	c.feedback = nil
	c.pending = nil
	c.quizID = ""
	c.wrongThisQuiz = false
	c.version++
	if wasActive {
		c.emit(Event{Kind: EventClosed})
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Active reports whether a dialogue is open.
func (c *Controller) Active() bool { return c.active != nil }

// Node returns the active node, or nil when idle.
func (c *Controller) Node() *Node { return c.active }

// LineIndex returns the line cursor.
func (c *Controller) LineIndex() int { return c.lineIndex }

// Line returns the current line.
func (c *Controller) Line() (Line, bool) {
	if c.active == nil || c.lineIndex >= len(c.active.Lines) {
		return Line{}, false
	}
	return c.active.Lines[c.lineIndex], true
}

// ChoicesVisible is true once the last line of a node with choices is
// reached, including while feedback is shown.
func (c *Controller) ChoicesVisible() bool {
	return c.phase == PhaseAwaitingChoice || c.phase == PhaseQuizFeedback
}

// ChoicesInteractive is true only while a choice can be selected.
func (c *Controller) ChoicesInteractive() bool {
	return c.phase == PhaseAwaitingChoice
}

// Exhausted is true on the final line of a node without choices.
func (c *Controller) Exhausted() bool {
	return c.phase == PhaseLineActive && c.lineIndex >= c.active.LastLine()
}

// IsQuizActive reports whether the active node is a quiz.
func (c *Controller) IsQuizActive() bool {
	return c.active != nil && c.active.IsQuiz()
}

// Feedback returns the verdict being displayed, if any.
func (c *Controller) Feedback() (Feedback, bool) {
	if c.feedback == nil {
		return Feedback{}, false
	}
	return *c.feedback, true
}

// WrongThisQuiz reports whether the current quiz has been answered wrongly.
func (c *Controller) WrongThisQuiz() bool { return c.wrongThisQuiz }

// QuizID returns the quiz the wrong-answer flag is scoped to.
func (c *Controller) QuizID() string { return c.quizID }

// Version returns the transition counter.
func (c *Controller) Version() uint64 { return c.version }

// enter opens n at line 0. The wrong-answer flag survives only when the
// quiz ID is unchanged, which is the case for a retry.
func (c *Controller) enter(n *Node) {
	nextQuiz := ""
	if n.IsQuiz() {
		nextQuiz = n.EffectiveQuizID()
	}
	if nextQuiz != c.quizID {
		c.quizID = nextQuiz
		c.wrongThisQuiz = false
	}

	c.active = n
	c.lineIndex = 0
	c.feedback = nil
	c.pending = nil
	c.phase = c.linePhase()
	c.version++

	c.emit(Event{Kind: EventNodeEntered, Node: n})
	// A listener may have closed or redirected the dialogue.
	if c.active != n || c.lineIndex != 0 {
		return
	}
	c.emit(Event{Kind: EventLineShown, Node: n, LineIndex: 0})
}

// follow enters the target node, or closes when it does not exist.
func (c *Controller) follow(nodeID string) {
	if n, ok := c.catalog.Node(nodeID); ok {
		c.enter(n)
		return
	}
	c.Close()
}

func (c *Controller) linePhase() Phase {
	if c.lineIndex >= c.active.LastLine() && len(c.active.Choices) > 0 {
		return PhaseAwaitingChoice
	}
	return PhaseLineActive
}

func (c *Controller) enterFeedback(fb Feedback, d time.Duration, next func()) {
	c.phase = PhaseQuizFeedback
	c.feedback = &fb
	c.pending = next
	c.version++

	stamp := c.version
	c.sched.After(d, func() {
		if c.version != stamp {
			return
		}
		c.resolvePending()
	})
}

func (c *Controller) resolvePending() {
	next := c.pending
	c.pending = nil
	c.feedback = nil
	if next == nil {
		c.Close()
		return
	}
	next()
}

func (c *Controller) emit(e Event) {
	if e.Version == 0 {
		e.Version = c.version
	}
	snapshot := c.listeners
	for _, l := range snapshot {
		l.fn(e)
	}
}
