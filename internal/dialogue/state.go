package dialogue

import "time"

// Phase is the controller's current state.
type Phase int

const (
	PhaseIdle           Phase = iota // No dialogue open
	PhaseLineActive                  // Showing a line; confirm advances
	PhaseAwaitingChoice              // Last line shown; choices are interactive
	PhaseQuizFeedback                // Showing a quiz verdict until the timer elapses
)

// String returns a short name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLineActive:
		return "line-active"
	case PhaseAwaitingChoice:
		return "awaiting-choice"
	case PhaseQuizFeedback:
		return "quiz-feedback"
	default:
		return "unknown"
	}
}

// Outcome is the verdict on a quiz answer.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
)

// Reward is what the rewarder granted for a correct answer.
type Reward struct {
	// Bonus is the currency granted; zero when suppressed.
	Bonus int

	// FirstCompletion is true when this answer set the quest flag.
	FirstCompletion bool
}

// QuizRewarder decides the reward for a correct quiz answer and records the
// quiz as complete. It is called on every correct answer.
type QuizRewarder interface {
	ResolveQuiz(quizID string, firstTry bool, bonus int) Reward
}

// Feedback describes the verdict currently on screen.
type Feedback struct {
	ChoiceIndex int
	Outcome     Outcome
	Bonus       int
}

// Selection is the result of choosing a response.
type Selection struct {
	NodeID      string
	ChoiceIndex int
	Choice      Choice

	// Quiz is true when the node was a quiz; the fields below apply only then.
	Quiz     bool
	QuizID   string
	Outcome  Outcome
	FirstTry bool
	Reward   Reward
}

// Timing holds the feedback display durations.
type Timing struct {
	CorrectFeedback time.Duration
	WrongFeedback   time.Duration
}

// DefaultTiming returns the standard feedback durations.
func DefaultTiming() Timing {
	return Timing{
		CorrectFeedback: 1500 * time.Millisecond,
		WrongFeedback:   1500 * time.Millisecond,
	}
}

// EventKind identifies a controller event.
type EventKind string

const (
	EventNodeEntered    EventKind = "node-entered"
	EventLineShown      EventKind = "line-shown"
	EventChoiceSelected EventKind = "choice-selected"
	EventQuizAnswered   EventKind = "quiz-answered"
	EventClosed         EventKind = "closed"
)

// Event is delivered synchronously to listeners after each transition.
type Event struct {
	Kind      EventKind
	Node      *Node // nil for EventClosed
	LineIndex int
	Selection *Selection // set for EventChoiceSelected and EventQuizAnswered
	Version   uint64
}

// Listener receives controller events.
type Listener func(Event)
