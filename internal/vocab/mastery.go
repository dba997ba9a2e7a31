package vocab

// Mastery is a coarse familiarity tier derived from encounter and tap counts.
type Mastery string

const (
	MasteryNew      Mastery = "new"
	MasterySeen     Mastery = "seen"
	MasteryLearning Mastery = "learning"
	MasteryKnown    Mastery = "known"
)

const (
	// SeenMaxEncounters is the highest encounter count still rated "seen".
	SeenMaxEncounters = 2

	// KnownMinEncounters is the encounter count at which an untapped word
	// becomes "known".
	KnownMinEncounters = 10
)

// ComputeMastery derives the mastery tier from the two counters. It is pure
// and total. A word that was tapped even once can never become known: the
// tier rewards never having needed the definition, so it is not monotonic
// in encounters.
func ComputeMastery(encountered, tapped int) Mastery {
	switch {
	case encountered <= 0:
		return MasteryNew
	case encountered <= SeenMaxEncounters:
		return MasterySeen
	case encountered >= KnownMinEncounters && tapped == 0:
		return MasteryKnown
	default:
		return MasteryLearning
	}
}

// AllMasteries returns every tier in display order.
func AllMasteries() []Mastery {
	return []Mastery{MasteryNew, MasterySeen, MasteryLearning, MasteryKnown}
}

// Label returns a human-readable tier name.
func (m Mastery) Label() string {
	switch m {
	case MasteryNew:
		return "New"
	case MasterySeen:
		return "Seen"
	case MasteryLearning:
		return "Learning"
	case MasteryKnown:
		return "Known"
	default:
		return string(m)
	}
}

// Icon returns the badge shown next to a word.
func (m Mastery) Icon() string {
	switch m {
	case MasterySeen:
		return "○"
	case MasteryLearning:
		return "◐"
	case MasteryKnown:
		return "●"
	default:
		return "·"
	}
}

// Transition records a mastery change for display and logging.
type Transition struct {
	WordID  string
	From    Mastery
	To      Mastery
	Trigger string // "encounter" or "tap"
}
