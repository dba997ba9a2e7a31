package store

import (
	"context"
	"time"
)

// CurrentSnapshotVersion is written into every saved snapshot.
const CurrentSnapshotVersion = 1

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full player state at a point in time.
// The store persists it verbatim; domain packages own the conversion.
type SnapshotData struct {
	Version  int                   `json:"version"`
	Vocab    *VocabSnapshotData    `json:"vocab,omitempty"`
	Economy  *EconomySnapshotData  `json:"economy,omitempty"`
	Settings *SettingsSnapshotData `json:"settings,omitempty"`
}

// VocabSnapshotData holds every word progress record keyed by word ID.
type VocabSnapshotData struct {
	Progress map[string]*WordProgressData `json:"progress"`
}

// WordProgressData is the persisted form of a single word's progress.
// Mastery is informational only: it is recomputed from the counters on load.
type WordProgressData struct {
	WordID           string `json:"word_id"`
	FirstSeen        string `json:"first_seen"` // RFC3339
	LastSeen         string `json:"last_seen"`  // RFC3339
	TimesEncountered int    `json:"times_encountered"`
	TimesTapped      int    `json:"times_tapped"`
	Mastery          string `json:"mastery"`
	ExportedToAnki   bool   `json:"exported_to_anki"`
}

// EconomySnapshotData holds the wallet and quest flags.
type EconomySnapshotData struct {
	Energy           int      `json:"energy"`
	MaxEnergy        int      `json:"max_energy"`
	Currency         int      `json:"currency"`
	CompletedQuizzes []string `json:"completed_quizzes,omitempty"`
}

// SettingsSnapshotData holds presentation toggles and the open menu.
type SettingsSnapshotData struct {
	ShowTranslation bool   `json:"show_translation"`
	ActiveMenu      string `json:"active_menu,omitempty"`
}

// Snapshot represents a point-in-time capture of player state.
type Snapshot struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages player state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// QuizEventData captures a single answered quiz choice.
type QuizEventData struct {
	SessionID   string
	QuizID      string
	NodeID      string
	ChoiceIndex int
	Correct     bool
	FirstTry    bool
	Bonus       int
}

// QuizEventRecord is a persisted quiz event.
type QuizEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// LedgerEventData captures a change to the player's wallet.
type LedgerEventData struct {
	SessionID string
	Resource  string // "energy" or "currency"
	Delta     int
	Reason    string
}

// LedgerEventRecord is a persisted ledger event.
type LedgerEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	LedgerEventData
}

// QuizStat aggregates answers for one quiz.
type QuizStat struct {
	QuizID   string
	Attempts int
	Correct  int
	Bonus    int
}

// Accuracy returns Correct/Attempts, or 0 when nothing was answered.
func (s QuizStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendQuizEvent(ctx context.Context, data QuizEventData) error
	AppendLedgerEvent(ctx context.Context, data LedgerEventData) error
	QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error)
	QueryLedgerEvents(ctx context.Context, opts QueryOpts) ([]LedgerEventRecord, error)

	// QuizStats returns per-quiz answer totals ordered by quiz ID.
	QuizStats(ctx context.Context) ([]QuizStat, error)
}
