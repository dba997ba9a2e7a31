package economy

import (
	"time"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

var _ dialogue.QuizRewarder = (*Ledger)(nil)

// Ledger owns the wallet and the quest log and journals every change.
type Ledger struct {
	cfg     Config
	wallet  Wallet
	quests  *QuestLog
	entries []Entry
	now     func() time.Time
}

// NewLedger creates a ledger, restoring balances from snap when present.
func NewLedger(cfg Config, snap *store.EconomySnapshotData) *Ledger {
	l := &Ledger{cfg: cfg, now: time.Now}
	l.Reset()
	if snap != nil {
		l.wallet.MaxEnergy = cfg.MaxEnergy
		if snap.MaxEnergy > 0 {
			l.wallet.MaxEnergy = snap.MaxEnergy
		}
		l.wallet.Energy = clamp(snap.Energy, 0, l.wallet.MaxEnergy)
		l.wallet.Currency = max(snap.Currency, 0)
		l.quests = NewQuestLog(snap.CompletedQuizzes...)
	}
	return l
}

// Wallet returns the current balances.
func (l *Ledger) Wallet() Wallet {
	return l.wallet
}

// Quests returns the quest log.
func (l *Ledger) Quests() *QuestLog {
	return l.quests
}

// EnergyDrainHook returns an encounter hook that charges EncounterCost
// energy for each first encounter, except while inTutorial reports true.
func (l *Ledger) EnergyDrainHook(inTutorial func() bool) vocab.EncounterHook {
	return func(enc vocab.Encounter) {
		if !enc.First {
			return
		}
		if inTutorial != nil && inTutorial() {
			return
		}
		l.drainEnergy(l.cfg.EncounterCost, ReasonFirstEncounter+":"+enc.WordID)
	}
}

// ResolveQuiz grants the bonus for a correct answer on the first try of a
// quiz that was never completed, then marks the quiz complete. A zero bonus
// falls back to the configured default.
func (l *Ledger) ResolveQuiz(quizID string, firstTry bool, bonus int) dialogue.Reward {
	if bonus <= 0 {
		bonus = l.cfg.DefaultQuizBonus
	}
	alreadyDone := l.quests.IsComplete(quizID)
	newly := l.quests.Complete(quizID)

	if !firstTry || alreadyDone {
		return dialogue.Reward{FirstCompletion: newly}
	}
	l.grant(Currency, bonus, ReasonQuizBonus+":"+quizID)
	return dialogue.Reward{Bonus: bonus, FirstCompletion: newly}
}

// RestoreEnergy adds up to n energy without exceeding MaxEnergy and returns
// the amount actually restored.
func (l *Ledger) RestoreEnergy(n int) int {
	if n <= 0 {
		return 0
	}
	room := l.wallet.MaxEnergy - l.wallet.Energy
	n = min(n, room)
	if n <= 0 {
		return 0
	}
	l.grant(Energy, n, ReasonRestore)
	return n
}

// Reset restores the starting balances and clears quests and the journal.
func (l *Ledger) Reset() {
	l.wallet = Wallet{
		Energy:    clamp(l.cfg.StartEnergy, 0, l.cfg.MaxEnergy),
		MaxEnergy: l.cfg.MaxEnergy,
	}
	l.quests = NewQuestLog()
	l.entries = nil
}

// Entries returns a copy of the journal.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// DrainEntries returns the journal and empties it.
func (l *Ledger) DrainEntries() []Entry {
	out := l.entries
	l.entries = nil
	return out
}

// SnapshotData exports balances and quests for persistence.
func (l *Ledger) SnapshotData() *store.EconomySnapshotData {
	return &store.EconomySnapshotData{
		Energy:           l.wallet.Energy,
		MaxEnergy:        l.wallet.MaxEnergy,
		Currency:         l.wallet.Currency,
		CompletedQuizzes: l.quests.IDs(),
	}
}

// drainEnergy removes up to n energy, flooring at zero.
func (l *Ledger) drainEnergy(n int, reason string) {
	n = min(n, l.wallet.Energy)
	if n <= 0 {
		return
	}
	l.wallet.Energy -= n
	l.record(Energy, -n, reason)
}

func (l *Ledger) grant(r Resource, n int, reason string) {
	switch r {
	case Energy:
		l.wallet.Energy += n
	case Currency:
		l.wallet.Currency += n
	}
	l.record(r, n, reason)
}

func (l *Ledger) record(r Resource, delta int, reason string) {
	l.entries = append(l.entries, Entry{Resource: r, Delta: delta, Reason: reason, At: l.now()})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
