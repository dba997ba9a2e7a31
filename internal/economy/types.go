// Package economy holds the player's energy and currency and the rules that
// react to vocabulary encounters and quiz answers.
package economy

import (
	"sort"
	"time"
)

// Resource names a wallet balance.
type Resource string

const (
	Energy   Resource = "energy"
	Currency Resource = "currency"
)

// Icon returns the display icon for the resource.
func (r Resource) Icon() string {
	switch r {
	case Energy:
		return "⚡"
	case Currency:
		return "🪙"
	default:
		return "•"
	}
}

// DisplayName returns a human-readable label.
func (r Resource) DisplayName() string {
	switch r {
	case Energy:
		return "Energy"
	case Currency:
		return "Coins"
	default:
		return string(r)
	}
}

// Wallet is the player's balances.
type Wallet struct {
	Energy    int
	MaxEnergy int
	Currency  int
}

// EnergyRatio returns Energy/MaxEnergy in [0, 1].
func (w Wallet) EnergyRatio() float64 {
	if w.MaxEnergy <= 0 {
		return 0
	}
	return float64(w.Energy) / float64(w.MaxEnergy)
}

// Entry is one journaled balance change.
type Entry struct {
	Resource Resource
	Delta    int
	Reason   string
	At       time.Time
}

// Entry reasons.
const (
	ReasonFirstEncounter = "first-encounter"
	ReasonQuizBonus      = "quiz-bonus"
	ReasonRestore        = "restore"
)

// Config holds the economy tuning values.
type Config struct {
	MaxEnergy        int
	StartEnergy      int
	EncounterCost    int
	DefaultQuizBonus int
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MaxEnergy:        100,
		StartEnergy:      100,
		EncounterCost:    1,
		DefaultQuizBonus: 10,
	}
}

// QuestLog is the set of completed quiz IDs.
type QuestLog struct {
	done map[string]bool
}

// NewQuestLog creates a quest log holding ids.
func NewQuestLog(ids ...string) *QuestLog {
	q := &QuestLog{done: make(map[string]bool, len(ids))}
	for _, id := range ids {
		q.done[id] = true
	}
	return q
}

// Complete marks id complete and reports whether it was newly set.
func (q *QuestLog) Complete(id string) bool {
	if q.done[id] {
		return false
	}
	q.done[id] = true
	return true
}

// IsComplete reports whether id has been completed.
func (q *QuestLog) IsComplete(id string) bool {
	return q.done[id]
}

// IDs returns the completed quiz IDs in sorted order.
func (q *QuestLog) IDs() []string {
	ids := make([]string, 0, len(q.done))
	for id := range q.done {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of completed quizzes.
func (q *QuestLog) Len() int {
	return len(q.done)
}
