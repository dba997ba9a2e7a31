package vocab

import (
	"sort"
	"time"

	"github.com/abhisek/kotoba/internal/store"
)

// Encounter is the result of recording that a word was shown.
type Encounter struct {
	WordID string

	// First is true only for the call that created the record.
	First bool

	// Progress is a copy of the record after the update.
	Progress WordProgress

	// Transition is set when the mastery tier changed.
	Transition *Transition
}

// EncounterHook reacts to a recorded encounter. Hooks run after the tracker
// has updated its record.
type EncounterHook func(Encounter)

// Tracker owns every word progress record. It has no side effects beyond
// its own map; reactions such as draining energy are attached by callers.
type Tracker struct {
	words map[string]*WordProgress
	now   func() time.Time
}

// NewTracker creates a tracker, loading records from the snapshot if present.
func NewTracker(snap *store.VocabSnapshotData) *Tracker {
	t := &Tracker{
		words: make(map[string]*WordProgress),
		now:   time.Now,
	}
	t.load(snap)
	return t
}

func (t *Tracker) load(snap *store.VocabSnapshotData) {
	if snap == nil {
		return
	}
	for id, d := range snap.Progress {
		if d == nil || d.TimesEncountered < 1 {
			continue
		}
		p := &WordProgress{
			WordID:           id,
			TimesEncountered: d.TimesEncountered,
			TimesTapped:      max(d.TimesTapped, 0),
			ExportedToAnki:   d.ExportedToAnki,
		}
		if ts, err := time.Parse(time.RFC3339, d.FirstSeen); err == nil {
			p.FirstSeen = ts
		}
		if ts, err := time.Parse(time.RFC3339, d.LastSeen); err == nil {
			p.LastSeen = ts
		}
		// Stored mastery is ignored; the counters are authoritative.
		p.Mastery = ComputeMastery(p.TimesEncountered, p.TimesTapped)
		t.words[id] = p
	}
}

// RecordEncounter notes that wordID was shown to the player.
func (t *Tracker) RecordEncounter(wordID string) Encounter {
	now := t.now()

	p, ok := t.words[wordID]
	if !ok {
		p = &WordProgress{
			WordID:           wordID,
			FirstSeen:        now,
			LastSeen:         now,
			TimesEncountered: 1,
			Mastery:          ComputeMastery(1, 0),
		}
		t.words[wordID] = p
		return Encounter{
			WordID:     wordID,
			First:      true,
			Progress:   *p,
			Transition: &Transition{WordID: wordID, From: MasteryNew, To: p.Mastery, Trigger: "encounter"},
		}
	}

	p.TimesEncountered++
	p.LastSeen = now
	transition := p.recompute("encounter")
	return Encounter{WordID: wordID, Progress: *p, Transition: transition}
}

// RecordTap notes that the player asked for the word's definition.
// Returns false without creating anything when the word was never encountered.
func (t *Tracker) RecordTap(wordID string) (*Transition, bool) {
	p, ok := t.words[wordID]
	if !ok {
		return nil, false
	}
	p.TimesTapped++
	return p.recompute("tap"), true
}

// RecordExported flags the word as exported to Anki. The flag is never cleared.
func (t *Tracker) RecordExported(wordID string) bool {
	p, ok := t.words[wordID]
	if !ok {
		return false
	}
	p.ExportedToAnki = true
	return true
}

// Progress returns a copy of the word's record.
func (t *Tracker) Progress(wordID string) (WordProgress, bool) {
	p, ok := t.words[wordID]
	if !ok {
		return WordProgress{}, false
	}
	return *p, true
}

// All returns copies of every record ordered by word ID.
func (t *Tracker) All() []WordProgress {
	out := make([]WordProgress, 0, len(t.words))
	for _, p := range t.words {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordID < out[j].WordID })
	return out
}

// Count returns the number of words ever encountered.
func (t *Tracker) Count() int {
	return len(t.words)
}

// CountByMastery tallies records per tier.
func (t *Tracker) CountByMastery() map[Mastery]int {
	counts := make(map[Mastery]int)
	for _, p := range t.words {
		counts[p.Mastery]++
	}
	return counts
}

// Reset drops every record. Used when a new game starts.
func (t *Tracker) Reset() {
	t.words = make(map[string]*WordProgress)
}

// SnapshotData exports all records for persistence.
func (t *Tracker) SnapshotData() *store.VocabSnapshotData {
	data := &store.VocabSnapshotData{
		Progress: make(map[string]*store.WordProgressData, len(t.words)),
	}
	for id, p := range t.words {
		data.Progress[id] = &store.WordProgressData{
			WordID:           id,
			FirstSeen:        p.FirstSeen.Format(time.RFC3339),
			LastSeen:         p.LastSeen.Format(time.RFC3339),
			TimesEncountered: p.TimesEncountered,
			TimesTapped:      p.TimesTapped,
			Mastery:          string(p.Mastery),
			ExportedToAnki:   p.ExportedToAnki,
		}
	}
	return data
}
