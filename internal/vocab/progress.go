package vocab

import "time"

// WordProgress is the per-word progress record.
type WordProgress struct {
	WordID           string
	FirstSeen        time.Time
	LastSeen         time.Time
	TimesEncountered int
	TimesTapped      int
	Mastery          Mastery
	ExportedToAnki   bool
}

// recompute refreshes the derived mastery and returns a transition when it
// changed.
func (p *WordProgress) recompute(trigger string) *Transition {
	next := ComputeMastery(p.TimesEncountered, p.TimesTapped)
	if next == p.Mastery {
		return nil
	}
	t := &Transition{WordID: p.WordID, From: p.Mastery, To: next, Trigger: trigger}
	p.Mastery = next
	return t
}
