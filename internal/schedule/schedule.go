// Package schedule provides the single asynchronous primitive used by the
// dialogue flow: run a callback after a delay.
package schedule

import (
	"sort"
	"time"
)

// Scheduler runs fn once after d has elapsed. Implementations must invoke fn
// on the same goroutine that drives the engine.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts an ordinary function to the Scheduler interface.
type Func func(d time.Duration, fn func())

// After calls f(d, fn).
func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}

type pending struct {
	due time.Time
	seq int
	fn  func()
}

// Manual is a virtual-clock scheduler. Callbacks only run when Advance or
// Flush is called, which makes timed flows deterministic in tests and
// headless runs.
type Manual struct {
	now     time.Time
	seq     int
	pending []pending
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// After queues fn to run once the virtual clock passes now+d.
func (m *Manual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.pending = append(m.pending, pending{due: m.now.Add(d), seq: m.seq, fn: fn})
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Pending returns the number of callbacks that have not fired yet.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d and fires every callback that became
// due, in due-time order. Callbacks scheduled while advancing fire in the
// same call if they fall inside the window.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for {
		i := m.nextDue(target)
		if i < 0 {
			break
		}
		p := m.pending[i]
		m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
		if p.due.After(m.now) {
			m.now = p.due
		}
		p.fn()
		fired++
	}
	m.now = target
	return fired
}

// Flush fires everything pending regardless of due time.
func (m *Manual) Flush() int {
	fired := 0
	for len(m.pending) > 0 {
		latest := m.now
		for _, p := range m.pending {
			if p.due.After(latest) {
				latest = p.due
			}
		}
		fired += m.Advance(latest.Sub(m.now))
	}
	return fired
}

// nextDue returns the index of the earliest callback due at or before target,
// or -1.
func (m *Manual) nextDue(target time.Time) int {
	if len(m.pending) == 0 {
		return -1
	}
	idx := make([]int, len(m.pending))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := m.pending[idx[a]], m.pending[idx[b]]
		if !pa.due.Equal(pb.due) {
			return pa.due.Before(pb.due)
		}
		return pa.seq < pb.seq
	})
	first := idx[0]
	if m.pending[first].due.After(target) {
		return -1
	}
	return first
}
