package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/schedule"
)

// timerFiredMsg carries a scheduled callback back onto the update loop.
type timerFiredMsg struct {
	fn func()
}

// tickScheduler implements schedule.Scheduler with tea.Tick. Callbacks
// registered during an update are collected and handed to the runtime by
// Drain; they run later inside Update, never on another goroutine.
type tickScheduler struct {
	pending []tea.Cmd
}

var _ schedule.Scheduler = (*tickScheduler)(nil)

func (s *tickScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{fn: fn}
	}))
}

// Drain returns the ticks registered since the last call.
func (s *tickScheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
