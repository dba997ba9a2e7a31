package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/store"
)

// saveDueMsg fires when the debounce window of generation gen has passed.
type saveDueMsg struct {
	gen uint64
}

// Saver persists engine state. Every persistent change bumps a generation
// counter; a save runs once the counter has been quiet for the debounce
// window. Quiz answers and wallet entries are appended to the event log on
// each save.
type Saver struct {
	eng       *engine.Engine
	snaps     store.SnapshotRepo
	events    store.EventRepo
	log       *logrus.Entry
	sessionID string
	debounce  time.Duration
	keep      int

	gen       uint64 // bumped on each persistent change
	scheduled uint64 // last generation a tick was requested for
	saved     uint64 // last generation written

	quizzes []store.QuizEventData

	unsubscribe func()
}

// NewSaver subscribes to eng. keep <= 0 disables pruning.
func NewSaver(eng *engine.Engine, snaps store.SnapshotRepo, events store.EventRepo, debounce time.Duration, keep int, logger *logrus.Logger) *Saver {
	s := &Saver{
		eng:       eng,
		snaps:     snaps,
		events:    events,
		sessionID: uuid.New().String(),
		debounce:  debounce,
		keep:      keep,
	}
	s.log = logger.WithFields(logrus.Fields{"component": "saver", "session": s.sessionID})
	s.unsubscribe = eng.Subscribe(s.onChange)
	return s
}

// SessionID identifies this play session in the event log.
func (s *Saver) SessionID() string { return s.sessionID }

// Dirty reports whether changes are waiting to be written.
func (s *Saver) Dirty() bool { return s.gen != s.saved }

// Close detaches from the engine.
func (s *Saver) Close() { s.unsubscribe() }

func (s *Saver) onChange(c engine.Change) {
	if c.Kind == engine.ChangeDialogue && c.Event != nil && c.Event.Kind == dialogue.EventQuizAnswered {
		sel := c.Event.Selection
		s.quizzes = append(s.quizzes, store.QuizEventData{
			SessionID:   s.sessionID,
			QuizID:      sel.QuizID,
			NodeID:      sel.NodeID,
			ChoiceIndex: sel.ChoiceIndex,
			Correct:     sel.Outcome == dialogue.OutcomeCorrect,
			FirstTry:    sel.FirstTry,
			Bonus:       sel.Reward.Bonus,
		})
	}
	if c.Persistent() {
		s.gen++
	}
}

// Schedule returns a debounce tick when the generation moved since the last
// request.
func (s *Saver) Schedule() tea.Cmd {
	if s.gen == s.scheduled || s.gen == s.saved {
		return nil
	}
	s.scheduled = s.gen
	gen := s.gen
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return saveDueMsg{gen: gen}
	})
}

// handleDue saves when no change happened since the tick was requested.
func (s *Saver) handleDue(ctx context.Context, msg saveDueMsg) error {
	if msg.gen != s.gen {
		return nil
	}
	return s.Flush(ctx)
}

// Flush writes pending events and a snapshot now.
func (s *Saver) Flush(ctx context.Context) error {
	var errs []error

	for _, q := range s.quizzes {
		if err := s.events.AppendQuizEvent(ctx, q); err != nil {
			errs = append(errs, err)
		}
	}
	s.quizzes = nil

	for _, e := range s.eng.Ledger().DrainEntries() {
		err := s.events.AppendLedgerEvent(ctx, store.LedgerEventData{
			SessionID: s.sessionID,
			Resource:  string(e.Resource),
			Delta:     e.Delta,
			Reason:    e.Reason,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	if s.gen != s.saved {
		snap := &store.Snapshot{
			Timestamp: time.Now(),
			Data:      s.eng.Snapshot(),
		}
		if err := s.snaps.Save(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("save snapshot: %w", err))
		} else {
			s.saved = s.gen
			s.log.WithField("snapshot", snap.ID).Debug("snapshot saved")
		}
		if s.keep > 0 {
			if err := s.snaps.Prune(ctx, s.keep); err != nil {
				errs = append(errs, fmt.Errorf("prune snapshots: %w", err))
			}
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.WithError(err).Warn("save failed")
	}
	return err
}
