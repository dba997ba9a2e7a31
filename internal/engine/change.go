package engine

import (
	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/vocab"
)

// ChangeKind says which part of the engine state changed.
type ChangeKind string

const (
	ChangeDialogue ChangeKind = "dialogue"
	ChangeVocab    ChangeKind = "vocab"
	ChangeEconomy  ChangeKind = "economy"
	ChangeFocus    ChangeKind = "focus"
	ChangeSettings ChangeKind = "settings"
	ChangeMenu     ChangeKind = "menu"
	ChangePopup    ChangeKind = "popup"
	ChangeReset    ChangeKind = "reset"
)

// Change is delivered to engine subscribers after state changes. Listeners
// pull the new state through View rather than reading it from the change.
type Change struct {
	Kind ChangeKind

	// Event is set for ChangeDialogue.
	Event *dialogue.Event

	// WordID, Encounter and Transition are set for vocabulary changes.
	WordID     string
	Encounter  *vocab.Encounter
	Transition *vocab.Transition
}

// Persistent reports whether the change alters saved state.
func (c Change) Persistent() bool {
	switch c.Kind {
	case ChangeVocab, ChangeEconomy, ChangeSettings, ChangeMenu, ChangeReset:
		return true
	case ChangeDialogue:
		return c.Event != nil && c.Event.Kind == dialogue.EventQuizAnswered
	default:
		return false
	}
}
