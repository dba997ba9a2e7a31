// Package dialogue holds authored dialogue content and the controller that
// walks the player through it.
package dialogue

import (
	"strings"

	"github.com/samber/lo"
)

// Segment is a run of line text. A segment with a WordID is an interactive
// vocabulary word; otherwise it is plain text.
type Segment struct {
	Text   string `json:"text"`
	WordID string `json:"wordId,omitempty"`
}

// IsWord reports whether the segment refers to a vocabulary item.
func (s Segment) IsWord() bool {
	return s.WordID != ""
}

// Line is one line of dialogue with its English translation.
type Line struct {
	Segments []Segment `json:"segments"`
	English  string    `json:"english,omitempty"`
}

// Text joins every segment's text.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Words returns the word segments in display order.
func (l Line) Words() []Segment {
	return lo.Filter(l.Segments, func(s Segment, _ int) bool { return s.IsWord() })
}

// WordIDs returns each distinct word ID in the line once, in first-appearance order.
func (l Line) WordIDs() []string {
	ids := lo.FilterMap(l.Segments, func(s Segment, _ int) (string, bool) {
		return s.WordID, s.IsWord()
	})
	return lo.Uniq(ids)
}

// Choice is a player response. IsCorrect is nil for ordinary branches and
// set for quiz answers.
type Choice struct {
	Japanese  string `json:"japanese"`
	English   string `json:"english,omitempty"`
	LeadsTo   string `json:"leadsTo,omitempty"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

// Correct reports whether the choice is a correct quiz answer.
func (c Choice) Correct() bool {
	return c.IsCorrect != nil && *c.IsCorrect
}

// Node is one authored dialogue node.
type Node struct {
	ID              string   `json:"id"`
	Speaker         string   `json:"speaker"`
	SpeakerPortrait string   `json:"speakerPortrait,omitempty"`
	SpeakerWordID   string   `json:"speakerWordId,omitempty"`
	Lines           []Line   `json:"lines"`
	Choices         []Choice `json:"choices,omitempty"`
	QuizID          string   `json:"quizId,omitempty"`
	QuizBonus       int      `json:"quizBonus,omitempty"`

	// Tutorial marks introductory nodes where encounters cost nothing.
	Tutorial bool `json:"tutorial,omitempty"`
}

// IsQuiz is true when any choice carries a correctness flag.
func (n *Node) IsQuiz() bool {
	return lo.SomeBy(n.Choices, func(c Choice) bool { return c.IsCorrect != nil })
}

// EffectiveQuizID returns QuizID, falling back to the node ID.
func (n *Node) EffectiveQuizID() string {
	if n.QuizID != "" {
		return n.QuizID
	}
	return n.ID
}

// LastLine returns the index of the final line.
func (n *Node) LastLine() int {
	return max(len(n.Lines)-1, 0)
}

// Bool returns a pointer to b, for building quiz choices in code.
func Bool(b bool) *bool {
	return &b
}
