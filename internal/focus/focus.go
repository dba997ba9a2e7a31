// Package focus moves a highlight between on-screen words and choices using
// directional input.
package focus

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of a focusable element.
type Kind string

const (
	KindWord   Kind = "word"
	KindChoice Kind = "choice"
)

// Direction is a navigation direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Item is one focusable element on a logical grid.
type Item struct {
	ID    string
	Kind  Kind
	Index int
	Row   int
	Col   int
}

// ItemID builds the composite ID for kind and index, e.g. "word:2".
func ItemID(kind Kind, index int) string {
	return fmt.Sprintf("%s:%d", kind, index)
}

// ParseID splits a composite ID back into kind and index.
func ParseID(id string) (Kind, int, bool) {
	kind, idx, ok := strings.Cut(id, ":")
	if !ok {
		return "", 0, false
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return "", 0, false
	}
	switch Kind(kind) {
	case KindWord, KindChoice:
		return Kind(kind), n, true
	default:
		return "", 0, false
	}
}

// Build lays out wordCount words on row 0 and choiceCount choices on row 1,
// each at sequential columns. Words come first.
func Build(wordCount, choiceCount int) []Item {
	items := make([]Item, 0, wordCount+choiceCount)
	for i := 0; i < wordCount; i++ {
		items = append(items, Item{ID: ItemID(KindWord, i), Kind: KindWord, Index: i, Row: 0, Col: i})
	}
	for i := 0; i < choiceCount; i++ {
		items = append(items, Item{ID: ItemID(KindChoice, i), Kind: KindChoice, Index: i, Row: 1, Col: i})
	}
	return items
}

// Find returns the item with the given ID.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Next returns the ID that should be focused after moving in dir from current.
//
// With no items the result is "". An empty or unknown current selects the
// first item. Otherwise candidates are filtered by direction: up and down
// take any item on a smaller or larger row; left and right take items on a
// smaller or larger column, plus same-column items earlier or later in row
// order. The candidate with the lowest 2*|dRow| + |dCol| wins, ties going to
// the earliest item. With no candidate the focus stays put.
func Next(items []Item, current string, dir Direction) string {
	if len(items) == 0 {
		return ""
	}
	cur, ok := Find(items, current)
	if !ok {
		return items[0].ID
	}

	best := ""
	bestScore := 0
	for _, it := range items {
		if it.ID == cur.ID || !inDirection(cur, it, dir) {
			continue
		}
		score := 2*abs(it.Row-cur.Row) + abs(it.Col-cur.Col)
		if best == "" || score < bestScore {
			best, bestScore = it.ID, score
		}
	}
	if best == "" {
		return cur.ID
	}
	return best
}

func inDirection(from, to Item, dir Direction) bool {
	switch dir {
	case Up:
		return to.Row < from.Row
	case Down:
		return to.Row > from.Row
	case Left:
		return to.Col < from.Col || (to.Col == from.Col && to.Row < from.Row)
	case Right:
		return to.Col > from.Col || (to.Col == from.Col && to.Row > from.Row)
	default:
		return false
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
