// Package anki writes vocabulary as tab-separated notes that Anki's
// "Import File" dialog accepts with the Basic note type.
package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/kotoba/internal/vocab"
)

// Note is one exported card.
type Note struct {
	WordID  string
	Front   string
	Back    string
	Tags    []string
	Mastery vocab.Mastery
}

// Options filter which words become notes.
type Options struct {
	// All includes words that were exported before.
	All bool

	// MinMastery skips words below this tier. Empty means seen.
	MinMastery vocab.Mastery
}

var masteryRank = lo.SliceToMap(vocab.AllMasteries(), func(m vocab.Mastery) (vocab.Mastery, int) {
	return m, lo.IndexOf(vocab.AllMasteries(), m)
})

// Select builds notes for every tracked word that passes opts, ordered by
// category and then word ID. Words missing from the catalog are skipped.
func Select(words *vocab.Catalog, tracker *vocab.Tracker, opts Options) []Note {
	floor := opts.MinMastery
	if floor == "" {
		floor = vocab.MasterySeen
	}

	progress := lo.Filter(tracker.All(), func(p vocab.WordProgress, _ int) bool {
		if p.ExportedToAnki && !opts.All {
			return false
		}
		return masteryRank[p.Mastery] >= masteryRank[floor]
	})

	notes := make([]Note, 0, len(progress))
	for _, p := range progress {
		w, ok := words.Lookup(p.WordID)
		if !ok {
			continue
		}
		notes = append(notes, newNote(w, p.Mastery))
	}

	sort.SliceStable(notes, func(i, j int) bool {
		ci, cj := notes[i].Tags[0], notes[j].Tags[0]
		if ci != cj {
			return ci < cj
		}
		return notes[i].WordID < notes[j].WordID
	})
	return notes
}

func newNote(w vocab.Word, m vocab.Mastery) Note {
	back := w.Meaning
	if w.Kanji != "" {
		back = fmt.Sprintf("%s<br>%s", w.Kana, w.Meaning)
	}

	category := w.Category
	if category == "" {
		category = vocab.UncategorizedLabel
	}
	tags := []string{"kotoba::" + category, "mastery::" + string(m)}
	tags = append(tags, lo.Map(w.Tags, func(t string, _ int) string {
		return strings.ReplaceAll(t, " ", "_")
	})...)

	return Note{WordID: w.ID, Front: w.Display(), Back: back, Tags: tags, Mastery: m}
}

// Write emits the header directives followed by one row per note.
func Write(w io.Writer, notes []Note) error {
	header := "#separator:tab\n#html:true\n#tags column:3\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, n := range notes {
		if err := cw.Write([]string{n.Front, n.Back, strings.Join(n.Tags, " ")}); err != nil {
			return fmt.Errorf("write note %s: %w", n.WordID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
