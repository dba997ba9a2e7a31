package anki

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

func fixture() (*vocab.Catalog, *vocab.Tracker) {
	words := vocab.NewCatalog([]vocab.Word{
		{ID: "neko", Kana: "ねこ", Meaning: "cat", Category: "animals"},
		{ID: "yama", Kanji: "山", Kana: "やま", Meaning: "mountain", Category: "nature", Tags: []string{"jlpt n5"}},
		{ID: "inu", Kana: "いぬ", Meaning: "dog", Category: "animals"},
		{ID: "kawa", Kanji: "川", Kana: "かわ", Meaning: "river", Category: "nature"},
	})
	tracker := vocab.NewTracker(&store.VocabSnapshotData{Progress: map[string]*store.WordProgressData{
		"neko":  {WordID: "neko", TimesEncountered: 12},
		"yama":  {WordID: "yama", TimesEncountered: 4, TimesTapped: 1},
		"inu":   {WordID: "inu", TimesEncountered: 1, ExportedToAnki: true},
		"ghost": {WordID: "ghost", TimesEncountered: 3},
	}})
	return words, tracker
}

func TestSelectSkipsExportedAndUnknown(t *testing.T) {
	words, tracker := fixture()

	notes := Select(words, tracker, Options{})
	require.Len(t, notes, 2)
	assert.Equal(t, "neko", notes[0].WordID)
	assert.Equal(t, "yama", notes[1].WordID)
	assert.Equal(t, vocab.MasteryKnown, notes[0].Mastery)
}

func TestSelectAllAndMinMastery(t *testing.T) {
	words, tracker := fixture()

	all := Select(words, tracker, Options{All: true})
	assert.Len(t, all, 3)

	known := Select(words, tracker, Options{All: true, MinMastery: vocab.MasteryKnown})
	require.Len(t, known, 1)
	assert.Equal(t, "neko", known[0].WordID)
}

func TestNoteFields(t *testing.T) {
	words, tracker := fixture()
	notes := Select(words, tracker, Options{})

	yama := notes[1]
	assert.Equal(t, "山", yama.Front)
	assert.Equal(t, "やま<br>mountain", yama.Back)
	assert.Equal(t, []string{"kotoba::nature", "mastery::learning", "jlpt_n5"}, yama.Tags)

	neko := notes[0]
	assert.Equal(t, "ねこ", neko.Front)
	assert.Equal(t, "cat", neko.Back)
}

func TestWriteTSV(t *testing.T) {
	words, tracker := fixture()
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, Select(words, tracker, Options{})))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "#separator:tab", lines[0])
	assert.Equal(t, "ねこ\tcat\tkotoba::animals mastery::known", lines[3])
	assert.Equal(t, "山\tやま<br>mountain\tkotoba::nature mastery::learning jlpt_n5", lines[4])
}
