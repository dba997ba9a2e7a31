package vocab

import (
	"sort"

	"github.com/samber/lo"
)

// Word is static metadata for a vocabulary item.
type Word struct {
	ID       string   `json:"id"`
	Kanji    string   `json:"kanji,omitempty"`
	Kana     string   `json:"kana"`
	Meaning  string   `json:"meaning"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Display returns the written form shown in dialogue: kanji when the word
// has one, otherwise kana.
func (w Word) Display() string {
	if w.Kanji != "" {
		return w.Kanji
	}
	return w.Kana
}

// UncategorizedLabel groups words without a category.
const UncategorizedLabel = "misc"

// Catalog is a read-only lookup of word metadata.
type Catalog struct {
	words []Word
	byID  map[string]*Word
}

// NewCatalog indexes words. Later duplicates of an ID are ignored.
func NewCatalog(words []Word) *Catalog {
	c := &Catalog{
		words: lo.UniqBy(words, func(w Word) string { return w.ID }),
		byID:  make(map[string]*Word, len(words)),
	}
	for i := range c.words {
		c.byID[c.words[i].ID] = &c.words[i]
	}
	return c
}

// Lookup returns the word with the given ID.
func (c *Catalog) Lookup(id string) (Word, bool) {
	w, ok := c.byID[id]
	if !ok {
		return Word{}, false
	}
	return *w, true
}

// Display resolves the written form of id, falling back to the ID itself.
func (c *Catalog) Display(id string) string {
	if w, ok := c.byID[id]; ok {
		return w.Display()
	}
	return id
}

// Words returns all words in declaration order.
func (c *Catalog) Words() []Word {
	out := make([]Word, len(c.words))
	copy(out, c.words)
	return out
}

// Len returns the number of words.
func (c *Catalog) Len() int {
	return len(c.words)
}

// ByCategory groups words by category. Category names are returned sorted.
func (c *Catalog) ByCategory() ([]string, map[string][]Word) {
	groups := lo.GroupBy(c.words, func(w Word) string {
		if w.Category == "" {
			return UncategorizedLabel
		}
		return w.Category
	})
	names := lo.Keys(groups)
	sort.Strings(names)
	return names, groups
}
