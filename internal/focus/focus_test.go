package focus

import "testing"

func TestNext_Determinism(t *testing.T) {
	items := []Item{
		{ID: "word:0", Kind: KindWord, Index: 0, Row: 0, Col: 0},
		{ID: "word:1", Kind: KindWord, Index: 1, Row: 0, Col: 1},
		{ID: "choice:0", Kind: KindChoice, Index: 0, Row: 1, Col: 0},
	}

	tests := []struct {
		name    string
		current string
		dir     Direction
		want    string
	}{
		{"down from word:0", "word:0", Down, "choice:0"},
		{"right from word:0", "word:0", Right, "word:1"},
		{"right from word:1 stays", "word:1", Right, "word:1"},
		{"up from choice:0", "choice:0", Up, "word:0"},
		{"left from word:1", "word:1", Left, "word:0"},
		{"up from word:0 stays", "word:0", Up, "word:0"},
		{"no current picks first", "", Right, "word:0"},
		{"unknown current picks first", "choice:9", Down, "word:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(items, tt.current, tt.dir); got != tt.want {
				t.Errorf("Next(%q, %s) = %q, want %q", tt.current, tt.dir, got, tt.want)
			}
		})
	}
}

func TestNext_Empty(t *testing.T) {
	if got := Next(nil, "word:0", Down); got != "" {
		t.Errorf("Next on empty = %q, want empty", got)
	}
}

func TestNext_SameColumnTieRules(t *testing.T) {
	items := Build(2, 2)

	// choice:0 shares col 0 with word:0 on a higher row, so right from word:0
	// scores it 2 while word:1 scores 1.
	if got := Next(items, "word:0", Right); got != "word:1" {
		t.Errorf("right from word:0 = %q, want word:1", got)
	}
	// From word:1, right has only the same-column choice:1 below it.
	if got := Next(items, "word:1", Right); got != "choice:1" {
		t.Errorf("right from word:1 = %q, want choice:1", got)
	}
	// From choice:0, left has only the same-column word:0 above it.
	if got := Next(items, "choice:0", Left); got != "word:0" {
		t.Errorf("left from choice:0 = %q, want word:0", got)
	}
}

func TestNext_RowWeightedDistance(t *testing.T) {
	items := Build(4, 1)

	// From word:3 going down, choice:0 is the only candidate.
	if got := Next(items, "word:3", Down); got != "choice:0" {
		t.Errorf("down from word:3 = %q, want choice:0", got)
	}
	// Up from choice:0: word:0 is directly above (score 2), others farther.
	if got := Next(items, "choice:0", Up); got != "word:0" {
		t.Errorf("up from choice:0 = %q, want word:0", got)
	}
}

func TestNext_TiesGoToArrayOrder(t *testing.T) {
	items := []Item{
		{ID: "word:0", Row: 0, Col: 0},
		{ID: "word:1", Row: 0, Col: 2},
		{ID: "choice:0", Row: 1, Col: 1},
		{ID: "choice:1", Row: 1, Col: 3},
	}
	// From choice:0 up: word:0 and word:1 both score 3; word:0 comes first.
	if got := Next(items, "choice:0", Up); got != "word:0" {
		t.Errorf("up from choice:0 = %q, want word:0", got)
	}
}

func TestBuild(t *testing.T) {
	items := Build(2, 3)
	if len(items) != 5 {
		t.Fatalf("len = %d, want 5", len(items))
	}
	if items[0].ID != "word:0" || items[1].ID != "word:1" || items[2].ID != "choice:0" {
		t.Errorf("order = %s,%s,%s", items[0].ID, items[1].ID, items[2].ID)
	}
	c2 := items[4]
	if c2.Kind != KindChoice || c2.Row != 1 || c2.Col != 2 || c2.Index != 2 {
		t.Errorf("choice:2 = %+v", c2)
	}
	if len(Build(0, 0)) != 0 {
		t.Error("Build(0,0) should be empty")
	}
}

func TestParseID(t *testing.T) {
	kind, idx, ok := ParseID("choice:3")
	if !ok || kind != KindChoice || idx != 3 {
		t.Errorf("ParseID(choice:3) = %s,%d,%v", kind, idx, ok)
	}
	for _, bad := range []string{"", "word", "word:x", "item:1", "word:-1"} {
		if _, _, ok := ParseID(bad); ok {
			t.Errorf("ParseID(%q) should fail", bad)
		}
	}
}
