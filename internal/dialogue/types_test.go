package dialogue

import "testing"

func TestNode_IsQuiz(t *testing.T) {
	plain := &Node{ID: "a", Choices: []Choice{{Japanese: "x"}}}
	if plain.IsQuiz() {
		t.Error("node without correctness flags is not a quiz")
	}
	quiz := &Node{ID: "b", Choices: []Choice{{Japanese: "x"}, {Japanese: "y", IsCorrect: Bool(false)}}}
	if !quiz.IsQuiz() {
		t.Error("a single defined isCorrect makes a quiz")
	}
	if quiz.EffectiveQuizID() != "b" {
		t.Errorf("EffectiveQuizID = %q, want node id", quiz.EffectiveQuizID())
	}
	quiz.QuizID = "q1"
	if quiz.EffectiveQuizID() != "q1" {
		t.Errorf("EffectiveQuizID = %q, want q1", quiz.EffectiveQuizID())
	}
}

func TestLine_WordIDsDistinctInOrder(t *testing.T) {
	l := Line{Segments: []Segment{
		{Text: "猫", WordID: "neko"},
		{Text: "と"},
		{Text: "犬", WordID: "inu"},
		{Text: "と"},
		{Text: "猫", WordID: "neko"},
	}}

	ids := l.WordIDs()
	if len(ids) != 2 || ids[0] != "neko" || ids[1] != "inu" {
		t.Errorf("WordIDs = %v, want [neko inu]", ids)
	}
	if len(l.Words()) != 3 {
		t.Errorf("Words = %d, want 3", len(l.Words()))
	}
	if l.Text() != "猫と犬と猫" {
		t.Errorf("Text = %q", l.Text())
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Node{{ID: "b", Speaker: "first"}, {ID: "a"}, {ID: "b", Speaker: "second"}})
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	n, ok := c.Node("b")
	if !ok || n.Speaker != "first" {
		t.Errorf("Node(b) = %+v, want first declaration", n)
	}
	if _, ok := c.Node(""); ok {
		t.Error("empty id should not resolve")
	}
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v", ids)
	}
}
