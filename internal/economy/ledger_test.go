package economy

import (
	"testing"
	"time"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

func testConfig() Config {
	return Config{MaxEnergy: 10, StartEnergy: 3, EncounterCost: 1, DefaultQuizBonus: 7}
}

func newTestLedger() *Ledger {
	l := NewLedger(testConfig(), nil)
	l.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	return l
}

func TestNewLedger_StartingBalances(t *testing.T) {
	l := newTestLedger()
	w := l.Wallet()
	if w.Energy != 3 || w.MaxEnergy != 10 || w.Currency != 0 {
		t.Errorf("Wallet = %+v, want 3/10/0", w)
	}
	if l.Quests().Len() != 0 {
		t.Errorf("Quests = %d, want 0", l.Quests().Len())
	}
}

func TestEnergyDrainHook_FirstEncounterOnly(t *testing.T) {
	l := newTestLedger()
	hook := l.EnergyDrainHook(nil)

	hook(vocab.Encounter{WordID: "neko", First: true})
	hook(vocab.Encounter{WordID: "neko", First: false})

	if got := l.Wallet().Energy; got != 2 {
		t.Errorf("Energy = %d, want 2", got)
	}
	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Resource != Energy || entries[0].Delta != -1 || entries[0].Reason != "first-encounter:neko" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestEnergyDrainHook_TutorialExempt(t *testing.T) {
	l := newTestLedger()
	tutorial := true
	hook := l.EnergyDrainHook(func() bool { return tutorial })

	hook(vocab.Encounter{WordID: "a", First: true})
	if got := l.Wallet().Energy; got != 3 {
		t.Errorf("Energy in tutorial = %d, want 3", got)
	}

	tutorial = false
	hook(vocab.Encounter{WordID: "b", First: true})
	if got := l.Wallet().Energy; got != 2 {
		t.Errorf("Energy after tutorial = %d, want 2", got)
	}
}

func TestEnergyDrainHook_FloorsAtZero(t *testing.T) {
	l := newTestLedger()
	hook := l.EnergyDrainHook(nil)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		hook(vocab.Encounter{WordID: id, First: true})
	}
	if got := l.Wallet().Energy; got != 0 {
		t.Errorf("Energy = %d, want 0", got)
	}
	if n := len(l.Entries()); n != 3 {
		t.Errorf("entries = %d, want 3 (no entry once empty)", n)
	}
}

func TestResolveQuiz(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		firstTry  bool
		bonus     int
		wantBonus int
		wantNewly bool
		wantCoins int
	}{
		{"first try fresh quiz", nil, true, 5, 5, true, 5},
		{"second try fresh quiz", nil, false, 5, 0, true, 0},
		{"first try completed quiz", []string{"q"}, true, 5, 0, false, 0},
		{"second try completed quiz", []string{"q"}, false, 5, 0, false, 0},
		{"zero bonus uses default", nil, true, 0, 7, true, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(testConfig(), &store.EconomySnapshotData{
				Energy: 3, MaxEnergy: 10, CompletedQuizzes: tt.completed,
			})
			r := l.ResolveQuiz("q", tt.firstTry, tt.bonus)
			if r.Bonus != tt.wantBonus {
				t.Errorf("Bonus = %d, want %d", r.Bonus, tt.wantBonus)
			}
			if r.FirstCompletion != tt.wantNewly {
				t.Errorf("FirstCompletion = %v, want %v", r.FirstCompletion, tt.wantNewly)
			}
			if got := l.Wallet().Currency; got != tt.wantCoins {
				t.Errorf("Currency = %d, want %d", got, tt.wantCoins)
			}
			if !l.Quests().IsComplete("q") {
				t.Error("quest flag must always be set on a correct answer")
			}
		})
	}
}

func TestResolveQuiz_BonusOncePerQuiz(t *testing.T) {
	l := newTestLedger()
	l.ResolveQuiz("q", true, 5)
	l.ResolveQuiz("q", true, 5)
	l.ResolveQuiz("other", true, 2)

	if got := l.Wallet().Currency; got != 7 {
		t.Errorf("Currency = %d, want 7", got)
	}
}

func TestRestoreEnergy(t *testing.T) {
	l := newTestLedger()
	if got := l.RestoreEnergy(5); got != 5 {
		t.Errorf("RestoreEnergy(5) = %d, want 5", got)
	}
	if got := l.RestoreEnergy(5); got != 2 {
		t.Errorf("RestoreEnergy(5) at 8/10 = %d, want 2", got)
	}
	if got := l.RestoreEnergy(1); got != 0 {
		t.Errorf("RestoreEnergy at max = %d, want 0", got)
	}
	if got := l.RestoreEnergy(-3); got != 0 {
		t.Errorf("RestoreEnergy(-3) = %d, want 0", got)
	}
	if got := l.Wallet().Energy; got != 10 {
		t.Errorf("Energy = %d, want 10", got)
	}
}

func TestDrainEntries(t *testing.T) {
	l := newTestLedger()
	l.RestoreEnergy(1)
	l.ResolveQuiz("q", true, 3)

	got := l.DrainEntries()
	if len(got) != 2 {
		t.Fatalf("DrainEntries = %d, want 2", len(got))
	}
	if len(l.Entries()) != 0 {
		t.Error("journal should be empty after drain")
	}
}

func TestReset(t *testing.T) {
	l := newTestLedger()
	l.ResolveQuiz("q", true, 3)
	l.EnergyDrainHook(nil)(vocab.Encounter{WordID: "a", First: true})

	l.Reset()
	w := l.Wallet()
	if w.Energy != 3 || w.Currency != 0 {
		t.Errorf("Wallet after Reset = %+v", w)
	}
	if l.Quests().IsComplete("q") {
		t.Error("quests should be cleared")
	}
	if len(l.Entries()) != 0 {
		t.Error("journal should be cleared")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := newTestLedger()
	l.ResolveQuiz("b", true, 4)
	l.ResolveQuiz("a", false, 4)
	l.EnergyDrainHook(nil)(vocab.Encounter{WordID: "x", First: true})

	snap := l.SnapshotData()
	if len(snap.CompletedQuizzes) != 2 || snap.CompletedQuizzes[0] != "a" {
		t.Errorf("CompletedQuizzes = %v, want sorted [a b]", snap.CompletedQuizzes)
	}

	restored := NewLedger(testConfig(), snap)
	if restored.Wallet() != l.Wallet() {
		t.Errorf("Wallet = %+v, want %+v", restored.Wallet(), l.Wallet())
	}
	if !restored.Quests().IsComplete("a") || !restored.Quests().IsComplete("b") {
		t.Error("quests not restored")
	}
}

func TestNewLedger_ClampsSnapshot(t *testing.T) {
	l := NewLedger(testConfig(), &store.EconomySnapshotData{Energy: 50, MaxEnergy: 20, Currency: -4})
	w := l.Wallet()
	if w.Energy != 20 || w.MaxEnergy != 20 || w.Currency != 0 {
		t.Errorf("Wallet = %+v, want 20/20/0", w)
	}
}

func TestQuestLog(t *testing.T) {
	q := NewQuestLog("b")
	if !q.Complete("a") {
		t.Error("Complete(a) should be new")
	}
	if q.Complete("a") {
		t.Error("Complete(a) twice should not be new")
	}
	ids := q.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v", ids)
	}
}

func TestWallet_EnergyRatio(t *testing.T) {
	if r := (Wallet{Energy: 5, MaxEnergy: 10}).EnergyRatio(); r != 0.5 {
		t.Errorf("EnergyRatio = %v, want 0.5", r)
	}
	if r := (Wallet{}).EnergyRatio(); r != 0 {
		t.Errorf("EnergyRatio on zero max = %v, want 0", r)
	}
}
