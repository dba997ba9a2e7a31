package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory, Greeting(0)), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(ansi.Strip(w.View(80, 24)), "press any key") {
		t.Error("prompt should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 10)
	view := ansi.Strip(w.View(80, 24))
	if !strings.Contains(view, "press any key") {
		t.Error("prompt should be visible after the banner phase")
	}
	if !strings.Contains(view, "言  葉") {
		t.Error("banner plate should be visible")
	}
	if !strings.Contains(view, "waiting to talk") {
		t.Error("greeting should be visible")
	}
}

func TestNarrowBannerDropsPlate(t *testing.T) {
	if strings.Contains(RenderBanner(20), "言") {
		t.Error("narrow banner should only show the reading")
	}
	if !strings.Contains(RenderBanner(80), "言") {
		t.Error("wide banner should show the plate")
	}
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnceAndTicksStop(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
	if sendTicks(w, 1) != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		seen int
		want string
	}{
		{0, "The village is waiting to talk to you."},
		{1, "Welcome back! 1 word on your list."},
		{12, "Welcome back! 12 words on your list."},
	}
	for _, tt := range tests {
		if got := Greeting(tt.seen); got != tt.want {
			t.Errorf("Greeting(%d) = %q, want %q", tt.seen, got, tt.want)
		}
	}
}
