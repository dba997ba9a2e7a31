package action

import (
	"testing"
)

func TestBus_FanOutInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Subscribe(func(a Action) { calls = append(calls, "first:"+string(a)) })
	bus.Subscribe(func(a Action) { calls = append(calls, "second:"+string(a)) })

	bus.Emit(Confirm)

	want := []string{"first:confirm", "second:confirm"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestBus_UnsubscribeBeforeEmit(t *testing.T) {
	bus := NewBus()
	firstCount, secondCount := 0, 0

	unsubFirst := bus.Subscribe(func(Action) { firstCount++ })
	bus.Subscribe(func(Action) { secondCount++ })

	unsubFirst()
	bus.Emit(Cancel)

	if firstCount != 0 {
		t.Errorf("first listener called %d times, want 0", firstCount)
	}
	if secondCount != 1 {
		t.Errorf("second listener called %d times, want 1", secondCount)
	}
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	unsub := bus.Subscribe(func(Action) {})
	bus.Subscribe(func(Action) {})

	unsub()
	unsub()

	if bus.Len() != 1 {
		t.Errorf("Len = %d, want 1", bus.Len())
	}
}

func TestBus_ReentrantEmit(t *testing.T) {
	bus := NewBus()
	var calls []Action

	bus.Subscribe(func(a Action) {
		calls = append(calls, a)
		if a == NavigateDown {
			bus.Emit(Confirm)
		}
	})
	var lateCalls int
	bus.Subscribe(func(a Action) {
		// Subscribing from inside a callback must not disturb the
		// emission already in progress.
		if a == Confirm && lateCalls == 0 {
			bus.Subscribe(func(Action) { lateCalls++ })
		}
	})

	bus.Emit(NavigateDown)

	want := []Action{NavigateDown, Confirm}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
	if lateCalls != 0 {
		t.Errorf("late listener called %d times during the emission it joined, want 0", lateCalls)
	}

	bus.Emit(Cancel)
	if lateCalls != 1 {
		t.Errorf("late listener called %d times after next emit, want 1", lateCalls)
	}
}

func TestBus_UnsubscribeDuringEmit(t *testing.T) {
	bus := NewBus()
	var unsubSelf func()
	selfCount, otherCount := 0, 0

	unsubSelf = bus.Subscribe(func(Action) {
		selfCount++
		unsubSelf()
	})
	bus.Subscribe(func(Action) { otherCount++ })

	bus.Emit(Confirm)
	bus.Emit(Confirm)

	if selfCount != 1 {
		t.Errorf("self-removing listener called %d times, want 1", selfCount)
	}
	if otherCount != 2 {
		t.Errorf("other listener called %d times, want 2", otherCount)
	}
}

func TestParse(t *testing.T) {
	for _, a := range All() {
		got, err := Parse(string(a))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", a, err)
		}
		if got != a {
			t.Errorf("Parse(%q) = %q", a, got)
		}
	}
	if _, err := Parse("jump"); err == nil {
		t.Error("Parse(jump) should fail")
	}
}

func TestIsNavigation(t *testing.T) {
	if !NavigateLeft.IsNavigation() {
		t.Error("navigate-left should be navigation")
	}
	if Confirm.IsNavigation() {
		t.Error("confirm should not be navigation")
	}
}
