package schedule

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_FiresOnlyWhenDue(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	m.After(time.Second, func() { fired = true })

	if n := m.Advance(999 * time.Millisecond); n != 0 {
		t.Errorf("Advance fired %d, want 0", n)
	}
	if fired {
		t.Fatal("callback fired early")
	}
	if n := m.Advance(time.Millisecond); n != 1 {
		t.Errorf("Advance fired %d, want 1", n)
	}
	if !fired {
		t.Error("callback did not fire at due time")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
}

func TestManual_OrderByDueThenInsertion(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.After(2*time.Second, func() { order = append(order, "late") })
	m.After(time.Second, func() { order = append(order, "a") })
	m.After(time.Second, func() { order = append(order, "b") })

	m.Advance(5 * time.Second)

	want := []string{"a", "b", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestManual_ChainedCallbacksInsideWindow(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Time
	m.After(time.Second, func() {
		at = append(at, m.Now())
		m.After(time.Second, func() { at = append(at, m.Now()) })
	})

	if n := m.Advance(3 * time.Second); n != 2 {
		t.Errorf("Advance fired %d, want 2", n)
	}
	if len(at) != 2 {
		t.Fatalf("fired %d callbacks, want 2", len(at))
	}
	if !at[0].Equal(epoch.Add(time.Second)) || !at[1].Equal(epoch.Add(2*time.Second)) {
		t.Errorf("fire times = %v, want +1s and +2s", at)
	}
	if !m.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now = %v, want +3s", m.Now())
	}
}

func TestManual_Flush(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	m.After(time.Hour, func() { count++ })
	m.After(time.Minute, func() { count++ })

	if n := m.Flush(); n != 2 {
		t.Errorf("Flush fired %d, want 2", n)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFunc(t *testing.T) {
	var got time.Duration
	var s Scheduler = Func(func(d time.Duration, fn func()) {
		got = d
		fn()
	})
	ran := false
	s.After(3*time.Second, func() { ran = true })
	if got != 3*time.Second || !ran {
		t.Errorf("Func scheduler got %v ran=%v", got, ran)
	}
}
