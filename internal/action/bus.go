package action

// Listener receives every emitted action.
type Listener func(Action)

type subscription struct {
	id       uint64
	listener Listener
}

// Bus is a synchronous fan-out channel. Emit calls every listener that was
// subscribed when the emission started, in subscription order, before it
// returns. There is no queue: a listener that emits from inside its callback
// runs the nested emission to completion first.
//
// Bus is not safe for concurrent use; the engine runs on a single goroutine.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers l and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: l})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				// Build a fresh slice so in-flight emissions keep iterating
				// over the listener set they started with.
				next := make([]subscription, 0, len(b.subs)-1)
				next = append(next, b.subs[:i]...)
				next = append(next, b.subs[i+1:]...)
				b.subs = next
				return
			}
		}
	}
}

// Emit delivers a to all current listeners.
func (b *Bus) Emit(a Action) {
	subs := b.subs
	for _, s := range subs {
		s.listener(a)
	}
}

// Len returns the number of subscribed listeners.
func (b *Bus) Len() int {
	return len(b.subs)
}
