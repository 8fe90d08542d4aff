// Package event provides the in-process broadcast bus that syncs state
// changes (auth, theme) across otherwise independent components.
package event

import "sync"

// Channel names a broadcast stream. Each state owner gets its own channel;
// there is no shared "anything changed" event.
type Channel string

const (
	// AuthChanged is published after the session store has been updated by a
	// login, register, or logout. It carries no payload.
	AuthChanged Channel = "auth-changed"

	// ThemeChanged is published after the theme store has persisted a new
	// preference. The payload is the new preference value.
	ThemeChanged Channel = "theme-changed"
)

// Handler receives a broadcast. The payload is empty for channels that carry
// none.
type Handler func(payload string)

type subscriber struct {
	id int
	fn Handler
}

// Bus fans a published event out to every subscriber of a channel.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Channel][]subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Channel][]subscriber)}
}

// Subscribe registers fn on the channel and returns an unsubscribe func.
// Handlers run in registration order.
func (b *Bus) Subscribe(ch Channel, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[ch] = append(b.subs[ch], subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[ch]
		for i, s := range list {
			if s.id == id {
				b.subs[ch] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every subscriber of ch, synchronously and in
// registration order, on the caller's goroutine. The subscriber list is
// snapshotted before delivery: a handler that subscribes a new listener does
// not see it invoked within the same publish pass, only from the next one.
func (b *Bus) Publish(ch Channel, payload string) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs[ch]))
	copy(snapshot, b.subs[ch])
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(payload)
	}
}

// Default is the process-wide bus.
var Default = NewBus()
