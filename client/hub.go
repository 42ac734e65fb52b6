package client

import "sync"

// Hub carries the process-wide favorites-changed signal. The Gateway
// fires it after every successful mutation; listeners are expected to
// re-fetch the list themselves, the signal carries no payload.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   []hubSub
}

type hubSub struct {
	id int
	fn func()
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers fn and returns its unsubscribe handle.
// Subscribers run synchronously in subscription order.
func (h *Hub) Subscribe(fn func()) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, hubSub{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, sub := range h.subs {
			if sub.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Broadcast notifies every subscriber. The list is copied first so a
// subscriber may subscribe or unsubscribe while the signal is running.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	subs := make([]hubSub, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}
