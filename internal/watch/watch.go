// Package watch provides a small in-process change-notification hub. Stores
// notify it after every write; observers subscribe and re-read a full
// snapshot on each wakeup. Wakeups coalesce: a burst of writes while a
// subscriber is busy collapses into a single pending tick.
package watch

import (
	"context"
	"sync"
)

// Hub fans change ticks out to subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a subscriber whose channel receives a tick after every
// Notify. The subscription is removed and its channel closed when ctx ends.
func (h *Hub) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Notify wakes all current subscribers. Never blocks: a subscriber with a
// tick already pending is skipped.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
