// Package notify fans slot_booked events out to connected viewers.
//
// Delivery is best effort: there is no persistence and no acknowledgment,
// and a subscriber that connects after an event was published never sees
// it. Viewers treat events as a hint to mark a slot taken and fall back to
// re-reading availability.
package notify

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// Hub is an in-process publish/subscribe registry. Publish never blocks:
// each subscriber owns a buffered channel and an event that does not fit
// is dropped for that subscriber only.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool
}

// NewHub returns a hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{subs: make(map[uint64]*Subscription), buffer: buffer}
}

// Subscription is one viewer's registration with a Hub.
type Subscription struct {
	id      uint64
	hub     *Hub
	ch      chan model.SlotBookedEvent
	once    sync.Once
	dropped atomic.Uint64
}

// Events returns the channel events are delivered on. It is closed by Close.
func (s *Subscription) Events() <-chan model.SlotBookedEvent { return s.ch }

// Dropped returns how many events were discarded because the buffer was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

// Subscribe registers a new subscriber. Only events published after this
// call returns are delivered. On a closed hub the returned subscription's
// channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	s := &Subscription{id: h.nextID, hub: h, ch: make(chan model.SlotBookedEvent, h.buffer)}
	if h.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	h.subs[s.id] = s
	return s
}

// Close ends every subscription so streaming viewers return, and makes
// later subscriptions start closed. Used on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers ev to every current subscriber. It always returns nil;
// the error is part of the publisher contract shared with remote sinks.
func (h *Hub) Publish(_ context.Context, ev model.SlotBookedEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			s.dropped.Add(1)
			log.Printf("notify: subscriber %d buffer full, dropped %s reservation_id=%s", s.id, model.TopicSlotBooked, ev.ReservationID)
		}
	}
	return nil
}
