// Package notifier fans collection snapshots out to registered listeners.
// Services publish the latest snapshot of a collection after each successful
// load or mutation; a subscriber receives the current snapshot immediately
// and every subsequent one. Fan-out never blocks a publisher: a slow
// subscriber drops intermediate snapshots but always converges on the latest.
package notifier

import (
	"sync"

	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/guest"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/domain/servicereq"
)

// Notifier broadcasts snapshots of one collection.
type Notifier[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan []T
	latest []T
	seeded bool
}

// New creates an empty notifier.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{subs: make(map[int]chan []T)}
}

// Publish replaces the current snapshot and fans it out.
func (n *Notifier[T]) Publish(snapshot []T) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest = snapshot
	n.seeded = true
	for _, ch := range n.subs {
		// Latest-wins: drain a stale pending snapshot before replacing it.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Subscribe registers a listener. The returned channel yields the current
// snapshot first (when one exists) and then every later one. The cancel
// function unregisters the listener and closes the channel.
func (n *Notifier[T]) Subscribe() (<-chan []T, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan []T, 1)
	if n.seeded {
		ch <- n.latest
	}
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Latest returns the current snapshot and whether one has been published.
func (n *Notifier[T]) Latest() ([]T, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.latest, n.seeded
}

// Hub groups the per-collection notifiers of the console.
type Hub struct {
	Rooms    *Notifier[room.Room]
	Bookings *Notifier[booking.Booking]
	Guests   *Notifier[guest.Guest]
	Requests *Notifier[servicereq.Request]
}

// NewHub creates a hub with one notifier per collection.
func NewHub() *Hub {
	return &Hub{
		Rooms:    New[room.Room](),
		Bookings: New[booking.Booking](),
		Guests:   New[guest.Guest](),
		Requests: New[servicereq.Request](),
	}
}
