// Package events fans change notifications out to Server-Sent Events
// subscribers. Publishing never blocks: a subscriber that falls behind loses
// events rather than stalling the writer that published them.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published after successful writes.
const (
	TripsUpdated        = "trips-updated"
	VacationsUpdated    = "vacations-updated"
	EmployeesUpdated    = "employees-updated"
	MaintenanceUpdated  = "maintenance-updated"
	SignaturesUpdated   = "signatures-updated"
	VerificationUpdated = "verification-updated"
)

// subscriberBuffer is how many undelivered events a subscriber may hold.
const subscriberBuffer = 16

// Event is one change notification.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Broker distributes published events to every current subscriber.
type Broker struct {
	log *slog.Logger
	now func() time.Time

	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewBroker returns an empty Broker.
func NewBroker(log *slog.Logger) *Broker {
	return &Broker{log: log, now: time.Now, subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called exactly once; it unregisters the subscriber and closes the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

// Publish sends an event of the given type to all subscribers and returns it.
func (b *Broker) Publish(eventType string) Event {
	ev := Event{ID: uuid.NewString(), Type: eventType, At: b.now().UTC()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Warn("event dropped for slow subscriber", "event_id", ev.ID, "type", ev.Type)
		}
	}
	return ev
}

// Subscribers reports how many subscribers are registered.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects every subscriber. Later subscriptions receive an
// already-closed channel. It is called on server shutdown so open
// streams end and the drain can complete.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
