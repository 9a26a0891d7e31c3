package gamification

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekima-network/ekima/internal/domain"
)

// Bus is the in-process event bus notifying collaborators (UI push,
// notifications) of gamification state changes. Delivery is synchronous
// and ordered: handlers for a type run in subscription order before
// Publish returns. A panicking handler is isolated and logged; it never
// stops later handlers or reaches the publisher.
//
// The bus only notifies. It is not the path used to persist or evaluate
// game state.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[domain.EventType][]subscription
}

type subscription struct {
	id int
	fn func(domain.Event)
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventType][]subscription)}
}

// Subscribe registers a handler for an event type and returns its
// unsubscribe function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(t domain.EventType, fn func(domain.Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[t]
		for i, s := range subs {
			if s.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all subscribers of its type, in
// subscription order. Missing id/timestamp are filled in.
func (b *Bus) Publish(ev domain.Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[ev.Type]))
	copy(subs, b.handlers[ev.Type])
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(s, ev)
	}
}

// deliver runs one handler, containing any panic.
func (b *Bus) deliver(s subscription, ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[bus] handler panic on %s: %v", ev.Type, r)
		}
	}()
	s.fn(ev)
}
