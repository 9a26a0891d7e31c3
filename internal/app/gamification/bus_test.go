package gamification_test

import (
	"testing"

	"github.com/ekima-network/ekima/internal/app/gamification"
	"github.com/ekima-network/ekima/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Event Bus Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	b := gamification.NewBus()

	var order []int
	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { order = append(order, 1) })
	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { order = append(order, 2) })
	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { order = append(order, 3) })

	b.Publish(domain.Event{Type: domain.EventXPAwarded, UserID: "alice"})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected delivery order [1 2 3], got %v", order)
	}
}

func TestBus_TypeIsolation(t *testing.T) {
	b := gamification.NewBus()

	var got []domain.EventType
	b.Subscribe(domain.EventLevelUp, func(ev domain.Event) { got = append(got, ev.Type) })

	b.Publish(domain.Event{Type: domain.EventXPAwarded})
	b.Publish(domain.Event{Type: domain.EventLevelUp})

	if len(got) != 1 || got[0] != domain.EventLevelUp {
		t.Errorf("expected only level_up, got %v", got)
	}
}

func TestBus_FillsIDAndTimestamp(t *testing.T) {
	b := gamification.NewBus()

	var seen domain.Event
	b.Subscribe(domain.EventXPAwarded, func(ev domain.Event) { seen = ev })

	b.Publish(domain.Event{Type: domain.EventXPAwarded, UserID: "bob"})

	if seen.ID == "" {
		t.Error("expected event id to be filled in")
	}
	if seen.At.IsZero() {
		t.Error("expected event timestamp to be filled in")
	}
}

func TestBus_PanickingHandlerIsolated(t *testing.T) {
	b := gamification.NewBus()

	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { panic("boom") })

	var delivered bool
	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { delivered = true })

	b.Publish(domain.Event{Type: domain.EventXPAwarded}) // must not panic out

	if !delivered {
		t.Error("later handler should run after an earlier panic")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := gamification.NewBus()

	var a, c int
	unsub := b.Subscribe(domain.EventXPAwarded, func(domain.Event) { a++ })
	b.Subscribe(domain.EventXPAwarded, func(domain.Event) { c++ })

	b.Publish(domain.Event{Type: domain.EventXPAwarded})
	unsub()
	unsub() // second call is a no-op
	b.Publish(domain.Event{Type: domain.EventXPAwarded})

	if a != 1 {
		t.Errorf("unsubscribed handler ran %d times, expected 1", a)
	}
	if c != 2 {
		t.Errorf("remaining handler ran %d times, expected 2", c)
	}
}
