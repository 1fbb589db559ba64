package events

import (
	"strings"
	"sync"
)

// Event is a UI-facing notification published by the page controllers.
type Event struct {
	Topic   string
	Payload any
}

// Handler reacts to a published event. Handlers run synchronously on the
// publishing goroutine, matching the single-threaded event-driven model of
// the storefront pages.
type Handler func(Event)

// Bus fans events out to subscribed render-layer handlers. The controllers
// publish computed totals and state changes here instead of calling the
// rendering layer directly.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for the given topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	if b == nil || h == nil {
		return
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[string][]Handler)
	}
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish dispatches the event to all handlers subscribed to its topic.
func (b *Bus) Publish(topic string, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := b.subs[topic]
	b.mu.RUnlock()
	ev := Event{Topic: topic, Payload: payload}
	for _, h := range handlers {
		if h != nil {
			h(ev)
		}
	}
}
