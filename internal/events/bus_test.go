package events

import "testing"

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus()
	var got []Event
	bus.Subscribe(TopicTotalsUpdated, func(ev Event) { got = append(got, ev) })
	bus.Subscribe(TopicCartBadge, func(ev Event) { t.Fatal("badge handler must not fire") })

	bus.Publish(TopicTotalsUpdated, 2250)
	bus.Publish("unknown.topic", nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Payload != 2250 {
		t.Fatalf("expected payload 2250, got %v", got[0].Payload)
	}
}

func TestPublishOnNilBusIsSafe(t *testing.T) {
	var bus *Bus
	bus.Publish(TopicOrderPlaced, nil)
}
