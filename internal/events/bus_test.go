package events

import (
	"testing"
	"time"
)

func TestMemoryBus_FanOut(t *testing.T) {
	bus := NewMemoryBus()

	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish(CartChanged{Source: "tab-1"})

	for _, ch := range []<-chan CartChanged{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Source != "tab-1" {
				t.Errorf("unexpected source: %s", ev.Source)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber never received the notification")
		}
	}
}

func TestMemoryBus_CancelStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()

	ch, cancel := bus.Subscribe()
	cancel()

	// Publishing after cancel must not panic and must not deliver.
	bus.Publish(CartChanged{})

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}
}

func TestMemoryBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewMemoryBus()

	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More publishes than the subscriber buffer holds.
		for i := 0; i < 100; i++ {
			bus.Publish(CartChanged{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
