package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollpager/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan PageRequestedEvent, 1)
	b.Subscribe(EventPageRequested, func(e DomainEvent) {
		if ev, ok := e.(PageRequestedEvent); ok {
			got <- ev
		}
	})

	b.Publish(PageRequestedEvent{Page: 4, Direction: domain.DirectionUp})

	select {
	case ev := <-got:
		assert.Equal(t, 4, ev.Page)
		assert.Equal(t, domain.DirectionUp, ev.Direction)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventPageLoaded, func(DomainEvent) { calls.Add(1) })
	marker := make(chan struct{}, 1)
	b.Subscribe(EventPageLoaded, func(DomainEvent) { marker <- struct{}{} })

	unsubscribe()
	b.Publish(PageLoadedEvent{})

	select {
	case <-marker:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(nil)
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})
	b.Publish(ErrorEvent{Message: "y"})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler not called after panic")
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New(nil)
	b.Close()
	require.NotPanics(t, func() {
		b.Close()
		b.Publish(ConfigSavedEvent{})
	})
}
