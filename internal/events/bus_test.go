package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(nil)
	a, unsubA := bus.Subscribe(4)
	b, unsubB := bus.Subscribe(4)
	defer unsubA()
	defer unsubB()

	bus.Publish(Event{Type: TasksChanged, EntityID: "t1"})

	for _, ch := range []<-chan Event{a, b} {
		got := <-ch
		assert.Equal(t, TasksChanged, got.Type)
		assert.Equal(t, "t1", got.EntityID)
		assert.Equal(t, int64(1), got.SequenceID)
		assert.False(t, got.Timestamp.IsZero())
	}
}

func TestBus_SequenceIncreases(t *testing.T) {
	bus := NewBus(nil)
	ch, unsub := bus.Subscribe(8)
	defer unsub()

	bus.Publish(Event{Type: ProjectsChanged})
	bus.Publish(Event{Type: TasksChanged})
	bus.Publish(Event{Type: AuthChanged})

	var last int64
	for range 3 {
		e := <-ch
		assert.Greater(t, e.SequenceID, last)
		last = e.SequenceID
	}
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(nil)
	ch, unsub := bus.Subscribe(1)
	defer unsub()

	// second publish has nowhere to go and must be dropped, not block
	bus.Publish(Event{Type: TasksChanged, EntityID: "first"})
	bus.Publish(Event{Type: TasksChanged, EntityID: "second"})

	got := <-ch
	assert.Equal(t, "first", got.EntityID)
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %+v", e)
	default:
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(nil)
	ch, unsub := bus.Subscribe(1)

	unsub()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after unsubscribe must not panic on the closed channel
	bus.Publish(Event{Type: AuthChanged})
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(nil)
	ch, unsub := bus.Subscribe(1)
	bus.Close()

	_, ok := <-ch
	assert.False(t, ok)
	unsub()

	late, _ := bus.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)
	ch, unsub := bus.Subscribe(100)
	defer unsub()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				bus.Publish(Event{Type: TasksChanged})
			}
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for range 100 {
		e := <-ch
		require.False(t, seen[e.SequenceID], "duplicate sequence id %d", e.SequenceID)
		seen[e.SequenceID] = true
	}
}

func TestPublish_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() { Publish(nil, Event{Type: TasksChanged}) })

	rec := NewRecorder()
	Publish(rec, Event{Type: TasksChanged})
	Publish(rec, Event{Type: ProjectsChanged})
	assert.Equal(t, []EventType{TasksChanged, ProjectsChanged}, rec.Types())

	rec.Reset()
	assert.Empty(t, rec.Events())
}
