package events

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultBuffer is the subscriber channel size used when Subscribe is given
// a non-positive buffer.
const DefaultBuffer = 16

// Bus fans published events out to every subscriber. It is safe for
// concurrent use. A subscriber that falls behind loses events instead of
// stalling the publisher.
type Bus struct {
	mu           sync.Mutex
	subscribers  map[int]chan Event
	nextID       int
	lastSequence int64
	closed       bool
	logger       *slog.Logger
	now          func() time.Time
}

// NewBus creates an empty bus. A nil logger means slog.Default().
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[int]chan Event),
		logger:      logger,
		now:         time.Now,
	}
}

// Subscribe registers a new listener. The returned function unsubscribes
// and closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub)
			}
		})
	}
}

// Publish stamps event with a sequence id and a timestamp (when unset)
// and delivers it to every subscriber with room in its buffer.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.lastSequence++
	event.SequenceID = b.lastSequence
	if event.Timestamp.IsZero() {
		event.Timestamp = b.now()
	}

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Debug("dropping event for slow subscriber",
				"subscriber", id,
				"event_type", event.Type,
				"sequence", event.SequenceID)
		}
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
