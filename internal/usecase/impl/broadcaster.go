package impl

import (
	"io"
	"log/slog"
	"sync"
)

// broadcaster fans values out to subscribers without ever blocking the publisher.
// A subscriber that falls behind loses its oldest pending value.
type broadcaster[T any] struct {
	mu     sync.Mutex
	size   int
	nextID int
	subs   map[int]chan T
	closed bool
}

func newBroadcaster[T any](size int) *broadcaster[T] {
	return &broadcaster[T]{
		size: size,
		subs: make(map[int]chan T),
	}
}

func (b *broadcaster[T]) subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, b.size)
	if b.closed {
		close(ch)

		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}

	return ch, unsubscribe
}

func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		for !trySend(ch, v) {
			select {
			case <-ch:
			default:
			}
		}
	}
}

func trySend[T any](ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}

func (b *broadcaster[T]) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
