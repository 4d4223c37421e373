package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster.
// All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	replay      bool
	conflate    bool
	seq         uint64
	latest      Message[T]
	hasLatest   bool
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup // tracks context watchers
}

// Option configures a MemoryBroadcaster.
type Option func(*config)

type config struct {
	replay   bool
	conflate bool
}

// WithReplay makes new subscribers receive the latest message immediately.
func WithReplay() Option {
	return func(c *config) { c.replay = true }
}

// WithConflation keeps slow subscribers and drops their oldest buffered
// message instead. Without it a subscriber whose buffer is full is removed.
func WithConflation() Option {
	return func(c *config) { c.conflate = true }
}

// NewMemoryBroadcaster creates a new in-memory broadcaster.
// The bufferSize parameter determines the channel buffer size for each
// subscriber; a minimum of 1 is enforced.
func NewMemoryBroadcaster[T any](bufferSize int, opts ...Option) *MemoryBroadcaster[T] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		// zero-buffer channels would make every send fail
		bufferSize: max(bufferSize, 1),
		replay:     cfg.replay,
		conflate:   cfg.conflate,
	}
}

// Subscribe creates a new subscriber. The subscription is cleaned up when ctx
// is cancelled. If the broadcaster is already closed, the returned
// subscriber is closed too.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize, b.conflate)
	if b.closed {
		_ = sub.Close()
		return sub
	}

	sub.onClose = func() { b.remove(sub) }
	b.subscribers[sub] = struct{}{}

	if b.replay && b.hasLatest {
		sub.send(b.latest)
	}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.done():
			}
		}()
	}

	return sub
}

// Broadcast sends data to every subscriber without blocking.
func (b *MemoryBroadcaster[T]) Broadcast(data T) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.seq++
	msg := Message[T]{Seq: b.seq, Data: data}
	b.latest, b.hasLatest = msg, true

	var slow []*subscriber[T]
	for sub := range b.subscribers {
		if !sub.send(msg) {
			slow = append(slow, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range slow {
		_ = sub.Close()
	}
	return nil
}

// Latest returns the most recently broadcast message.
func (b *MemoryBroadcaster[T]) Latest() (Message[T], bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.hasLatest
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers.
// It is safe to call Close multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*subscriber[T], 0, len(b.subscribers))
	for sub := range b.subscribers {
		subs = append(subs, sub)
	}
	clear(b.subscribers)
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	delete(b.subscribers, sub)
	b.mu.Unlock()
}
