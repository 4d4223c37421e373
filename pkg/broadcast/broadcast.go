package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
// Seq increases by one with every Broadcast on the same broadcaster.
type Message[T any] struct {
	Seq  uint64
	Data T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages are delivered on.
	Receive() <-chan Message[T]

	// Close closes the subscriber and releases resources.
	// Close is idempotent and safe to call multiple times.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
// Implementations never block on a slow consumer.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber that lives until ctx is cancelled,
	// the subscriber is closed, or the broadcaster is closed.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast sends data to all active subscribers.
	Broadcast(data T) error

	// Latest returns the most recently broadcast message, if any.
	Latest() (Message[T], bool)

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

type subscriber[T any] struct {
	ch       chan Message[T]
	closedCh chan struct{}
	closed   bool
	mu       sync.Mutex
	onClose  func()
	conflate bool
}

func newSubscriber[T any](bufferSize int, conflate bool) *subscriber[T] {
	return &subscriber[T]{
		ch:       make(chan Message[T], bufferSize),
		closedCh: make(chan struct{}),
		conflate: conflate,
	}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) done() <-chan struct{} {
	return s.closedCh
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	close(s.ch)
	close(s.closedCh)
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return nil
}

// send delivers msg without blocking. With conflation a full buffer loses
// its oldest message instead of the new one.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
	}

	if !s.conflate {
		return false
	}

	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
