package reactive

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the single logical execution context every stream callback
// runs on. Implementations must run callbacks one at a time.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// AfterFunc runs fn on the scheduler once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Post runs fn on the scheduler as soon as possible.
	Post(fn func())
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means the callback already ran or was stopped.
	Stop() bool
}

// LoopScheduler runs callbacks on a dedicated goroutine using wall-clock time.
// Post never blocks, so callbacks may post further work.
type LoopScheduler struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewLoopScheduler starts a scheduler loop. Call Close to stop it.
func NewLoopScheduler() *LoopScheduler {
	s := &LoopScheduler{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

func (s *LoopScheduler) Post(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		s.Post(func() {
			if t.fired.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

// Close stops the loop and drops callbacks that have not run yet.
// It must not be called from a scheduled callback.
func (s *LoopScheduler) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.pending = nil
		s.mu.Unlock()
		close(s.done)
		<-s.stopped
	})
	return nil
}

func (s *LoopScheduler) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			closed := s.closed
			s.mu.Unlock()

			if closed || len(batch) == 0 {
				break
			}
			for _, fn := range batch {
				fn()
			}
		}
	}
}

type loopTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	// fired doubles as "consumed": whoever flips it first wins
	return t.fired.CompareAndSwap(false, true)
}

// Guarded returns a Scheduler that delegates to s but runs every callback
// through run. Owners use it to take their lock around stream callbacks.
func Guarded(s Scheduler, run func(fn func())) Scheduler {
	return guarded{next: s, run: run}
}

type guarded struct {
	next Scheduler
	run  func(fn func())
}

func (g guarded) Now() time.Time {
	return g.next.Now()
}

func (g guarded) AfterFunc(d time.Duration, fn func()) Timer {
	return g.next.AfterFunc(d, func() { g.run(fn) })
}

func (g guarded) Post(fn func()) {
	g.next.Post(func() { g.run(fn) })
}
