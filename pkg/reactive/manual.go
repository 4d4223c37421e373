package reactive

import (
	"slices"
	"sync"
	"time"
)

// ManualScheduler is a virtual-clock Scheduler for deterministic tests and
// replays. Time only moves when Advance is called, and callbacks run on the
// goroutine that calls Advance or Flush.
//
// Post is safe to call from any goroutine; posted callbacks wait for the next
// Advance or Flush.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
	posted []func()
}

// NewManualScheduler returns a scheduler whose clock starts at start.
// A zero start uses the Unix epoch.
func NewManualScheduler(start time.Time) *ManualScheduler {
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *ManualScheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Advance moves the clock forward by d, firing every timer that comes due
// in deadline order (ties in scheduling order). Timers scheduled by those
// callbacks also fire if they fall within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.Flush()

		s.mu.Lock()
		t := s.nextDueLocked(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			break
		}
		s.removeLocked(t)
		if t.at.After(s.now) {
			s.now = t.at
		}
		s.mu.Unlock()

		t.fn()
	}

	s.Flush()
}

// Flush runs posted callbacks until none are left, without moving the clock.
func (s *ManualScheduler) Flush() {
	for {
		s.mu.Lock()
		batch := s.posted
		s.posted = nil
		s.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) removeLocked(t *manualTimer) bool {
	i := slices.Index(s.timers, t)
	if i < 0 {
		return false
	}
	s.timers = slices.Delete(s.timers, i, i+1)
	return true
}

type manualTimer struct {
	s   *ManualScheduler
	at  time.Time
	seq uint64
	fn  func()
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.removeLocked(t)
}
