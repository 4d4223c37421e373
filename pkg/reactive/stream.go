package reactive

import "slices"

// Stream is a push-based sequence of values. Subscribing calls the function
// with a sink; the returned Cancel detaches the sink and releases any timers
// the subscription holds.
//
// Streams built by the operators in this package are cold: every
// subscription gets its own operator state. Use Share to fan one upstream
// subscription out to several sinks.
type Stream[T any] func(sink func(T)) Cancel

// Cancel detaches a subscription. Calling it more than once is a no-op.
type Cancel func()

// Subscribe attaches sink and returns its Cancel.
func (s Stream[T]) Subscribe(sink func(T)) Cancel {
	return s(sink)
}

// Map transforms every value with fn.
func Map[T, U any](src Stream[T], fn func(T) U) Stream[U] {
	return func(sink func(U)) Cancel {
		return src(func(v T) { sink(fn(v)) })
	}
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](src Stream[T], keep func(T) bool) Stream[T] {
	return func(sink func(T)) Cancel {
		return src(func(v T) {
			if keep(v) {
				sink(v)
			}
		})
	}
}

// Tap calls fn with every value before forwarding it.
func Tap[T any](src Stream[T], fn func(T)) Stream[T] {
	return func(sink func(T)) Cancel {
		return src(func(v T) {
			fn(v)
			sink(v)
		})
	}
}

// Distinct suppresses a value equal to the last value it emitted.
// The first value always passes.
func Distinct[T comparable](src Stream[T]) Stream[T] {
	return DistinctFunc(src, func(a, b T) bool { return a == b })
}

// DistinctFunc is Distinct with a custom equality.
func DistinctFunc[T any](src Stream[T], equal func(a, b T) bool) Stream[T] {
	return func(sink func(T)) Cancel {
		var (
			last T
			seen bool
		)
		return src(func(v T) {
			if seen && equal(last, v) {
				return
			}
			last, seen = v, true
			sink(v)
		})
	}
}

// SkipUntil drops values of src until trigger emits for the first time.
// Values from src arriving after that are forwarded.
func SkipUntil[T, R any](src Stream[T], trigger Stream[R]) Stream[T] {
	return func(sink func(T)) Cancel {
		open := false
		stopTrigger := trigger(func(R) {
			open = true
		})
		stop := src(func(v T) {
			if open {
				sink(v)
			}
		})
		return func() {
			stop()
			stopTrigger()
		}
	}
}

// Share multicasts src: the first subscriber connects to src, later
// subscribers join the same upstream subscription, and the last Cancel
// disconnects it. Sinks are called in subscription order.
func Share[T any](src Stream[T]) Stream[T] {
	var (
		set      sinks[T]
		upstream Cancel
	)
	return func(sink func(T)) Cancel {
		remove := set.add(sink)
		if upstream == nil {
			upstream = src(set.emit)
		}
		return func() {
			if !remove() {
				return
			}
			if set.len() == 0 && upstream != nil {
				upstream()
				upstream = nil
			}
		}
	}
}

type sinkEntry[T any] struct {
	id uint64
	fn func(T)
}

// sinks is an ordered subscriber list that tolerates removal during emit.
type sinks[T any] struct {
	next    uint64
	entries []sinkEntry[T]
}

func (s *sinks[T]) add(fn func(T)) (remove func() bool) {
	s.next++
	id := s.next
	s.entries = append(s.entries, sinkEntry[T]{id: id, fn: fn})
	return func() bool {
		i := slices.IndexFunc(s.entries, func(e sinkEntry[T]) bool { return e.id == id })
		if i < 0 {
			return false
		}
		s.entries = slices.Delete(s.entries, i, i+1)
		return true
	}
}

func (s *sinks[T]) emit(v T) {
	for _, e := range slices.Clone(s.entries) {
		e.fn(v)
	}
}

func (s *sinks[T]) len() int {
	return len(s.entries)
}
