package reactive

import "time"

// Debounce emits a value only after quiet has elapsed on s without another
// value arriving; each new value cancels the pending one. Only the last value
// of a burst is emitted, so ordering follows the order values stabilized.
func Debounce[T any](s Scheduler, quiet time.Duration, src Stream[T]) Stream[T] {
	return func(sink func(T)) Cancel {
		var (
			timer Timer
			gen   uint64
		)
		stop := src(func(v T) {
			gen++
			current := gen
			if timer != nil {
				timer.Stop()
			}
			timer = s.AfterFunc(quiet, func() {
				// a timer that raced with its own cancellation must not emit
				if current != gen {
					return
				}
				timer = nil
				sink(v)
			})
		})
		return func() {
			stop()
			gen++
			if timer != nil {
				timer.Stop()
				timer = nil
			}
		}
	}
}
