package reactive

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// SwitchMapAsync starts fn for every value of src and emits the result of the
// most recent call only. Starting a new call cancels the context of the
// previous one, and a superseded result is dropped even if it completes.
//
// A value equal to the one of the last call is ignored as long as that call
// still stands. Any emission of invalidate cancels a pending call and drops
// its result; the next value of src is then mapped even if it repeats the
// cancelled one. invalidate may be nil, in which case R has to be given
// explicitly.
//
// Futures that are already complete when fn returns are delivered inline, so
// synchronous mappings keep their ordering. Pending futures are delivered
// through s.Post.
//
// onError converts a failed call into a value; returning false drops it.
func SwitchMapAsync[R any, T comparable, U any](
	s Scheduler,
	src Stream[T],
	invalidate Stream[R],
	fn func(context.Context, T) *async.Future[U],
	onError func(T, error) (U, bool),
) Stream[U] {
	return func(sink func(U)) Cancel {
		var (
			gen        uint64
			cancelPrev context.CancelFunc
			last       T
			called     bool
		)
		abort := func() {
			gen++
			if cancelPrev != nil {
				cancelPrev()
				cancelPrev = nil
			}
		}

		stopInvalidate := func() {}
		if invalidate != nil {
			stopInvalidate = invalidate(func(R) {
				// completed calls stay valid for their value
				if cancelPrev == nil {
					return
				}
				abort()
				called = false
			})
		}

		stop := src(func(v T) {
			if called && v == last {
				return
			}
			abort()
			last, called = v, true
			current := gen

			ctx, cancel := context.WithCancel(context.Background())
			cancelPrev = cancel

			f := fn(ctx, v)
			deliver := func() {
				if current != gen {
					return
				}
				cancel()
				cancelPrev = nil

				res, err := f.Await()
				if err != nil {
					var ok bool
					if res, ok = onError(v, err); !ok {
						return
					}
				}
				sink(res)
			}

			if f.IsComplete() {
				deliver()
				return
			}
			go func() {
				select {
				case <-f.Done():
					s.Post(deliver)
				case <-ctx.Done():
				}
			}()
		})
		return func() {
			stop()
			stopInvalidate()
			abort()
		}
	}
}
