package reactive

import "slices"

// CombineLatest2 emits fn(a, b) whenever either source emits, using the
// latest value of the other. Nothing is emitted until both have emitted once.
func CombineLatest2[A, B, R any](a Stream[A], b Stream[B], fn func(A, B) R) Stream[R] {
	return func(sink func(R)) Cancel {
		var (
			la         A
			lb         B
			hasA, hasB bool
		)
		cancelA := a(func(v A) {
			la, hasA = v, true
			if hasB {
				sink(fn(la, lb))
			}
		})
		cancelB := b(func(v B) {
			lb, hasB = v, true
			if hasA {
				sink(fn(la, lb))
			}
		})
		return func() {
			cancelA()
			cancelB()
		}
	}
}

// CombineLatest3 is CombineLatest2 over three sources.
func CombineLatest3[A, B, C, R any](a Stream[A], b Stream[B], c Stream[C], fn func(A, B, C) R) Stream[R] {
	return func(sink func(R)) Cancel {
		var (
			la               A
			lb               B
			lc               C
			hasA, hasB, hasC bool
		)
		emit := func() {
			if hasA && hasB && hasC {
				sink(fn(la, lb, lc))
			}
		}
		cancelA := a(func(v A) { la, hasA = v, true; emit() })
		cancelB := b(func(v B) { lb, hasB = v, true; emit() })
		cancelC := c(func(v C) { lc, hasC = v, true; emit() })
		return func() {
			cancelA()
			cancelB()
			cancelC()
		}
	}
}

// CombineLatestAll combines any number of same-typed sources. Each emission
// is a fresh slice holding the latest value of every source, in source order.
// An empty source list never emits.
func CombineLatestAll[T any](srcs ...Stream[T]) Stream[[]T] {
	return func(sink func([]T)) Cancel {
		latest := make([]T, len(srcs))
		seen := make([]bool, len(srcs))
		ready := 0

		cancels := make([]Cancel, 0, len(srcs))
		for i, src := range srcs {
			cancels = append(cancels, src(func(v T) {
				if !seen[i] {
					seen[i] = true
					ready++
				}
				latest[i] = v
				if ready == len(srcs) {
					sink(slices.Clone(latest))
				}
			}))
		}
		return func() {
			for _, c := range cancels {
				c()
			}
		}
	}
}
