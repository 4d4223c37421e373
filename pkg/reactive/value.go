package reactive

// Value is a mutable holder that notifies subscribers on every Set, even when
// the new value equals the old one.
//
// Value is not safe for concurrent use; its owner serializes access, normally
// on the same Scheduler its streams run on.
type Value[T any] struct {
	current T
	subs    sinks[T]
}

// NewValue returns a holder with the given initial value.
// Construction does not notify anyone.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.current
}

// Set stores x and notifies every subscriber.
func (v *Value[T]) Set(x T) {
	v.current = x
	v.subs.emit(x)
}

// Stream emits every future Set. It does not emit the current value.
func (v *Value[T]) Stream() Stream[T] {
	return func(sink func(T)) Cancel {
		remove := v.subs.add(sink)
		return func() { remove() }
	}
}

// Observe emits the current value synchronously on subscription, then every
// future Set.
func (v *Value[T]) Observe() Stream[T] {
	return func(sink func(T)) Cancel {
		remove := v.subs.add(sink)
		sink(v.current)
		return func() { remove() }
	}
}
