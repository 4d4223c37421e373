package statemachine

import (
	"context"
	"slices"
	"sync"
)

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Listener is notified after the machine has moved to a new state.
type Listener[S, E comparable] func(from, to S, event E)

// Transition defines a state change triggered by an event, with optional guards.
type Transition[S, E comparable] struct {
	From   S
	To     S
	Event  E
	Guards []Guard[S, E] // All must pass for transition to proceed
}

// Machine is a thread-safe in-memory finite state machine over comparable
// state and event types, usually small string enums.
// Transitions are looked up as [from][event][]Transition.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	current     S
	transitions map[S]map[E][]Transition[S, E]
	listeners   []Listener[S, E]
}

func newMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// addTransition registers a transition. Several transitions may share the
// same from/event pair; the first one whose guards pass wins.
func (m *Machine[S, E]) addTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

func (m *Machine[S, E]) onTransition(l Listener[S, E]) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Fire moves the machine along the first transition for event whose guards
// pass. Listeners run after the change, outside the machine's lock, and may
// read its state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()

	from := m.current
	t, err := m.match(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	m.current = t.To
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		l(from, t.To, event)
	}
	return nil
}

// CanFire reports whether Fire would succeed for event.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

// match must be called with the lock held.
func (m *Machine[S, E]) match(ctx context.Context, event E, data any) (*Transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return nil, NewErrNoTransitionAvailable(m.current, event)
	}

	for i, t := range candidates {
		if guardsPass(ctx, t.Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, NewErrTransitionRejected(m.current, event)
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
