// Package statemachine provides a small, generic finite state machine.
//
// States and events are any comparable types, typically string enums:
//
//	type Phase string
//	type Action string
//
//	const (
//	    Editing        Phase = "editing"
//	    ResetRequested Phase = "reset_requested"
//
//	    RequestReset Action = "request_reset"
//	    CancelReset  Action = "cancel_reset"
//	)
//
//	m := statemachine.New[Phase, Action](Editing,
//	    statemachine.WithTransition(Editing, ResetRequested, RequestReset),
//	    statemachine.WithTransition(ResetRequested, Editing, CancelReset),
//	)
//
//	_ = m.Fire(ctx, RequestReset, nil)
//
// Several transitions may share a from/event pair. Guards decide which one
// applies: the first transition whose guards all pass wins. Listeners
// registered with WithListener run after the change, outside the machine's
// lock.
//
// Fire errors can be told apart with IsNoTransitionAvailableError and
// IsTransitionRejectedError.
//
// Machine is safe for concurrent use.
package statemachine
