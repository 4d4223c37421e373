// Package reactive provides a small push-based stream toolkit for turning
// rapidly changing input into settled values.
//
// A Value holds mutable state and notifies subscribers on every Set. Streams
// derived from it are composed with operators:
//
//   - Debounce         – trailing-edge debounce on a Scheduler
//   - Distinct         – drop a value equal to the last emitted one
//   - Map, Filter, Tap – per-value transforms and side effects
//   - SkipUntil        – drop values until another stream fires
//   - CombineLatest2/3 – recompute from the latest value of each source
//   - CombineLatestAll – the same over a slice of sources
//   - Share            – multicast one upstream subscription
//   - SwitchMapAsync   – async mapping where only the latest call counts,
//     with pending calls dropped when an invalidating stream fires
//
// # Scheduling
//
// Every operator that needs time runs its callbacks through a Scheduler. All
// callbacks are expected to run on one logical execution context, so operator
// state needs no locking. LoopScheduler is the wall-clock implementation
// backed by a single goroutine; ManualScheduler is a virtual clock for tests
// and replays. Guarded wraps a Scheduler so an owner can take its own lock
// around every callback.
//
// # Usage
//
//	sched := reactive.NewManualScheduler(time.Time{})
//	name := reactive.NewValue("")
//
//	settled := reactive.Distinct(reactive.Debounce(sched, 800*time.Millisecond, name.Stream()))
//	cancel := settled.Subscribe(func(v string) { fmt.Println("settled:", v) })
//	defer cancel()
//
//	name.Set("a")
//	name.Set("al")
//	sched.Advance(time.Second) // prints "settled: al"
package reactive
