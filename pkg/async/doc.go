// Package async runs injected callbacks off the caller's goroutine and hands
// their results back as a Future.
//
// Futures are used wherever a collaborator may block, for example a username
// availability lookup or a sign-in round-trip. The caller keeps control of the
// wait: Await blocks, AwaitContext honours a deadline, AwaitWithTimeout uses a
// fixed budget, and Done exposes a channel for select loops.
//
// Resolved and Failed build completed futures, which lets synchronous and
// asynchronous code paths share one signature.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	f := async.Async(ctx, "alice", func(ctx context.Context, name string) (bool, error) {
//	    return directory.IsFree(ctx, name)
//	})
//	free, err := f.AwaitContext(ctx)
//
// # Cancellation
//
// If ctx is already done when Async is called the function is not run and the
// Future completes with ctx.Err(). Cancellation after that point is the
// function's responsibility.
package async
