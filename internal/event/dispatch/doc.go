// Package dispatch runs event handlers on behalf of the event bus.
//
// Handlers run synchronously in the caller's goroutine. A publish that
// happens inside a handler therefore completes before the outer handler
// returns, which is what lets a button group re-broadcast its state while it
// is still handling a member button's change.
//
// # Panic Recovery
//
// The Executor recovers from handler panics so one misbehaving widget cannot
// take down the host loop. Panics surface in the Result with the recovered
// value and stack.
//
// # Usage
//
//	d := dispatch.NewDispatcher()
//	result := d.Dispatch(ctx, payload, handler)
//	switch {
//	case result.Skipped:
//	    // ctx was done; the handler did not run
//	case !result.IsSuccess():
//	    // inspect result.Error / result.PanicValue
//	}
package dispatch
