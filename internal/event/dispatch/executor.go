package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Executor runs a single handler with panic recovery and timing.
// Recovered panics are reported in the Result; the caller decides how to
// surface them.
type Executor struct{}

// NewExecutor creates a new executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs handler with payload and returns the result.
// A cancelled context skips the handler entirely.
func (e *Executor) Execute(ctx context.Context, payload any, handler Handler) (result Result) {
	if err := ctx.Err(); err != nil {
		return Result{Error: err, Skipped: true}
	}

	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			result.Success = false
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = debug.Stack()
		}
	}()

	if err := handler.Handle(ctx, payload); err != nil {
		result.Error = err
		return result
	}
	result.Success = true
	return result
}
