package event

import (
	"context"
	"time"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes a published payload.
	// The payload is type-erased; handlers should type-assert.
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, payload any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// Typed adapts a function taking a concrete payload type into a Handler.
// Payloads of any other type are skipped silently.
func Typed[T any](fn func(ctx context.Context, payload T) error) Handler {
	return HandlerFunc(func(ctx context.Context, payload any) error {
		switch p := payload.(type) {
		case T:
			return fn(ctx, p)
		case *T:
			if p != nil {
				return fn(ctx, *p)
			}
		}
		return nil
	})
}

// FilterFunc is a predicate for filtering payloads.
// Return true to deliver the payload, false to skip it.
type FilterFunc func(payload any) bool

// PanicHandler is called when a handler panics during Publish.
type PanicHandler func(t string, payload any, recovered any, stack []byte)

// Stats contains event bus statistics.
type Stats struct {
	// Published is the number of Publish calls that found at least one subscriber.
	Published uint64

	// Delivered is the number of handler invocations that succeeded.
	Delivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// Skipped is the number of deliveries dropped because the publish
	// context was done.
	Skipped uint64

	// HandlerTime is the total time spent in handlers.
	HandlerTime time.Duration

	// ActiveSubscriptions is the current number of active subscriptions.
	ActiveSubscriptions int

	// Topics is the number of topics with at least one subscription.
	Topics int
}
