package event

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/buttongroup/internal/event/dispatch"
	"github.com/dshills/buttongroup/internal/event/topic"
	"github.com/dshills/buttongroup/internal/logging"
)

// Bus maps topics to ordered subscriber lists and delivers published
// payloads synchronously.
//
// Publish invokes handlers in the caller's goroutine, in registration order,
// over a snapshot of the subscriber list. Handlers may publish, subscribe or
// unsubscribe re-entrantly; a nested Publish completes before the outer
// handler returns.
type Bus struct {
	registry   *Registry
	dispatcher *dispatch.Dispatcher
	config     busConfig
	logger     *logging.Logger

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// NewBus creates an event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Bus{
		registry:   NewRegistry(),
		dispatcher: dispatch.NewDispatcher(),
		config:     config,
		logger:     config.logger.WithComponent("bus"),
	}
}

// Subscribe registers h to receive every payload published on t.
// owner identifies the subscriber for Unsubscribe; it may be empty.
func (b *Bus) Subscribe(t topic.Topic, owner string, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	if !t.IsValid() {
		return nil, ErrInvalidTopic
	}
	if h == nil {
		return nil, ErrNilHandler
	}

	sub := newSubscription(uuid.NewString(), t, owner, h, opts...)
	b.registry.Add(sub)

	b.logger.Debug("subscribed %s to %s", owner, t)
	return sub, nil
}

// SubscribeFunc is a convenience wrapper for function handlers.
func (b *Bus) SubscribeFunc(t topic.Topic, owner string, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(t, owner, fn, opts...)
}

// Unsubscribe removes every subscription owner holds on t and returns how
// many were removed. Removing nothing is not an error.
func (b *Bus) Unsubscribe(t topic.Topic, owner string) int {
	n := b.registry.RemoveOwner(t, owner)
	if n > 0 {
		b.logger.Debug("unsubscribed %s from %s", owner, t)
	}
	return n
}

// Cancel removes a single subscription. It returns false when the
// subscription was nil or already removed.
func (b *Bus) Cancel(sub Subscription) bool {
	if sub == nil {
		return false
	}
	return b.registry.Remove(sub.ID())
}

// Publish delivers payload to every active subscriber of t.
//
// All handlers run even when some fail. Handler errors and recovered panics
// are returned joined, as *HandlerError and *PanicError values. Handlers
// skipped because ctx is done are not failures; Publish then also returns
// ctx.Err(). Publishing to a topic without subscribers does nothing and
// returns nil.
func (b *Bus) Publish(ctx context.Context, t topic.Topic, payload any) error {
	if !t.IsValid() {
		return ErrInvalidTopic
	}

	subs := b.registry.Snapshot(t)
	if len(subs) == 0 {
		return nil
	}
	b.published.Add(1)
	b.logger.Debug("publish %s to %d subscriber(s): %+v", t, len(subs), payload)

	var (
		errs    []error
		skipped bool
	)
	for _, sub := range subs {
		// Cancelled mid-publish (for example by an earlier handler) counts
		// as gone even though it is still in the snapshot.
		if !sub.claim(payload) {
			continue
		}
		if sub.Config().Once {
			b.registry.Remove(sub.ID())
		}

		result := b.dispatcher.Dispatch(ctx, payload, sub.Handler())
		if result.Skipped {
			skipped = true
			continue
		}
		if err := b.record(t, sub, payload, result); err != nil {
			errs = append(errs, err)
		}
	}

	if skipped {
		b.logger.Debug("publish %s: skipped handlers: %v", t, ctx.Err())
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}

func (b *Bus) record(t topic.Topic, sub *subscription, payload any, result dispatch.Result) error {
	switch {
	case result.Panicked:
		b.handlerPanics.Add(1)
		b.logger.Error("handler %s (owner %s) panicked on %s: %v", sub.ID(), sub.Owner(), t, result.PanicValue)
		if b.config.panicHandler != nil {
			b.config.panicHandler(t.String(), payload, result.PanicValue, result.PanicStack)
		}
		return &PanicError{
			SubscriptionID: sub.ID(),
			Owner:          sub.Owner(),
			Topic:          t.String(),
			Value:          result.PanicValue,
			Stack:          string(result.PanicStack),
		}
	case result.Error != nil:
		b.handlerErrors.Add(1)
		b.logger.Warn("handler %s (owner %s) failed on %s: %v", sub.ID(), sub.Owner(), t, result.Error)
		return &HandlerError{
			SubscriptionID: sub.ID(),
			Owner:          sub.Owner(),
			Topic:          t.String(),
			Err:            result.Error,
		}
	default:
		b.delivered.Add(1)
		return nil
	}
}

// Count returns the number of subscriptions on t.
func (b *Bus) Count(t topic.Topic) int {
	return b.registry.Count(t)
}

// Topics returns every topic that currently has subscribers.
func (b *Bus) Topics() []topic.Topic {
	return b.registry.Topics()
}

// Clear removes every subscription.
func (b *Bus) Clear() {
	b.registry.Clear()
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	ds := b.dispatcher.Stats()
	return Stats{
		Skipped:             ds.Skipped,
		HandlerTime:         ds.TotalDuration,
		Published:           b.published.Load(),
		Delivered:           b.delivered.Load(),
		HandlerErrors:       b.handlerErrors.Load(),
		HandlerPanics:       b.handlerPanics.Load(),
		ActiveSubscriptions: b.registry.CountActive(),
		Topics:              len(b.registry.Topics()),
	}
}
