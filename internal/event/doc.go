// Package event provides the publish/subscribe bus that links button groups
// with their member buttons.
//
// Neither side holds a reference to the other. A group and its buttons agree
// only on a group name, from which the topic package derives two topics:
// buttons publish on "<name>Button" and the group broadcasts its state on
// "<name>ButtonGroup".
//
// # Delivery
//
// Publish is synchronous. Handlers run in the publisher's goroutine, in the
// order they subscribed, over a snapshot of the subscriber list taken when
// Publish starts:
//
//   - subscriptions added during a publish are not invoked by it
//   - subscriptions removed during a publish are skipped if not yet reached
//   - a Publish issued from inside a handler runs to completion first
//
// # Failure Handling
//
// Publishing to a topic nobody listens on is a no-op. Unsubscribing something
// that was never subscribed is a no-op. A handler that returns an error or
// panics does not stop delivery to the remaining handlers; the failures are
// returned from Publish as *HandlerError and *PanicError values.
//
// # Basic Usage
//
//	bus := event.NewBus(event.WithLogger(logger))
//
//	_, err := bus.SubscribeFunc(topic.Button("nav"), "group:nav",
//	    func(ctx context.Context, payload any) error {
//	        return nil
//	    })
//
//	err = bus.Publish(ctx, topic.Button("nav"), widget.ChangeEvent{Value: "About"})
//
//	bus.Unsubscribe(topic.Button("nav"), "group:nav")
//
// # Thread Safety
//
// The registry is safe for concurrent use. Widgets built on the bus are not;
// they are driven from a single runloop.Loop goroutine.
//
// # Subpackages
//
//   - topic: topic type and the Button/Group topic constructors
//   - dispatch: synchronous handler execution with panic recovery
package event
