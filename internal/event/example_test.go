package event_test

import (
	"context"
	"fmt"

	"github.com/dshills/buttongroup/internal/event"
	"github.com/dshills/buttongroup/internal/event/topic"
)

// Example_basicUsage demonstrates subscribing and publishing.
func Example_basicUsage() {
	bus := event.NewBus()

	_, err := bus.SubscribeFunc(topic.Button("nav"), "listener",
		func(ctx context.Context, payload any) error {
			fmt.Printf("received %v\n", payload)
			return nil
		})
	if err != nil {
		fmt.Printf("subscribe failed: %v\n", err)
		return
	}

	_ = bus.Publish(context.Background(), topic.Button("nav"), "About")
	_ = bus.Publish(context.Background(), topic.Button("other"), "ignored")

	// Output: received About
}

// Example_unsubscribe shows that teardown is idempotent.
func Example_unsubscribe() {
	bus := event.NewBus()
	t := topic.Button("nav")

	_, _ = bus.SubscribeFunc(t, "group", func(ctx context.Context, payload any) error {
		fmt.Println("should not run")
		return nil
	})

	fmt.Println(bus.Unsubscribe(t, "group"))
	fmt.Println(bus.Unsubscribe(t, "group"))
	_ = bus.Publish(context.Background(), t, "About")

	// Output:
	// 1
	// 0
}

// Example_typed shows a handler bound to a concrete payload type.
func Example_typed() {
	type change struct{ Value string }

	bus := event.NewBus()
	_, _ = bus.Subscribe(topic.Button("tabs"), "typed",
		event.Typed(func(ctx context.Context, c change) error {
			fmt.Println("value:", c.Value)
			return nil
		}))

	_ = bus.Publish(context.Background(), topic.Button("tabs"), change{Value: "Two"})
	_ = bus.Publish(context.Background(), topic.Button("tabs"), "not a change")

	// Output: value: Two
}
