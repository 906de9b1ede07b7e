// Package widget defines the contract shared by button groups and their
// member buttons: the payloads they exchange over the event bus and the
// host services they depend on.
package widget

import (
	"context"

	"github.com/dshills/buttongroup/internal/event"
	"github.com/dshills/buttongroup/internal/event/topic"
)

// ChangeEvent is published by a member button on "<name>Button" when it
// becomes the selected button.
type ChangeEvent struct {
	Value string
}

// GroupState is broadcast by a group on "<name>ButtonGroup" whenever its
// name, value or disabled state changes. An empty Value means nothing is
// selected.
type GroupState struct {
	Value    string
	Disabled bool
}

// Broker is the slice of the event bus widgets use. *event.Bus satisfies it.
type Broker interface {
	Subscribe(t topic.Topic, owner string, h event.Handler, opts ...event.SubscriptionOption) (event.Subscription, error)
	Unsubscribe(t topic.Topic, owner string) int
	Publish(ctx context.Context, t topic.Topic, payload any) error
}

// Scheduler defers work until after the current synchronous phase.
// *runloop.Loop satisfies it.
type Scheduler interface {
	Schedule(task func())
}
