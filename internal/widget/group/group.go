// Package group implements ButtonGroup, the coordinator that keeps a set of
// member buttons in a single-selection state.
//
// A group and its buttons never hold references to each other. They share a
// name, and from it two bus topics: buttons publish widget.ChangeEvent on
// "<name>Button" and the group broadcasts widget.GroupState on
// "<name>ButtonGroup". Groups that share a name receive and broadcast
// together.
//
// A ButtonGroup is not safe for concurrent use. Drive it from the host's
// task queue, the same goroutine that flushes the scheduler.
package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/buttongroup/internal/event"
	"github.com/dshills/buttongroup/internal/event/topic"
	"github.com/dshills/buttongroup/internal/logging"
	"github.com/dshills/buttongroup/internal/widget"
	"github.com/dshills/buttongroup/internal/widget/action"
	"github.com/dshills/buttongroup/internal/widget/disabled"
	"github.com/dshills/buttongroup/internal/widget/observe"
)

// Observable field names.
const (
	FieldName     = "name"
	FieldValue    = "value"
	FieldDisabled = disabled.Field
)

// ButtonGroup coordinates the buttons that share its name.
type ButtonGroup struct {
	broker    widget.Broker
	scheduler widget.Scheduler
	logger    *logging.Logger
	owner     string

	name          string
	value         string
	disabled      disabled.Capability
	onValueChange action.Action

	notifier *observe.Notifier

	// Attached-phase resources.
	attached    bool
	generation  uint64
	subscribed  topic.Topic
	observer    *observe.Subscription
	disabledSub *observe.Subscription
}

// Option configures a ButtonGroup.
type Option func(*ButtonGroup)

// WithName sets the group name.
func WithName(name string) Option {
	return func(g *ButtonGroup) {
		g.name = name
	}
}

// WithValue sets the initial selection.
func WithValue(value string) Option {
	return func(g *ButtonGroup) {
		g.value = value
	}
}

// WithDisabled sets the disabled capability. Passing a shared
// *disabled.State lets several groups be disabled together.
func WithDisabled(c disabled.Capability) Option {
	return func(g *ButtonGroup) {
		if c != nil {
			g.disabled = c
		}
	}
}

// WithOnValueChange sets the action run when a button reports a new value.
func WithOnValueChange(a action.Action) Option {
	return func(g *ButtonGroup) {
		g.onValueChange = a
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(g *ButtonGroup) {
		g.logger = l
	}
}

// New creates a detached group. Call Init to attach it to the bus.
func New(broker widget.Broker, scheduler widget.Scheduler, opts ...Option) *ButtonGroup {
	g := &ButtonGroup{
		broker:    broker,
		scheduler: scheduler,
		owner:     "group-" + uuid.NewString(),
		disabled:  disabled.NewState(false),
		notifier:  observe.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrNull(g.logger).WithComponent("group").WithField("owner", g.owner)
	return g
}

// Init attaches the group: it subscribes to "<name>Button", starts
// broadcasting on changes and schedules one broadcast of the initial state
// for after the current synchronous phase, by which time sibling buttons
// created alongside the group have subscribed. Init on an attached group
// does nothing.
func (g *ButtonGroup) Init() {
	if g.attached {
		return
	}
	g.attached = true
	g.generation++

	g.subscribe()

	g.observer = g.notifier.Observe(func([]observe.Change) {
		g.broadcast(context.Background())
	}, FieldName, FieldValue, FieldDisabled)

	if w, ok := g.disabled.(disabled.Watchable); ok {
		g.disabledSub = w.OnChange(func(now bool) {
			g.notifier.Set(FieldDisabled, !now, now)
		})
	}

	gen := g.generation
	g.scheduler.Schedule(func() {
		if g.attached && g.generation == gen {
			g.broadcast(context.Background())
		}
	})

	g.logger.Debug("attached as %q", g.name)
}

// Destroy detaches the group. It is safe to call more than once, and
// without a prior Init.
func (g *ButtonGroup) Destroy() {
	if !g.attached {
		return
	}
	g.attached = false

	g.unsubscribe()
	g.observer.Unsubscribe()
	g.observer = nil
	g.disabledSub.Unsubscribe()
	g.disabledSub = nil

	g.logger.Debug("detached")
}

// Attached reports whether the group is between Init and Destroy.
func (g *ButtonGroup) Attached() bool { return g.attached }

// Name returns the group name.
func (g *ButtonGroup) Name() string { return g.name }

// Value returns the current selection; empty means none.
func (g *ButtonGroup) Value() string { return g.value }

// Disabled reports the disabled capability.
func (g *ButtonGroup) Disabled() bool { return g.disabled.Disabled() }

// State returns the payload the group broadcasts.
func (g *ButtonGroup) State() widget.GroupState {
	return widget.GroupState{Value: g.value, Disabled: g.Disabled()}
}

// Observe registers fn for changes to the group's name, value or disabled
// fields.
func (g *ButtonGroup) Observe(fn observe.Observer) *observe.Subscription {
	return g.notifier.Observe(fn, FieldName, FieldValue, FieldDisabled)
}

// SetValue changes the selection.
func (g *ButtonGroup) SetValue(value string) {
	if value == g.value {
		return
	}
	old := g.value
	g.value = value
	g.notifier.Set(FieldValue, old, value)
}

// SetName renames the group. While attached the subscription moves to the
// new "<name>Button" topic; an empty name leaves the bus.
func (g *ButtonGroup) SetName(name string) {
	if name == g.name {
		return
	}
	old := g.name
	g.name = name
	if g.attached {
		g.unsubscribe()
		g.subscribe()
	}
	g.notifier.Set(FieldName, old, name)
}

// SetDisabled changes the disabled flag. It has no effect when the
// capability is read-only.
func (g *ButtonGroup) SetDisabled(v bool) {
	s, ok := g.disabled.(disabled.Setter)
	if !ok {
		g.logger.Debug("disabled capability is read-only")
		return
	}
	if !s.Set(v) {
		return
	}
	// Watchable capabilities report through disabledSub.
	if _, watched := g.disabled.(disabled.Watchable); !watched || !g.attached {
		g.notifier.Set(FieldDisabled, !v, v)
	}
}

// Apply sets value and disabled together. Observers, and therefore the bus,
// see a single change.
func (g *ButtonGroup) Apply(state widget.GroupState) {
	batch := g.notifier.NewBatch()

	if state.Value != g.value {
		batch.Set(FieldValue, g.value, state.Value)
		g.value = state.Value
	}

	if s, ok := g.disabled.(disabled.Setter); ok && s.Disabled() != state.Disabled {
		// Detach the capability watcher so the change lands in the batch.
		sub := g.disabledSub
		g.disabledSub = nil
		sub.Unsubscribe()

		s.Set(state.Disabled)
		batch.Set(FieldDisabled, !state.Disabled, state.Disabled)

		if sub != nil {
			g.disabledSub = s.(disabled.Watchable).OnChange(func(now bool) {
				g.notifier.Set(FieldDisabled, !now, now)
			})
		}
	}

	batch.Commit()
}

// ButtonDidChange handles a member button's change. It runs the
// on-value-change action with the reported value and then adopts the
// value, whether or not the action failed. Payloads other than
// widget.ChangeEvent are ignored.
func (g *ButtonGroup) ButtonDidChange(ctx context.Context, payload any) error {
	var ev widget.ChangeEvent
	switch p := payload.(type) {
	case widget.ChangeEvent:
		ev = p
	case *widget.ChangeEvent:
		if p == nil {
			return nil
		}
		ev = *p
	default:
		g.logger.Debug("ignoring payload %T", payload)
		return nil
	}

	var err error
	if g.onValueChange != nil {
		if err = g.onValueChange.Invoke(ctx, ev.Value); err != nil {
			g.logger.Warn("on-value-change %q: %v", ev.Value, err)
			err = fmt.Errorf("group %q: on-value-change: %w", g.name, err)
		}
	}

	g.SetValue(ev.Value)
	return err
}

func (g *ButtonGroup) subscribe() {
	t := topic.Button(g.name)
	if !t.IsValid() {
		return
	}
	_, err := g.broker.Subscribe(t, g.owner, event.HandlerFunc(g.ButtonDidChange))
	if err != nil {
		g.logger.Warn("subscribe %s: %v", t, err)
		return
	}
	g.subscribed = t
}

func (g *ButtonGroup) unsubscribe() {
	if g.subscribed == "" {
		return
	}
	g.broker.Unsubscribe(g.subscribed, g.owner)
	g.subscribed = ""
}

func (g *ButtonGroup) broadcast(ctx context.Context) {
	if !g.attached {
		return
	}
	t := topic.Group(g.name)
	if !t.IsValid() {
		return
	}
	if err := g.broker.Publish(ctx, t, g.State()); err != nil {
		g.logger.Warn("broadcast %s: %v", t, err)
	}
}
