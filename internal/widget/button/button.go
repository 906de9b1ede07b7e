// Package button implements the member widget of a button group.
package button

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/buttongroup/internal/event"
	"github.com/dshills/buttongroup/internal/event/topic"
	"github.com/dshills/buttongroup/internal/logging"
	"github.com/dshills/buttongroup/internal/widget"
	"github.com/dshills/buttongroup/internal/widget/disabled"
)

// Button is one selectable option. It reports presses on "<name>Button" and
// follows the group's broadcasts on "<name>ButtonGroup": it is pressed while
// its value is the group's value and disabled while the group is.
//
// A Button is not safe for concurrent use.
type Button struct {
	broker widget.Broker
	logger *logging.Logger
	owner  string

	name     string
	value    string
	label    string
	disabled disabled.Capability

	pressed       bool
	groupDisabled bool
	subscribed    topic.Topic
}

// Option configures a Button.
type Option func(*Button)

// WithName sets the name of the group the button belongs to.
func WithName(name string) Option {
	return func(b *Button) { b.name = name }
}

// WithValue sets the value the button reports when pressed.
func WithValue(value string) Option {
	return func(b *Button) { b.value = value }
}

// WithLabel sets the display label. It defaults to the value.
func WithLabel(label string) Option {
	return func(b *Button) { b.label = label }
}

// WithDisabled sets the button's own disabled capability.
func WithDisabled(c disabled.Capability) Option {
	return func(b *Button) {
		if c != nil {
			b.disabled = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Button) { b.logger = l }
}

// New creates a button. Call Init to connect it to its group.
func New(broker widget.Broker, opts ...Option) *Button {
	b := &Button{
		broker:   broker,
		owner:    "button-" + uuid.NewString(),
		disabled: disabled.Fixed(false),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.label == "" {
		b.label = b.value
	}
	b.logger = logging.OrNull(b.logger).WithComponent("button").WithField("value", b.value)
	return b
}

// Init subscribes to the group's broadcasts. It does nothing for a button
// without a group name or one that is already subscribed.
func (b *Button) Init() {
	t := topic.Group(b.name)
	if !t.IsValid() || b.subscribed != "" {
		return
	}
	if _, err := b.broker.Subscribe(t, b.owner, event.HandlerFunc(b.GroupDidChange)); err != nil {
		b.logger.Warn("subscribe %s: %v", t, err)
		return
	}
	b.subscribed = t
}

// Destroy unsubscribes. It is safe to call more than once.
func (b *Button) Destroy() {
	if b.subscribed == "" {
		return
	}
	b.broker.Unsubscribe(b.subscribed, b.owner)
	b.subscribed = ""
}

// Press reports the button's value to its group. The button becomes
// pressed only when the group broadcasts that value back, so a press no
// group answers leaves it unpressed. A disabled button ignores presses.
func (b *Button) Press(ctx context.Context) error {
	if b.Disabled() {
		b.logger.Debug("press ignored: disabled")
		return nil
	}

	t := topic.Button(b.name)
	if !t.IsValid() {
		return nil
	}
	return b.broker.Publish(ctx, t, widget.ChangeEvent{Value: b.value})
}

// GroupDidChange applies a group broadcast.
func (b *Button) GroupDidChange(_ context.Context, payload any) error {
	var s widget.GroupState
	switch p := payload.(type) {
	case widget.GroupState:
		s = p
	case *widget.GroupState:
		if p == nil {
			return nil
		}
		s = *p
	default:
		return nil
	}

	b.pressed = s.Value == b.value
	b.groupDisabled = s.Disabled
	return nil
}

// Pressed reports whether the button is the group's selection.
func (b *Button) Pressed() bool { return b.pressed }

// Disabled reports whether the button or its group is disabled.
func (b *Button) Disabled() bool { return b.groupDisabled || b.disabled.Disabled() }

// Value returns the value the button reports.
func (b *Button) Value() string { return b.value }

// Label returns the display label.
func (b *Button) Label() string { return b.label }

// Name returns the group name.
func (b *Button) Name() string { return b.name }
