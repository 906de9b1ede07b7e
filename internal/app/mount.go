package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dshills/buttongroup/internal/config"
	"github.com/dshills/buttongroup/internal/widget"
	"github.com/dshills/buttongroup/internal/widget/action"
	"github.com/dshills/buttongroup/internal/widget/button"
	"github.com/dshills/buttongroup/internal/widget/disabled"
	"github.com/dshills/buttongroup/internal/widget/group"
	"github.com/dshills/buttongroup/internal/widget/observe"
)

// Mount is a group and its buttons created from one layout entry.
type Mount struct {
	Spec    config.GroupSpec
	Group   *group.ButtonGroup
	Buttons []*button.Button

	// Disabled is the group's capability; toggling it disables the group
	// and, through the group's broadcast, its buttons.
	Disabled *disabled.State

	script   *action.LuaAction
	observer *observe.Subscription
}

// Button returns the member button with value.
func (m *Mount) Button(value string) (*button.Button, bool) {
	i := slices.IndexFunc(m.Buttons, func(b *button.Button) bool { return b.Value() == value })
	if i < 0 {
		return nil, false
	}
	return m.Buttons[i], true
}

// Pressed returns the pressed button, if any.
func (m *Mount) Pressed() (*button.Button, bool) {
	i := slices.IndexFunc(m.Buttons, func(b *button.Button) bool { return b.Pressed() })
	if i < 0 {
		return nil, false
	}
	return m.Buttons[i], true
}

// Mount validates layout and creates its widgets, replacing any mounted
// ones. Each group is initialized before its buttons, so its deferred
// initial broadcast reaches them once the loop runs.
func (app *Application) Mount(layout *config.Layout) error {
	if err := layout.Validate(); err != nil {
		return NewOperationError("mount", "layout", err)
	}

	mounts := make([]*Mount, 0, len(layout.Groups))
	for _, spec := range layout.Groups {
		m, err := app.build(spec)
		if err != nil {
			for _, built := range mounts {
				built.close()
			}
			return NewOperationError("mount", spec.Name, err)
		}
		mounts = append(mounts, m)
	}

	app.Unmount()
	app.layout = layout
	app.mounts = mounts

	for _, m := range mounts {
		m.Group.Init()
		for _, b := range m.Buttons {
			b.Init()
		}
		m.observer = m.Group.Observe(func([]observe.Change) { app.notifyUpdate() })
	}

	app.metrics.RecordMount()
	app.logger.Info("mounted %d groups", len(mounts))
	app.loop.Schedule(app.notifyUpdate)
	return nil
}

func (app *Application) build(spec config.GroupSpec) (*Mount, error) {
	m := &Mount{Spec: spec, Disabled: disabled.NewState(spec.Disabled)}

	onChange, err := app.resolveAction(spec)
	if err != nil {
		return nil, err
	}
	if script, ok := onChange.(*action.LuaAction); ok {
		m.script = script
	}

	logger := app.logger.WithField("group", spec.Name)
	m.Group = group.New(app.bus, app.loop,
		group.WithName(spec.Name),
		group.WithValue(spec.Value),
		group.WithDisabled(m.Disabled),
		group.WithOnValueChange(onChange),
		group.WithLogger(logger),
	)

	for _, b := range spec.Buttons {
		m.Buttons = append(m.Buttons, button.New(app.bus,
			button.WithName(spec.Name),
			button.WithValue(b.Value),
			button.WithLabel(b.Label),
			button.WithDisabled(disabled.Fixed(b.Disabled)),
			button.WithLogger(logger),
		))
	}

	return m, nil
}

// resolveAction returns the group's on-value-change action, or nil.
func (app *Application) resolveAction(spec config.GroupSpec) (action.Action, error) {
	if spec.Script != "" {
		return action.NewLuaAction(spec.Script,
			action.WithScriptName(spec.Name),
			action.WithScriptTimeout(app.cfg.Actions.ScriptTimeout),
			action.WithScriptLogger(app.logger),
		)
	}

	name := spec.OnValueChange
	if name == "" {
		name = app.cfg.Actions.Default
	}
	if name == "" {
		return nil, nil
	}
	return app.actions.Lookup(name)
}

// Unmount destroys every mounted widget.
func (app *Application) Unmount() {
	for _, m := range app.mounts {
		m.close()
	}
	app.mounts = nil
	app.layout = nil
}

func (m *Mount) close() {
	m.observer.Unsubscribe()
	for _, b := range m.Buttons {
		b.Destroy()
	}
	m.Group.Destroy()
	if m.script != nil {
		m.script.Close()
	}
}

// Find returns the mounted groups named name.
func (app *Application) Find(name string) []*Mount {
	var out []*Mount
	for _, m := range app.mounts {
		if m.Group.Name() == name {
			out = append(out, m)
		}
	}
	return out
}

// Press presses the button with value in the first group named name.
func (app *Application) Press(ctx context.Context, name, value string) error {
	mounts := app.Find(name)
	if len(mounts) == 0 {
		return NewOperationError("press", name, ErrUnknownGroup)
	}
	b, ok := mounts[0].Button(value)
	if !ok {
		return NewOperationError("press", fmt.Sprintf("%s=%s", name, value), ErrUnknownButton)
	}
	return app.PressButton(ctx, b)
}

// PressButton presses b and records the press in the metrics.
func (app *Application) PressButton(ctx context.Context, b *button.Button) error {
	start := time.Now()
	err := b.Press(ctx)
	app.metrics.RecordPress(time.Since(start), err)
	return err
}

// Reload brings the mounted widgets in line with layout. When the layout
// declares the same groups and buttons, only each group's value and
// disabled state are applied, without running on-value-change; otherwise
// the layout is remounted.
func (app *Application) Reload(layout *config.Layout) error {
	if err := layout.Validate(); err != nil {
		return NewOperationError("reload", "layout", err)
	}

	if app.layout == nil || !sameStructure(app.layout, layout) {
		app.logger.Info("layout structure changed; remounting")
		return app.Mount(layout)
	}

	for i, spec := range layout.Groups {
		m := app.mounts[i]
		m.Spec = spec
		m.Group.Apply(widget.GroupState{Value: spec.Value, Disabled: spec.Disabled})
	}
	app.layout = layout
	app.logger.Info("reloaded %d groups", len(layout.Groups))
	app.notifyUpdate()
	return nil
}

// sameStructure reports whether two layouts differ only in group values
// and disabled flags.
func sameStructure(a, b *config.Layout) bool {
	return slices.EqualFunc(a.Groups, b.Groups, func(x, y config.GroupSpec) bool {
		return x.Name == y.Name &&
			x.OnValueChange == y.OnValueChange &&
			x.Script == y.Script &&
			slices.Equal(x.Buttons, y.Buttons)
	})
}
