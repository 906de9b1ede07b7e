// Package action implements the on-value-change hooks a button group runs
// when one of its buttons reports a new value.
//
// An Action is a Go function, a named entry in a Registry, or a Lua script
// run in a sandboxed interpreter.
package action

import (
	"context"
	"errors"
)

// Errors returned by actions and the registry.
var (
	// ErrUnknownAction is returned by Lookup for an unregistered name.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction is returned when a name is registered twice.
	ErrDuplicateAction = errors.New("action already registered")

	// ErrMissingHook is returned when a script does not define on_value_change.
	ErrMissingHook = errors.New("script does not define " + HookName)

	// ErrClosed is returned when invoking a closed script action.
	ErrClosed = errors.New("action is closed")
)

// Action is invoked with the value a button reported, before the group
// adopts it.
type Action interface {
	Invoke(ctx context.Context, value string) error
}

// Func adapts a plain function to an Action.
type Func func(ctx context.Context, value string) error

// Invoke implements Action.
func (f Func) Invoke(ctx context.Context, value string) error {
	return f(ctx, value)
}

// Nop is an Action that does nothing.
var Nop Action = Func(func(context.Context, string) error { return nil })
