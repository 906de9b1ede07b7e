// Package disabled provides the disabled capability shared by widgets.
//
// Widgets depend on the Capability interface. A State is the usual
// implementation; it can be shared between widgets so that toggling one
// State disables all of them, and it reports changes to its watchers.
package disabled

import (
	"sync"

	"github.com/dshills/buttongroup/internal/widget/observe"
)

// Field is the observable field name used for disabled changes.
const Field = "disabled"

// Capability reports whether a widget is disabled.
type Capability interface {
	Disabled() bool
}

// Setter is a Capability that can be changed.
type Setter interface {
	Capability
	// Set updates the flag and reports whether it changed.
	Set(disabled bool) bool
}

// Watchable is a Capability that reports its changes.
type Watchable interface {
	Capability
	OnChange(fn func(disabled bool)) *observe.Subscription
}

// Fixed is a Capability that never changes.
type Fixed bool

// Disabled implements Capability.
func (f Fixed) Disabled() bool { return bool(f) }

// State is a mutable, observable disabled flag.
// The zero value is enabled and ready to use.
type State struct {
	mu       sync.RWMutex
	disabled bool
	notifier observe.Notifier
}

// NewState creates a State with the given initial flag.
func NewState(disabled bool) *State {
	return &State{disabled: disabled}
}

// Disabled implements Capability.
func (s *State) Disabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disabled
}

// Set updates the flag. Watchers are notified only when it changes.
func (s *State) Set(disabled bool) bool {
	s.mu.Lock()
	old := s.disabled
	s.disabled = disabled
	s.mu.Unlock()

	if old == disabled {
		return false
	}
	s.notifier.Set(Field, old, disabled)
	return true
}

// Toggle flips the flag and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	s.disabled = !s.disabled
	now := s.disabled
	s.mu.Unlock()

	s.notifier.Set(Field, !now, now)
	return now
}

// OnChange registers fn to be called with the new flag after each change.
func (s *State) OnChange(fn func(disabled bool)) *observe.Subscription {
	return s.notifier.Observe(func(changes []observe.Change) {
		last := changes[len(changes)-1]
		if v, ok := last.New.(bool); ok {
			fn(v)
		}
	}, Field)
}

var (
	_ Setter     = (*State)(nil)
	_ Watchable  = (*State)(nil)
	_ Capability = Fixed(false)
)
