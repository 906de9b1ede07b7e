package action

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/buttongroup/internal/logging"
)

// Built-in action names.
const (
	NameLog  = "log"
	NameNone = "none"
)

// Registry maps names used in layout files to actions.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry creates a registry holding the built-in actions.
// The "log" action writes each value to logger at info level.
func NewRegistry(logger *logging.Logger) *Registry {
	logger = logging.OrNull(logger).WithComponent("action")

	r := &Registry{actions: make(map[string]Action)}
	r.actions[NameNone] = Nop
	r.actions[NameLog] = Func(func(_ context.Context, value string) error {
		logger.Info("value changed to %q", value)
		return nil
	})
	return r
}

// Register adds an action under name.
func (r *Registry) Register(name string, a Action) error {
	if name == "" || a == nil {
		return fmt.Errorf("register %q: name and action are required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateAction)
	}
	r.actions[name] = a
	return nil
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownAction)
	}
	return a, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
