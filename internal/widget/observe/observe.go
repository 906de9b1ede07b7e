// Package observe provides explicit field-change notification for widgets.
//
// A widget reports each mutation of an observable field through Notify.
// Observers register for a set of fields and are called when any one of them
// changes. A Batch coalesces several mutations so that each interested
// observer is called once with all of the changes it cares about.
package observe

import (
	"slices"
	"sync"
)

// Change describes one mutation of an observed field.
type Change struct {
	// Field is the name of the changed field.
	Field string

	// Old is the previous value.
	Old any

	// New is the current value.
	New any
}

// Observer is called with the changes relevant to it, in mutation order.
type Observer func(changes []Change)

type entry struct {
	id       uint64
	fields   []string // nil observes every field
	observer Observer
}

func (e entry) wants(field string) bool {
	return e.fields == nil || slices.Contains(e.fields, field)
}

// Subscription is the handle returned by Observe.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.notifier.remove(s.id)
	s.notifier = nil
}

// Notifier delivers field changes to observers synchronously, in the order
// the observers registered.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Observe registers observer for changes to any of fields.
// With no fields the observer receives every change.
func (n *Notifier) Observe(observer Observer, fields ...string) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	e := entry{id: n.nextID, observer: observer}
	if len(fields) > 0 {
		e.fields = slices.Clone(fields)
	}
	n.entries = append(n.entries, e)

	return &Subscription{id: e.id, notifier: n}
}

// ObserveAll registers observer for every change.
func (n *Notifier) ObserveAll(observer Observer) *Subscription {
	return n.Observe(observer)
}

// Len returns the number of registered observers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Notify delivers a single change.
func (n *Notifier) Notify(change Change) {
	n.deliver([]Change{change})
}

// Set is a convenience for Notify(Change{field, old, new}).
func (n *Notifier) Set(field string, old, new any) {
	n.Notify(Change{Field: field, Old: old, New: new})
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.entries = slices.DeleteFunc(slices.Clone(n.entries), func(e entry) bool {
		return e.id == id
	})
}

func (n *Notifier) deliver(changes []Change) {
	if len(changes) == 0 {
		return
	}

	n.mu.RLock()
	entries := slices.Clone(n.entries)
	n.mu.RUnlock()

	for _, e := range entries {
		if !n.registered(e.id) {
			continue
		}
		var relevant []Change
		for _, c := range changes {
			if e.wants(c.Field) {
				relevant = append(relevant, c)
			}
		}
		if len(relevant) > 0 {
			e.observer(relevant)
		}
	}
}

// registered reports whether id is still subscribed; an observer may
// unsubscribe a later one mid-delivery.
func (n *Notifier) registered(id uint64) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.ContainsFunc(n.entries, func(e entry) bool { return e.id == id })
}

// Batch collects changes and delivers them together on Commit.
type Batch struct {
	notifier *Notifier
	changes  []Change
}

// NewBatch starts a batch on n.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Set records a field change.
func (b *Batch) Set(field string, old, new any) {
	b.changes = append(b.changes, Change{Field: field, Old: old, New: new})
}

// Len returns the number of recorded changes.
func (b *Batch) Len() int {
	return len(b.changes)
}

// Commit delivers the recorded changes. Each observer is called at most
// once. The batch is empty afterwards.
func (b *Batch) Commit() {
	changes := b.changes
	b.changes = nil
	b.notifier.deliver(changes)
}

// Discard drops the recorded changes.
func (b *Batch) Discard() {
	b.changes = nil
}
