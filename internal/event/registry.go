package event

import (
	"sync"

	"github.com/dshills/buttongroup/internal/event/topic"
)

// Registry holds subscriptions per topic in registration order.
// It is safe for concurrent access.
type Registry struct {
	mu   sync.RWMutex
	subs map[topic.Topic][]*subscription
	byID map[string]*subscription
}

// NewRegistry creates an empty subscription registry.
func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[topic.Topic][]*subscription),
		byID: make(map[string]*subscription),
	}
}

// Add appends a subscription to its topic's list.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.Topic()] = append(r.subs[sub.Topic()], sub)
	r.byID[sub.ID()] = sub
}

// Remove removes a subscription by ID and marks it cancelled.
// Returns false if no such subscription is registered.
func (r *Registry) Remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}
	sub.cancel()
	r.removeLocked(sub)
	return true
}

// RemoveOwner removes every subscription owner holds on t.
// Returns the number removed.
func (r *Registry) RemoveOwner(t topic.Topic, owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*subscription
	for _, sub := range r.subs[t] {
		if sub.Owner() == owner {
			matched = append(matched, sub)
		}
	}
	for _, sub := range matched {
		sub.cancel()
		r.removeLocked(sub)
	}
	return len(matched)
}

// removeLocked drops sub from both indexes. Callers hold r.mu.
func (r *Registry) removeLocked(sub *subscription) {
	t := sub.Topic()
	subs := r.subs[t]
	for i, s := range subs {
		if s == sub {
			// Copy rather than append in place: published snapshots may
			// still reference the old backing array.
			next := make([]*subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			subs = next
			break
		}
	}

	if len(subs) == 0 {
		delete(r.subs, t)
	} else {
		r.subs[t] = subs
	}
	delete(r.byID, sub.ID())
}

// Get returns a subscription by ID.
func (r *Registry) Get(subID string) (*subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.byID[subID]
	return sub, ok
}

// Snapshot returns a copy of the subscriptions for t in registration order.
func (r *Registry) Snapshot(t topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[t]
	if len(subs) == 0 {
		return nil
	}
	result := make([]*subscription, len(subs))
	copy(result, subs)
	return result
}

// Count returns the number of subscriptions registered for t.
func (r *Registry) Count(t topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[t])
}

// CountActive returns the number of active subscriptions across all topics.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// Topics returns every topic with at least one subscription.
func (r *Registry) Topics() []topic.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subs) == 0 {
		return nil
	}
	topics := make([]topic.Topic, 0, len(r.subs))
	for t := range r.subs {
		topics = append(topics, t)
	}
	return topics
}

// Clear removes all subscriptions, cancelling each.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.cancel()
	}
	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
}
