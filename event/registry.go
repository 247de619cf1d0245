package event

import "sync"

// registry is the subscription directory: a mapping from event type Key to
// the ordered handler slots registered for that type. Insertion order is
// preserved and defines delivery order within a type. It is safe for
// concurrent use.
type registry struct {
	mu   sync.RWMutex
	subs map[Key][]*Subscription
	byID map[string]*Subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[Key][]*Subscription),
		byID: make(map[string]*Subscription),
	}
}

// add appends a subscription to the sequence for its key, creating the
// sequence if absent. Duplicate (owner, method) registrations are the
// caller's responsibility; the directory does not deduplicate.
func (r *registry) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.key] = append(r.subs[sub.key], sub)
	r.byID[sub.id] = sub
}

// remove deletes a subscription by ID. It reports whether anything was
// removed; removing an already-removed ID is a no-op.
func (r *registry) remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	subs := r.subs[sub.key]
	for i, s := range subs {
		if s.id == subID {
			r.subs[sub.key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.key]) == 0 {
		delete(r.subs, sub.key)
	}
	delete(r.byID, subID)
	return true
}

// snapshot returns a copy of the slot sequence for key, safe to iterate
// while concurrent mutations occur. Returns nil when no handlers are
// registered.
func (r *registry) snapshot(key Key) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[key]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// count returns the total number of registered subscriptions.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// countActive returns the number of subscriptions in the active state.
func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// keys returns every key with at least one registered slot.
func (r *registry) keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subs) == 0 {
		return nil
	}
	out := make([]Key, 0, len(r.subs))
	for k := range r.subs {
		out = append(out, k)
	}
	return out
}

// clear removes all subscriptions.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = make(map[Key][]*Subscription)
	r.byID = make(map[string]*Subscription)
}
