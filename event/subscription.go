package event

import (
	"context"
	"sync"
	"sync/atomic"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not
	// receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been
	// permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Filter is an optional predicate; events are delivered only when it
	// returns true.
	Filter FilterFunc

	// Once indicates the subscription auto-cancels after its first
	// successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription at registration time.
type SubscriptionOption func(*SubscriptionConfig)

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce sets the subscription to auto-cancel after the first delivery.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is the handle returned by Subscribe and SubscribeFunc. It
// identifies one handler slot in the bus's directory and controls its
// lifecycle. All methods are safe for concurrent use.
type Subscription struct {
	id     string
	key    Key
	config SubscriptionConfig
	state  atomic.Int32

	// resolve returns the owner and whether it is still reachable. A nil
	// resolve means the handler is not owner-bound and is always alive.
	resolve func() (any, bool)

	// invoke downcasts payload to the registered event type and calls the
	// handler method with the resolved owner.
	invoke func(ctx context.Context, owner any, payload any) error
}

func newSubscription(key Key, opts ...SubscriptionOption) *Subscription {
	s := &Subscription{
		id:  newID(),
		key: key,
	}
	for _, opt := range opts {
		opt(&s.config)
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Key returns the event type the subscription is registered for.
func (s *Subscription) Key() Key {
	return s.key
}

// State returns the current subscription state.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription can receive events.
func (s *Subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Pause temporarily stops delivery to this subscription.
func (s *Subscription) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

// Resume restarts delivery after a pause.
func (s *Subscription) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

// Cancel permanently cancels the subscription. Cancelling twice is a
// no-op; a cancelled subscription cannot be resumed.
func (s *Subscription) Cancel() {
	s.state.Store(int32(SubscriptionStateCancelled))
}

// shouldDeliver reports whether the payload should reach this
// subscription's handler, checking state and filter but not the owner.
func (s *Subscription) shouldDeliver(payload any) bool {
	if !s.IsActive() {
		return false
	}
	if s.config.Filter != nil && !s.config.Filter(payload) {
		return false
	}
	return true
}

// owner resolves the handler's owner. The second result is false when the
// owner has been reclaimed and the slot should be pruned.
func (s *Subscription) owner() (any, bool) {
	if s.resolve == nil {
		return nil, true
	}
	return s.resolve()
}

// SubscriptionSet collects subscriptions belonging to one component so
// they can be torn down together. The zero value is ready to use.
type SubscriptionSet struct {
	mu   sync.Mutex
	bus  *Bus
	subs []*Subscription
}

// NewSubscriptionSet creates a set that unsubscribes from bus on CancelAll.
func NewSubscriptionSet(bus *Bus) *SubscriptionSet {
	return &SubscriptionSet{bus: bus}
}

// Add tracks a subscription and returns it for chaining.
func (ss *SubscriptionSet) Add(sub *Subscription) *Subscription {
	if sub == nil {
		return nil
	}
	ss.mu.Lock()
	ss.subs = append(ss.subs, sub)
	ss.mu.Unlock()
	return sub
}

// Len returns the number of tracked subscriptions.
func (ss *SubscriptionSet) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.subs)
}

// CancelAll cancels and removes every tracked subscription. It is
// idempotent; a second call is a no-op.
func (ss *SubscriptionSet) CancelAll() {
	ss.mu.Lock()
	subs := ss.subs
	ss.subs = nil
	ss.mu.Unlock()

	for _, sub := range subs {
		if ss.bus != nil {
			ss.bus.Unsubscribe(sub)
		} else {
			sub.Cancel()
		}
	}
}
