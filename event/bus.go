package event

import (
	"context"
	"sync/atomic"
	"weak"

	"github.com/dshills/nexus/event/dispatch"
)

// Bus composes the subscription directory and the pending queue behind one
// concurrency discipline: producers may call Dispatch, Subscribe and
// Unsubscribe from any goroutine, while exactly one driver goroutine calls
// Process once per tick. Overlapping Process calls are a caller error.
//
// A Bus needs no explicit start or teardown; the zero of its lifecycle is
// handled by New, and it remains usable for the life of the process.
type Bus struct {
	registry *registry
	queue    pendingQueue
	executor *dispatch.Executor

	// Stats
	dispatched atomic.Uint64
	delivered  atomic.Uint64
	executed   atomic.Uint64
	errored    atomic.Uint64
	panicked   atomic.Uint64
	pruned     atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	panicHandler dispatch.PanicHandler
}

// WithPanicHandler installs a hook invoked whenever a handler panics. The
// panic is still recovered and reported through the Process Report; the
// hook is an observability seam for logging or telemetry.
func WithPanicHandler(h dispatch.PanicHandler) BusOption {
	return func(c *busConfig) {
		if h != nil {
			c.panicHandler = h
		}
	}
}

// New creates an independently owned event bus.
func New(opts ...BusOption) *Bus {
	var config busConfig
	for _, opt := range opts {
		opt(&config)
	}

	var execOpts []dispatch.ExecutorOption
	if config.panicHandler != nil {
		execOpts = append(execOpts, dispatch.WithExecutorPanicHandler(config.panicHandler))
	}

	return &Bus{
		registry: newRegistry(),
		executor: dispatch.NewExecutor(execOpts...),
	}
}

// Dispatch type-erases payload and appends it to the pending queue. It
// returns immediately and never blocks on handler execution; the only
// contention is the queue's short append critical section. The payload
// must be a snapshot that does not alias mutable state outside the event.
//
// Dispatch is safe to call from handlers running inside Process; such
// events are delivered in the next pass, not the current one.
func (b *Bus) Dispatch(payload any) error {
	return b.dispatch(payload, "")
}

func (b *Bus) dispatch(payload any, source string) error {
	if payload == nil {
		return ErrInvalidEvent
	}
	if env, ok := payload.(Envelope); ok {
		if env.Key.IsZero() || env.Payload == nil {
			return ErrInvalidEvent
		}
		if env.Metadata.ID == "" {
			env.Metadata.ID = newID()
		}
		if env.Metadata.Timestamp.IsZero() {
			env.Metadata.Timestamp = timeNow()
		}
		if source != "" {
			env.Metadata.Source = source
		}
		b.queue.append(env)
		b.dispatched.Add(1)
		return nil
	}

	b.queue.append(Envelope{
		Key:     KeyFor(payload),
		Payload: payload,
		Metadata: Metadata{
			ID:        newID(),
			Timestamp: timeNow(),
			Source:    source,
		},
	})
	b.dispatched.Add(1)
	return nil
}

// Process atomically takes the pending queue's contents and delivers every
// taken event, in FIFO order, to the handlers registered for its key in
// registration order. Delivery runs outside the queue lock, so a slow
// handler does not stall concurrent producers.
//
// Handler failures are isolated: an error return or a panic is collected
// into the Report and delivery continues with the next handler and the
// next event. Slots whose owner is no longer reachable are pruned rather
// than invoked.
//
// Process must not be called concurrently with itself. The context is
// passed through to handlers; there is no per-handler deadline, so a
// handler that never returns stalls the pass.
func (b *Bus) Process(ctx context.Context) Report {
	batch := b.queue.take()

	var report Report
	report.Processed = len(batch)

	for _, env := range batch {
		b.deliver(ctx, env, &report)
	}
	return report
}

// deliver runs one envelope through its registered slots.
func (b *Bus) deliver(ctx context.Context, env Envelope, report *Report) {
	subs := b.registry.snapshot(env.Key)
	for _, sub := range subs {
		if !sub.shouldDeliver(env.Payload) {
			continue
		}

		owner, alive := sub.owner()
		if !alive {
			// Owner reclaimed: drop the slot instead of invoking it.
			sub.Cancel()
			b.registry.remove(sub.id)
			b.pruned.Add(1)
			report.Pruned++
			continue
		}

		handler := dispatch.HandlerFunc(func(hctx context.Context, payload any) error {
			return sub.invoke(hctx, owner, payload)
		})

		result := b.executor.Execute(ctx, env.Payload, handler)
		b.executed.Add(1)

		switch {
		case result.Panicked:
			b.panicked.Add(1)
			report.Failures = append(report.Failures, &PanicError{
				SubscriptionID: sub.id,
				Key:            env.Key,
				Value:          result.PanicValue,
				Stack:          result.PanicStack,
			})
		case result.Error != nil:
			b.errored.Add(1)
			report.Failures = append(report.Failures, &HandlerError{
				SubscriptionID: sub.id,
				Key:            env.Key,
				Err:            result.Error,
			})
		case result.Success:
			b.delivered.Add(1)
		}

		if sub.config.Once && result.Success {
			sub.Cancel()
			b.registry.remove(sub.id)
		}
	}
}

// Unsubscribe removes a previously registered handler. Unsubscribing the
// same handle twice, or a handle already pruned, is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.Cancel()
	b.registry.remove(sub.id)
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsDispatched:    b.dispatched.Load(),
		EventsDelivered:     b.delivered.Load(),
		HandlersExecuted:    b.executed.Load(),
		HandlerErrors:       b.errored.Load(),
		HandlerPanics:       b.panicked.Load(),
		SubscribersPruned:   b.pruned.Load(),
		ActiveSubscriptions: b.registry.countActive(),
		QueueDepth:          b.queue.depth(),
	}
}

// Subscribe registers method as a handler for events of type E on owner.
// The registration holds only a weak reference to owner: the directory
// does not keep the owner alive, and once the owner becomes unreachable
// the slot is pruned on the next matching delivery instead of invoked.
//
// Pass the method as a method expression so no strong reference to owner
// is captured:
//
//	event.Subscribe(bus, player, (*Player).OnDamage)
//
// The returned handle supports explicit Unsubscribe; relying on pruning
// alone is also safe.
func Subscribe[O any, E any](b *Bus, owner *O, method func(*O, context.Context, E) error, opts ...SubscriptionOption) *Subscription {
	if owner == nil || method == nil {
		return nil
	}

	ref := weak.Make(owner)
	sub := newSubscription(KeyOf[E](), opts...)
	sub.resolve = func() (any, bool) {
		o := ref.Value()
		return o, o != nil
	}
	sub.invoke = func(ctx context.Context, o any, payload any) error {
		e, ok := payload.(E)
		if !ok {
			// Directory routing guarantees the key matched; a mismatch
			// here is a programming defect, not a runtime condition.
			return ErrInvalidEvent
		}
		return method(o.(*O), ctx, e)
	}

	b.registry.add(sub)
	return sub
}

// SubscribeFunc registers a free-function handler for events of type E.
// The handler is held strongly and lives until explicitly unsubscribed.
func SubscribeFunc[E any](b *Bus, fn func(context.Context, E) error, opts ...SubscriptionOption) *Subscription {
	if fn == nil {
		return nil
	}

	sub := newSubscription(KeyOf[E](), opts...)
	sub.invoke = func(ctx context.Context, _ any, payload any) error {
		e, ok := payload.(E)
		if !ok {
			return ErrInvalidEvent
		}
		return fn(ctx, e)
	}

	b.registry.add(sub)
	return sub
}
