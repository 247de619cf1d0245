// Package event provides an in-process batch event bus for interactive
// applications.
//
// The bus decouples producers from consumers in time: Dispatch enqueues a
// type-erased snapshot of an event and returns immediately, while a single
// driver calls Process once per tick to drain the queue and deliver every
// pending event to its matching handlers.
//
// # Architecture
//
// The bus is built from three pieces:
//
//   - Subscription directory: a registry mapping an event's type Key to an
//     ordered list of handler slots. Registration order defines delivery
//     order within an event.
//   - Pending queue: a FIFO list of type-erased envelopes appended by
//     producers and swapped out atomically at the start of Process.
//   - Dispatch executor: runs each handler with panic recovery so one
//     failing handler never aborts the rest of the batch.
//
// # Basic Usage
//
//	bus := event.New()
//
//	type Damage struct {
//		Target string
//		Amount int
//	}
//
//	sub := event.SubscribeFunc(bus, func(ctx context.Context, d Damage) error {
//		fmt.Printf("%s took %d damage\n", d.Target, d.Amount)
//		return nil
//	})
//	defer bus.Unsubscribe(sub)
//
//	bus.Dispatch(Damage{Target: "hero", Amount: 10})
//	report := bus.Process(context.Background())
//
// # Owner-Bound Handlers
//
// Components subscribe methods on themselves without keeping the component
// alive. Subscribe takes a method expression so the registration holds only
// a weak reference to the owner:
//
//	type Player struct{ HP int }
//
//	func (p *Player) OnDamage(ctx context.Context, d Damage) error {
//		p.HP -= d.Amount
//		return nil
//	}
//
//	event.Subscribe(bus, player, (*Player).OnDamage)
//
// When the owner becomes unreachable its slot is pruned on the next
// matching delivery instead of being invoked. Explicit Unsubscribe remains
// available and is idempotent.
//
// # Ordering
//
// Events dispatched by one goroutine are delivered in the order that
// goroutine dispatched them. Across goroutines the queue is linearizable:
// delivery follows the order the dispatch critical sections were granted.
// Within one event, handlers run sequentially in registration order.
//
// # Re-entrancy
//
// A handler may call Dispatch. Because Process swaps the queue before
// delivering anything, events dispatched during a pass are deferred to the
// next pass, which bounds the cost of a pass by the queue length observed
// at its start.
//
// # Failure Isolation
//
// A handler that returns an error or panics does not stop delivery to
// sibling handlers or later events. Failures are collected into the Report
// returned by Process. There is no per-handler deadline: a handler that
// never returns stalls the Process call. That limitation is deliberate;
// handlers are expected to be short.
//
// # Thread Safety
//
// Dispatch, Subscribe, SubscribeFunc and Unsubscribe are safe for
// concurrent use. Process must not be called concurrently with itself;
// exactly one driver goroutine should own it.
//
// # Subpackages
//
//   - dispatch: handler execution with panic recovery and timing.
package event
