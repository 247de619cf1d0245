package event

// FilterFunc is a predicate for filtering events before delivery.
// Return true to allow the event, false to skip this subscription.
type FilterFunc func(payload any) bool

// Report summarizes one Process pass.
type Report struct {
	// Processed is the number of events drained from the queue, whether
	// or not any handler was registered for them.
	Processed int

	// Pruned is the number of handler slots dropped during the pass
	// because their owner was no longer reachable.
	Pruned int

	// Failures holds one error per isolated handler failure, in delivery
	// order. Entries are *HandlerError or *PanicError.
	Failures []error
}

// Failed reports whether any handler failed during the pass.
func (r Report) Failed() bool {
	return len(r.Failures) > 0
}

// Stats contains cumulative event bus counters.
type Stats struct {
	// EventsDispatched is the total number of events accepted by Dispatch.
	EventsDispatched uint64

	// EventsDelivered is the number of successful handler deliveries.
	EventsDelivered uint64

	// HandlersExecuted is the total number of handler invocations.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// SubscribersPruned is the number of slots dropped because their
	// owner was gone.
	SubscribersPruned uint64

	// ActiveSubscriptions is the current number of active subscriptions.
	ActiveSubscriptions int

	// QueueDepth is the number of events currently awaiting Process.
	QueueDepth int
}
