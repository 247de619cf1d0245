package event

import (
	"context"
	"sync"
)

// defaultBus holds the process-wide bus, created on first use. Explicitly
// constructed buses remain first-class; the global exists so independently
// owned components can find each other without wiring.
var defaultBus = sync.OnceValue(func() *Bus {
	return New()
})

// Default returns the process-wide event bus, lazily creating it on first
// use. There is no teardown; the bus lives for the process duration.
func Default() *Bus {
	return defaultBus()
}

// Dispatch enqueues an event on the default bus.
func Dispatch(payload any) error {
	return Default().Dispatch(payload)
}

// Process drains and delivers all events queued on the default bus.
func Process(ctx context.Context) Report {
	return Default().Process(ctx)
}
