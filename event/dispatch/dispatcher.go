package dispatch

import (
	"context"
	"time"
)

// Handler is the interface for type-erased event handlers. The payload
// parameter is the event value; implementations downcast to the concrete
// type they registered for.
type Handler interface {
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, payload any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// Result represents the outcome of one handler execution.
type Result struct {
	// Success is true if the handler completed without error or panic.
	Success bool

	// Error is the error returned by the handler, if any.
	Error error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the handler took to execute.
	Duration time.Duration

	// Skipped is true if the handler was not executed, e.g. because the
	// context was already cancelled.
	Skipped bool
}

// IsSuccess returns true if the result indicates successful execution.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// PanicHandler is called when a handler panics during execution. It
// receives the payload being processed, the panic value, and the stack
// trace captured at the panic site.
type PanicHandler func(payload any, panicValue any, stack []byte)

// defaultPanicHandler is a no-op; panics are still recovered and surfaced
// through the Result.
func defaultPanicHandler(payload any, panicValue any, stack []byte) {
}
