// Package dispatch executes event handlers with panic recovery and
// timing. The event bus drives one Executor per bus; handlers run
// sequentially in the caller's goroutine, never concurrently, so a batch
// pass's cost is the sum of its handlers.
package dispatch
