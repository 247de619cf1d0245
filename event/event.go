package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// timeNow is a variable to allow testing with fixed timestamps.
var timeNow = time.Now

// Envelope is the type-erased container the bus moves through its queue.
// It owns one concrete event value plus the key needed to route it back to
// the handlers registered for that type.
//
// The payload must be a snapshot: it must not alias mutable state outside
// the event itself, because it crosses from the dispatching goroutine to
// the processing goroutine.
type Envelope struct {
	// Key identifies the payload's concrete type.
	Key Key

	// Payload is the type-erased event value.
	Payload any

	// Metadata carries standard per-event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every envelope.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was dispatched.
	Timestamp time.Time

	// Source identifies the component that dispatched the event.
	// Empty unless the event was emitted through a Sender.
	Source string

	// Seq is the event's position in the bus's total dispatch order.
	// Assigned under the queue lock; strictly increasing per bus.
	Seq uint64
}

// NewEnvelope wraps a concrete event value for type-erased handling.
// Dispatch does this internally; NewEnvelope exists for callers that want
// to stamp metadata themselves before handing the event to the bus.
func NewEnvelope[E any](payload E) Envelope {
	return Envelope{
		Key:     KeyOf[E](),
		Payload: payload,
		Metadata: Metadata{
			ID:        newID(),
			Timestamp: timeNow(),
		},
	}
}

// newID generates a unique event or subscription ID.
func newID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Fallback if the random source fails.
		b := make([]byte, 16)
		_, _ = rand.Read(b)
		return hex.EncodeToString(b)
	}
	return id.String()
}
