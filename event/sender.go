package event

// Sender provides a simplified emitting surface for components that only
// publish. It wraps a bus and stamps each event with a source tag so
// consumers can tell where an event originated.
//
// Emit enqueues immediately; delivery always happens in a later Process
// pass. A component that emits from inside one of its own methods can
// therefore treat emission as "after the method completes" for delivery
// purposes, because nothing is delivered until the driver's next tick.
type Sender struct {
	bus    *Bus
	source string
}

// NewSender creates a Sender publishing to bus. The source parameter
// identifies the emitting component (e.g. "spawner", "input").
func NewSender(bus *Bus, source string) *Sender {
	return &Sender{bus: bus, source: source}
}

// Source returns the sender's source tag.
func (s *Sender) Source() string {
	return s.source
}

// Emit enqueues an event, stamping the sender's source into its metadata.
func (s *Sender) Emit(payload any) error {
	return s.bus.dispatch(payload, s.source)
}
