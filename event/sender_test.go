package event

import (
	"context"
	"testing"
)

func TestSender_Emit(t *testing.T) {
	bus := New()
	sender := NewSender(bus, "spawner")

	if sender.Source() != "spawner" {
		t.Errorf("Source() = %q, want spawner", sender.Source())
	}

	if err := sender.Emit(Damage{Target: "hero", Amount: 7}); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	batch := bus.queue.take()
	if len(batch) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(batch))
	}
	if batch[0].Metadata.Source != "spawner" {
		t.Errorf("Source = %q, want spawner", batch[0].Metadata.Source)
	}
}

func TestSender_EmitDeliveredNextProcess(t *testing.T) {
	bus := New()
	sender := NewSender(bus, "test")

	var got []Damage
	SubscribeFunc(bus, func(ctx context.Context, d Damage) error {
		got = append(got, d)
		return nil
	})

	// Emission from inside a handler lands in the following pass.
	SubscribeFunc(bus, func(ctx context.Context, tk tick) error {
		return sender.Emit(Damage{Amount: tk.Frame})
	})

	bus.Dispatch(tick{Frame: 3})
	bus.Process(context.Background())
	if len(got) != 0 {
		t.Fatal("emitted event must not be delivered in the emitting pass")
	}

	bus.Process(context.Background())
	if len(got) != 1 || got[0].Amount != 3 {
		t.Fatalf("expected deferred delivery of the emitted event, got %v", got)
	}
}

func TestSender_EmitEnvelopeStampsSource(t *testing.T) {
	bus := New()
	sender := NewSender(bus, "bridge")

	env := NewEnvelope(Damage{Amount: 1})
	if err := sender.Emit(env); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	batch := bus.queue.take()
	if batch[0].Metadata.Source != "bridge" {
		t.Errorf("Source = %q, want bridge", batch[0].Metadata.Source)
	}
}
