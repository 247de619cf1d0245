package event

import "reflect"

// Key identifies an event's concrete type. Two events of the same concrete
// type always produce equal keys, so a Key is usable as a map key with O(1)
// equality and hashing. A Key is derived purely from the type, never from
// an instance, and is stable for the life of the process.
//
// The zero Key identifies no type and matches nothing.
type Key struct {
	t reflect.Type
}

// KeyOf returns the key for the concrete type E.
func KeyOf[E any]() Key {
	return Key{t: reflect.TypeOf((*E)(nil)).Elem()}
}

// KeyFor returns the key for the dynamic type of payload.
// It returns the zero Key if payload is nil.
func KeyFor(payload any) Key {
	return Key{t: reflect.TypeOf(payload)}
}

// IsZero reports whether k identifies no type.
func (k Key) IsZero() bool {
	return k.t == nil
}

// String returns the name of the identified type, or "<none>" for the
// zero Key.
func (k Key) String() string {
	if k.t == nil {
		return "<none>"
	}
	return k.t.String()
}
