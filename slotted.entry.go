package slotted

import "reflect"

// SlotEntry is a value stored in a RenderContext. It is sealed: the only
// implementations are LiveEntry and CompiledEntry.
type SlotEntry interface {
	slotEntry()
}

// LiveEntry holds a value that is rendered fresh on every lookup. Value is
// either a Component, rendered recursively, or anything else, which is
// stringified and escaped.
type LiveEntry struct {
	Type  reflect.Type
	Value any
}

// CompiledEntry holds trusted, already-rendered HTML emitted verbatim.
// It must never carry unescaped untrusted input.
type CompiledEntry struct {
	HTML string
}

func (LiveEntry) slotEntry()     {}
func (CompiledEntry) slotEntry() {}

// ValueAs asserts the entry's value as T.
func ValueAs[T any](e LiveEntry) (T, error) {
	return valueAs[T]("", e)
}

func valueAs[T any](slot string, e LiveEntry) (T, error) {
	if e.Value == nil {
		var zero T
		return zero, nil
	}
	v, ok := e.Value.(T)
	if !ok {
		var zero T
		return zero, NewTypeMismatchError(slot, reflect.TypeFor[T]().String(), typeName(e.Value))
	}
	return v, nil
}

func newLiveEntry[T any](value T) LiveEntry {
	return LiveEntry{Type: reflect.TypeFor[T](), Value: value}
}
