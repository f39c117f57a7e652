package slotted

// Keyed is the type-erased view of a SlotKey. Render contexts, Slot nodes and
// compiled segments work against it so keys of different value types can
// share one store. Identity is the name alone.
type Keyed interface {
	Name() string

	// defaultValue evaluates the key's default, if any.
	defaultValue(rc *RenderContext) (any, bool)
}

// SlotKey names a typed placeholder. The type parameter only guards call
// sites; two keys with the same name address the same context entry.
//
// Keys are usually declared once as package-level variables:
//
//	var UserName = slotted.NewSlotKeyWithDefault("user_name", "Guest")
type SlotKey[T any] struct {
	name     string
	provider func(rc *RenderContext) T
}

var _ Keyed = SlotKey[string]{}

// NewSlotKey creates a key with no default.
func NewSlotKey[T any](name string) SlotKey[T] {
	return SlotKey[T]{name: name}
}

// NewSlotKeyWithDefault creates a key that falls back to a constant value.
func NewSlotKeyWithDefault[T any](name string, value T) SlotKey[T] {
	return SlotKey[T]{
		name:     name,
		provider: func(*RenderContext) T { return value },
	}
}

// NewSlotKeyWithProvider creates a key whose default is computed from the
// context on every lookup. Provided values are never memoized.
func NewSlotKeyWithProvider[T any](name string, provider func(rc *RenderContext) T) SlotKey[T] {
	return SlotKey[T]{name: name, provider: provider}
}

// Name returns the key's identity.
func (k SlotKey[T]) Name() string { return k.name }

// HasDefault reports whether the key carries a default.
func (k SlotKey[T]) HasDefault() bool { return k.provider != nil }

// Default evaluates the key's default against rc.
func (k SlotKey[T]) Default(rc *RenderContext) (T, bool) {
	if k.provider == nil {
		var zero T
		return zero, false
	}
	return k.provider(rc), true
}

// Equal reports whether other addresses the same slot.
func (k SlotKey[T]) Equal(other Keyed) bool {
	return other != nil && other.Name() == k.name
}

// String returns the key name.
func (k SlotKey[T]) String() string { return k.name }

func (k SlotKey[T]) defaultValue(rc *RenderContext) (any, bool) {
	v, ok := k.Default(rc)
	if !ok {
		return nil, false
	}
	return v, true
}

// Slot is a placeholder node resolved against the render context.
type Slot struct {
	key Keyed
}

// NewSlot creates a placeholder for key.
func NewSlot(key Keyed) *Slot {
	return &Slot{key: key}
}

// Key returns the placeholder's key.
func (s *Slot) Key() Keyed { return s.key }

// Render resolves the key: empty when absent with no default, nested
// components render with the same context, anything else is escaped.
func (s *Slot) Render(rc *RenderContext) string {
	return rc.resolve(s.key, resolveValue)
}
