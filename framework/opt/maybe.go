// Package opt provides a minimal optional-value type. It is used wherever a
// configuration field needs to distinguish "not specified" from a zero value,
// such as the per-level message count expectations in logcapture.
package opt

import "fmt"

// Maybe is an optional value of type V.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe holding the given value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// FromPtr returns Some(*ptr) if ptr is non-nil, or None otherwise.
func FromPtr[V any](ptr *V) Maybe[V] {
	if ptr != nil {
		return Some(*ptr)
	}
	return None[V]()
}

// IsDefined reports whether a value is present.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the value if present, or the zero value of V otherwise.
func (m Maybe[V]) Value() V { return m.value }

// OrElse returns the value if present, or valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String returns the value's own string representation, or "[none]" if no
// value is present.
func (m Maybe[V]) String() string {
	if !m.defined {
		return "[none]"
	}
	var v interface{} = m.value
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", m.value)
}
