package apikit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type optionalState uint8

const (
	stateUnset optionalState = iota
	stateNull
	statePresent
)

// Optional is a three-state field value: unset (the zero value, meaning the
// caller never provided it), null (explicitly provided as JSON null) and
// present. The distinction matters for PATCH-style request bodies where
// "leave untouched" and "clear this field" are different operations.
//
// Unset fields are dropped by Encode and refuse direct JSON marshaling with
// ErrUnsetValue.
type Optional[T any] struct {
	value T
	state optionalState
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: statePresent}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{state: stateNull}
}

// Unset returns the unset Optional. Identical to the zero value; provided for
// readable call sites that reset a field.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether the value was provided at all (null counts as set).
func (o Optional[T]) IsSet() bool {
	return o.state != stateUnset
}

// IsNull reports whether the value was explicitly set to null.
func (o Optional[T]) IsNull() bool {
	return o.state == stateNull
}

// Get returns the contained value and whether it is present. Null and unset
// both report false.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == statePresent
}

// MustGet returns the contained value, panicking unless present.
func (o Optional[T]) MustGet() T {
	if o.state != statePresent {
		panic(fmt.Sprintf("apikit: MustGet on %s optional", o.stateName()))
	}
	return o.value
}

// OrElse returns the contained value when present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.state == statePresent {
		return o.value
	}
	return def
}

func (o Optional[T]) stateName() string {
	switch o.state {
	case stateNull:
		return "null"
	case statePresent:
		return "present"
	default:
		return "unset"
	}
}

// MarshalJSON emits null for the null state and the value when present.
// Marshaling an unset Optional is an error: unset means "no key at all",
// which a value-level marshaler cannot express.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	switch o.state {
	case statePresent:
		return json.Marshal(o.value)
	case stateNull:
		return []byte("null"), nil
	default:
		return nil, ErrUnsetValue
	}
}

// UnmarshalJSON records null as the null state and anything else as present.
// A field absent from the input never reaches UnmarshalJSON, so absence
// naturally leaves the Optional unset.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// optionalValue is the non-generic view Encode uses to inspect Optional
// fields of arbitrary element type.
type optionalValue interface {
	optionalUnset() bool
	optionalNull() bool
	optionalAny() any
}

func (o Optional[T]) optionalUnset() bool { return o.state == stateUnset }
func (o Optional[T]) optionalNull() bool  { return o.state == stateNull }
func (o Optional[T]) optionalAny() any {
	if o.state == statePresent {
		return o.value
	}
	return nil
}
