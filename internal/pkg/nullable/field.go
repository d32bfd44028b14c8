// Package nullable distinguishes between absent, null and set JSON fields.
package nullable

import (
	"bytes"
	"encoding/json"
)

// Field records whether a JSON key was present and whether it held null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a set, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a set field holding null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports a set, non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Ptr returns the value or nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}
