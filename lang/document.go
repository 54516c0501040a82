package lang

import (
	"iter"
	"maps"
	"slices"
)

// Document is the result of parsing: an ordered mapping of entry names to
// resolved values.
//
// Entries are kept in order of first insertion. Setting an existing name
// replaces its value without changing its position.
type Document struct {
	keys   []string
	values map[string]Value
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{values: make(map[string]Value)}
}

// Set binds name to v.
func (d *Document) Set(name string, v Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}

	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}

	d.values[name] = v
}

// Get returns the value bound to name.
func (d *Document) Get(name string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}

	v, ok := d.values[name]

	return v, ok
}

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	return len(d.keys)
}

// Keys returns the entry names in document order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}

	return slices.Clone(d.keys)
}

// All returns an iterator over the entries in document order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if d == nil {
			return
		}

		for _, key := range d.keys {
			if !yield(key, d.values[key]) {
				return
			}
		}
	}
}

// Clone returns a copy of d that shares no mutable state with it.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	return &Document{
		keys:   slices.Clone(d.keys),
		values: maps.Clone(d.values),
	}
}

// Equal reports whether d and e hold the same entries in the same order.
func (d *Document) Equal(e *Document) bool {
	if d.Len() != e.Len() {
		return false
	}

	for i, key := range d.Keys() {
		if e.keys[i] != key || !d.values[key].Equal(e.values[key]) {
			return false
		}
	}

	return true
}

// ToNative converts d to a map of native Go values (see [Value.ToNative]).
// The result does not preserve entry order.
func (d *Document) ToNative() map[string]any {
	out := make(map[string]any, d.Len())
	for key, v := range d.All() {
		out[key] = v.ToNative()
	}

	return out
}
