package tree

import (
	"iter"
	"slices"
)

// Map is an insertion ordered string keyed map. Maps reachable from a Value
// are shared and must only be mutated while being built.
type Map struct {
	keys []string
	vals map[string]Value
}

func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// MapOf builds a map from alternating key/value pairs, mostly for tests and
// static tables.
func MapOf(pairs ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		m.Set(key, From(pairs[i+1]))
	}
	return m
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Set adds or replaces key. Replacing keeps the original position.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m *Map) Delete(key string) {
	if _, exists := m.vals[key]; !exists {
		return
	}
	delete(m.vals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// All iterates over entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	out := NewMap()
	for k, v := range m.All() {
		out.Set(k, v.Clone())
	}
	return out
}

func (m *Map) shallow() *Map {
	out := &Map{keys: slices.Clone(m.keys), vals: make(map[string]Value, len(m.vals))}
	for k, v := range m.vals {
		out.vals[k] = v
	}
	return out
}
