// Package tree implements the style tree value model shared by every stage of
// the compiler: an ordered, immutable-by-convention variant type decoded from
// JSON or YAML configuration documents.
package tree

import (
	"math"
	"strconv"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
	KindRef
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single node of a style tree. The zero Value is null.
//
// Values share structure: a Value returned by an accessor must never be
// modified in place. Use With, Without and Clone to derive new trees.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string // string payload or reference path
	list []Value
	m    *Map
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func String(s string) Value { return Value{kind: KindString, s: s} }

// Ref returns a reference leaf pointing at a dotted path of the same tree.
func Ref(path string) Value { return Value{kind: KindRef, s: path} }

// List returns a list value holding items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Object wraps m into a map value. A nil m produces an empty map.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsMap() bool { return v.kind == KindMap }
func (v Value) IsList() bool { return v.kind == KindList }
func (v Value) IsRef() bool { return v.kind == KindRef }
func (v Value) IsString() bool { return v.kind == KindString }

// Bool returns boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Number returns numeric payload.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// Str returns string payload.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// RefPath returns the target path of a reference.
func (v Value) RefPath() (string, bool) {
	if v.kind != KindRef {
		return "", false
	}
	return v.s, true
}

// Items returns list elements. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Map returns the underlying map or nil when v is not a map.
func (v Value) Map() *Map {
	if v.kind != KindMap {
		return nil
	}
	return v.m
}

// Len returns number of entries of a map or list.
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return v.m.Len()
	case KindList:
		return len(v.list)
	}
	return 0
}

// Truthy reports whether the value would be considered "set" by a flag check:
// false, null, zero, empty string, empty list and empty map are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != "" && v.s != "0"
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m.Len() > 0
	case KindRef:
		return true
	}
	return false
}

// Scalar renders strings and numbers the way they appear in CSS. Other kinds
// are not scalars.
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindNumber:
		return FormatNumber(v.n), true
	}
	return "", false
}

// FormatNumber prints n without exponent and without trailing zeros.
func FormatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return "0"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Get returns the entry named key of a map value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	return v.m.Get(key)
}

// Lookup walks path through nested maps.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether path exists.
func (v Value) Has(path ...string) bool {
	_, ok := v.Lookup(path...)
	return ok
}

// With returns a copy of v where path is set to val. Missing or non-map
// intermediate nodes are replaced by maps. Only the maps on the path are
// copied, the rest of the tree is shared.
func (v Value) With(path []string, val Value) Value {
	if len(path) == 0 {
		return val
	}
	var m *Map
	if v.kind == KindMap {
		m = v.m.shallow()
	} else {
		m = NewMap()
	}
	child, _ := m.Get(path[0])
	m.Set(path[0], child.With(path[1:], val))
	return Object(m)
}

// Without returns a copy of v with path removed. Maps emptied by the removal
// are kept.
func (v Value) Without(path ...string) Value {
	if len(path) == 0 || v.kind != KindMap {
		return v
	}
	child, ok := v.m.Get(path[0])
	if !ok {
		return v
	}
	m := v.m.shallow()
	if len(path) == 1 {
		m.Delete(path[0])
	} else {
		m.Set(path[0], child.Without(path[1:]...))
	}
	return Object(m)
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return List(items...)
	case KindMap:
		return Object(v.m.Clone())
	}
	return v
}

// Equal compares two values deeply. Map key order is significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString, KindRef:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if a.m.Len() != b.m.Len() {
			return false
		}
		for i, k := range a.m.keys {
			if b.m.keys[i] != k || !Equal(a.m.vals[k], b.m.vals[k]) {
				return false
			}
		}
		return true
	}
	return false
}
