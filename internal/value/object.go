// ABOUTME: Insertion-ordered mapping used for configuration objects
// ABOUTME: Keeps document key order so errors and output are stable across runs
package value

import (
	"bytes"
	"encoding/json"
)

// Object is a string-keyed mapping that remembers insertion order
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Len returns the number of keys. A nil object is empty.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Has reports whether key is present
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key. Existing keys keep their position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Lookup walks a dotted path ("validation.research_min_refs") through
// nested objects
func (o *Object) Lookup(path ...string) (Value, bool) {
	current := o
	for i, key := range path {
		v, ok := current.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.AsObject()
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return Value{}, false
}

// Clone returns a deep copy
func (o *Object) Clone() *Object {
	cp := NewObject()
	if o == nil {
		return cp
	}
	for _, key := range o.keys {
		cp.Set(key, o.values[key].Clone())
	}
	return cp
}

// Equal compares keys and values, ignoring order
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, key := range o.Keys() {
		a, _ := o.Get(key)
		b, ok := other.Get(key)
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the object with keys in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := o.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
