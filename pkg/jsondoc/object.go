package jsondoc

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that remembers key insertion order
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of keys
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. A key that is already present keeps its
// position; a new key is appended.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Clone returns a shallow copy: nested objects and arrays are shared
func (o *Object) Clone() *Object {
	c := &Object{
		keys:   make([]string, len(o.keys)),
		values: make(map[string]any, len(o.values)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether both objects hold the same keys with equal values.
// Key order is not significant, as for JSON objects in general.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.Keys() {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		v, _ := o.Get(k)
		if !ValuesEqual(v, ov) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two decoded JSON values. Numbers compare by their
// literal text.
func ValuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// MarshalJSON writes the object with its keys in order
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := marshalNoEscape(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
