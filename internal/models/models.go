package models

import (
	"iter"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies which of the three value shapes a Value holds.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a parsed value: an *Object, an Array or a Number.
// String renders the default textual dump, e.g. {'a': '1', 'b': ['2']}.
type Value interface {
	Kind() Kind
	String() string
	writeText(b *strings.Builder)
}

// Object is an ordered mapping from names to values. A repeated name keeps
// its first position and takes the latest value.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Kind implements Value.
func (o *Object) Kind() Kind { return KindObject }

// Set stores v under name, overwriting any previous value for name.
func (o *Object) Set(name string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, exists := o.values[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.values[name] = v
}

// Get returns the value stored under name.
func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Keys returns the names in iteration order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of distinct names.
func (o *Object) Len() int {
	return len(o.keys)
}

// All iterates over the members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

func (o *Object) String() string {
	var b strings.Builder
	o.writeText(&b)
	return b.String()
}

func (o *Object) writeText(b *strings.Builder) {
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(k)
		b.WriteString("': ")
		o.values[k].writeText(b)
	}
	b.WriteByte('}')
}

// Array is an ordered sequence of values.
type Array []Value

// Kind implements Value.
func (a Array) Kind() Kind { return KindArray }

func (a Array) String() string {
	var b strings.Builder
	a.writeText(&b)
	return b.String()
}

func (a Array) writeText(b *strings.Builder) {
	b.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			b.WriteString(", ")
		}
		v.writeText(b)
	}
	b.WriteByte(']')
}

// Number holds the literal text of a numeric token exactly as written.
type Number string

// Kind implements Value.
func (n Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n Number) writeText(b *strings.Builder) {
	b.WriteByte('\'')
	b.WriteString(string(n))
	b.WriteByte('\'')
}

// Decimal converts the literal to an arbitrary precision decimal without
// rounding.
func (n Number) Decimal() (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimPrefix(string(n), "+"))
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Equal reports whether a and b are the same tree. Numbers compare by
// literal text and object members compare in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.values[k], y.values[k]) {
				return false
			}
		}
		return true
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Number:
		return x == b.(Number)
	}
	return false
}
