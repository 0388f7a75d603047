package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindBool
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	}
	return "unknown"
}

// Value is the result of evaluating a manifest expression.
type Value interface {
	Kind() Kind
}

// None is the ABSENT marker. As a dependency URL it means "exclude this path".
type None struct{}

type String string

type Int int64

type Bool bool

type List []Value

func (None) Kind() Kind   { return KindNone }
func (String) Kind() Kind { return KindString }
func (Int) Kind() Kind    { return KindInt }
func (Bool) Kind() Kind   { return KindBool }
func (List) Kind() Kind   { return KindList }

// Dict is a string-keyed mapping that remembers insertion order.
type Dict struct {
	keys []string
	vals map[string]Value
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{vals: make(map[string]Value)}
}

func (*Dict) Kind() Kind { return KindDict }

// Set assigns key. A new key is appended; an existing key keeps its position.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Get returns the value bound to key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Dict) Len() int { return len(d.keys) }

// Format renders v back in manifest syntax.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil, None:
		b.WriteString("None")
	case String:
		b.WriteString(strconv.Quote(string(x)))
	case Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case Bool:
		if x {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case List:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e)
		}
		b.WriteByte(']')
	case *Dict:
		b.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			writeValue(b, x.vals[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<%T>", v)
	}
}
