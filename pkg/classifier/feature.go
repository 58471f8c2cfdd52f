package classifier

import (
	"fmt"
	"strconv"
)

// Kind identifies which member of a Value is set
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is the observed value of a feature. It holds exactly one of a bool,
// an int64 or a string and is comparable, so values of different kinds are
// never equal.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String returns a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the kind of the value
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean member and whether the value is a bool
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer member and whether the value is an int
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string member and whether the value is a string
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	default:
		return "<nil>"
	}
}

// Feature is a named observation about one object. Two features are equal
// when both name and value are equal, which makes Feature usable as a map key.
type Feature struct {
	name  string
	value Value
}

// NewFeature creates a feature
func NewFeature(name string, value Value) Feature {
	return Feature{name: name, value: value}
}

// Name returns the attribute the feature describes
func (f Feature) Name() string { return f.name }

// Value returns the observed value
func (f Feature) Value() Value { return f.value }

func (f Feature) String() string {
	return fmt.Sprintf("%s = %s", f.name, f.value)
}
