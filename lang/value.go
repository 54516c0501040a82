package lang

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind identifies the type held by a [Value].
type Kind uint8

const (
	KindInteger Kind = iota // integer
	KindFloat               // float
	KindString              // string
	KindArray               // array
)

// Value is a fully resolved konst value: an integer, a float, a string, or an
// array of values. The zero Value is the integer 0.
//
// Values are immutable; accessors return copies of any backing storage.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	a    []Value
}

// IntegerValue returns an integer Value.
func IntegerValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue returns a string Value holding s verbatim.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ArrayValue returns an array Value containing elems in order.
func ArrayValue(elems ...Value) Value {
	return Value{kind: KindArray, a: slices.Clone(elems)}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by v.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float held by v.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Array returns a copy of the elements held by v.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return slices.Clone(v.a), true
}

// Len returns the number of elements of an array, the number of bytes of a
// string, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// Index returns the i'th element of an array Value.
// It panics if v is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic("lang: Index of non-array value")
	}

	return v.a[i]
}

// Equal reports whether v and w hold the same kind and content.
// Floats compare by numeric equality, so NaN is never equal to itself.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindInteger:
		return v.i == w.i
	case KindFloat:
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindArray:
		return slices.EqualFunc(v.a, w.a, Value.Equal)
	}

	return false
}

// numeric reports whether v is an integer or float.
func (v Value) numeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// asFloat returns the numeric value of an integer or float as float64.
func (v Value) asFloat() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}

	return v.f
}

// ToNative converts v to its native Go representation: int64, float64,
// string, or []any.
func (v Value) ToNative() any {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.a))
		for i, elem := range v.a {
			out[i] = elem.ToNative()
		}

		return out
	default:
		return v.i
	}
}

// String returns v in konst source syntax.
func (v Value) String() string {
	var sb strings.Builder

	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.i, 10))

	case KindFloat:
		sb.WriteString(formatFloat(v.f))

	case KindString:
		sb.WriteByte('"')
		sb.WriteString(v.s)
		sb.WriteByte('"')

	case KindArray:
		sb.WriteByte('[')

		for i, elem := range v.a {
			if i > 0 {
				sb.WriteString("; ")
			}

			elem.writeTo(sb)
		}

		sb.WriteByte(']')
	}
}

// formatFloat formats f with the shortest representation that round-trips,
// always including a fractional part or an exponent.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}
