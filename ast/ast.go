// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and parsers
// that construct syntax trees from JSON source for use with a jsplit.Splitter.
package ast

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jsplit/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value. The concrete type is one of Object,
// Array, String, Number, Bool, or Null.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// An Object is a collection of key-value members.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// JSON renders the member as "key":value.
func (m *Member) JSON() string {
	return String(m.Key).JSON() + ":" + m.Value.JSON()
}

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = v.JSON()
	}
	return "[" + strings.Join(ss, ",") + "]"
}

// A String is an unquoted string value.
type String string

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(escape.AppendQuote(nil, mem.S(string(s)))) }

// A Number is a numeric value, recorded as its source text.
type Number string

// IsInt reports whether n is written as an integer, without a fraction or
// exponent.
func (n Number) IsInt() bool { return !strings.ContainsAny(string(n), ".eE") }

// Int64 returns the value of n as an int64. It panics if n is not an integer
// or is out of range.
func (n Number) Int64() int64 {
	v, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// Float64 returns the value of n as a float64. It panics if n is not a valid
// number.
func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		panic(err)
	}
	return v
}

// JSON satisfies the Value interface.
func (n Number) JSON() string { return string(n) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// ToValue converts a Go value into an equivalent Value.  It handles nil,
// Booleans, strings, integer and floating-point types, slices of any or
// Value, and maps with string keys.  Map members are ordered by key.  Any
// other type causes ToValue to panic.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64))
	case []Value:
		return Array(t)
	case []any:
		a := make(Array, len(t))
		for i, elt := range t {
			a[i] = ToValue(elt)
		}
		return a
	case map[string]any:
		o := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			o = append(o, &Member{Key: key, Value: ToValue(t[key])})
		}
		return o
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}
