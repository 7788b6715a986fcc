// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsplit"
	"github.com/creachadair/jsplit/internal/escape"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// ErrNonStandard is reported by Parse for input that contains comments or
// trailing commas.
var ErrNonStandard = errors.New("comments or trailing commas in standard JSON")

// Parse parses text as a single standard JSON value. Leading and trailing
// whitespace is permitted; any other text outside the value is an error.
// Parse satisfies jsplit.ParseFunc.
func Parse(text []byte) (Value, error) {
	hv, err := hujson.Parse(text)
	if err != nil {
		return nil, err
	} else if !hv.IsStandard() {
		return nil, ErrNonStandard
	}
	return fromHuJSON(hv)
}

// ParseJWCC parses text as a single JSON value, permitting comments and
// trailing commas in objects and arrays (JWCC). Comments are discarded.
// ParseJWCC satisfies jsplit.ParseFunc.
func ParseJWCC(text []byte) (Value, error) {
	hv, err := hujson.Parse(text)
	if err != nil {
		return nil, err
	}
	return fromHuJSON(hv)
}

// NewSplitter constructs a jsplit.Splitter that reads standard JSON values
// from r.
func NewSplitter(r io.Reader) *jsplit.Splitter[Value] { return jsplit.New(r, Parse) }

// fromHuJSON converts a parsed hujson value into a Value. The result does not
// share storage with the input text.
func fromHuJSON(hv hujson.Value) (Value, error) {
	switch t := hv.Value.(type) {
	case *hujson.Object:
		o := make(Object, len(t.Members))
		for i, m := range t.Members {
			name, ok := m.Name.Value.(hujson.Literal)
			if !ok {
				return nil, fmt.Errorf("invalid object key %T", m.Name.Value)
			}
			key, err := unquote(name)
			if err != nil {
				return nil, fmt.Errorf("object key: %w", err)
			}
			v, err := fromHuJSON(m.Value)
			if err != nil {
				return nil, err
			}
			o[i] = &Member{Key: key, Value: v}
		}
		return o, nil

	case *hujson.Array:
		a := make(Array, len(t.Elements))
		for i, elt := range t.Elements {
			v, err := fromHuJSON(elt)
			if err != nil {
				return nil, err
			}
			a[i] = v
		}
		return a, nil

	case hujson.Literal:
		switch t.Kind() {
		case 'n':
			return Null{}, nil
		case 't':
			return Bool(true), nil
		case 'f':
			return Bool(false), nil
		case '0':
			return Number(string(t)), nil
		case '"':
			s, err := unquote(t)
			if err != nil {
				return nil, err
			}
			return String(s), nil
		}
		return nil, fmt.Errorf("invalid literal %q", []byte(t))

	default:
		return nil, fmt.Errorf("unknown value type %T", hv.Value)
	}
}

func unquote(lit hujson.Literal) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.B(lit[1 : len(lit)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
