// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsplit

import (
	"bytes"
	"errors"

	"github.com/tailscale/hujson"
)

var errNonStandard = errors.New("comments or trailing commas in standard JSON")

// Raw is a ParseFunc that accepts a single standard JSON value and returns a
// copy of its text with leading and trailing whitespace removed.
func Raw(text []byte) ([]byte, error) {
	v, err := hujson.Parse(text)
	if err != nil {
		return nil, err
	} else if !v.IsStandard() {
		return nil, errNonStandard
	}
	return trimCopy(text), nil
}

// RawJWCC is a ParseFunc that accepts a single JSON value with comments and
// trailing commas (JWCC), and returns a copy of its text with leading and
// trailing whitespace removed. Comments are preserved.
func RawJWCC(text []byte) ([]byte, error) {
	if _, err := hujson.Parse(text); err != nil {
		return nil, err
	}
	return trimCopy(text), nil
}

func trimCopy(text []byte) []byte {
	return bytes.Clone(bytes.TrimSpace(text))
}
