// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsplit

import (
	"testing"
	"unicode/utf8"
)

func TestWidthTable(t *testing.T) {
	// Every leading byte of a valid encoding must map to its encoded length,
	// and every other byte must be marked invalid.
	var want [256]uint8
	var buf [utf8.UTFMax]byte
	for r := rune(0); r <= utf8.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		want[buf[0]] = uint8(n)
	}
	for b, w := range widthTable {
		if w != want[b] {
			t.Errorf("Width of %#02x: got %d, want %d", b, w, want[b])
		}
	}
}
