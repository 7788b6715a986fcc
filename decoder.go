// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsplit

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrInvalidText is reported (wrapped in a *DecodeError) when the input
// contains a byte sequence that is not valid UTF-8.
var ErrInvalidText = errors.New("invalid UTF-8 text")

// A DecodeError reports a failure to decode a rune from the input.  If the
// input was not valid UTF-8, Err is ErrInvalidText; otherwise Err is the
// error reported by the underlying reader.
type DecodeError struct {
	Offset int64  // input offset of the first byte of the sequence
	Bytes  []byte // the bytes consumed for the failed sequence
	Err    error
}

// Error satisfies the error interface.
func (d *DecodeError) Error() string {
	if d.IsIO() {
		return fmt.Sprintf("read failed: %v (offset %d)", d.Err, d.Offset)
	}
	return fmt.Sprintf("%v %q (offset %d)", d.Err, d.Bytes, d.Offset)
}

// Unwrap supports error wrapping.
func (d *DecodeError) Unwrap() error { return d.Err }

// IsIO reports whether d was caused by a failure of the underlying reader,
// rather than by invalid input text.
func (d *DecodeError) IsIO() bool { return d.Err != ErrInvalidText }

// widthTable maps the leading byte of a UTF-8 sequence to the total length of
// the sequence, or 0 if the byte cannot begin a sequence. Continuation bytes
// (0x80-0xBF), the overlong leaders 0xC0 and 0xC1, and 0xF5-0xFF are invalid.
var widthTable = [256]uint8{
	//   0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x00
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x10
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x20
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x30
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x40
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x50
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x60
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x70
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x80
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x90
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xA0
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xB0
	0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xC0
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xD0
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // 0xE0
	4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xF0
}

// A Decoder reads UTF-8 encoded runes from an input stream.  Each call to
// ReadRune consumes exactly the bytes of one encoded rune from the reader, and
// does not read ahead. Wrap the input in a *bufio.Reader if the underlying
// reader is expensive to call.
type Decoder struct {
	r   io.Reader
	buf [utf8.UTFMax]byte
	pos int64 // bytes consumed from r
}

// NewDecoder constructs a new Decoder that consumes input from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Offset reports the number of bytes the decoder has consumed from its input.
func (d *Decoder) Offset() int64 { return d.pos }

// ReadRune reads a single UTF-8 encoded rune from the input, and returns the
// rune and the number of bytes consumed. It satisfies io.RuneReader.
//
// At the end of the input ReadRune returns io.EOF. If the input is not valid
// UTF-8, or if the reader fails, ReadRune reports an error of concrete type
// *DecodeError. A multi-byte sequence cut short by the end of the input is
// reported as invalid text, not io.EOF.
func (d *Decoder) ReadRune() (rune, int, error) {
	start := d.pos
	nr, err := io.ReadFull(d.r, d.buf[:1])
	d.pos += int64(nr)
	if err == io.EOF {
		return 0, 0, io.EOF
	} else if err != nil {
		return utf8.RuneError, nr, d.fail(start, nr, err)
	}

	w := int(widthTable[d.buf[0]])
	switch w {
	case 0:
		return utf8.RuneError, 1, d.fail(start, 1, ErrInvalidText)
	case 1:
		return rune(d.buf[0]), 1, nil
	}

	// Read the continuation bytes. ReadFull handles short reads from r.
	nr, err = io.ReadFull(d.r, d.buf[1:w])
	d.pos += int64(nr)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return utf8.RuneError, 1 + nr, d.fail(start, 1+nr, ErrInvalidText)
	} else if err != nil {
		return utf8.RuneError, 1 + nr, d.fail(start, 1+nr, err)
	}

	// The width table admits some ill-formed sequences (overlong forms,
	// surrogates, values above U+10FFFF) that the full decode rejects.
	ch, n := mem.DecodeRune(mem.B(d.buf[:w]))
	if n != w {
		return utf8.RuneError, w, d.fail(start, w, ErrInvalidText)
	}
	return ch, w, nil
}

func (d *Decoder) fail(pos int64, n int, err error) error {
	return &DecodeError{
		Offset: pos,
		Bytes:  append([]byte(nil), d.buf[:n]...),
		Err:    err,
	}
}
