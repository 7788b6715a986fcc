// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsplit

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"
)

// ErrValueTooLarge is reported by a Splitter when the text accumulated for a
// single value exceeds the limit set by MaxValueSize.
var ErrValueTooLarge = errors.New("value too large")

// A ParseFunc parses text as a single complete value of type T, or reports an
// error. A ParseFunc must not retain text after it returns.
type ParseFunc[T any] func(text []byte) (T, error)

// A Splitter reads a sequence of concatenated values from an input stream.
// Each call to Next advances to the next complete value, or reports an error.
//
// The Splitter does not track the nesting structure of the input. Each time
// it reads a closing brace or bracket, it calls its ParseFunc on all the text
// accumulated since the previous value. If the parse succeeds, that is the
// next value; otherwise scanning continues to the next closer.
type Splitter[T any] struct {
	dec   *Decoder
	parse ParseFunc[T]

	strict    bool               // report invalid text from Next
	maxSize   int                // if > 0, the limit on len(buf)
	onInvalid func(*DecodeError) // if non-nil, observe invalid text

	buf  []byte // text of the current value
	val  T
	span Span
	last error // the last error reported by Next
	err  error // terminal error, returned by all later calls to Next
}

// New constructs a new Splitter that consumes input from r and uses parse to
// recognize complete values. The Splitter takes ownership of r.
func New[T any](r io.Reader, parse ParseFunc[T]) *Splitter[T] {
	return &Splitter[T]{dec: NewDecoder(r), parse: parse}
}

// StrictText configures s to report (true) or skip (false) input that is not
// valid UTF-8. By default invalid text is skipped. When enabled, Next returns
// a *DecodeError for invalid text and discards the partial value; a
// subsequent call to Next resumes scanning after the invalid bytes.
func (s *Splitter[T]) StrictText(ok bool) { s.strict = ok }

// MaxValueSize limits the amount of text s will accumulate for a single value
// to n bytes. If n ≤ 0, there is no limit (the default). When the limit is
// exceeded, Next reports ErrValueTooLarge and s stops.
func (s *Splitter[T]) MaxValueSize(n int) { s.maxSize = n }

// OnInvalidText sets a function that is called with each invalid text error
// encountered by s, whether or not the error is reported by Next.
func (s *Splitter[T]) OnInvalidText(f func(*DecodeError)) { s.onInvalid = f }

// Next advances s to the next complete value of the input, or reports an
// error. At the end of the input, Next returns io.EOF. Any text following the
// last complete value is discarded.
//
// A failure of the underlying reader is reported as a *DecodeError and ends
// the sequence: once Next has reported io.EOF or a read error, all subsequent
// calls report the same error.
func (s *Splitter[T]) Next() error {
	if s.err != nil {
		return s.err
	}
	s.buf = s.buf[:0]
	pos := s.dec.Offset()
	for {
		ch, _, err := s.dec.ReadRune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			var derr *DecodeError
			if !errors.As(err, &derr) || derr.IsIO() {
				return s.setErr(err)
			}
			if s.onInvalid != nil {
				s.onInvalid(derr)
			}
			if s.strict {
				s.buf = s.buf[:0]
				s.last = err
				return err
			}
			continue // skip the invalid text
		}

		s.buf = utf8.AppendRune(s.buf, ch)
		if s.maxSize > 0 && len(s.buf) > s.maxSize {
			return s.setErr(fmt.Errorf("at offset %d: %w", pos, ErrValueTooLarge))
		}
		if ch != '}' && ch != ']' {
			continue
		}
		v, err := s.parse(s.buf)
		if err != nil {
			continue // not yet a complete value
		}
		s.val = v
		s.span = Span{Pos: int(pos), End: int(s.dec.Offset())}
		s.last = nil
		return nil
	}
}

// Value returns the current value. It is only meaningful after a successful
// call to Next.
func (s *Splitter[T]) Value() T { return s.val }

// Text returns the text of the current value, including any whitespace or
// other text that preceded it in the input. The return value is only valid
// until the next call of Next. The caller must copy the contents of the
// returned slice if it is needed beyond that.
func (s *Splitter[T]) Text() []byte { return s.buf }

// Span returns the span of input consumed to read the current value.
func (s *Splitter[T]) Span() Span { return s.span }

// Err returns the last error reported by Next.
func (s *Splitter[T]) Err() error { return s.last }

// All returns an iterator over the remaining values of s. The iterator stops
// when Next reports an error; the caller should check Err to distinguish the
// end of input (io.EOF) from a failure.
func (s *Splitter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for s.Next() == nil {
			if !yield(s.val) {
				return
			}
		}
	}
}

func (s *Splitter[T]) setErr(err error) error {
	s.err, s.last = err, err
	return err
}
