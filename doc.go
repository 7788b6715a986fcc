// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsplit splits a stream of concatenated JSON values into separate
// values, without requiring delimiters between them.
//
// # Splitting
//
// The Splitter type reads a stream such as
//
//	{"a": 1}{"b": 2}[3, 4]
//
// and delivers each complete value in turn. Construct a splitter from an
// io.Reader and a ParseFunc, and call its Next method to iterate over the
// stream. Next advances to the next complete value and returns nil, or
// reports an error:
//
//	s := jsplit.New(input, ast.Parse)
//	for s.Next() == nil {
//	   log.Printf("Next value: %v", s.Value())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates a failure to read the input, or invalid text when StrictText is
// enabled.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Splitting failed: %v", s.Err())
//	}
//
// Alternatively, the All method returns an iterator over the values:
//
//	for v := range s.All() {
//	   log.Printf("Next value: %v", v)
//	}
//
// The splitter does not parse the input itself. Each time it reads a closing
// brace "}" or bracket "]", it passes all the text it has read since the
// previous value to its ParseFunc. If the parse succeeds, that value is
// delivered; otherwise the splitter keeps reading. Text that never parses,
// such as a truncated value at the end of the input, is silently discarded.
// Only objects and arrays can be split this way; other values at the top
// level of the stream are not recognized.
//
// The Raw and RawJWCC functions are ParseFunc implementations that return the
// text of each value. See package ast for parsers that construct syntax trees.
//
// # Decoding
//
// The Decoder type reads UTF-8 encoded runes one at a time from an io.Reader,
// consuming exactly the bytes of each rune. Decoding errors are reported with
// concrete type *DecodeError. A splitter skips invalid text by default, but
// stops at the first read error.
package jsplit
