// Package testutil defines support code for unit tests.
package testutil

import "io"

// A Source is an io.Reader over a fixed string, for testing consumers that
// must cope with short reads and read failures.
type Source struct {
	data   []byte
	offset int

	// If positive, each Read delivers at most this many bytes.
	Chunk int

	// If Err != nil, Read reports Err once FailAfter bytes have been read.
	FailAfter int
	Err       error

	// The number of calls to Read.
	Reads int
}

// NewSource constructs a Source that delivers the bytes of s.
func NewSource(s string) *Source { return &Source{data: []byte(s)} }

// Remaining reports the number of bytes of input not yet read.
func (s *Source) Remaining() int { return len(s.data) - s.offset }

// Read satisfies io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	s.Reads++
	if s.Err != nil && s.offset >= s.FailAfter {
		return 0, s.Err
	} else if s.offset == len(s.data) {
		return 0, io.EOF
	}
	end := len(s.data)
	if s.Chunk > 0 && s.offset+s.Chunk < end {
		end = s.offset + s.Chunk
	}
	if s.Err != nil && s.FailAfter > s.offset && s.FailAfter < end {
		end = s.FailAfter
	}
	n := copy(p, s.data[s.offset:end])
	s.offset += n
	return n, nil
}
