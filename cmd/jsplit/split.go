// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/tailscale/hujson"

	"github.com/creachadair/jsplit"
	"github.com/creachadair/jsplit/ast"
)

// A splitter writes the values of its inputs to an output, one per line.
type splitter struct {
	cfg    *config
	logger log.Logger
	out    io.Writer
	seen   map[uint64][]string // values written by hash, for --distinct
}

func newSplitter(cfg *config, logger log.Logger, out io.Writer) *splitter {
	return &splitter{cfg: cfg, logger: logger, out: out, seen: make(map[uint64][]string)}
}

// fileStats summarizes the processing of one input.
type fileStats struct {
	values  int   // values written
	skipped int   // values dropped as duplicates or by path
	invalid int   // invalid UTF-8 sequences
	bytes   int64 // input bytes consumed by complete values
}

// splitFile processes a single input and logs the outcome. It reports
// whether the input was processed without error.
func (sp *splitter) splitFile(name string, r io.Reader) bool {
	logger := log.With(sp.logger, "file", name)
	st, err := sp.split(logger, r)
	if sp.cfg.stats {
		level.Info(logger).Log(
			"msg", "done",
			"values", humanize.Comma(int64(st.values)),
			"skipped", humanize.Comma(int64(st.skipped)),
			"invalid", st.invalid,
			"read", humanize.Bytes(uint64(st.bytes)),
		)
	}
	if err != nil {
		level.Error(logger).Log("msg", "split failed", "err", err)
		return false
	}
	return true
}

// split writes the values read from r to the output.
func (sp *splitter) split(logger log.Logger, r io.Reader) (fileStats, error) {
	var st fileStats
	in, err := decompress(sp.cfg.decompress, r)
	if err != nil {
		return st, err
	}
	defer in.Close()

	parse := jsplit.Raw
	if sp.cfg.jwcc {
		parse = jsplit.RawJWCC
	}
	s := jsplit.New(bufio.NewReader(in), parse)
	s.StrictText(sp.cfg.strict)
	s.MaxValueSize(int(sp.cfg.maxSize))
	s.OnInvalidText(func(e *jsplit.DecodeError) {
		st.invalid++
		level.Warn(logger).Log("msg", "invalid text", "offset", e.Offset, "bytes", fmt.Sprintf("%q", e.Bytes))
	})

	for s.Next() == nil {
		st.bytes = int64(s.Span().End)
		text, err := sp.render(s.Value())
		if err != nil {
			level.Debug(logger).Log("msg", "skipped value", "span", s.Span(), "err", err)
			st.skipped++
			continue
		}
		if sp.cfg.distinct && !sp.firstSeen(text) {
			st.skipped++
			continue
		}
		if _, err := fmt.Fprintf(sp.out, "%s\n", text); err != nil {
			return st, err
		}
		st.values++
	}
	if err := s.Err(); err != io.EOF {
		return st, err
	}
	return st, nil
}

// firstSeen reports whether text has not been seen before, and records it.
// Values with colliding hashes are compared by their text.
func (sp *splitter) firstSeen(text []byte) bool {
	h := xxhash.Sum64(text)
	if slices.Contains(sp.seen[h], string(text)) {
		return false
	}
	sp.seen[h] = append(sp.seen[h], string(text))
	return true
}

// render converts the text of a value to the output format.
func (sp *splitter) render(text []byte) ([]byte, error) {
	if sp.cfg.path != nil {
		v, err := ast.ParseJWCC(text)
		if err != nil {
			return nil, err
		}
		elt, err := ast.Path(v, sp.cfg.path...)
		if err != nil {
			return nil, err
		}
		text = []byte(elt.JSON())
	}

	switch sp.cfg.format {
	case "raw":
		return text, nil
	case "pretty":
		hv, err := hujson.Parse(text)
		if err != nil {
			return nil, err
		}
		hv.Format()
		return hv.Pack(), nil
	default:
		hv, err := hujson.Parse(text)
		if err != nil {
			return nil, err
		}
		hv.Standardize()
		hv.Minimize()
		return hv.Pack(), nil
	}
}

// decompress wraps r to decode the named compression format.
func decompress(format string, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case "", "none":
		return io.NopCloser(r), nil
	case "gzip":
		return gzip.NewReader(r)
	case "zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case "snappy":
		// S2 readers also accept the Snappy framing format.
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unknown compression format %q", format)
	}
}
