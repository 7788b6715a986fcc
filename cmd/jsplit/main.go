// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jsplit reads streams of concatenated JSON values and writes each
// value on a separate line.
package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// config holds the settings from the command line.
type config struct {
	jwcc       bool
	strict     bool
	distinct   bool
	stats      bool
	format     string
	decompress string
	logLevel   string
	pathSpec   string
	maxSize    units.Base2Bytes
	files      []string

	path []any // parsed from pathSpec
}

func main() {
	var cfg config
	app := kingpin.New("jsplit", "Split concatenated JSON values into one value per line.")
	app.Flag("jwcc", "Accept comments and trailing commas in the input.").BoolVar(&cfg.jwcc)
	app.Flag("strict-text", "Stop reading a file at the first invalid UTF-8 sequence.").BoolVar(&cfg.strict)
	app.Flag("distinct", "Write only the first copy of each distinct value.").BoolVar(&cfg.distinct)
	app.Flag("stats", "Log a summary for each input.").BoolVar(&cfg.stats)
	app.Flag("format", "Output format.").Default("compact").EnumVar(&cfg.format, "raw", "compact", "pretty")
	app.Flag("decompress", "Decompress the input.").Default("none").EnumVar(&cfg.decompress, "none", "gzip", "zstd", "snappy")
	app.Flag("max-size", "Maximum size of a single value (0 means no limit).").Default("0").BytesVar(&cfg.maxSize)
	app.Flag("path", `Write only the element at this slash-separated path of each value, e.g. "items/0/name".`).StringVar(&cfg.pathSpec)
	app.Flag("log.level", "Only log messages at or above this level.").Default("info").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	app.Arg("files", "Input files (default stdin).").ExistingFilesVar(&cfg.files)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg.path = parsePath(cfg.pathSpec)
	logger := newLogger(cfg.logLevel)

	out := bufio.NewWriter(os.Stdout)
	sp := newSplitter(&cfg, logger, out)

	var failed bool
	if len(cfg.files) == 0 {
		failed = !sp.splitFile("-", os.Stdin)
	}
	for _, name := range cfg.files {
		f, err := os.Open(name)
		if err != nil {
			level.Error(logger).Log("msg", "failed to open input", "file", name, "err", err)
			failed = true
			continue
		}
		if !sp.splitFile(name, f) {
			failed = true
		}
		f.Close()
	}
	if err := out.Flush(); err != nil {
		level.Error(logger).Log("msg", "failed to write output", "err", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return log.With(level.NewFilter(logger, opt), "ts", log.DefaultTimestampUTC)
}

// parsePath splits a path specification into object keys and array indices.
func parsePath(spec string) []any {
	if spec == "" {
		return nil
	}
	var path []any
	for _, elt := range strings.Split(strings.Trim(spec, "/"), "/") {
		if n, err := strconv.Atoi(elt); err == nil {
			path = append(path, n)
		} else {
			path = append(path, elt)
		}
	}
	return path
}
