// Package config holds the assembler's run options and builds the logger
// they describe.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xyproto/env/v2"
)

// Environment variables consulted for defaults.
const (
	EnvOutput    = "CHIP8ASM_OUTPUT"
	EnvVerbosity = "CHIP8ASM_VERBOSITY"
	EnvLogFormat = "CHIP8ASM_LOG_FORMAT"
)

const DefaultOutput = "output.ch8"

// HexStdout as an output path requests a hex dump on standard output.
const HexStdout = "-"

type Verbosity int

const (
	Quiet Verbosity = iota
	Verbose
	Debug
)

func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// Level maps a verbosity to the lowest slog level that gets printed.
func (v Verbosity) Level() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelInfo
	case Debug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quiet", "q":
		return Quiet, nil
	case "verbose", "v", "info":
		return Verbose, nil
	case "debug", "d":
		return Debug, nil
	}
	return Quiet, fmt.Errorf("unknown verbosity %q", s)
}

type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

type Options struct {
	InputPath   string
	OutputPath  string
	HexOutput   bool
	Verbosity   Verbosity
	LogFormat   LogFormat
	Symbols     bool
	SymbolsFile string
	Listing     bool
	Dump        bool
}

// FromEnvironment returns the options used before any flag is applied.
func FromEnvironment() (Options, error) {
	opts := Options{
		OutputPath: env.Str(EnvOutput, DefaultOutput),
		LogFormat:  LogFormat(strings.ToLower(env.Str(EnvLogFormat, string(LogText)))),
	}
	v, err := ParseVerbosity(env.Str(EnvVerbosity, "quiet"))
	if err != nil {
		return opts, fmt.Errorf("%s: %w", EnvVerbosity, err)
	}
	opts.Verbosity = v
	return opts, nil
}

var ErrNoInput = errors.New("no input file")

// Validate checks the options and resolves the "-" output path.
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrNoInput
	}
	if o.OutputPath == HexStdout {
		o.HexOutput = true
	}
	if o.OutputPath == "" && !o.HexOutput {
		o.OutputPath = DefaultOutput
	}
	switch o.LogFormat {
	case "":
		o.LogFormat = LogText
	case LogText, LogJSON:
	default:
		return fmt.Errorf("unknown log format %q", o.LogFormat)
	}
	return nil
}

// NewLogger builds the handler selected by the options, writing to w.
func (o Options) NewLogger(w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: o.Verbosity.Level()}
	if o.LogFormat == LogJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
