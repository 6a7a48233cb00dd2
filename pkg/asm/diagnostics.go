package asm

import (
	"fmt"
	"log/slog"
)

// Diagnostic is a non-fatal warning raised while assembling.
type Diagnostic struct {
	File string
	Line int
	Msg  string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.File, d.Msg)
}

// Reporter receives warnings from every pipeline stage.
type Reporter interface {
	Warn(d Diagnostic)
}

// Diagnostics collects warnings and forwards them to a logger.
type Diagnostics struct {
	logger   *slog.Logger
	Warnings []Diagnostic
}

func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

func (d *Diagnostics) Warn(diag Diagnostic) {
	d.Warnings = append(d.Warnings, diag)
	if d.logger != nil {
		d.logger.Warn(diag.Msg, "file", diag.File, "line", diag.Line)
	}
}

type discardReporter struct{}

func (discardReporter) Warn(Diagnostic) {}

func reporterOrDiscard(r Reporter) Reporter {
	if r == nil {
		return discardReporter{}
	}
	return r
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
