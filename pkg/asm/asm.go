package asm

import "log/slog"

// Assembler runs the preprocess, parse and generate stages over one
// source buffer.
type Assembler struct {
	file     string
	logger   *slog.Logger
	reporter Reporter
}

// Result is everything a successful run produced.
type Result struct {
	Image     []byte
	SourceMap map[uint16]int
	Labels    *LabelTable
	Program   *Program
	Warnings  []Diagnostic
}

func NewAssembler() *Assembler {
	return &Assembler{file: "<input>"}
}

// WithFile sets the name used in diagnostics.
func (a *Assembler) WithFile(name string) *Assembler {
	a.file = name
	return a
}

func (a *Assembler) WithLogger(logger *slog.Logger) *Assembler {
	a.logger = logger
	return a
}

// WithReporter forwards warnings to r in addition to collecting them in
// the Result.
func (a *Assembler) WithReporter(r Reporter) *Assembler {
	a.reporter = r
	return a
}

type teeReporter struct {
	collected *Diagnostics
	next      Reporter
}

func (t teeReporter) Warn(d Diagnostic) {
	t.collected.Warn(d)
	if t.next != nil {
		t.next.Warn(d)
	}
}

func Assemble(code string) ([]byte, map[uint16]int, error) {
	res, err := NewAssembler().Assemble(code)
	if err != nil {
		return nil, nil, err
	}
	return res.Image, res.SourceMap, nil
}

func (a *Assembler) Assemble(code string) (*Result, error) {
	logger := loggerOrDiscard(a.logger)
	diags := NewDiagnostics(nil)
	rep := teeReporter{collected: diags, next: a.reporter}

	src, err := Preprocess(code, a.file, logger, rep)
	if err != nil {
		return nil, err
	}

	prog, err := Parse(src, a.file, logger, rep)
	if err != nil {
		return nil, err
	}

	img, err := Generate(prog, logger, rep)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:     img.Bytes,
		SourceMap: img.SourceMap,
		Labels:    prog.Labels,
		Program:   prog,
		Warnings:  diags.Warnings,
	}, nil
}
