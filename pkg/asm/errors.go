package asm

import (
	"errors"
	"fmt"
)

// FaultKind classifies assembly errors.
type FaultKind int

const (
	SyntaxFault FaultKind = iota
	RangeFault
	TypeFault
	ReferenceFault
	OperandCountFault
)

func (k FaultKind) String() string {
	switch k {
	case SyntaxFault:
		return "syntax"
	case RangeFault:
		return "range"
	case TypeFault:
		return "type"
	case ReferenceFault:
		return "reference"
	case OperandCountFault:
		return "operand count"
	default:
		return "unknown"
	}
}

// Fault is a fatal assembly error. File and Line are filled in by the
// stage that knows them; Line is 1-based and 0 when unknown.
type Fault struct {
	Kind FaultKind
	File string
	Line int
	Msg  string
}

func (f *Fault) Error() string {
	switch {
	case f.File != "" && f.Line > 0:
		return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Msg)
	case f.File != "":
		return fmt.Sprintf("%s: %s", f.File, f.Msg)
	case f.Line > 0:
		return fmt.Sprintf("line %d: %s", f.Line, f.Msg)
	default:
		return f.Msg
	}
}

func newFault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsFault reports whether err is, or wraps, a Fault of the given kind.
func IsFault(err error, kind FaultKind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}

// atLocation attaches a file and line to err. Location already present on
// a Fault is kept. Errors that are not Faults become syntax faults.
func atLocation(err error, file string, line int) error {
	if err == nil {
		return nil
	}
	var f *Fault
	if !errors.As(err, &f) {
		return &Fault{Kind: SyntaxFault, File: file, Line: line, Msg: err.Error()}
	}
	located := *f
	if located.File == "" {
		located.File = file
	}
	if located.Line == 0 {
		located.Line = line
	}
	return &located
}
