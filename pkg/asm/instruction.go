package asm

import (
	"fmt"
	"strings"

	"chip8asm/pkg/isa"
)

// Instruction is one statement that emits code or data. The set of
// implementations is closed: *Opcode, *ByteData and *WordData.
type Instruction interface {
	SourceLine() int
	// Size is the number of bytes the statement occupies in the image.
	Size() int
	isInstruction()
}

type Opcode struct {
	Mnemonic isa.Mnemonic
	Operands [3]Operand
	Line     int
}

// ByteData is produced by a db directive.
type ByteData struct {
	Bytes []byte
	Line  int
}

// WordData is produced by a dw directive.
type WordData struct {
	Words []uint16
	Line  int
}

func (o *Opcode) SourceLine() int   { return o.Line }
func (b *ByteData) SourceLine() int { return b.Line }
func (w *WordData) SourceLine() int { return w.Line }

func (o *Opcode) Size() int   { return 2 }
func (b *ByteData) Size() int { return len(b.Bytes) }
func (w *WordData) Size() int { return 2 * len(w.Words) }

func (*Opcode) isInstruction()   {}
func (*ByteData) isInstruction() {}
func (*WordData) isInstruction() {}

// OperandCount is the number of leading non-empty operand slots.
func (o *Opcode) OperandCount() int {
	n := 0
	for _, op := range o.Operands {
		if op.IsEmpty() {
			break
		}
		n++
	}
	return n
}

func (o *Opcode) String() string {
	var args []string
	for _, op := range o.Operands[:o.OperandCount()] {
		args = append(args, op.String())
	}
	if len(args) == 0 {
		return o.Mnemonic.String()
	}
	return o.Mnemonic.String() + " " + strings.Join(args, ", ")
}

func (b *ByteData) String() string {
	parts := make([]string, len(b.Bytes))
	for i, v := range b.Bytes {
		parts[i] = fmt.Sprintf("0x%02X", v)
	}
	return strings.TrimSpace("DB " + strings.Join(parts, ", "))
}

func (w *WordData) String() string {
	parts := make([]string, len(w.Words))
	for i, v := range w.Words {
		parts[i] = fmt.Sprintf("0x%04X", v)
	}
	return strings.TrimSpace("DW " + strings.Join(parts, ", "))
}

// Program is the parser's output: the statements in memory order and the
// finished label table.
type Program struct {
	File         string
	Instructions []Instruction
	Labels       *LabelTable
}
