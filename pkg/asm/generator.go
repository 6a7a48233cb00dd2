package asm

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"chip8asm/pkg/isa"
)

// Register-to-register ALU operations share the 8xyN layout.
var aluOps = map[isa.Mnemonic]uint16{
	isa.OR:   isa.OpOR,
	isa.AND:  isa.OpAND,
	isa.XOR:  isa.OpXOR,
	isa.SUB:  isa.OpSUB,
	isa.SHR:  isa.OpSHR,
	isa.SUBN: isa.OpSUBN,
	isa.SHL:  isa.OpSHL,
}

// Image is the assembled output.
type Image struct {
	Bytes []byte
	// SourceMap maps the offset of each statement to its source line.
	SourceMap map[uint16]int
}

type generator struct {
	file   string
	labels *LabelTable
	log    *slog.Logger
	rep    Reporter
	out    []byte
}

// Generate encodes a parsed program. It must only run once the label table
// is complete. The first fault aborts generation and no image is returned.
func Generate(prog *Program, logger *slog.Logger, rep Reporter) (*Image, error) {
	g := &generator{
		file:   prog.File,
		labels: prog.Labels,
		log:    loggerOrDiscard(logger),
		rep:    reporterOrDiscard(rep),
	}
	if g.labels == nil {
		g.labels = NewLabelTable()
	}
	sourceMap := make(map[uint16]int)

	for _, inst := range prog.Instructions {
		sourceMap[uint16(len(g.out))] = inst.SourceLine()

		var err error
		switch in := inst.(type) {
		case *Opcode:
			var word uint16
			word, err = g.encode(in)
			if err == nil {
				g.emit16(word)
			}
		case *ByteData:
			g.emitBytes(in)
		case *WordData:
			for _, w := range in.Words {
				g.emit16(w)
			}
		default:
			err = fmt.Errorf("unhandled instruction type %T", inst)
		}
		if err != nil {
			return nil, atLocation(err, g.file, inst.SourceLine())
		}
	}

	if len(g.out) > isa.MaxProgramSize {
		g.rep.Warn(Diagnostic{File: g.file, Msg: fmt.Sprintf(
			"image is %d bytes, more than the %d bytes available above 0x%X", len(g.out), isa.MaxProgramSize, isa.LoadBase)})
	}
	g.log.Info("generated image", "file", g.file, "bytes", len(g.out))
	return &Image{Bytes: g.out, SourceMap: sourceMap}, nil
}

func (g *generator) emit16(v uint16) {
	g.out = append(g.out, byte(v>>8), byte(v))
	g.log.Debug("wrote word", "value", fmt.Sprintf("0x%04X", v))
}

func (g *generator) emitBytes(db *ByteData) {
	for _, b := range db.Bytes {
		g.out = append(g.out, b)
		g.log.Debug("wrote byte", "value", fmt.Sprintf("0x%02X", b))
	}
	if len(g.out)%2 != 0 {
		g.rep.Warn(Diagnostic{File: g.file, Line: db.Line,
			Msg: "unaligned data, instructions should only be at even addresses"})
	}
}

// expectOperands checks the number of operands against the accepted
// counts.
func expectOperands(op *Opcode, counts ...int) error {
	n := op.OperandCount()
	for _, extra := range op.Operands[n:] {
		if !extra.IsEmpty() {
			n = -1
		}
	}
	for _, c := range counts {
		if n == c {
			return nil
		}
	}
	want := make([]string, len(counts))
	for i, c := range counts {
		want[i] = strconv.Itoa(c)
	}
	return newFault(OperandCountFault, "invalid number of operands for %s, expected %s",
		op.Mnemonic, strings.Join(want, " or "))
}

func vx(o Operand) (uint16, error) {
	if !o.IsV() {
		return 0, newFault(TypeFault, "expected a Vx register, got %s %s", o.Kind(), o)
	}
	reg, _ := o.Register()
	return reg.Nibble()
}

func immediate(o Operand, limit uint16, what string) (uint16, error) {
	v, err := o.Uint()
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, newFault(RangeFault, "%s value 0x%X is out of range (max 0x%X)", what, v, limit)
	}
	return v, nil
}

// address resolves a literal or label operand to a 12-bit address.
func (g *generator) address(o Operand) (uint16, error) {
	switch o.Kind() {
	case OperandUint:
		return immediate(o, isa.MaxAddress, "address")
	case OperandLabel:
		name, _ := o.Label()
		addr, err := g.labels.Address(name)
		if err != nil {
			return 0, err
		}
		g.log.Debug("resolved label", "name", name, "address", fmt.Sprintf("0x%03X", addr))
		return addr, nil
	default:
		return 0, newFault(TypeFault, "expected an address or label, got %s", o.Kind())
	}
}

func (g *generator) encode(op *Opcode) (uint16, error) {
	ops := op.Operands

	switch op.Mnemonic {
	case isa.NOP:
		return isa.OpNOP, expectOperands(op, 0)

	case isa.SYS:
		if err := expectOperands(op, 0, 1); err != nil {
			return 0, err
		}
		if ops[0].IsEmpty() {
			return isa.OpSYS, nil
		}
		nnn, err := g.address(ops[0])
		return isa.PackNNN(isa.OpSYS, nnn), err

	case isa.CLS:
		return isa.OpCLS, expectOperands(op, 0)

	case isa.RET:
		return isa.OpRET, expectOperands(op, 0)

	case isa.JP:
		if err := expectOperands(op, 1, 2); err != nil {
			return 0, err
		}
		if ops[1].IsEmpty() {
			nnn, err := g.address(ops[0])
			return isa.PackNNN(isa.OpJP, nnn), err
		}
		if !ops[0].Is(isa.V0) {
			return 0, newFault(TypeFault, "register-relative jump is only possible with register V0")
		}
		nnn, err := g.address(ops[1])
		return isa.PackNNN(isa.OpJPV0, nnn), err

	case isa.CALL:
		if err := expectOperands(op, 1); err != nil {
			return 0, err
		}
		nnn, err := g.address(ops[0])
		return isa.PackNNN(isa.OpCALL, nnn), err

	case isa.SE:
		return g.skipCompare(op, isa.OpSEImm, isa.OpSEReg)

	case isa.SNE:
		return g.skipCompare(op, isa.OpSNEImm, isa.OpSNEReg)

	case isa.LD:
		if err := expectOperands(op, 2); err != nil {
			return 0, err
		}
		return g.encodeLD(ops[0], ops[1])

	case isa.ADD:
		if err := expectOperands(op, 2); err != nil {
			return 0, err
		}
		if ops[0].Is(isa.I) {
			x, err := vx(ops[1])
			return isa.PackX(isa.OpADDI, x), err
		}
		x, err := vx(ops[0])
		if err != nil {
			return 0, err
		}
		if ops[1].Kind() == OperandUint {
			kk, err := immediate(ops[1], 0xFF, "byte")
			return isa.PackXKK(isa.OpADDImm, x, kk), err
		}
		y, err := vx(ops[1])
		return isa.PackXY(isa.OpADDReg, x, y), err

	case isa.OR, isa.AND, isa.XOR, isa.SUB, isa.SHR, isa.SUBN, isa.SHL:
		if err := expectOperands(op, 2); err != nil {
			return 0, err
		}
		x, err := vx(ops[0])
		if err != nil {
			return 0, err
		}
		y, err := vx(ops[1])
		return isa.PackXY(aluOps[op.Mnemonic], x, y), err

	case isa.RND:
		if err := expectOperands(op, 2); err != nil {
			return 0, err
		}
		x, err := vx(ops[0])
		if err != nil {
			return 0, err
		}
		kk, err := immediate(ops[1], 0xFF, "byte")
		return isa.PackXKK(isa.OpRND, x, kk), err

	case isa.DRW:
		if err := expectOperands(op, 3); err != nil {
			return 0, err
		}
		x, err := vx(ops[0])
		if err != nil {
			return 0, err
		}
		y, err := vx(ops[1])
		if err != nil {
			return 0, err
		}
		n, err := immediate(ops[2], 0xF, "nibble")
		return isa.PackXYN(isa.OpDRW, x, y, n), err

	case isa.SKP, isa.SKNP:
		if err := expectOperands(op, 1); err != nil {
			return 0, err
		}
		x, err := vx(ops[0])
		if op.Mnemonic == isa.SKP {
			return isa.PackX(isa.OpSKP, x), err
		}
		return isa.PackX(isa.OpSKNP, x), err
	}

	return 0, newFault(SyntaxFault, "invalid opcode")
}

func (g *generator) skipCompare(op *Opcode, immBase, regBase uint16) (uint16, error) {
	if err := expectOperands(op, 2); err != nil {
		return 0, err
	}
	if op.Operands[0].Kind() != OperandRegister {
		return 0, newFault(TypeFault, "%s requires a register name as left operand", op.Mnemonic)
	}
	x, err := vx(op.Operands[0])
	if err != nil {
		return 0, err
	}
	if op.Operands[1].Kind() == OperandUint {
		kk, err := immediate(op.Operands[1], 0xFF, "byte")
		return isa.PackXKK(immBase, x, kk), err
	}
	y, err := vx(op.Operands[1])
	return isa.PackXY(regBase, x, y), err
}

func (g *generator) encodeLD(dst, src Operand) (uint16, error) {
	switch dst.Kind() {
	case OperandF, OperandB:
		x, err := vx(src)
		if dst.Kind() == OperandF {
			return isa.PackX(isa.OpLDF, x), err
		}
		return isa.PackX(isa.OpLDB, x), err
	case OperandK:
		return 0, newFault(TypeFault, "LD: left-side operand can't be K")
	case OperandRegister:
	default:
		return 0, newFault(TypeFault, "LD: destination can't be a constant value")
	}

	switch {
	case dst.Is(isa.I):
		if src.Kind() != OperandUint && src.Kind() != OperandLabel {
			return 0, newFault(TypeFault, "LD can only load an address into I")
		}
		nnn, err := g.address(src)
		return isa.PackNNN(isa.OpLDI, nnn), err
	case dst.Is(isa.IndirectI):
		x, err := vx(src)
		return isa.PackX(isa.OpLDIVx, x), err
	case dst.Is(isa.DT):
		x, err := vx(src)
		return isa.PackX(isa.OpLDDTVx, x), err
	case dst.Is(isa.ST):
		x, err := vx(src)
		return isa.PackX(isa.OpLDSTVx, x), err
	}

	x, err := vx(dst)
	if err != nil {
		return 0, err
	}
	switch src.Kind() {
	case OperandUint:
		kk, err := immediate(src, 0xFF, "byte")
		return isa.PackXKK(isa.OpLDImm, x, kk), err
	case OperandK:
		return isa.PackX(isa.OpLDVxK, x), nil
	case OperandLabel:
		return 0, newFault(TypeFault, "LD: can't load an address into a Vx register")
	case OperandRegister:
		switch {
		case src.Is(isa.I):
			return 0, newFault(TypeFault, "LD can't load from register I")
		case src.Is(isa.ST):
			return 0, newFault(TypeFault, "LD can't load from register ST")
		case src.Is(isa.IndirectI):
			return isa.PackX(isa.OpLDVxI, x), nil
		case src.Is(isa.DT):
			return isa.PackX(isa.OpLDVxDT, x), nil
		}
		y, err := vx(src)
		return isa.PackXY(isa.OpLDReg, x, y), err
	}
	return 0, newFault(TypeFault, "LD: right-side operand can't be %s", src.Kind())
}
