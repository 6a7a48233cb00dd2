package asm

import (
	"log/slog"
	"strings"

	"chip8asm/pkg/isa"
)

type parser struct {
	file   string
	log    *slog.Logger
	rep    Reporter
	prog   *Program
	offset int
}

// Parse performs the single sequential pass over preprocessed source. It
// returns every statement in program order together with the complete
// label table.
func Parse(src, file string, logger *slog.Logger, rep Reporter) (*Program, error) {
	p := &parser{
		file: file,
		log:  loggerOrDiscard(logger),
		rep:  reporterOrDiscard(rep),
		prog: &Program{File: file, Labels: NewLabelTable()},
	}

	for i, line := range splitLines(src) {
		lineNo := i + 1
		if err := p.parseLine(line, lineNo); err != nil {
			return nil, atLocation(err, file, lineNo)
		}
	}

	p.log.Info("parsed source", "file", file, "statements", len(p.prog.Instructions),
		"labels", p.prog.Labels.Len(), "bytes", p.offset)
	return p.prog, nil
}

func (p *parser) warn(line int, msg string) {
	p.rep.Warn(Diagnostic{File: p.file, Line: line, Msg: msg})
}

func (p *parser) advance(n int) error {
	p.offset += n
	if p.offset > int(LimitWord) {
		return newFault(RangeFault, "program too large: offset 0x%X exceeds 0xFFFF", p.offset)
	}
	return nil
}

func (p *parser) parseLine(line string, lineNo int) error {
	pos := 0
	word := NextWord(line, &pos)
	if word == "" || isComment(word) {
		return nil
	}
	p.log.Debug("word", "line", lineNo, "word", word)

	if isLabelDeclaration(word) {
		name := word[:len(word)-1]
		p.log.Debug("found a label declaration", "name", name, "offset", p.offset)
		if err := p.prog.Labels.Declare(name, uint16(p.offset)); err != nil {
			return err
		}
		// A statement may follow the label on the same line.
		word = NextWord(line, &pos)
		if word == "" || isComment(word) {
			return nil
		}
	}

	if m := isa.LookupMnemonic(word); m != isa.Invalid {
		return p.parseOpcode(m, line, &pos, lineNo)
	}

	switch strings.ToLower(word) {
	case "db":
		return p.parseDB(line, &pos, lineNo)
	case "dw":
		return p.parseDW(line, &pos, lineNo)
	}

	return newFault(SyntaxFault, "syntax error: %s", line)
}

func (p *parser) parseOpcode(m isa.Mnemonic, line string, pos *int, lineNo int) error {
	op := &Opcode{Mnemonic: m, Line: lineNo}

	for i := 0; i <= len(op.Operands); i++ {
		word := NextWord(line, pos)
		if word == "" {
			break
		}
		if i == len(op.Operands) {
			if isComment(word) {
				break
			}
			return newFault(OperandCountFault, "too many operands for %s: %s", m, word)
		}
		operand, ok, err := ClassifyOperand(word, LimitAddress)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		p.log.Debug("operand", "index", i, "kind", operand.Kind().String(), "value", operand.String())
		op.Operands[i] = operand
	}

	if err := checkSpecialOperands(op); err != nil {
		return err
	}

	p.log.Debug("found an opcode", "line", lineNo, "opcode", op.String())
	p.prog.Instructions = append(p.prog.Instructions, op)
	return p.advance(op.Size())
}

// checkSpecialOperands enforces where F, B and K may appear: only LD takes
// them, with F/B on the left and K on the right.
func checkSpecialOperands(op *Opcode) error {
	for i, operand := range op.Operands {
		if !operand.isSpecial() {
			continue
		}
		allowed := op.Mnemonic == isa.LD &&
			((i == 0 && (operand.Kind() == OperandF || operand.Kind() == OperandB)) ||
				(i == 1 && operand.Kind() == OperandK))
		if !allowed {
			return newFault(TypeFault, "invalid use of F/B/K operator")
		}
	}
	return nil
}

func (p *parser) parseDB(line string, pos *int, lineNo int) error {
	def := &ByteData{Line: lineNo}
	for {
		word := NextWord(line, pos)
		if word == "" || isComment(word) {
			break
		}
		p.log.Debug("db argument", "line", lineNo, "word", word)

		if word[0] == '"' {
			bytes, err := DecodeString(word)
			if err != nil {
				return err
			}
			def.Bytes = append(def.Bytes, bytes...)
			continue
		}
		v, err := ParseUint(word, LimitByte)
		if err != nil {
			return err
		}
		def.Bytes = append(def.Bytes, byte(v))
	}

	if len(def.Bytes) == 0 {
		p.warn(lineNo, "DB without data")
	}
	p.prog.Instructions = append(p.prog.Instructions, def)
	return p.advance(def.Size())
}

func (p *parser) parseDW(line string, pos *int, lineNo int) error {
	def := &WordData{Line: lineNo}
	for {
		word := NextWord(line, pos)
		if word == "" || isComment(word) {
			break
		}
		v, err := ParseUint(word, LimitWord)
		if err != nil {
			return err
		}
		def.Words = append(def.Words, v)
	}

	if len(def.Words) == 0 {
		p.warn(lineNo, "DW without data")
	}
	p.prog.Instructions = append(p.prog.Instructions, def)
	return p.advance(def.Size())
}
