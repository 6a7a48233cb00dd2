package asm

import "chip8asm/pkg/isa"

func decoded(m isa.Mnemonic, ops ...Operand) *Opcode {
	op := &Opcode{Mnemonic: m}
	copy(op.Operands[:], ops)
	return op
}

func reg(nibble uint16) Operand {
	return RegisterOperand(isa.VRegister(nibble))
}

// Decode turns one opcode word back into an instruction record. Addresses
// come back as integers since label names are not part of the image.
func Decode(word uint16) (*Opcode, error) {
	op, x, y, n, kk, nnn := isa.Fields(word)

	switch op {
	case 0x0:
		switch word {
		case isa.OpCLS:
			return decoded(isa.CLS), nil
		case isa.OpRET:
			return decoded(isa.RET), nil
		case isa.OpNOP:
			return decoded(isa.NOP), nil
		}
		return decoded(isa.SYS, UintOperand(nnn)), nil
	case 0x1:
		return decoded(isa.JP, UintOperand(nnn)), nil
	case 0x2:
		return decoded(isa.CALL, UintOperand(nnn)), nil
	case 0x3:
		return decoded(isa.SE, reg(x), UintOperand(kk)), nil
	case 0x4:
		return decoded(isa.SNE, reg(x), UintOperand(kk)), nil
	case 0x5:
		if n == 0 {
			return decoded(isa.SE, reg(x), reg(y)), nil
		}
	case 0x6:
		return decoded(isa.LD, reg(x), UintOperand(kk)), nil
	case 0x7:
		return decoded(isa.ADD, reg(x), UintOperand(kk)), nil
	case 0x8:
		if n == 0x0 {
			return decoded(isa.LD, reg(x), reg(y)), nil
		}
		if n == 0x4 {
			return decoded(isa.ADD, reg(x), reg(y)), nil
		}
		for m, base := range aluOps {
			if base&0xF == n {
				return decoded(m, reg(x), reg(y)), nil
			}
		}
	case 0x9:
		if n == 0 {
			return decoded(isa.SNE, reg(x), reg(y)), nil
		}
	case 0xA:
		return decoded(isa.LD, RegisterOperand(isa.I), UintOperand(nnn)), nil
	case 0xB:
		return decoded(isa.JP, RegisterOperand(isa.V0), UintOperand(nnn)), nil
	case 0xC:
		return decoded(isa.RND, reg(x), UintOperand(kk)), nil
	case 0xD:
		return decoded(isa.DRW, reg(x), reg(y), UintOperand(n)), nil
	case 0xE:
		switch kk {
		case isa.OpSKP & 0xFF:
			return decoded(isa.SKP, reg(x)), nil
		case isa.OpSKNP & 0xFF:
			return decoded(isa.SKNP, reg(x)), nil
		}
	case 0xF:
		switch kk {
		case isa.OpLDVxDT & 0xFF:
			return decoded(isa.LD, reg(x), RegisterOperand(isa.DT)), nil
		case isa.OpLDVxK & 0xFF:
			return decoded(isa.LD, reg(x), SpecialOperand(OperandK)), nil
		case isa.OpLDDTVx & 0xFF:
			return decoded(isa.LD, RegisterOperand(isa.DT), reg(x)), nil
		case isa.OpLDSTVx & 0xFF:
			return decoded(isa.LD, RegisterOperand(isa.ST), reg(x)), nil
		case isa.OpADDI & 0xFF:
			return decoded(isa.ADD, RegisterOperand(isa.I), reg(x)), nil
		case isa.OpLDF & 0xFF:
			return decoded(isa.LD, SpecialOperand(OperandF), reg(x)), nil
		case isa.OpLDB & 0xFF:
			return decoded(isa.LD, SpecialOperand(OperandB), reg(x)), nil
		case isa.OpLDIVx & 0xFF:
			return decoded(isa.LD, RegisterOperand(isa.IndirectI), reg(x)), nil
		case isa.OpLDVxI & 0xFF:
			return decoded(isa.LD, reg(x), RegisterOperand(isa.IndirectI)), nil
		}
	}
	return nil, newFault(SyntaxFault, "unknown opcode 0x%04X", word)
}
