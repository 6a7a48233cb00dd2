package asm

import (
	"fmt"

	"chip8asm/pkg/isa"
)

type OperandKind int

const (
	OperandEmpty OperandKind = iota
	OperandUint              // byte, nibble or 12-bit address
	OperandRegister
	OperandLabel
	OperandF // sprite location, LD only
	OperandB // BCD, LD only
	OperandK // key wait, LD only
)

func (k OperandKind) String() string {
	switch k {
	case OperandEmpty:
		return "Empty"
	case OperandUint:
		return "Integer"
	case OperandRegister:
		return "Register"
	case OperandLabel:
		return "Label"
	case OperandF:
		return "Sprite Operator (F)"
	case OperandB:
		return "BCD Operator (B)"
	case OperandK:
		return "Key Operator (K)"
	default:
		return "Unknown"
	}
}

// Operand holds exactly one of: nothing, an integer, a register, a label
// name, or one of the F/B/K tags. The zero value is an empty operand.
type Operand struct {
	kind  OperandKind
	value uint16
	reg   isa.Register
	label string
}

func UintOperand(v uint16) Operand {
	return Operand{kind: OperandUint, value: v}
}

func RegisterOperand(r isa.Register) Operand {
	return Operand{kind: OperandRegister, reg: r}
}

func LabelOperand(name string) Operand {
	return Operand{kind: OperandLabel, label: name}
}

// SpecialOperand builds an F, B or K operand.
func SpecialOperand(kind OperandKind) Operand {
	switch kind {
	case OperandF, OperandB, OperandK:
		return Operand{kind: kind}
	}
	panic(fmt.Sprintf("asm: %s is not a special operand", kind))
}

func (o Operand) Kind() OperandKind { return o.kind }

func (o Operand) IsEmpty() bool { return o.kind == OperandEmpty }

func (o Operand) isSpecial() bool {
	return o.kind == OperandF || o.kind == OperandB || o.kind == OperandK
}

func (o Operand) mismatch(want OperandKind) error {
	return newFault(TypeFault, "unexpected type of operand, expected %s, got %s", want, o.kind)
}

func (o Operand) Uint() (uint16, error) {
	if o.kind != OperandUint {
		return 0, o.mismatch(OperandUint)
	}
	return o.value, nil
}

func (o Operand) Register() (isa.Register, error) {
	if o.kind != OperandRegister {
		return isa.InvalidRegister, o.mismatch(OperandRegister)
	}
	return o.reg, nil
}

func (o Operand) Label() (string, error) {
	if o.kind != OperandLabel {
		return "", o.mismatch(OperandLabel)
	}
	return o.label, nil
}

// Is reports whether o is the given register.
func (o Operand) Is(r isa.Register) bool {
	return o.kind == OperandRegister && o.reg == r
}

// IsV reports whether o is one of V0..VF.
func (o Operand) IsV() bool {
	return o.kind == OperandRegister && o.reg.IsV()
}

func (o Operand) Equal(other Operand) bool {
	if o.kind != other.kind {
		return false
	}
	switch o.kind {
	case OperandUint:
		return o.value == other.value
	case OperandRegister:
		return o.reg == other.reg
	case OperandLabel:
		return o.label == other.label
	default:
		return true
	}
}

func (o Operand) String() string {
	switch o.kind {
	case OperandUint:
		return fmt.Sprintf("0x%X", o.value)
	case OperandRegister:
		return o.reg.String()
	case OperandLabel:
		return o.label
	case OperandF:
		return "F"
	case OperandB:
		return "B"
	case OperandK:
		return "K"
	default:
		return ""
	}
}
