package isa

import (
	"fmt"
	"strings"
)

const (
	// LoadBase is where the interpreter places the first byte of a program.
	LoadBase uint16 = 0x200
	// MaxAddress is the largest value an nnn field can hold.
	MaxAddress uint16 = 0x0FFF
	MemorySize        = 0x1000
	// MaxProgramSize is the room left above LoadBase.
	MaxProgramSize = MemorySize - int(LoadBase)
)

// Base opcodes. Operand fields are OR'd in by the Pack helpers.
const (
	OpNOP    uint16 = 0x0000
	OpSYS    uint16 = 0x0000
	OpCLS    uint16 = 0x00E0
	OpRET    uint16 = 0x00EE
	OpJP     uint16 = 0x1000
	OpCALL   uint16 = 0x2000
	OpSEImm  uint16 = 0x3000
	OpSNEImm uint16 = 0x4000
	OpSEReg  uint16 = 0x5000
	OpLDImm  uint16 = 0x6000
	OpADDImm uint16 = 0x7000
	OpLDReg  uint16 = 0x8000
	OpOR     uint16 = 0x8001
	OpAND    uint16 = 0x8002
	OpXOR    uint16 = 0x8003
	OpADDReg uint16 = 0x8004
	OpSUB    uint16 = 0x8005
	OpSHR    uint16 = 0x8006
	OpSUBN   uint16 = 0x8007
	OpSHL    uint16 = 0x800E
	OpSNEReg uint16 = 0x9000
	OpLDI    uint16 = 0xA000
	OpJPV0   uint16 = 0xB000
	OpRND    uint16 = 0xC000
	OpDRW    uint16 = 0xD000
	OpSKP    uint16 = 0xE09E
	OpSKNP   uint16 = 0xE0A1
	OpLDVxDT uint16 = 0xF007
	OpLDVxK  uint16 = 0xF00A
	OpLDDTVx uint16 = 0xF015
	OpLDSTVx uint16 = 0xF018
	OpADDI   uint16 = 0xF01E
	OpLDF    uint16 = 0xF029
	OpLDB    uint16 = 0xF033
	OpLDIVx  uint16 = 0xF055
	OpLDVxI  uint16 = 0xF065
)

type Mnemonic int

const (
	NOP Mnemonic = iota
	SYS
	CLS
	RET
	JP
	CALL
	SE
	SNE
	LD
	ADD
	OR
	AND
	XOR
	SUB
	SHR
	SUBN
	SHL
	RND
	DRW
	SKP
	SKNP
	Invalid
)

var mnemonicNames = [...]string{
	NOP:  "NOP",
	SYS:  "SYS",
	CLS:  "CLS",
	RET:  "RET",
	JP:   "JP",
	CALL: "CALL",
	SE:   "SE",
	SNE:  "SNE",
	LD:   "LD",
	ADD:  "ADD",
	OR:   "OR",
	AND:  "AND",
	XOR:  "XOR",
	SUB:  "SUB",
	SHR:  "SHR",
	SUBN: "SUBN",
	SHL:  "SHL",
	RND:  "RND",
	DRW:  "DRW",
	SKP:  "SKP",
	SKNP: "SKNP",
}

func (m Mnemonic) String() string {
	if m < 0 || m >= Invalid {
		return "INVALID"
	}
	return mnemonicNames[m]
}

// LookupMnemonic is case-insensitive. Unknown words map to Invalid.
func LookupMnemonic(word string) Mnemonic {
	upper := strings.ToUpper(word)
	for m := NOP; m < Invalid; m++ {
		if mnemonicNames[m] == upper {
			return m
		}
	}
	return Invalid
}

type Register int

const (
	V0 Register = iota
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8
	V9
	VA
	VB
	VC
	VD
	VE
	VF
	I
	IndirectI
	DT
	ST
	InvalidRegister
)

var registerNames = [...]string{
	"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7",
	"v8", "v9", "va", "vb", "vc", "vd", "ve", "vf",
	"i", "[i]", "dt", "st",
}

var registerAliases = map[string]Register{
	"v10": VA,
	"v11": VB,
	"v12": VC,
	"v13": VD,
	"v14": VE,
	"v15": VF,
}

func (r Register) String() string {
	if r < 0 || r >= InvalidRegister {
		return "INVALID"
	}
	return strings.ToUpper(registerNames[r])
}

// LookupRegister matches the register table and the v10..v15 aliases.
func LookupRegister(word string) Register {
	if word == "" {
		return InvalidRegister
	}
	lower := strings.ToLower(word)
	for r := V0; r < InvalidRegister; r++ {
		if registerNames[r] == lower {
			return r
		}
	}
	if r, ok := registerAliases[lower]; ok {
		return r
	}
	return InvalidRegister
}

func (r Register) IsV() bool {
	return r >= V0 && r <= VF
}

// Nibble returns the 4-bit index of a Vx register.
func (r Register) Nibble() (uint16, error) {
	if !r.IsV() {
		return 0, fmt.Errorf("Vx register expected, got %s", r)
	}
	return uint16(r) & 0xF, nil
}

// VRegister is the inverse of Nibble.
func VRegister(nibble uint16) Register {
	return Register(nibble & 0xF)
}

func PackNNN(base, nnn uint16) uint16 {
	return base | (nnn & 0x0FFF)
}

func PackX(base, x uint16) uint16 {
	return base | ((x & 0xF) << 8)
}

func PackXKK(base, x, kk uint16) uint16 {
	return base | ((x & 0xF) << 8) | (kk & 0xFF)
}

func PackXY(base, x, y uint16) uint16 {
	return base | ((x & 0xF) << 8) | ((y & 0xF) << 4)
}

func PackXYN(base, x, y, n uint16) uint16 {
	return base | ((x & 0xF) << 8) | ((y & 0xF) << 4) | (n & 0xF)
}

// Fields splits an opcode word into its nibble fields.
func Fields(word uint16) (op, x, y, n, kk, nnn uint16) {
	return word >> 12, (word >> 8) & 0xF, (word >> 4) & 0xF, word & 0xF, word & 0xFF, word & 0x0FFF
}
