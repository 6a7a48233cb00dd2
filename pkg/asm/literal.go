package asm

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"chip8asm/pkg/isa"
)

// Upper bounds for numeric literals in each context.
const (
	LimitAddress uint16 = 0x0FFF
	LimitByte    uint16 = 0xFF
	LimitWord    uint16 = 0xFFFF
)

var escapes = map[byte]byte{
	'0':  0x00,
	'a':  '\a',
	'b':  '\b',
	't':  '\t',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'n':  '\n',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

func unescape(c byte) (byte, bool) {
	v, ok := escapes[c]
	return v, ok
}

// ParseUint reads an integer or character literal and checks it against
// limit.
func ParseUint(word string, limit uint16) (uint16, error) {
	var value uint64

	switch {
	case len(word) > 2 && word[0] == '0' && word[1] == 'b':
		for _, c := range word[2:] {
			if c != '0' && c != '1' {
				return 0, newFault(SyntaxFault, "invalid binary integer literal: %s", word)
			}
		}
		v, err := strconv.ParseUint(word[2:], 2, 64)
		if err != nil {
			return 0, newFault(RangeFault, "integer value %q is out of range", word)
		}
		value = v

	case len(word) == 3 && word[0] == '\'' && word[2] == '\'':
		if word[1] == '\\' {
			return 0, newFault(SyntaxFault, "spare '\\' in character literal")
		}
		value = uint64(word[1])

	case len(word) == 4 && word[0] == '\'' && word[1] == '\\' && word[3] == '\'':
		c, ok := unescape(word[2])
		if !ok {
			return 0, newFault(SyntaxFault, "invalid escape sequence: %s", word)
		}
		value = uint64(c)

	default:
		v, err := strconv.ParseUint(word, 0, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, newFault(RangeFault, "integer value %q is out of range", word)
			}
			return 0, newFault(SyntaxFault, "integer conversion failed, value: %s", word)
		}
		value = v
	}

	if value > uint64(limit) {
		return 0, newFault(RangeFault, "integer value %q is out of range (max 0x%X)", word, limit)
	}
	return uint16(value), nil
}

// DecodeString expands a double-quoted db literal into its bytes.
func DecodeString(word string) ([]byte, error) {
	if len(word) < 2 || word[0] != '"' {
		return nil, newFault(SyntaxFault, "invalid string literal: %s", word)
	}
	var out []byte
	for i := 1; i < len(word); i++ {
		c := word[i]
		switch {
		case c == '"':
			if i != len(word)-1 {
				return nil, newFault(SyntaxFault, "trailing characters after string literal: %s", word)
			}
			return out, nil
		case c == '\\':
			i++
			if i >= len(word) {
				break
			}
			v, ok := unescape(word[i])
			if !ok {
				return nil, newFault(SyntaxFault, "invalid escape sequence in string: %s", word)
			}
			out = append(out, v)
		default:
			out = append(out, c)
		}
	}
	return nil, newFault(SyntaxFault, "unterminated string literal: %s", word)
}

// IsLabelName reports whether s can name a label or macro.
func IsLabelName(s string) bool {
	if s == "" || unicode.IsDigit(rune(s[0])) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

func isLabelDeclaration(word string) bool {
	return len(word) > 1 && word[len(word)-1] == ':' && IsLabelName(word[:len(word)-1])
}

// ClassifyOperand turns a word into an Operand. ok is false when the word
// starts a comment and no further operands should be read.
func ClassifyOperand(word string, limit uint16) (op Operand, ok bool, err error) {
	if isComment(word) {
		return Operand{}, false, nil
	}
	if reg := isa.LookupRegister(word); reg != isa.InvalidRegister {
		return RegisterOperand(reg), true, nil
	}
	switch strings.ToLower(word) {
	case "f":
		return SpecialOperand(OperandF), true, nil
	case "b":
		return SpecialOperand(OperandB), true, nil
	case "k":
		return SpecialOperand(OperandK), true, nil
	}
	if word != "" && (unicode.IsDigit(rune(word[0])) || word[0] == '\'') {
		v, err := ParseUint(word, limit)
		if err != nil {
			return Operand{}, true, err
		}
		return UintOperand(v), true, nil
	}
	if IsLabelName(word) {
		return LabelOperand(word), true, nil
	}
	return Operand{}, true, newFault(SyntaxFault, "invalid operand value: %s", word)
}
