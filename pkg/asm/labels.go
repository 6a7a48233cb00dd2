package asm

import (
	"sort"

	"chip8asm/pkg/isa"
)

// LabelTable maps label names to byte offsets from the start of the
// assembled region. The load base is only added by Address.
type LabelTable struct {
	offsets map[string]uint16
}

func NewLabelTable() *LabelTable {
	return &LabelTable{offsets: make(map[string]uint16)}
}

func (t *LabelTable) Declare(name string, offset uint16) error {
	if prev, exists := t.offsets[name]; exists {
		return newFault(ReferenceFault,
			"label redeclared: %q, original offset: 0x%X, new offset: 0x%X", name, prev, offset)
	}
	t.offsets[name] = offset
	return nil
}

func (t *LabelTable) Offset(name string) (uint16, bool) {
	off, ok := t.offsets[name]
	return off, ok
}

// Address resolves a label reference to its load address.
func (t *LabelTable) Address(name string) (uint16, error) {
	off, ok := t.offsets[name]
	if !ok {
		return 0, newFault(ReferenceFault, "reference to undefined label: %s", name)
	}
	addr := uint32(isa.LoadBase) + uint32(off)
	if addr > uint32(isa.MaxAddress) {
		return 0, newFault(RangeFault, "label %s resolves to 0x%X, beyond addressable memory", name, addr)
	}
	return uint16(addr), nil
}

func (t *LabelTable) Len() int { return len(t.offsets) }

// Names returns the labels ordered by offset, then name.
func (t *LabelTable) Names() []string {
	names := make([]string, 0, len(t.offsets))
	for name := range t.offsets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := t.offsets[names[i]], t.offsets[names[j]]
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

// Map returns a copy of the table.
func (t *LabelTable) Map() map[string]uint16 {
	m := make(map[string]uint16, len(t.offsets))
	for k, v := range t.offsets {
		m[k] = v
	}
	return m
}
