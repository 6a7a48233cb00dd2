package asm

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"chip8asm/pkg/isa"
)

// Listing renders one row per statement: address, emitted bytes, labels,
// the decoded statement and the source text it came from.
func Listing(res *Result, source string) string {
	lines := splitLines(source)
	byOffset := make(map[uint16][]string)
	for _, name := range res.Labels.Names() {
		off, _ := res.Labels.Offset(name)
		byOffset[off] = append(byOffset[off], name)
	}

	t := table.NewWriter()
	t.SetTitle("Listing: " + res.Program.File)
	t.AppendHeader(table.Row{"Line", "Address", "Bytes", "Label", "Statement", "Source"})

	offset := 0
	for _, inst := range res.Program.Instructions {
		size := inst.Size()
		end := offset + size
		if end > len(res.Image) {
			end = len(res.Image)
		}
		raw := res.Image[offset:end]

		statement := fmt.Sprint(inst)
		if _, ok := inst.(*Opcode); ok && len(raw) == 2 {
			if dec, err := Decode(uint16(raw[0])<<8 | uint16(raw[1])); err == nil {
				statement = dec.String()
			}
		}

		text := ""
		if line := inst.SourceLine(); line > 0 && line <= len(lines) {
			text = strings.TrimSpace(lines[line-1])
		}

		t.AppendRow(table.Row{
			inst.SourceLine(),
			fmt.Sprintf("0x%03X", int(isa.LoadBase)+offset),
			hexBytes(raw),
			strings.Join(byOffset[uint16(offset)], ", "),
			statement,
			text,
		})
		offset += size
	}
	return t.Render()
}

// SymbolTable renders the label table ordered by offset.
func SymbolTable(labels *LabelTable) string {
	t := table.NewWriter()
	t.SetTitle("Symbols")
	t.AppendHeader(table.Row{"Label", "Offset", "Address"})
	for _, name := range labels.Names() {
		off, _ := labels.Offset(name)
		t.AppendRow(table.Row{name, fmt.Sprintf("0x%04X", off), fmt.Sprintf("0x%04X", int(isa.LoadBase)+int(off))})
	}
	t.AppendFooter(table.Row{"", "Total", labels.Len()})
	return t.Render()
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	if len(parts) > 8 {
		parts = append(parts[:8], "...")
	}
	return strings.Join(parts, " ")
}
