package main

import (
	"fmt"
	"log/slog"

	"chip8asm/pkg/asm"
	"chip8asm/pkg/sprite"
)

// sheet is an assembled program plus a cursor into its sprite data.
type sheet struct {
	image  []byte
	labels *asm.LabelTable
	label  string
	offset uint16
	rows   int
}

func loadSheet(source, file, label string, rows int, logger *slog.Logger) (*sheet, error) {
	res, err := asm.NewAssembler().WithFile(file).WithLogger(logger).Assemble(source)
	if err != nil {
		return nil, err
	}
	off, ok := res.Labels.Offset(label)
	if !ok {
		return nil, fmt.Errorf("label %q not found in %s", label, file)
	}
	s := &sheet{image: res.Image, labels: res.Labels, label: label, offset: off, rows: rows}
	if _, err := s.current(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sheet) current() (sprite.Sprite, error) {
	return sprite.Extract(s.image, s.offset, s.rows)
}

func (s *sheet) sprites(count int) ([]sprite.Sprite, error) {
	return sprite.ExtractSheet(s.image, s.offset, s.rows, count)
}

// step moves the cursor by whole sprites, staying inside the image.
func (s *sheet) step(n int) {
	next := int(s.offset) + n*s.rows
	if next < 0 || next+s.rows > len(s.image) {
		return
	}
	s.offset = uint16(next)
	s.label = ""
	for _, name := range s.labels.Names() {
		if off, _ := s.labels.Offset(name); off == s.offset {
			s.label = name
			break
		}
	}
}

func (s *sheet) caption() string {
	name := s.label
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s @ 0x%03X (%d rows)", name, 0x200+int(s.offset), s.rows)
}
