package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chip8asm/pkg/asm"
	"chip8asm/pkg/sprite"
)

// scoreProgram draws a paddle and a BCD score, waits on the delay timer
// and reads a key. It touches every operand kind the assembler knows.
const scoreProgram = `
%define SCORE   V5
%define PADDLE_X V6
%define PADDLE_Y V7
%define FRAMES  3

start:
    CLS
    LD SCORE, 0
    LD PADDLE_X, 28
    LD PADDLE_Y, 26
frame:
    CALL draw_paddle
    CALL draw_score
    LD V0, FRAMES
    LD DT, V0
wait:
    LD V0, DT
    SE V0, 0
    JP wait
    LD V0, K            ; block for a key
    SNE V0, 0xF
    JP start
    ADD SCORE, 1
    JP frame

draw_paddle:
    LD I, paddle
    DRW PADDLE_X, PADDLE_Y, 4
    RET

draw_score:
    LD I, digits
    LD B, SCORE
    LD V2, [I]
    LD F, V0
    LD V3, 0
    DRW V3, V3, 5
    RET

paddle: db 0b11111111, 0b10000001, 0b10000001, 0b11111111
digits: db 0, 0, 0, 0
message: db "GO!", 0
`

func TestAssembleScoreProgram(t *testing.T) {
	res, err := asm.NewAssembler().WithFile("score.asm").Assemble(scoreProgram)
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}

	wantLabels := map[string]uint16{
		"start":       0x00,
		"frame":       0x08,
		"wait":        0x10,
		"draw_paddle": 0x20,
		"draw_score":  0x26,
		"paddle":      0x34,
		"digits":      0x38,
		"message":     0x3C,
	}
	if diff := cmp.Diff(wantLabels, res.Labels.Map()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	var got []string
	for off := 0; off < int(wantLabels["paddle"]); off += 2 {
		op, err := asm.Decode(uint16(res.Image[off])<<8 | uint16(res.Image[off+1]))
		if err != nil {
			t.Fatalf("Decode at 0x%X: %v", off, err)
		}
		got = append(got, op.String())
	}
	want := []string{
		"CLS",
		"LD V5, 0x0",
		"LD V6, 0x1C",
		"LD V7, 0x1A",
		"CALL 0x220",
		"CALL 0x226",
		"LD V0, 0x3",
		"LD DT, V0",
		"LD V0, DT",
		"SE V0, 0x0",
		"JP 0x210",
		"LD V0, K",
		"SNE V0, 0xF",
		"JP 0x200",
		"ADD V5, 0x1",
		"JP 0x208",
		"LD I, 0x234",
		"DRW V6, V7, 0x4",
		"RET",
		"LD I, 0x238",
		"LD B, V5",
		"LD V2, [I]",
		"LD F, V0",
		"LD V3, 0x0",
		"DRW V3, V3, 0x5",
		"RET",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disassembly mismatch (-want +got):\n%s", diff)
	}

	tail := res.Image[wantLabels["message"]:]
	if diff := cmp.Diff([]byte("GO!\x00"), tail); diff != "" {
		t.Errorf("message bytes mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestScoreProgramSprite(t *testing.T) {
	res, err := asm.NewAssembler().Assemble(scoreProgram)
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	off, _ := res.Labels.Offset("paddle")
	s, err := sprite.Extract(res.Image, off, 4)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := strings.Join([]string{"########", "#......#", "#......#", "########"}, "\n") + "\n"
	if s.String() != want {
		t.Errorf("paddle sprite =\n%s", s)
	}
}

func TestScoreProgramListing(t *testing.T) {
	res, err := asm.NewAssembler().WithFile("score.asm").Assemble(scoreProgram)
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	listing := asm.Listing(res, scoreProgram)
	for _, want := range []string{"draw_paddle", "DRW V6, V7, 0x4", "LD V0, K", "; block for a key"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing is missing %q", want)
		}
	}
}
