package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chip8asm/pkg/isa"
)

var _ = Describe("Mnemonic table", func() {
	It("should look up names case-insensitively", func() {
		Expect(isa.LookupMnemonic("ld")).To(Equal(isa.LD))
		Expect(isa.LookupMnemonic("Sknp")).To(Equal(isa.SKNP))
		Expect(isa.LookupMnemonic("CLS")).To(Equal(isa.CLS))
	})

	It("should return Invalid for unknown words", func() {
		Expect(isa.LookupMnemonic("mov")).To(Equal(isa.Invalid))
		Expect(isa.LookupMnemonic("")).To(Equal(isa.Invalid))
		Expect(isa.LookupMnemonic("db")).To(Equal(isa.Invalid))
	})

	It("should name every mnemonic", func() {
		for m := isa.NOP; m < isa.Invalid; m++ {
			Expect(isa.LookupMnemonic(m.String())).To(Equal(m))
		}
		Expect(isa.Invalid.String()).To(Equal("INVALID"))
	})
})

var _ = Describe("Register table", func() {
	DescribeTable("lookups",
		func(word string, want isa.Register) {
			Expect(isa.LookupRegister(word)).To(Equal(want))
		},
		Entry("v0", "v0", isa.V0),
		Entry("upper VF", "VF", isa.VF),
		Entry("alias v10", "v10", isa.VA),
		Entry("alias V15", "V15", isa.VF),
		Entry("I", "I", isa.I),
		Entry("indirect", "[i]", isa.IndirectI),
		Entry("DT", "dt", isa.DT),
		Entry("ST", "St", isa.ST),
		Entry("v16", "v16", isa.InvalidRegister),
		Entry("empty", "", isa.InvalidRegister),
		Entry("label", "loop", isa.InvalidRegister),
	)

	It("should only give nibbles for V registers", func() {
		n, err := isa.VC.Nibble()
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(uint16(0xC)))

		_, err = isa.DT.Nibble()
		Expect(err).To(MatchError(ContainSubstring("Vx register expected")))
	})

	It("should round trip nibbles", func() {
		for r := isa.V0; r <= isa.VF; r++ {
			n, err := r.Nibble()
			Expect(err).NotTo(HaveOccurred())
			Expect(isa.VRegister(n)).To(Equal(r))
		}
	})
})

var _ = Describe("Field packing", func() {
	It("should place fields in the documented nibbles", func() {
		Expect(isa.PackNNN(isa.OpJP, 0x200)).To(Equal(uint16(0x1200)))
		Expect(isa.PackXKK(isa.OpLDImm, 0x3, 0x12)).To(Equal(uint16(0x6312)))
		Expect(isa.PackXY(isa.OpSHL, 0xA, 0xB)).To(Equal(uint16(0x8ABE)))
		Expect(isa.PackXYN(isa.OpDRW, 0x1, 0x2, 0x5)).To(Equal(uint16(0xD125)))
		Expect(isa.PackX(isa.OpLDVxI, 0x4)).To(Equal(uint16(0xF465)))
	})

	It("should mask values that overflow their field", func() {
		Expect(isa.PackNNN(isa.OpLDI, 0x1300)).To(Equal(uint16(0xA300)))
	})

	It("should split words back into fields", func() {
		op, x, y, n, kk, nnn := isa.Fields(0xD125)
		Expect([]uint16{op, x, y, n, kk, nnn}).To(Equal([]uint16{0xD, 0x1, 0x2, 0x5, 0x25, 0x125}))
	})
})
