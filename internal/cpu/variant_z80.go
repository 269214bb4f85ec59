package cpu

// applyZ80 overlays the opcodes that exist only on the Z80, or whose
// meaning differs from the LR35902's, onto the shared tables. The IX/IY
// (0xDD/0xFD) prefix pages and the I/O instructions are outside this
// core's scope; fetching one is a decode error.
func (c *CPU) applyZ80() {
	c.define(0x08, "EX AF, AF'", 4, func(c *CPU) {
		c.exchangeAF()
	})
	c.define(0x10, "DJNZ d", 8, func(c *CPU) {
		c.B--
		c.jumpRelative(c.B != 0)
	})

	// 16-bit direct loads
	c.define(0x22, "LD (a16), HL", 16, func(c *CPU) {
		c.bus.Write16(c.readOperand16(), c.HL.Uint16())
	})
	c.define(0x2A, "LD HL, (a16)", 16, func(c *CPU) {
		c.HL.SetUint16(c.bus.Read16(c.readOperand16()))
	})
	c.define(0x32, "LD (a16), A", 13, func(c *CPU) {
		c.load8(c.direct(c.readOperand16()), c.reg(&c.A))
	})
	c.define(0x3A, "LD A, (a16)", 13, func(c *CPU) {
		c.load8(c.reg(&c.A), c.direct(c.readOperand16()))
	})

	c.define(0xD9, "EXX", 4, func(c *CPU) {
		c.exchangeAll()
	})
	c.define(0xE3, "EX (SP), HL", 19, func(c *CPU) {
		hl := c.HL.Uint16()
		c.HL.SetUint16(c.bus.Read16(c.SP))
		c.bus.Write16(c.SP, hl)
	})
	c.define(0xEB, "EX DE, HL", 4, func(c *CPU) {
		de := c.DE.Uint16()
		c.DE.SetUint16(c.HL.Uint16())
		c.HL.SetUint16(de)
	})

	// conditional flow on the parity and sign flags
	c.define(0xE0, "RET PO", 8, func(c *CPU) {
		c.retConditional(!c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xE8, "RET PE", 8, func(c *CPU) {
		c.retConditional(c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xF0, "RET P", 8, func(c *CPU) {
		c.retConditional(!c.isFlagSet(c.flags.sign))
	})
	c.define(0xF8, "RET M", 8, func(c *CPU) {
		c.retConditional(c.isFlagSet(c.flags.sign))
	})
	c.define(0xE2, "JP PO, a16", 12, func(c *CPU) {
		c.jumpAbsolute(!c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xEA, "JP PE, a16", 12, func(c *CPU) {
		c.jumpAbsolute(c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xF2, "JP P, a16", 12, func(c *CPU) {
		c.jumpAbsolute(!c.isFlagSet(c.flags.sign))
	})
	c.define(0xFA, "JP M, a16", 12, func(c *CPU) {
		c.jumpAbsolute(c.isFlagSet(c.flags.sign))
	})
	c.define(0xE4, "CALL PO, a16", 12, func(c *CPU) {
		c.call(!c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xEC, "CALL PE, a16", 12, func(c *CPU) {
		c.call(c.isFlagSet(c.flags.parityOverflow))
	})
	c.define(0xF4, "CALL P, a16", 12, func(c *CPU) {
		c.call(!c.isFlagSet(c.flags.sign))
	})
	c.define(0xFC, "CALL M, a16", 12, func(c *CPU) {
		c.call(c.isFlagSet(c.flags.sign))
	})

	// SLL keeps the Z80's undocumented CB row
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(8)
		if index == 6 {
			cycles = 16
		}
		c.defineCB(0x30+index, "SLL "+registerNames[index], cycles, func(c *CPU) {
			c.writeDest(index, c.shiftLeftLogical(c.readSource(index)))
		})
	}

	// 0xED page
	c.defineED(0x45, "RETN", 14, func(c *CPU) {
		c.ret(true)
		c.IFF1 = c.IFF2
	})
	c.defineED(0x4D, "RETI", 14, func(c *CPU) {
		c.ret(true)
		c.IFF1 = c.IFF2
	})
	c.defineED(0x47, "LD I, A", 9, func(c *CPU) {
		c.I = c.A
	})
	c.defineED(0x4F, "LD R, A", 9, func(c *CPU) {
		c.R = c.A
	})
	c.defineED(0x57, "LD A, I", 9, func(c *CPU) {
		c.A = c.I
		c.setFlags(c.A == 0, false, false, c.isFlagSet(c.flags.carry))
		c.setSign(c.A)
		c.setParityOverflow(c.IFF2)
	})
	c.defineED(0x5F, "LD A, R", 9, func(c *CPU) {
		c.A = c.R
		c.setFlags(c.A == 0, false, false, c.isFlagSet(c.flags.carry))
		c.setSign(c.A)
		c.setParityOverflow(c.IFF2)
	})
	c.defineED(0xA0, "LDI", 16, func(c *CPU) {
		c.blockMove(1)
	})
	c.defineED(0xA8, "LDD", 16, func(c *CPU) {
		c.blockMove(-1)
	})
}

// blockMove copies (HL) to (DE), steps HL and DE by delta and decrements
// BC.
//
//	LDI / LDD
//
// Flags affected:
//
//	H - Reset.
//	P/V - Set if BC is non-zero after the decrement.
//	N - Reset.
//	S, Z, C - Not affected.
func (c *CPU) blockMove(delta int8) {
	c.bus.Write8(c.DE.Uint16(), c.bus.Read8(c.HL.Uint16()))
	c.HL.SetUint16(uint16(int32(c.HL.Uint16()) + int32(delta)))
	c.DE.SetUint16(uint16(int32(c.DE.Uint16()) + int32(delta)))
	c.BC.SetUint16(c.BC.Uint16() - 1)

	c.setFlag(c.flags.halfCarry, false)
	c.setFlag(c.flags.subtract, false)
	c.setParityOverflow(c.BC.Uint16() != 0)
}
