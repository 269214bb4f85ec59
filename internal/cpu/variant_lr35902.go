package cpu

// applyLR35902 overlays the opcodes that exist only on the LR35902, or
// whose meaning differs from the Z80's, onto the shared tables.
func (c *CPU) applyLR35902() {
	c.define(0x08, "LD (a16), SP", 20, func(c *CPU) {
		address := c.readOperand16()
		c.bus.Write16(address, c.SP)
	})
	c.define(0x10, "STOP", 4, func(c *CPU) {
		// STOP is a 2-byte opcode; the second byte is ignored
		c.PC++
		c.halted = true
	})

	// the post-increment/decrement HL loads
	c.define(0x22, "LD (HL+), A", 8, func(c *CPU) {
		c.load8(c.pointer(c.pair(c.HL)), c.reg(&c.A))
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	c.define(0x2A, "LD A, (HL+)", 8, func(c *CPU) {
		c.load8(c.reg(&c.A), c.pointer(c.pair(c.HL)))
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	c.define(0x32, "LD (HL-), A", 8, func(c *CPU) {
		c.load8(c.pointer(c.pair(c.HL)), c.reg(&c.A))
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	c.define(0x3A, "LD A, (HL-)", 8, func(c *CPU) {
		c.load8(c.reg(&c.A), c.pointer(c.pair(c.HL)))
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	c.define(0xD9, "RETI", 16, func(c *CPU) {
		c.ret(true)
		c.IFF1 = true
		c.IFF2 = true
	})

	// high-RAM loads
	c.define(0xE0, "LDH (a8), A", 12, func(c *CPU) {
		c.load8(c.high(c.imm8()), c.reg(&c.A))
	})
	c.define(0xF0, "LDH A, (a8)", 12, func(c *CPU) {
		c.load8(c.reg(&c.A), c.high(c.imm8()))
	})
	c.define(0xE2, "LD (C), A", 8, func(c *CPU) {
		c.load8(c.high(c.reg(&c.C)), c.reg(&c.A))
	})
	c.define(0xF2, "LD A, (C)", 8, func(c *CPU) {
		c.load8(c.reg(&c.A), c.high(c.reg(&c.C)))
	})

	// direct accumulator loads
	c.define(0xEA, "LD (a16), A", 16, func(c *CPU) {
		c.load8(c.direct(c.readOperand16()), c.reg(&c.A))
	})
	c.define(0xFA, "LD A, (a16)", 16, func(c *CPU) {
		c.load8(c.reg(&c.A), c.direct(c.readOperand16()))
	})

	// stack-pointer arithmetic with the low-byte carry chain
	c.define(0xE8, "ADD SP, r8", 16, func(c *CPU) {
		c.SP = c.addSPSigned()
	})
	c.define(0xF8, "LD HL, SP+r8", 12, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	})

	// SWAP replaces the Z80's undocumented SLL row
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(8)
		if index == 6 {
			cycles = 16
		}
		c.defineCB(0x30+index, "SWAP "+registerNames[index], cycles, func(c *CPU) {
			c.writeDest(index, c.swap(c.readSource(index)))
		})
	}
}

// define overlays an instruction on this CPU's base table.
func (c *CPU) define(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	c.instructions[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}

// defineCB overlays an instruction on this CPU's 0xCB page.
func (c *CPU) defineCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	c.instructionsCB[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}

// defineED overlays an instruction on this CPU's 0xED page.
func (c *CPU) defineED(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	c.instructionsED[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}
