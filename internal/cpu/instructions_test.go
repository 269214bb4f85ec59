package cpu

import "testing"

func TestLoadRegisterThenCopy(t *testing.T) {
	for _, variant := range []Variant{Z80, LR35902} {
		c := testCPU(t, variant)
		loadProgram(c, 0x06, 0x42, 0x78) // LD B, 0x42; LD A, B
		c.Step()
		c.Step()

		if c.B != 0x42 {
			t.Errorf("expected B to be 42, got %02X", c.B)
		}
		if c.A != 0x42 {
			t.Errorf("expected A to be 42, got %02X", c.A)
		}
		if c.PC != 0x0103 {
			t.Errorf("expected PC to advance by 3, got %04X", c.PC)
		}
	}
}

func TestDecrement_NoBorrow(t *testing.T) {
	c := testCPU(t, LR35902)
	c.B = 0x01
	loadProgram(c, 0x05) // DEC B
	c.Step()

	if c.B != 0x00 {
		t.Errorf("expected B to be 00, got %02X", c.B)
	}
	if !c.FlagZero() {
		t.Errorf("expected Z to be set")
	}
	if !c.FlagSubtract() {
		t.Errorf("expected N to be set")
	}
	if c.FlagHalfCarry() {
		t.Errorf("expected H to be clear, low nibble was 1")
	}
}

func TestDecrement_BorrowFromBit4(t *testing.T) {
	c := testCPU(t, LR35902)
	c.B = 0x10
	loadProgram(c, 0x05) // DEC B
	c.Step()

	if c.B != 0x0F {
		t.Errorf("expected B to be 0F, got %02X", c.B)
	}
	if c.FlagZero() {
		t.Errorf("expected Z to be clear")
	}
	if !c.FlagSubtract() {
		t.Errorf("expected N to be set")
	}
	if !c.FlagHalfCarry() {
		t.Errorf("expected H to be set on borrow from bit 4")
	}
}

func TestDecrement_CarryUntouched(t *testing.T) {
	c := testCPU(t, LR35902)
	c.setFlag(c.flags.carry, true)
	c.B = 0x42
	loadProgram(c, 0x05) // DEC B
	c.Step()

	if !c.FlagCarry() {
		t.Errorf("expected C to be untouched by DEC")
	}
}

func TestDecrement_Z80Overflow(t *testing.T) {
	c := testCPU(t, Z80)
	c.B = 0x80
	loadProgram(c, 0x05) // DEC B
	c.Step()

	if !c.FlagParityOverflow() {
		t.Errorf("expected P/V to be set when decrementing 0x80")
	}
	if c.FlagSign() {
		t.Errorf("expected S to be clear, result is 0x7F")
	}
}

func TestIncrement_Z80Overflow(t *testing.T) {
	c := testCPU(t, Z80)
	c.B = 0x7F
	loadProgram(c, 0x04) // INC B
	c.Step()

	if !c.FlagParityOverflow() {
		t.Errorf("expected P/V to be set when incrementing 0x7F")
	}
	if !c.FlagSign() {
		t.Errorf("expected S to be set, result is 0x80")
	}
	if !c.FlagHalfCarry() {
		t.Errorf("expected H to be set, carry from bit 3")
	}
}

func TestLoadHLIncrement(t *testing.T) {
	c := testCPU(t, LR35902)
	c.HL.SetUint16(0xC000)
	c.A = 0x77
	loadProgram(c, 0x22) // LD (HL+), A
	c.Step()

	if c.bus.Read8(0xC000) != 0x77 {
		t.Errorf("expected 77 at C000, got %02X", c.bus.Read8(0xC000))
	}
	if c.HL.Uint16() != 0xC001 {
		t.Errorf("expected HL to be C001, got %04X", c.HL.Uint16())
	}
}

func TestLoadHLDecrement(t *testing.T) {
	c := testCPU(t, LR35902)
	c.HL.SetUint16(0xC005)
	loadProgram(c, 0x3A) // LD A, (HL-)
	c.bus.Write8(0xC005, 0x99)
	c.Step()

	if c.A != 0x99 {
		t.Errorf("expected A to be 99, got %02X", c.A)
	}
	if c.HL.Uint16() != 0xC004 {
		t.Errorf("expected HL to be C004, got %04X", c.HL.Uint16())
	}
}

func TestLDH(t *testing.T) {
	c := testCPU(t, LR35902)
	c.A = 0x5A
	loadProgram(c, 0xE0, 0x80, 0xF0, 0x80) // LDH (0x80), A; LDH A, (0x80)
	c.Step()

	if c.bus.Read8(0xFF80) != 0x5A {
		t.Errorf("expected 5A at FF80, got %02X", c.bus.Read8(0xFF80))
	}

	c.A = 0
	c.Step()
	if c.A != 0x5A {
		t.Errorf("expected LDH to read back 5A, got %02X", c.A)
	}
}

func TestLDAC(t *testing.T) {
	c := testCPU(t, LR35902)
	c.C = 0x81
	c.A = 0x33
	loadProgram(c, 0xE2, 0xF2) // LD (C), A; LD A, (C)
	c.Step()

	if c.bus.Read8(0xFF81) != 0x33 {
		t.Errorf("expected 33 at FF81, got %02X", c.bus.Read8(0xFF81))
	}

	c.A = 0
	c.Step()
	if c.A != 0x33 {
		t.Errorf("expected A to be 33, got %02X", c.A)
	}
}

func TestAddSPSigned(t *testing.T) {
	c := testCPU(t, LR35902)
	c.SP = 0xFFF8
	loadProgram(c, 0xE8, 0x08) // ADD SP, +8
	c.Step()

	if c.SP != 0x0000 {
		t.Errorf("expected SP to be 0000, got %04X", c.SP)
	}
	if c.FlagZero() || c.FlagSubtract() {
		t.Errorf("expected Z and N to be reset")
	}
	// the carry chain derives from the low byte only: F8 + 08
	if !c.FlagHalfCarry() {
		t.Errorf("expected H from the low-byte add")
	}
	if !c.FlagCarry() {
		t.Errorf("expected C from the low-byte add")
	}
}

func TestLoadHLSPOffset(t *testing.T) {
	c := testCPU(t, LR35902)
	c.SP = 0xC000
	loadProgram(c, 0xF8, 0xFE) // LD HL, SP-2
	c.Step()

	if c.HL.Uint16() != 0xBFFE {
		t.Errorf("expected HL to be BFFE, got %04X", c.HL.Uint16())
	}
	if c.FlagZero() {
		t.Errorf("expected Z to be reset")
	}
	// low byte of SP is 00: 00 + FE carries nothing
	if c.FlagHalfCarry() || c.FlagCarry() {
		t.Errorf("expected H and C to be clear")
	}
}

func TestSwap_LR35902(t *testing.T) {
	c := testCPU(t, LR35902)
	c.A = 0xF1
	loadProgram(c, 0xCB, 0x37) // SWAP A
	c.Step()

	if c.A != 0x1F {
		t.Errorf("expected A to be 1F, got %02X", c.A)
	}
	if c.FlagZero() || c.FlagSubtract() || c.FlagHalfCarry() || c.FlagCarry() {
		t.Errorf("expected all flags clear, F=%02X", c.F)
	}
}

func TestSLL_Z80(t *testing.T) {
	c := testCPU(t, Z80)
	c.A = 0x80
	loadProgram(c, 0xCB, 0x37) // SLL A
	c.Step()

	if c.A != 0x01 {
		t.Errorf("expected A to be 01, got %02X", c.A)
	}
	if !c.FlagCarry() {
		t.Errorf("expected C from bit 7")
	}
}

func TestBlockMove_LDI(t *testing.T) {
	c := testCPU(t, Z80)
	c.HL.SetUint16(0xC000)
	c.DE.SetUint16(0xC100)
	c.BC.SetUint16(0x0002)
	c.bus.Write8(0xC000, 0xAB)
	loadProgram(c, 0xED, 0xA0) // LDI
	c.Step()

	if c.bus.Read8(0xC100) != 0xAB {
		t.Errorf("expected AB at C100, got %02X", c.bus.Read8(0xC100))
	}
	if c.HL.Uint16() != 0xC001 || c.DE.Uint16() != 0xC101 {
		t.Errorf("expected HL and DE to advance, HL=%04X DE=%04X", c.HL.Uint16(), c.DE.Uint16())
	}
	if c.BC.Uint16() != 0x0001 {
		t.Errorf("expected BC to be 0001, got %04X", c.BC.Uint16())
	}
	if !c.FlagParityOverflow() {
		t.Errorf("expected P/V set while BC is non-zero")
	}
	if c.FlagSubtract() || c.FlagHalfCarry() {
		t.Errorf("expected N and H to be reset")
	}

	// draining BC clears P/V
	loadProgram(c, 0xED, 0xA0)
	c.Step()
	if c.FlagParityOverflow() {
		t.Errorf("expected P/V clear once BC reaches zero")
	}
}

func TestExchange_Z80(t *testing.T) {
	c := testCPU(t, Z80)
	c.A = 0x11
	c.setF(0x22)
	c.shadow.A = 0x33
	c.shadow.F = 0x44
	loadProgram(c, 0x08) // EX AF, AF'
	c.Step()

	if c.A != 0x33 || c.F != 0x44 {
		t.Errorf("expected AF to swap with the shadow set, A=%02X F=%02X", c.A, c.F)
	}
	if c.shadow.A != 0x11 || c.shadow.F != 0x22 {
		t.Errorf("expected the shadow set to hold the old AF")
	}

	c.BC.SetUint16(0x1234)
	c.shadow.B, c.shadow.C = 0xAB, 0xCD
	loadProgram(c, 0xD9) // EXX
	c.Step()
	if c.BC.Uint16() != 0xABCD {
		t.Errorf("expected BC to swap, got %04X", c.BC.Uint16())
	}
}

func TestLoadSPVariants_LR35902(t *testing.T) {
	c := testCPU(t, LR35902)
	c.SP = 0xBEEF
	loadProgram(c, 0x08, 0x00, 0xC0) // LD (0xC000), SP
	c.Step()

	if c.bus.Read16(0xC000) != 0xBEEF {
		t.Errorf("expected BEEF at C000, got %04X", c.bus.Read16(0xC000))
	}
}

func TestDJNZ_Z80(t *testing.T) {
	c := testCPU(t, Z80)
	c.B = 0x03
	// DJNZ -2 spins on itself until B reaches zero
	loadProgram(c, 0x10, 0xFE)
	for i := 0; i < 2; i++ {
		c.Step()
		if c.PC != 0x0100 {
			t.Fatalf("expected DJNZ to loop, PC=%04X", c.PC)
		}
	}
	c.Step()
	if c.PC != 0x0102 {
		t.Errorf("expected DJNZ to fall through at B=0, PC=%04X", c.PC)
	}
}

func TestConditionalJump(t *testing.T) {
	c := testCPU(t, LR35902)
	loadProgram(c, 0x20, 0x05) // JR NZ, +5
	c.setFlag(c.flags.zero, true)
	if cycles := c.Step(); cycles != 8 {
		t.Errorf("expected untaken JR to cost 8 cycles, got %d", cycles)
	}
	if c.PC != 0x0102 {
		t.Errorf("expected fall-through, PC=%04X", c.PC)
	}

	loadProgram(c, 0x20, 0x05)
	c.setFlag(c.flags.zero, false)
	if cycles := c.Step(); cycles != 12 {
		t.Errorf("expected taken JR to cost 12 cycles, got %d", cycles)
	}
	if c.PC != 0x0107 {
		t.Errorf("expected jump to 0107, PC=%04X", c.PC)
	}
}

func TestRETI_LR35902(t *testing.T) {
	c := testCPU(t, LR35902)
	c.SP = 0xFFF0
	c.bus.Write16(c.SP, 0x1234)
	loadProgram(c, 0xD9) // RETI
	c.Step()

	if c.PC != 0x1234 {
		t.Errorf("expected PC to be 1234, got %04X", c.PC)
	}
	if !c.InterruptsEnabled() {
		t.Errorf("expected RETI to enable interrupts")
	}
}

func TestPushPop(t *testing.T) {
	c := testCPU(t, Z80)
	c.SP = 0xFFFE
	c.DE.SetUint16(0xCAFE)
	loadProgram(c, 0xD5, 0xE1) // PUSH DE; POP HL
	c.Step()
	c.Step()

	if c.HL.Uint16() != 0xCAFE {
		t.Errorf("expected HL to be CAFE, got %04X", c.HL.Uint16())
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP to balance, got %04X", c.SP)
	}
}
