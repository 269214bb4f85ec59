package cpu

import "fmt"

// The 0xCB prefix page: rotates, shifts and single-bit operations over
// B, C, D, E, H, L, (HL), A. The page is shared by both variants except
// for row 0x30-0x37, which the LR35902 replaces with SWAP (the Z80 keeps
// the undocumented SLL there); the variants override that row.

var cbRotateOps = []struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC ", (*CPU).rotateLeftCarry},
	{"RRC ", (*CPU).rotateRightCarry},
	{"RL ", (*CPU).rotateLeft},
	{"RR ", (*CPU).rotateRight},
	{"SLA ", (*CPU).shiftLeftArithmetic},
	{"SRA ", (*CPU).shiftRightArithmetic},
	{"", nil}, // 0x30 row is variant specific
	{"SRL ", (*CPU).shiftRightLogical},
}

func init() {
	// rotates and shifts, 0x00 - 0x3F
	for j, op := range cbRotateOps {
		if op.fn == nil {
			continue
		}
		family := uint8(j)
		fn := op.fn
		for i := uint8(0); i < 8; i++ {
			index := i
			cycles := uint8(8)
			if index == 6 {
				cycles = 16
			}
			define(&commonInstructionsCB, family*8+index, op.name+registerNames[index], cycles, func(c *CPU) {
				c.writeDest(index, fn(c, c.readSource(index)))
			})
		}
	}

	// BIT, RES, SET, 0x40 - 0xFF
	for b := uint8(0); b < 8; b++ {
		bit := b
		for i := uint8(0); i < 8; i++ {
			index := i
			bitCycles := uint8(8)
			rmwCycles := uint8(8)
			if index == 6 {
				bitCycles = 12
				rmwCycles = 16
			}
			define(&commonInstructionsCB, 0x40+bit*8+index, fmt.Sprintf("BIT %d, %s", bit, registerNames[index]), bitCycles, func(c *CPU) {
				c.testBit(c.readSource(index), bit)
			})
			define(&commonInstructionsCB, 0x80+bit*8+index, fmt.Sprintf("RES %d, %s", bit, registerNames[index]), rmwCycles, func(c *CPU) {
				c.writeDest(index, c.resetBit(c.readSource(index), bit))
			})
			define(&commonInstructionsCB, 0xC0+bit*8+index, fmt.Sprintf("SET %d, %s", bit, registerNames[index]), rmwCycles, func(c *CPU) {
				c.writeDest(index, c.setBit(c.readSource(index), bit))
			})
		}
	}
}
