package cpu

import (
	"github.com/thelolagemann/go-z80/pkg/utils"
)

// testBit tests bit b of n.
//
//	BIT b, n
//	b = 0-7
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
//	S, P/V (Z80) - Set if b is 7 and the bit is set; copy of Z.
func (c *CPU) testBit(n uint8, b uint8) {
	zero := !utils.TestBit(n, b)
	c.setFlags(zero, false, true, c.isFlagSet(c.flags.carry))
	c.setSign(n & (1 << b) & 0x80)
	c.setParityOverflow(zero)
}

// resetBit clears bit b of n. No flags are affected.
//
//	RES b, n
func (c *CPU) resetBit(n uint8, b uint8) uint8 {
	return utils.ClearBit(n, b)
}

// setBit sets bit b of n. No flags are affected.
//
//	SET b, n
func (c *CPU) setBit(n uint8, b uint8) uint8 {
	return utils.SetBit(n, b)
}
