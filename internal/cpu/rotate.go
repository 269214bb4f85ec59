package cpu

// The accumulator rotates (RLCA, RLA, RRCA, RRA) and the CB-page
// rotates/shifts share bit movement but not flag behavior: on the
// LR35902 the accumulator forms reset Z, while the Z80 preserves S, Z
// and P/V; the CB page sets the full result flags on both variants.

// rotateFlagsA sets the flags for the accumulator rotates.
func (c *CPU) rotateFlagsA(carry bool) {
	if c.variant == Z80 {
		// S, Z and P/V are preserved
		c.setFlag(c.flags.subtract, false)
		c.setFlag(c.flags.halfCarry, false)
		c.setFlag(c.flags.carry, carry)
		return
	}
	c.setFlags(false, false, false, carry)
}

// rotateFlags sets the flags for the CB-page rotates and shifts.
func (c *CPU) rotateFlags(result uint8, carry bool) {
	c.setFlags(result == 0, false, false, carry)
	c.setSign(result)
	c.setParityOverflow(parity(result))
}

// rotateLeftCarryAccumulator rotates A left, bit 7 into both carry and
// bit 0.
//
//	RLCA
func (c *CPU) rotateLeftCarryAccumulator() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.rotateFlagsA(carry)
}

// rotateLeftAccumulator rotates A left through the carry flag.
//
//	RLA
func (c *CPU) rotateLeftAccumulator() {
	carry := c.A&0x80 != 0
	c.A <<= 1
	if c.isFlagSet(c.flags.carry) {
		c.A |= 0x01
	}
	c.rotateFlagsA(carry)
}

// rotateRightCarryAccumulator rotates A right, bit 0 into both carry and
// bit 7.
//
//	RRCA
func (c *CPU) rotateRightCarryAccumulator() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.rotateFlagsA(carry)
}

// rotateRightAccumulator rotates A right through the carry flag.
//
//	RRA
func (c *CPU) rotateRightAccumulator() {
	carry := c.A&0x01 != 0
	c.A >>= 1
	if c.isFlagSet(c.flags.carry) {
		c.A |= 0x80
	}
	c.rotateFlagsA(carry)
}

// rotateLeftCarry rotates n left, bit 7 into both carry and bit 0.
//
//	RLC n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	rotated := n<<1 | n>>7
	c.rotateFlags(rotated, n&0x80 != 0)
	return rotated
}

// rotateRightCarry rotates n right, bit 0 into both carry and bit 7.
//
//	RRC n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	rotated := n>>1 | n<<7
	c.rotateFlags(rotated, n&0x01 != 0)
	return rotated
}

// rotateLeft rotates n left through the carry flag.
//
//	RL n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) rotateLeft(n uint8) uint8 {
	rotated := n << 1
	if c.isFlagSet(c.flags.carry) {
		rotated |= 0x01
	}
	c.rotateFlags(rotated, n&0x80 != 0)
	return rotated
}

// rotateRight rotates n right through the carry flag.
//
//	RR n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) rotateRight(n uint8) uint8 {
	rotated := n >> 1
	if c.isFlagSet(c.flags.carry) {
		rotated |= 0x80
	}
	c.rotateFlags(rotated, n&0x01 != 0)
	return rotated
}

// shiftLeftArithmetic shifts n left, bit 7 into carry, bit 0 cleared.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	shifted := n << 1
	c.rotateFlags(shifted, n&0x80 != 0)
	return shifted
}

// shiftRightArithmetic shifts n right, bit 0 into carry, bit 7
// preserved.
//
//	SRA n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	shifted := n>>1 | n&0x80
	c.rotateFlags(shifted, n&0x01 != 0)
	return shifted
}

// shiftRightLogical shifts n right, bit 0 into carry, bit 7 cleared.
//
//	SRL n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	shifted := n >> 1
	c.rotateFlags(shifted, n&0x01 != 0)
	return shifted
}

// shiftLeftLogical shifts n left, bit 7 into carry, bit 0 set. The
// undocumented Z80 SLL; the LR35902 replaces this CB row with SWAP.
//
//	SLL n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) shiftLeftLogical(n uint8) uint8 {
	shifted := n<<1 | 0x01
	c.rotateFlags(shifted, n&0x80 != 0)
	return shifted
}

// swap exchanges the upper and lower nibbles of n. LR35902 only.
//
//	SWAP n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	swapped := n<<4 | n>>4
	c.setFlags(swapped == 0, false, false, false)
	return swapped
}
