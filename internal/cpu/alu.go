package cpu

import (
	"math/bits"

	"github.com/thelolagemann/go-z80/internal/types"
)

// parity returns true when the value has an even number of set bits.
func parity(value uint8) bool {
	return bits.OnesCount8(value)%2 == 0
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
//	S, P/V (Z80) - Sign of result; set if operand was 0x7F.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0xF == 0xF, c.isFlagSet(c.flags.carry))
	c.setSign(incremented)
	c.setParityOverflow(n == 0x7F)
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
//	S, P/V (Z80) - Sign of result; set if operand was 0x80.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0xF == 0x0, c.isFlagSet(c.flags.carry))
	c.setSign(decremented)
	c.setParityOverflow(n == 0x80)
	return decremented
}

// incrementNN increments the given RegisterPair by 1. No flags are
// affected.
func (c *CPU) incrementNN(register *types.RegisterPair) {
	register.SetUint16(register.Uint16() + 1)
}

// decrementNN decrements the given RegisterPair by 1. No flags are
// affected.
func (c *CPU) decrementNN(register *types.RegisterPair) {
	register.SetUint16(register.Uint16() - 1)
}

// add n (plus the carry flag when shouldCarry) to the A register.
//
//	ADD A, n / ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
//	S, P/V (Z80) - Sign of result; signed overflow.
func (c *CPU) add(n uint8, shouldCarry bool) {
	a := c.A
	carry := int16(0)
	if shouldCarry && c.isFlagSet(c.flags.carry) {
		carry = 1
	}
	sum := int16(a) + int16(n) + carry
	sumHalf := int16(a&0xF) + int16(n&0xF) + carry
	result := uint8(sum)

	c.setFlags(result == 0, false, sumHalf > 0xF, sum > 0xFF)
	c.setSign(result)
	c.setParityOverflow((a^n)&0x80 == 0 && (a^result)&0x80 != 0)
	c.A = result
}

// sub subtracts n (plus the carry flag when shouldCarry) from the A
// register.
//
//	SUB n / SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
//	S, P/V (Z80) - Sign of result; signed overflow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	a := c.A
	carry := int16(0)
	if shouldCarry && c.isFlagSet(c.flags.carry) {
		carry = 1
	}
	diff := int16(a) - int16(n) - carry
	diffHalf := int16(a&0xF) - int16(n&0xF) - carry
	result := uint8(diff)

	c.setFlags(result == 0, true, diffHalf < 0, diff < 0)
	c.setSign(result)
	c.setParityOverflow((a^n)&0x80 != 0 && (a^result)&0x80 != 0)
	c.A = result
}

// compare compares n to the A register. A is unchanged; the flags are
// set as SUB n would.
func (c *CPU) compare(n uint8) {
	a := c.A
	c.sub(n, false)
	c.A = a
}

// and performs a bitwise AND operation on n and the A register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
//	S, P/V (Z80) - Sign of result; parity.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
	c.setSign(c.A)
	c.setParityOverflow(parity(c.A))
}

// or performs a bitwise OR operation on n and the A register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
//	S, P/V (Z80) - Sign of result; parity.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
	c.setSign(c.A)
	c.setParityOverflow(parity(c.A))
}

// xor performs a bitwise XOR operation on n and the A register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
//	S, P/V (Z80) - Sign of result; parity.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
	c.setSign(c.A)
	c.setParityOverflow(parity(c.A))
}

// addHLRR adds the given RegisterPair to the HL RegisterPair.
//
//	ADD HL, rr
//	rr = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(value uint16) {
	hl := c.HL.Uint16()
	sum := int32(hl) + int32(value)
	c.setFlags(
		c.isFlagSet(c.flags.zero),
		false,
		(hl&0xFFF)+(value&0xFFF) > 0xFFF,
		sum > 0xFFFF,
	)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned adds a signed immediate byte to SP and returns the result.
// Used by ADD SP, n and LD HL, SP+n on the LR35902.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the low-byte add.
//	C - Set if carry from bit 7 of the low-byte add.
//
// H and C derive from the unsigned 8-bit add of SP's low byte and the
// raw operand byte, not the full 16-bit sum.
func (c *CPU) addSPSigned() uint16 {
	n := c.readOperand()
	result := uint16(int32(c.SP) + int32(int8(n)))
	c.setFlags(
		false,
		false,
		(c.SP&0xF)+(uint16(n)&0xF) > 0xF,
		(c.SP&0xFF)+uint16(n) > 0xFF,
	)
	return result
}

// daa decimal-adjusts the A register after BCD arithmetic.
//
// The two variants implement different algorithms: the LR35902 adjusts
// from the N, H and C flags and the value of A and always leaves H
// clear, while the Z80 derives H, S and parity from the result.
func (c *CPU) daa() {
	switch c.variant {
	case LR35902:
		if !c.isFlagSet(c.flags.subtract) {
			if c.isFlagSet(c.flags.carry) || c.A > 0x99 {
				c.A += 0x60
				c.setFlag(c.flags.carry, true)
			}
			if c.isFlagSet(c.flags.halfCarry) || c.A&0xF > 0x9 {
				c.A += 0x06
				c.setFlag(c.flags.halfCarry, false)
			}
		} else if c.isFlagSet(c.flags.carry) && c.isFlagSet(c.flags.halfCarry) {
			c.A += 0x9a
			c.setFlag(c.flags.halfCarry, false)
		} else if c.isFlagSet(c.flags.carry) {
			c.A += 0xa0
		} else if c.isFlagSet(c.flags.halfCarry) {
			c.A += 0xfa
			c.setFlag(c.flags.halfCarry, false)
		}
		c.setFlag(c.flags.zero, c.A == 0)
	case Z80:
		correction := uint8(0)
		carry := c.isFlagSet(c.flags.carry)
		if c.isFlagSet(c.flags.halfCarry) || c.A&0xF > 0x9 {
			correction |= 0x06
		}
		if carry || c.A > 0x99 {
			correction |= 0x60
			carry = true
		}
		old := c.A
		if c.isFlagSet(c.flags.subtract) {
			c.A -= correction
		} else {
			c.A += correction
		}
		c.setFlag(c.flags.zero, c.A == 0)
		c.setFlag(c.flags.halfCarry, (old^c.A)&0x10 != 0)
		c.setFlag(c.flags.carry, carry)
		c.setSign(c.A)
		c.setParityOverflow(parity(c.A))
	}
}

// complementA inverts the A register.
//
//	CPL
//
// Flags affected:
//
//	N - Set.
//	H - Set.
func (c *CPU) complementA() {
	c.A = ^c.A
	c.setFlag(c.flags.subtract, true)
	c.setFlag(c.flags.halfCarry, true)
}

// setCarryFlag sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) setCarryFlag() {
	c.setFlag(c.flags.subtract, false)
	c.setFlag(c.flags.halfCarry, false)
	c.setFlag(c.flags.carry, true)
}

// complementCarryFlag inverts the carry flag.
//
//	CCF
//
// Flags affected:
//
//	N - Reset.
//	H - Previous carry on the Z80, reset on the LR35902.
//	C - Inverted.
func (c *CPU) complementCarryFlag() {
	carry := c.isFlagSet(c.flags.carry)
	c.setFlag(c.flags.subtract, false)
	if c.variant == Z80 {
		c.setFlag(c.flags.halfCarry, carry)
	} else {
		c.setFlag(c.flags.halfCarry, false)
	}
	c.setFlag(c.flags.carry, !carry)
}
