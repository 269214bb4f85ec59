package cpu

import (
	"github.com/thelolagemann/go-z80/pkg/utils"
)

// flagAbsent marks a flag bit that does not exist on the variant. Writes
// to an absent flag are dropped and reads return false.
const flagAbsent = 0xFF

// flagLayout maps the named flags onto bit positions of the F register.
// The two variants disagree on the layout: the Z80 keeps S, Z, H, P/V, N
// and C at bits 7, 6, 4, 2, 1 and 0; the LR35902 keeps Z, N, H and C in
// the high nibble and hard-wires the low nibble to zero.
type flagLayout struct {
	sign           uint8
	zero           uint8
	halfCarry      uint8
	parityOverflow uint8
	subtract       uint8
	carry          uint8

	// mask is applied to every write of F. Bits outside the mask read
	// back as zero.
	mask uint8
}

var z80Flags = flagLayout{
	sign:           7,
	zero:           6,
	halfCarry:      4,
	parityOverflow: 2,
	subtract:       1,
	carry:          0,
	mask:           0xFF,
}

var lr35902Flags = flagLayout{
	sign:           flagAbsent,
	zero:           7,
	subtract:       6,
	halfCarry:      5,
	carry:          4,
	parityOverflow: flagAbsent,
	mask:           0xF0,
}

// setF writes the F register, applying the variant's hard-wired-zero mask.
// Every write of F goes through here so the LR35902's low nibble can never
// become visible.
func (c *CPU) setF(value uint8) {
	c.F = value & c.flags.mask
}

// setFlag sets or clears a single flag bit of F.
func (c *CPU) setFlag(bit uint8, set bool) {
	if bit == flagAbsent {
		return
	}
	if set {
		c.setF(utils.SetBit(c.F, bit))
	} else {
		c.setF(utils.ClearBit(c.F, bit))
	}
}

// isFlagSet returns true if the given flag bit of F is set.
func (c *CPU) isFlagSet(bit uint8) bool {
	return bit != flagAbsent && utils.TestBit(c.F, bit)
}

// setFlags sets the four flags shared by both variants in one call. The
// remaining bits of F are untouched.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.setFlag(c.flags.zero, zero)
	c.setFlag(c.flags.subtract, subtract)
	c.setFlag(c.flags.halfCarry, halfCarry)
	c.setFlag(c.flags.carry, carry)
}

// setSign derives the sign flag from bit 7 of the result. No-op on the
// LR35902, which has no sign flag.
func (c *CPU) setSign(result uint8) {
	c.setFlag(c.flags.sign, result&0x80 != 0)
}

// setParityOverflow sets the P/V flag. No-op on the LR35902.
func (c *CPU) setParityOverflow(set bool) {
	c.setFlag(c.flags.parityOverflow, set)
}

// FlagZero reports the Z flag.
func (c *CPU) FlagZero() bool { return c.isFlagSet(c.flags.zero) }

// FlagSubtract reports the N flag.
func (c *CPU) FlagSubtract() bool { return c.isFlagSet(c.flags.subtract) }

// FlagHalfCarry reports the H flag.
func (c *CPU) FlagHalfCarry() bool { return c.isFlagSet(c.flags.halfCarry) }

// FlagCarry reports the C flag.
func (c *CPU) FlagCarry() bool { return c.isFlagSet(c.flags.carry) }

// FlagSign reports the Z80's S flag. Always false on the LR35902.
func (c *CPU) FlagSign() bool { return c.isFlagSet(c.flags.sign) }

// FlagParityOverflow reports the Z80's P/V flag. Always false on the
// LR35902.
func (c *CPU) FlagParityOverflow() bool { return c.isFlagSet(c.flags.parityOverflow) }
