package cpu

import (
	"fmt"

	"github.com/thelolagemann/go-z80/internal/types"
)

// Registers contains the 8-bit registers, as well as the computed 16-bit
// register pairs. The pairs share storage with the byte registers: AF, BC,
// DE and HL are views over (A, F), (B, C), (D, E) and (H, L).
type Registers struct {
	A types.Register
	B types.Register
	C types.Register
	D types.Register
	E types.Register
	F types.Register
	H types.Register
	L types.Register

	AF *types.RegisterPair
	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
}

// shadowRegisters is the Z80's alternate register set, exchanged with the
// main set by EX AF, AF' and EXX. The LR35902 has no shadow set.
type shadowRegisters struct {
	A, F, B, C, D, E, H, L types.Register
}

// registerIndex returns a register pointer for the given 3-bit operand
// encoding. Index 6 encodes (HL) and has no backing register.
func (c *CPU) registerIndex(index uint8) *types.Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// registerNames follows the 3-bit operand encoding order.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// readSource reads the register (or (HL) memory operand) selected by the
// given 3-bit encoding.
func (c *CPU) readSource(index uint8) uint8 {
	if index == 6 {
		return c.bus.Read8(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeDest writes the register (or (HL) memory operand) selected by the
// given 3-bit encoding.
func (c *CPU) writeDest(index uint8, value uint8) {
	if index == 6 {
		c.bus.Write8(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// exchangeAF swaps AF with the shadow AF' set.
func (c *CPU) exchangeAF() {
	c.A, c.shadow.A = c.shadow.A, c.A
	c.F, c.shadow.F = c.shadow.F, c.F
}

// exchangeAll swaps BC, DE and HL with the shadow set. AF is unaffected.
func (c *CPU) exchangeAll() {
	c.B, c.shadow.B = c.shadow.B, c.B
	c.C, c.shadow.C = c.shadow.C, c.C
	c.D, c.shadow.D = c.shadow.D, c.D
	c.E, c.shadow.E = c.shadow.E, c.E
	c.H, c.shadow.H = c.shadow.H, c.H
	c.L, c.shadow.L = c.shadow.L, c.L
}
