package cpu

import (
	"github.com/thelolagemann/go-z80/internal/types"
)

// Operands are typed, addressable locations that instructions read from
// and write to: registers, immediates, and memory reached through the
// bus. Each operand implements only the capabilities its kind supports;
// a decoder bug that pairs an instruction with an ill-typed operand fails
// at compile time.

// Reader8 is an operand an instruction can read a byte from.
type Reader8 interface {
	Read8() uint8
}

// Writer8 is an operand an instruction can write a byte to.
type Writer8 interface {
	Write8(value uint8)
}

// Reader16 is an operand an instruction can read a word from.
type Reader16 interface {
	Read16() uint16
}

// Writer16 is an operand an instruction can write a word to.
type Writer16 interface {
	Write16(value uint16)
}

// registerOperand is a direct 8-bit register operand.
type registerOperand struct {
	reg *types.Register
}

func (o registerOperand) Read8() uint8 {
	return *o.reg
}

func (o registerOperand) Write8(value uint8) {
	*o.reg = value
}

// pairOperand is a direct 16-bit register pair operand.
type pairOperand struct {
	pair *types.RegisterPair
}

func (o pairOperand) Read16() uint16 {
	return o.pair.Uint16()
}

func (o pairOperand) Write16(value uint16) {
	o.pair.SetUint16(value)
}

// immediate8 is a read-only byte operand whose value is fixed at decode
// time.
type immediate8 struct {
	value uint8
}

func (o immediate8) Read8() uint8 {
	return o.value
}

// immediate16 is a read-only word operand whose value is fixed at decode
// time.
type immediate16 struct {
	value uint16
}

func (o immediate16) Read16() uint16 {
	return o.value
}

// pointerOperand dereferences an address-producing operand through the
// bus.
type pointerOperand struct {
	c    *CPU
	addr Reader16
}

func (o pointerOperand) Read8() uint8 {
	return o.c.bus.Read8(o.addr.Read16())
}

func (o pointerOperand) Write8(value uint8) {
	o.c.bus.Write8(o.addr.Read16(), value)
}

// directOperand dereferences a fixed address through the bus.
type directOperand struct {
	c       *CPU
	address uint16
}

func (o directOperand) Read8() uint8 {
	return o.c.bus.Read8(o.address)
}

func (o directOperand) Write8(value uint8) {
	o.c.bus.Write8(o.address, value)
}

// highOperand is the 0xFF00+offset high-RAM pseudo-pointer used by the
// LDH family. When signed, the offset byte is sign-extended before being
// added to the base.
type highOperand struct {
	c      *CPU
	offset Reader8
	signed bool
}

func (o highOperand) address() uint16 {
	if o.signed {
		return uint16(int32(0xFF00) + int32(int8(o.offset.Read8())))
	}
	return 0xFF00 + uint16(o.offset.Read8())
}

func (o highOperand) Read8() uint8 {
	return o.c.bus.Read8(o.address())
}

func (o highOperand) Write8(value uint8) {
	o.c.bus.Write8(o.address(), value)
}

// operand constructors, used by instruction bodies at execute time.

func (c *CPU) reg(r *types.Register) registerOperand {
	return registerOperand{reg: r}
}

func (c *CPU) pair(p *types.RegisterPair) pairOperand {
	return pairOperand{pair: p}
}

func (c *CPU) imm8() immediate8 {
	return immediate8{value: c.readOperand()}
}

func (c *CPU) imm16() immediate16 {
	return immediate16{value: c.readOperand16()}
}

func (c *CPU) pointer(addr Reader16) pointerOperand {
	return pointerOperand{c: c, addr: addr}
}

func (c *CPU) direct(address uint16) directOperand {
	return directOperand{c: c, address: address}
}

func (c *CPU) high(offset Reader8) highOperand {
	return highOperand{c: c, offset: offset}
}

// load8 copies a byte from src to dst.
func (c *CPU) load8(dst Writer8, src Reader8) {
	dst.Write8(src.Read8())
}

// load16 copies a word from src to dst.
func (c *CPU) load16(dst Writer16, src Reader16) {
	dst.Write16(src.Read16())
}
