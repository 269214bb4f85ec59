package cpu

import (
	"github.com/cespare/xxhash"

	"github.com/thelolagemann/go-z80/internal/types"
)

var _ types.Stater = (*CPU)(nil)

// Save serializes the register file into the given state.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.I)
	s.Write8(c.R)
	s.WriteBool(c.IFF1)
	s.WriteBool(c.IFF2)
	s.Write8(c.shadow.A)
	s.Write8(c.shadow.F)
	s.Write8(c.shadow.B)
	s.Write8(c.shadow.C)
	s.Write8(c.shadow.D)
	s.Write8(c.shadow.E)
	s.Write8(c.shadow.H)
	s.Write8(c.shadow.L)
}

// Load restores the register file from the given state.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.setF(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.I = s.Read8()
	c.R = s.Read8()
	c.IFF1 = s.ReadBool()
	c.IFF2 = s.ReadBool()
	c.shadow.A = s.Read8()
	c.shadow.F = s.Read8()
	c.shadow.B = s.Read8()
	c.shadow.C = s.Read8()
	c.shadow.D = s.Read8()
	c.shadow.E = s.Read8()
	c.shadow.H = s.Read8()
	c.shadow.L = s.Read8()
}

// Checksum returns a hash of the serialized register file. Two runs that
// reach the same state produce the same checksum, which makes diverging
// executions cheap to detect.
func (c *CPU) Checksum() uint64 {
	s := types.NewState()
	c.Save(s)
	return xxhash.Sum64(s.Bytes())
}
