package types

// Register represents a single 8-bit CPU register. The Z80 and the LR35902
// share the same base register file: A, B, C, D, E, H, L, and F. The F
// register is special in that it holds the flag bits.
type Register = uint8

// RegisterPair is a 16-bit view over two 8-bit registers. It owns no
// storage of its own; reads and writes resolve through the High and Low
// pointers, so a write through the pair is visible through the byte
// registers and vice versa.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}
