// Package cpu implements the Zilog Z80 and Sharp LR35902 instruction
// cores. Both variants share a register file, an opcode space and most
// instruction semantics; they diverge in flag layout, a handful of
// opcodes and the interrupt model. The CPU reads and writes memory
// exclusively through the data bus handed to the constructor.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/thelolagemann/go-z80/internal/bus"
	"github.com/thelolagemann/go-z80/internal/types"
	"github.com/thelolagemann/go-z80/pkg/log"
)

// Variant selects which of the two instruction cores a CPU executes.
type Variant uint8

const (
	// Z80 is the Zilog Z80.
	Z80 Variant = iota
	// LR35902 is the Sharp LR35902, the Game Boy's CPU.
	LR35902
)

// CPU executes instructions against a data bus. It is single threaded;
// the host clocks it by calling Step.
type CPU struct {
	// PC is the program counter, it points to the next instruction to
	// be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit
	// register pairs.
	Registers

	// I is the interrupt vector base register.
	I types.Register
	// R is the memory refresh register. It increments on every opcode
	// fetch on the Z80; the LR35902 carries it but never touches it.
	R types.Register

	// IFF1 is the interrupt enable flip-flop.
	IFF1 bool
	// IFF2 holds a copy of IFF1 during non-maskable interrupt service.
	IFF2 bool

	// shadow is the Z80's alternate register set.
	shadow shadowRegisters

	variant Variant
	flags   flagLayout

	bus *bus.Bus
	log log.Logger

	// eiPending defers the effect of EI by one instruction.
	eiPending bool
	halted    bool

	seed int64

	// branchCycles accumulates the extra cycles of taken branches
	// within a single Step.
	branchCycles uint8

	instructions   [256]Instruction
	instructionsCB [256]Instruction
	instructionsED [256]Instruction
}

// Opt configures a CPU at construction.
type Opt func(*CPU) // applied before register randomization

// WithVariant selects the instruction core. The default is Z80.
func WithVariant(v Variant) Opt {
	return func(c *CPU) {
		c.variant = v
	}
}

// WithSeed pins the register-randomization seed, for reproducible runs.
func WithSeed(seed int64) Opt {
	return func(c *CPU) {
		c.seed = seed
	}
}

// WithLogger sets the logger used for decode error reporting.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// NewCPU creates a new CPU attached to the given bus.
//
// Mirroring real hardware, most registers power up with arbitrary
// values: B, C, D, E, H, L, I, R and the shadow set are randomized.
// A = 0xFF, F = 0xFF (masked per variant), SP = 0xFFFF and PC = 0x0000
// are fixed.
func NewCPU(b *bus.Bus, opts ...Opt) *CPU {
	c := &CPU{
		Registers: Registers{},
		bus:       b,
		log:       log.NewNullLogger(),
		seed:      time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// create register pair views
	c.BC = &types.RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &types.RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &types.RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &types.RegisterPair{High: &c.A, Low: &c.F}

	switch c.variant {
	case Z80:
		c.flags = z80Flags
	case LR35902:
		c.flags = lr35902Flags
	}

	c.randomize()

	c.instructions = commonInstructions
	c.instructionsCB = commonInstructionsCB
	switch c.variant {
	case Z80:
		c.applyZ80()
	case LR35902:
		c.applyLR35902()
	}

	return c
}

func (c *CPU) randomize() {
	rng := rand.New(rand.NewSource(c.seed))
	c.B = uint8(rng.Intn(256))
	c.C = uint8(rng.Intn(256))
	c.D = uint8(rng.Intn(256))
	c.E = uint8(rng.Intn(256))
	c.H = uint8(rng.Intn(256))
	c.L = uint8(rng.Intn(256))
	c.I = uint8(rng.Intn(256))
	c.R = uint8(rng.Intn(256))
	c.shadow = shadowRegisters{
		A: uint8(rng.Intn(256)), F: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)), C: uint8(rng.Intn(256)),
		D: uint8(rng.Intn(256)), E: uint8(rng.Intn(256)),
		H: uint8(rng.Intn(256)), L: uint8(rng.Intn(256)),
	}

	c.A = 0xFF
	c.setF(0xFF)
	c.SP = 0xFFFF
	c.PC = 0x0000
}

// Variant returns the instruction core the CPU executes.
func (c *CPU) Variant() Variant {
	return c.variant
}

// SetPC sets the program counter.
func (c *CPU) SetPC(value uint16) {
	c.PC = value
}

// SetSP sets the stack pointer.
func (c *CPU) SetSP(value uint16) {
	c.SP = value
}

// SetA sets the accumulator.
func (c *CPU) SetA(value uint8) {
	c.A = value
}

// InterruptsEnabled reports the state of the interrupt enable flip-flop.
func (c *CPU) InterruptsEnabled() bool {
	return c.IFF1
}

// Halted reports whether the CPU is stopped on a HALT instruction.
func (c *CPU) Halted() bool {
	return c.halted
}

// Resume clears the halt state, as an interrupt line would.
func (c *CPU) Resume() {
	c.halted = false
}

// fetch reads the opcode byte at PC and advances PC. The Z80 bumps the
// low 7 bits of R on every opcode fetch.
func (c *CPU) fetch() uint8 {
	value := c.bus.Read8(c.PC)
	c.PC++
	if c.variant == Z80 {
		c.R = c.R&0x80 | (c.R+1)&0x7F
	}
	return value
}

// readOperand reads the next operand byte from memory and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read8(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian operand word and advances PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// Step fetches, decodes and executes a single instruction, returning the
// number of cycles it consumed. While halted, Step idles for the length
// of a NOP.
func (c *CPU) Step() uint8 {
	if c.halted {
		return 4
	}

	c.branchCycles = 0
	pending := c.eiPending

	// EI takes effect after the instruction following it has completed,
	// on every exit from Step including a decode error
	defer func() {
		if pending && c.eiPending {
			c.IFF1 = true
			c.IFF2 = true
			c.eiPending = false
		}
	}()

	opcode := c.fetch()
	instruction := c.instructions[opcode]
	raw := []uint8{opcode}

	switch {
	case opcode == 0xCB:
		sub := c.fetch()
		instruction = c.instructionsCB[sub]
		raw = append(raw, sub)
	case opcode == 0xED && c.variant == Z80:
		sub := c.fetch()
		instruction = c.instructionsED[sub]
		raw = append(raw, sub)
	}

	if instruction.fn == nil {
		c.decodeError(raw)
	}
	instruction.fn(c)

	return instruction.cycles + c.branchCycles
}

// Call pushes a synthesized CALL to the given address and runs
// instructions until PC returns to its pre-call value, or until the CPU
// halts. It exists so hosts can run known-good routines to completion
// without a scheduler.
func (c *CPU) Call(address uint16) {
	returnTo := c.PC
	c.push16(c.PC)
	c.PC = address
	for c.PC != returnTo && !c.halted {
		c.Step()
	}
}

// decodeError reports an unrecognized opcode and terminates. The raw
// bytes and the PC they were fetched from are included in the report.
func (c *CPU) decodeError(raw []uint8) {
	pc := c.PC - uint16(len(raw))
	msg := fmt.Sprintf("cpu: unrecognized opcode % 02X at %04X", raw, pc)
	c.log.Errorf("%s", msg)
	panic(msg)
}

// push16 pushes a word onto the stack, high byte first.
func (c *CPU) push16(value uint16) {
	c.SP--
	c.bus.Write8(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write8(c.SP, uint8(value))
}

// pop16 pops a word off the stack.
func (c *CPU) pop16() uint16 {
	low := c.bus.Read8(c.SP)
	c.SP++
	high := c.bus.Read8(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}
