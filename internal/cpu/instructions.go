package cpu

import (
	"fmt"

	"github.com/thelolagemann/go-z80/internal/types"
)

// Instruction represents a single decoded instruction: a display name,
// a base cycle count, and the operation executed against the CPU.
// Conditional instructions add their taken-branch penalty at execute
// time.
type Instruction struct {
	name   string
	cycles uint8
	fn     func(*CPU)
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the instruction's base cycle count.
func (i Instruction) Cycles() uint8 {
	return i.cycles
}

// commonInstructions holds the opcodes shared by both variants. Each CPU
// copies it at construction and applies its variant's overrides on top.
var commonInstructions [256]Instruction

// commonInstructionsCB holds the shared 0xCB bit-operation page.
var commonInstructionsCB [256]Instruction

func define(table *[256]Instruction, opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	table[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}

// stackPair returns the register pair selected by the 2-bit encoding of
// PUSH/POP opcodes: BC, DE, HL, AF.
func (c *CPU) stackPair(index uint8) *types.RegisterPair {
	switch index & 0x3 {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	default:
		return c.AF
	}
}

// widePair returns the register pair value selected by the 2-bit
// encoding of the 16-bit arithmetic opcodes: BC, DE, HL, SP.
func (c *CPU) widePair(index uint8) uint16 {
	switch index & 0x3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func init() {
	// control
	define(&commonInstructions, 0x00, "NOP", 4, func(c *CPU) {})
	define(&commonInstructions, 0x27, "DAA", 4, func(c *CPU) {
		c.daa()
	})
	define(&commonInstructions, 0x2F, "CPL", 4, func(c *CPU) {
		c.complementA()
	})
	define(&commonInstructions, 0x37, "SCF", 4, func(c *CPU) {
		c.setCarryFlag()
	})
	define(&commonInstructions, 0x3F, "CCF", 4, func(c *CPU) {
		c.complementCarryFlag()
	})
	define(&commonInstructions, 0x76, "HALT", 4, func(c *CPU) {
		c.halted = true
	})
	define(&commonInstructions, 0xF3, "DI", 4, func(c *CPU) {
		c.IFF1 = false
		c.IFF2 = false
		c.eiPending = false
	})
	define(&commonInstructions, 0xFB, "EI", 4, func(c *CPU) {
		c.eiPending = true
	})

	// 16-bit loads and arithmetic
	define(&commonInstructions, 0x01, "LD BC, d16", 12, func(c *CPU) {
		c.load16(c.pair(c.BC), c.imm16())
	})
	define(&commonInstructions, 0x11, "LD DE, d16", 12, func(c *CPU) {
		c.load16(c.pair(c.DE), c.imm16())
	})
	define(&commonInstructions, 0x21, "LD HL, d16", 12, func(c *CPU) {
		c.load16(c.pair(c.HL), c.imm16())
	})
	define(&commonInstructions, 0x31, "LD SP, d16", 12, func(c *CPU) {
		c.SP = c.readOperand16()
	})
	define(&commonInstructions, 0xF9, "LD SP, HL", 8, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})
	for i := uint8(0); i < 4; i++ {
		index := i
		define(&commonInstructions, 0x03+index*0x10, "INC "+widePairNames[index], 8, func(c *CPU) {
			if index == 3 {
				c.SP++
				return
			}
			c.incrementNN(c.stackPair(index))
		})
		define(&commonInstructions, 0x0B+index*0x10, "DEC "+widePairNames[index], 8, func(c *CPU) {
			if index == 3 {
				c.SP--
				return
			}
			c.decrementNN(c.stackPair(index))
		})
		define(&commonInstructions, 0x09+index*0x10, "ADD HL, "+widePairNames[index], 8, func(c *CPU) {
			c.addHLRR(c.widePair(index))
		})
	}

	// accumulator loads through BC/DE pointers
	define(&commonInstructions, 0x02, "LD (BC), A", 8, func(c *CPU) {
		c.load8(c.pointer(c.pair(c.BC)), c.reg(&c.A))
	})
	define(&commonInstructions, 0x12, "LD (DE), A", 8, func(c *CPU) {
		c.load8(c.pointer(c.pair(c.DE)), c.reg(&c.A))
	})
	define(&commonInstructions, 0x0A, "LD A, (BC)", 8, func(c *CPU) {
		c.load8(c.reg(&c.A), c.pointer(c.pair(c.BC)))
	})
	define(&commonInstructions, 0x1A, "LD A, (DE)", 8, func(c *CPU) {
		c.load8(c.reg(&c.A), c.pointer(c.pair(c.DE)))
	})

	// INC r, DEC r, LD r, d8
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(4)
		loadCycles := uint8(8)
		if index == 6 {
			cycles = 12
			loadCycles = 12
		}
		define(&commonInstructions, 0x04+index*8, "INC "+registerNames[index], cycles, func(c *CPU) {
			c.writeDest(index, c.increment(c.readSource(index)))
		})
		define(&commonInstructions, 0x05+index*8, "DEC "+registerNames[index], cycles, func(c *CPU) {
			c.writeDest(index, c.decrement(c.readSource(index)))
		})
		define(&commonInstructions, 0x06+index*8, "LD "+registerNames[index]+", d8", loadCycles, func(c *CPU) {
			c.writeDest(index, c.readOperand())
		})
	}

	// accumulator rotates
	define(&commonInstructions, 0x07, "RLCA", 4, func(c *CPU) {
		c.rotateLeftCarryAccumulator()
	})
	define(&commonInstructions, 0x0F, "RRCA", 4, func(c *CPU) {
		c.rotateRightCarryAccumulator()
	})
	define(&commonInstructions, 0x17, "RLA", 4, func(c *CPU) {
		c.rotateLeftAccumulator()
	})
	define(&commonInstructions, 0x1F, "RRA", 4, func(c *CPU) {
		c.rotateRightAccumulator()
	})

	// relative jumps
	define(&commonInstructions, 0x18, "JR d", 8, func(c *CPU) {
		c.jumpRelative(true)
	})
	for i := uint8(0); i < 4; i++ {
		index := i
		define(&commonInstructions, 0x20+index*8, "JR "+conditionNames[index]+", d", 8, func(c *CPU) {
			c.jumpRelative(c.condition(index))
		})
	}

	// LD r, r'
	for op := uint16(0x40); op <= 0x7F; op++ {
		if op == 0x76 {
			continue // HALT
		}
		src := uint8(op) & 0x7
		dst := uint8(op>>3) & 0x7
		cycles := uint8(4)
		if src == 6 || dst == 6 {
			cycles = 8
		}
		define(&commonInstructions, uint8(op), "LD "+registerNames[dst]+", "+registerNames[src], cycles, func(c *CPU) {
			c.writeDest(dst, c.readSource(src))
		})
	}

	// 8-bit ALU over registers and d8
	for j, op := range aluOps {
		family := uint8(j)
		fn := op.fn
		for i := uint8(0); i < 8; i++ {
			index := i
			cycles := uint8(4)
			if index == 6 {
				cycles = 8
			}
			define(&commonInstructions, 0x80+family*8+index, op.name+registerNames[index], cycles, func(c *CPU) {
				fn(c, c.readSource(index))
			})
		}
		define(&commonInstructions, 0xC6+family*8, op.name+"d8", 8, func(c *CPU) {
			fn(c, c.readOperand())
		})
	}

	// absolute jumps, calls and returns
	define(&commonInstructions, 0xC3, "JP a16", 12, func(c *CPU) {
		c.jumpAbsolute(true)
	})
	define(&commonInstructions, 0xC9, "RET", 16, func(c *CPU) {
		c.ret(true)
	})
	define(&commonInstructions, 0xCD, "CALL a16", 12, func(c *CPU) {
		c.call(true)
	})
	define(&commonInstructions, 0xE9, "JP HL", 4, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	for i := uint8(0); i < 4; i++ {
		index := i
		define(&commonInstructions, 0xC0+index*8, "RET "+conditionNames[index], 8, func(c *CPU) {
			c.retConditional(c.condition(index))
		})
		define(&commonInstructions, 0xC2+index*8, "JP "+conditionNames[index]+", a16", 12, func(c *CPU) {
			c.jumpAbsolute(c.condition(index))
		})
		define(&commonInstructions, 0xC4+index*8, "CALL "+conditionNames[index]+", a16", 12, func(c *CPU) {
			c.call(c.condition(index))
		})
	}

	// stack
	for i := uint8(0); i < 4; i++ {
		index := i
		define(&commonInstructions, 0xC1+index*0x10, "POP "+stackPairNames[index], 12, func(c *CPU) {
			c.stackPair(index).SetUint16(c.pop16())
			if index == 3 {
				// unused F bits can never become visible
				c.setF(c.F)
			}
		})
		define(&commonInstructions, 0xC5+index*0x10, "PUSH "+stackPairNames[index], 16, func(c *CPU) {
			c.push16(c.stackPair(index).Uint16())
		})
	}

	// restarts
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		define(&commonInstructions, 0xC7+i*8, rstName(vector), 16, func(c *CPU) {
			c.rst(vector)
		})
	}
}

var widePairNames = [4]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

var aluOps = []struct {
	name string
	fn   func(*CPU, uint8)
}{
	{"ADD A, ", func(c *CPU, v uint8) { c.add(v, false) }},
	{"ADC A, ", func(c *CPU, v uint8) { c.add(v, true) }},
	{"SUB ", func(c *CPU, v uint8) { c.sub(v, false) }},
	{"SBC A, ", func(c *CPU, v uint8) { c.sub(v, true) }},
	{"AND ", func(c *CPU, v uint8) { c.and(v) }},
	{"XOR ", func(c *CPU, v uint8) { c.xor(v) }},
	{"OR ", func(c *CPU, v uint8) { c.or(v) }},
	{"CP ", func(c *CPU, v uint8) { c.compare(v) }},
}

func rstName(vector uint16) string {
	return fmt.Sprintf("RST %02XH", vector)
}
