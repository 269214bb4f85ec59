package cpu

import (
	"testing"

	"github.com/thelolagemann/go-z80/internal/bus"
	"github.com/thelolagemann/go-z80/internal/ram"
)

// testCPU builds a CPU over a bus with RAM at 0x0000-0x7FFF (program),
// 0xC000-0xDFFF (work) and 0xFE00-0xFFFF (high RAM and stack). The
// general-purpose registers are cleared for deterministic assertions.
func testCPU(t *testing.T, variant Variant) *CPU {
	t.Helper()

	b := bus.NewBus()
	for _, r := range []*ram.RAM{
		ram.NewRAM(0x0000, 0x8000),
		ram.NewRAM(0xC000, 0x2000),
		ram.NewRAM(0xFE00, 0x100),
		ram.NewRAM(0xFF00, 0x100),
	} {
		if err := b.Register(r); err != nil {
			t.Fatal(err)
		}
	}

	c := NewCPU(b, WithVariant(variant), WithSeed(1))
	c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0
	c.A = 0
	c.setF(0)
	return c
}

// loadProgram writes the program at 0x0100 and points PC at it.
func loadProgram(c *CPU, program ...uint8) {
	for i, op := range program {
		c.bus.Write8(0x0100+uint16(i), op)
	}
	c.PC = 0x0100
}

func TestNewCPU_InitialState(t *testing.T) {
	for _, variant := range []Variant{Z80, LR35902} {
		b := bus.NewBus()
		c := NewCPU(b, WithVariant(variant), WithSeed(42))

		if c.A != 0xFF {
			t.Errorf("expected A to be FF, got %02X", c.A)
		}
		if c.SP != 0xFFFF {
			t.Errorf("expected SP to be FFFF, got %04X", c.SP)
		}
		if c.PC != 0x0000 {
			t.Errorf("expected PC to be 0000, got %04X", c.PC)
		}
		switch variant {
		case Z80:
			if c.F != 0xFF {
				t.Errorf("expected F to be FF, got %02X", c.F)
			}
		case LR35902:
			if c.F != 0xF0 {
				t.Errorf("expected F low nibble to be masked, got %02X", c.F)
			}
		}
	}
}

func TestNewCPU_SeedReproducible(t *testing.T) {
	a := NewCPU(bus.NewBus(), WithSeed(7))
	b := NewCPU(bus.NewBus(), WithSeed(7))

	if a.B != b.B || a.C != b.C || a.D != b.D || a.E != b.E || a.H != b.H || a.L != b.L {
		t.Errorf("expected identical register files from identical seeds")
	}
}

func TestRegisterPairCoherence(t *testing.T) {
	c := testCPU(t, LR35902)

	c.BC.SetUint16(0x1234)
	if c.B != 0x12 || c.C != 0x34 {
		t.Errorf("expected B=12 C=34, got B=%02X C=%02X", c.B, c.C)
	}

	c.H = 0xAB
	c.L = 0xCD
	if c.HL.Uint16() != 0xABCD {
		t.Errorf("expected HL to read ABCD, got %04X", c.HL.Uint16())
	}

	c.AF.SetUint16(0x55AA)
	if c.AF.Uint16() != uint16(c.A)<<8|uint16(c.F) {
		t.Errorf("pair view diverged from byte registers")
	}
}

func TestEIDeferral(t *testing.T) {
	c := testCPU(t, LR35902)

	// after executing only EI, interrupts are still disabled
	loadProgram(c, 0xFB, 0x00) // EI; NOP
	c.Step()
	if c.InterruptsEnabled() {
		t.Errorf("expected interrupts to be disabled directly after EI")
	}

	// the instruction after EI completes with interrupts off, then
	// they enable
	c.Step()
	if !c.InterruptsEnabled() {
		t.Errorf("expected interrupts to be enabled after EI; NOP")
	}
}

func TestEIThenDI(t *testing.T) {
	c := testCPU(t, LR35902)

	loadProgram(c, 0xFB, 0xF3) // EI; DI
	c.Step()
	c.Step()
	if c.InterruptsEnabled() {
		t.Errorf("expected DI to cancel the pending EI")
	}
}

func TestStep_ReturnsCycles(t *testing.T) {
	c := testCPU(t, LR35902)

	loadProgram(c, 0x00, 0xC3, 0x00, 0x20) // NOP; JP 0x2000
	if cycles := c.Step(); cycles != 4 {
		t.Errorf("expected NOP to take 4 cycles, got %d", cycles)
	}
	if cycles := c.Step(); cycles != 16 {
		t.Errorf("expected taken JP to take 16 cycles, got %d", cycles)
	}
	if c.PC != 0x2000 {
		t.Errorf("expected PC to be 2000, got %04X", c.PC)
	}
}

func TestCall_RunsToCompletion(t *testing.T) {
	c := testCPU(t, LR35902)
	c.SP = 0xFFFE
	c.PC = 0x0100

	// routine at 0x4000: LD A, 0x42; RET
	c.bus.Write8(0x4000, 0x3E)
	c.bus.Write8(0x4001, 0x42)
	c.bus.Write8(0x4002, 0xC9)

	c.Call(0x4000)

	if c.A != 0x42 {
		t.Errorf("expected routine to run, A=%02X", c.A)
	}
	if c.PC != 0x0100 {
		t.Errorf("expected PC to return to 0100, got %04X", c.PC)
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP to be restored, got %04X", c.SP)
	}
}

func TestDecodeError(t *testing.T) {
	c := testCPU(t, LR35902)
	loadProgram(c, 0xED) // no ED page on the LR35902

	defer func() {
		if recover() == nil {
			t.Errorf("expected unrecognized opcode to panic")
		}
	}()
	c.Step()
}

func TestHalt(t *testing.T) {
	c := testCPU(t, Z80)
	loadProgram(c, 0x76, 0x00) // HALT; NOP

	c.Step()
	if !c.Halted() {
		t.Errorf("expected CPU to halt")
	}
	pc := c.PC
	c.Step()
	if c.PC != pc {
		t.Errorf("expected PC to hold while halted")
	}

	c.Resume()
	c.Step()
	if c.PC != pc+1 {
		t.Errorf("expected execution to resume")
	}
}

func TestChecksum(t *testing.T) {
	a := testCPU(t, Z80)
	b := testCPU(t, Z80)

	if a.Checksum() != b.Checksum() {
		t.Errorf("expected identical states to produce identical checksums")
	}

	b.A = 0x42
	if a.Checksum() == b.Checksum() {
		t.Errorf("expected differing states to produce differing checksums")
	}
}

func TestRIncrementsOnZ80FetchOnly(t *testing.T) {
	z := testCPU(t, Z80)
	z.R = 0
	loadProgram(z, 0x00, 0x00)
	z.Step()
	z.Step()
	if z.R != 2 {
		t.Errorf("expected R to be 2 after two fetches, got %d", z.R)
	}

	gb := testCPU(t, LR35902)
	gb.R = 0
	loadProgram(gb, 0x00)
	gb.Step()
	if gb.R != 0 {
		t.Errorf("expected R to be untouched on the LR35902, got %d", gb.R)
	}
}
