// Package system wires the bus, CPU, APU and RAM windows into a running
// machine. It is the bring-up layer a host embeds: construct a System,
// then clock it.
package system

import (
	"github.com/thelolagemann/go-z80/internal/apu"
	"github.com/thelolagemann/go-z80/internal/bus"
	"github.com/thelolagemann/go-z80/internal/cpu"
	"github.com/thelolagemann/go-z80/internal/ram"
	"github.com/thelolagemann/go-z80/internal/types"
	"github.com/thelolagemann/go-z80/pkg/log"
)

// cyclesPer256Hz is the number of CPU cycles between frame sequencer
// ticks at the LR35902's 4.194304 MHz clock.
const cyclesPer256Hz = 4194304 / 256

// System is a complete machine: a CPU and APU on a shared bus, with
// work RAM at 0xC000-0xDFFF and high RAM at 0xFF80-0xFFFE.
type System struct {
	CPU *cpu.CPU
	APU *apu.APU

	Bus *bus.Bus

	// program memory, 0x0000 - 0x7FFF
	ROM *ram.RAM

	logger log.Logger

	variant      cpu.Variant
	sink1, sink2 apu.Sink
	seed         *int64
	debug        bool

	// cycle budget until the next 256 Hz tick
	apuCycles int
}

// Opt is a function that modifies a System instance.
type Opt func(*System)

// WithVariant selects the CPU core. The default is the LR35902, the
// only variant the APU window belongs with.
func WithVariant(v cpu.Variant) Opt {
	return func(s *System) {
		s.variant = v
	}
}

// WithSinks attaches the audio sinks for the two pulse channels.
func WithSinks(pulse1, pulse2 apu.Sink) Opt {
	return func(s *System) {
		s.sink1 = pulse1
		s.sink2 = pulse2
	}
}

// WithSeed pins register randomization for reproducible runs.
func WithSeed(seed int64) Opt {
	return func(s *System) {
		s.seed = &seed
	}
}

// WithLogger sets the logger shared by the bus and CPU.
func WithLogger(l log.Logger) Opt {
	return func(s *System) {
		s.logger = l
	}
}

// Debug enables fatal invariant checking in the APU.
func Debug() Opt {
	return func(s *System) {
		s.debug = true
	}
}

// NewSystem builds and wires a machine. It panics on bus
// misconfiguration, which can only be a programming error here.
func NewSystem(opts ...Opt) *System {
	s := &System{
		logger:  log.NewNullLogger(),
		variant: cpu.LR35902,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Bus = bus.NewBus(bus.WithLogger(s.logger))

	apuOpts := []apu.Opt{apu.WithLogger(s.logger), apu.WithSinks(s.sink1, s.sink2)}
	if s.debug {
		apuOpts = append(apuOpts, apu.WithDebug())
	}
	s.APU = apu.NewAPU(apuOpts...)

	s.ROM = ram.NewRAM(0x0000, 0x8000)
	for _, p := range []types.Peripheral{
		s.ROM,
		ram.NewRAM(0xC000, 0x2000), // work RAM
		s.APU,
		ram.NewRAM(0xFF80, 0x7F), // high RAM
	} {
		if err := s.Bus.Register(p); err != nil {
			panic(err)
		}
	}

	cpuOpts := []cpu.Opt{cpu.WithVariant(s.variant), cpu.WithLogger(s.logger)}
	if s.seed != nil {
		cpuOpts = append(cpuOpts, cpu.WithSeed(*s.seed))
	}
	s.CPU = cpu.NewCPU(s.Bus, cpuOpts...)
	s.apuCycles = cyclesPer256Hz

	return s
}

// Load copies a program into memory at the given address.
func (s *System) Load(address uint16, program []byte) {
	for i, b := range program {
		s.Bus.Write8(address+uint16(i), b)
	}
}

// Step executes one instruction and advances the APU clock by the
// cycles it consumed. It returns the cycle count.
func (s *System) Step() uint8 {
	cycles := s.CPU.Step()

	s.apuCycles -= int(cycles)
	for s.apuCycles <= 0 {
		s.apuCycles += cyclesPer256Hz
		s.APU.Clock256()
	}

	return cycles
}

// Run executes instructions until at least the given number of cycles
// has elapsed or the CPU halts, returning the actual count.
func (s *System) Run(cycles uint64) uint64 {
	var elapsed uint64
	for elapsed < cycles && !s.CPU.Halted() {
		elapsed += uint64(s.Step())
	}
	return elapsed
}

// Stop silences the APU. Call before tearing down the audio sinks.
func (s *System) Stop() {
	s.APU.Stop()
}
