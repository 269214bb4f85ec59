// Package apu implements the Game Boy's audio processing unit as a pure
// state engine. It occupies the 0xFF10-0xFF3F register window on the
// data bus; writes update a shadow RAM and recompute the pulse channels'
// parameters, and an external 256 Hz clock drives the frame sequencer.
// Synthesis belongs to the Sink the host attaches.
package apu

import (
	"github.com/thelolagemann/go-z80/internal/ram"
	"github.com/thelolagemann/go-z80/internal/types"
	"github.com/thelolagemann/go-z80/pkg/log"
)

// The APU register window. NR15 (0xFF15) and everything above NR24 is
// shadow storage with no channel side effect.
const (
	NR10 = 0xFF10 // -PPP NSSS: pulse 1 sweep
	NR11 = 0xFF11 // DDLL LLLL: pulse 1 duty / length load
	NR12 = 0xFF12 // VVVV APPP: pulse 1 envelope
	NR13 = 0xFF13 // FFFF FFFF: pulse 1 frequency low
	NR14 = 0xFF14 // TL-- -FFF: pulse 1 trigger / length enable / frequency high
	NR21 = 0xFF16 // DDLL LLLL: pulse 2 duty / length load
	NR22 = 0xFF17 // VVVV APPP: pulse 2 envelope
	NR23 = 0xFF18 // FFFF FFFF: pulse 2 frequency low
	NR24 = 0xFF19 // TL-- -FFF: pulse 2 trigger / length enable / frequency high

	windowFirst = 0xFF10
	windowLast  = 0xFF3F
	windowSize  = windowLast - windowFirst + 1 // 0x30
)

// APU is the audio processing unit. It implements types.Peripheral over
// the register window and exposes the 256 Hz frame sequencer clock.
type APU struct {
	shadow *ram.RAM

	pulse1 *PulseChannel
	pulse2 *PulseChannel

	// frame sequencer index, 0..3. Derives the 256/128/64 Hz
	// sub-clocks.
	step uint8

	log   log.Logger
	debug bool

	sink1, sink2 Sink
}

var _ types.Peripheral = (*APU)(nil)

// Opt configures an APU.
type Opt func(*APU)

// WithSinks attaches the audio sinks for pulse 1 and pulse 2.
func WithSinks(pulse1, pulse2 Sink) Opt {
	return func(a *APU) {
		a.sink1 = pulse1
		a.sink2 = pulse2
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(a *APU) {
		a.log = l
	}
}

// WithDebug enables fatal invariant checking on the channels.
func WithDebug() Opt {
	return func(a *APU) {
		a.debug = true
	}
}

// NewAPU returns a new APU. Register it on the bus to expose the
// register window to the CPU.
func NewAPU(opts ...Opt) *APU {
	a := &APU{
		shadow: ram.NewRAM(windowFirst, windowSize),
		log:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.pulse1 = newPulseChannel(a.sink1, true, a.debug)
	a.pulse2 = newPulseChannel(a.sink2, false, a.debug)
	return a
}

// Pulse1 returns the first pulse channel (the one with the sweep unit).
func (a *APU) Pulse1() *PulseChannel {
	return a.pulse1
}

// Pulse2 returns the second pulse channel.
func (a *APU) Pulse2() *PulseChannel {
	return a.pulse2
}

// FirstAddress returns the first address of the register window.
func (a *APU) FirstAddress() uint16 {
	return windowFirst
}

// LastAddress returns the last address of the register window.
func (a *APU) LastAddress() uint16 {
	return windowLast
}

// Read returns the last value written to the given register.
func (a *APU) Read(address uint16) uint8 {
	return a.shadow.Read(address)
}

// Write stores the value in shadow RAM and dispatches the channel side
// effect for the register. Writes to addresses inside the window that
// back no channel parameter update the shadow only.
func (a *APU) Write(address uint16, value uint8) {
	a.shadow.Write(address, value)

	switch address {
	case NR10:
		a.pulse1.setSweep(value)
	case NR11:
		a.pulse1.setDutyLength(value)
	case NR12:
		a.pulse1.setEnvelope(value)
	case NR13:
		a.pulse1.setFrequencyLow(value)
	case NR14:
		a.pulse1.setFrequencyHigh(value)
	case NR21:
		a.pulse2.setDutyLength(value)
	case NR22:
		a.pulse2.setEnvelope(value)
	case NR23:
		a.pulse2.setFrequencyLow(value)
	case NR24:
		a.pulse2.setFrequencyHigh(value)
	}
}

// Clock256 advances the frame sequencer by one 256 Hz tick. The length
// counters clock every tick, the sweep on the two odd steps (128 Hz)
// and the envelopes on the final step (64 Hz).
func (a *APU) Clock256() {
	a.pulse1.lengthTick()
	a.pulse2.lengthTick()

	if a.step == 1 || a.step == 3 {
		a.pulse1.sweepTick()
	}
	if a.step == 3 {
		a.pulse1.envelopeTick()
		a.pulse2.envelopeTick()
	}

	a.step = (a.step + 1) & 3
}

// Stop silences both channels and stops their sinks. Call before
// tearing down the sinks.
func (a *APU) Stop() {
	a.pulse1.disable()
	a.pulse2.disable()
	a.pulse1.sink.Stop()
	a.pulse2.sink.Stop()
}
