package apu

import (
	"fmt"

	"github.com/thelolagemann/go-z80/internal/types"
)

// maxVolume is the largest 4-bit envelope volume.
const maxVolume = 0xF

// PulseChannel models one of the two square-wave channels. Its
// parameters are mutated by APU register writes; its counters advance on
// the frame sequencer's sub-clocks. Derived values are pushed into the
// attached Sink on every change that affects the output.
type PulseChannel struct {
	// NRx1
	duty       uint8
	lengthLoad uint8

	// NRx2
	startingVolume  uint8
	envelopeAddMode bool
	envelopePeriod  uint8

	// NRx3/NRx4
	frequency    uint16
	lengthEnable bool

	// NR10, pulse 1 only
	sweepPeriod uint8
	sweepNegate bool
	sweepShift  uint8
	hasSweep    bool

	lengthCounter uint8
	envelopeTimer uint8
	volume        uint8
	enabled       bool

	sink  Sink
	debug bool
}

func newPulseChannel(sink Sink, hasSweep, debug bool) *PulseChannel {
	if sink == nil {
		sink = nullSink{}
	}
	return &PulseChannel{
		sink:     sink,
		hasSweep: hasSweep,
		debug:    debug,
	}
}

// Enabled reports whether the channel is producing output.
func (ch *PulseChannel) Enabled() bool {
	return ch.enabled
}

// Volume returns the current 4-bit envelope volume.
func (ch *PulseChannel) Volume() uint8 {
	return ch.volume
}

// Frequency returns the 11-bit frequency value.
func (ch *PulseChannel) Frequency() uint16 {
	return ch.frequency
}

// LengthCounter returns the internal length counter.
func (ch *PulseChannel) LengthCounter() uint8 {
	return ch.lengthCounter
}

// Duty returns the 2-bit duty index.
func (ch *PulseChannel) Duty() uint8 {
	return ch.duty
}

// setSweep decodes NR10 (-PPP NSSS).
func (ch *PulseChannel) setSweep(value uint8) {
	ch.sweepPeriod = value >> 4 & 0x7
	ch.sweepNegate = value&types.Bit3 != 0
	ch.sweepShift = value & 0x7
}

// setDutyLength decodes NRx1 (DDLL LLLL). The length counter reloads to
// 64 - length_load.
func (ch *PulseChannel) setDutyLength(value uint8) {
	ch.duty = value >> 6
	ch.lengthLoad = value & 0x3F
	ch.lengthCounter = 64 - ch.lengthLoad
	ch.checkInvariants()
	ch.sink.SetWaveformIndex(ch.duty)
}

// setEnvelope decodes NRx2 (VVVV APPP).
func (ch *PulseChannel) setEnvelope(value uint8) {
	ch.startingVolume = value >> 4
	ch.envelopeAddMode = value&types.Bit3 != 0
	ch.envelopePeriod = value & 0x7
}

// setFrequencyLow decodes NRx3, replacing the low 8 bits of the 11-bit
// frequency.
func (ch *PulseChannel) setFrequencyLow(value uint8) {
	ch.frequency = ch.frequency&0x0700 | uint16(value)
	ch.pushFrequency()
}

// setFrequencyHigh decodes NRx4 (TL-- -FFF), replacing the high 3 bits
// of the frequency. Bit 6 gates the length counter; bit 7 triggers the
// channel.
func (ch *PulseChannel) setFrequencyHigh(value uint8) {
	ch.frequency = ch.frequency&0x00FF | uint16(value&0x7)<<8
	ch.lengthEnable = value&types.Bit6 != 0
	ch.pushFrequency()
	if value&types.Bit7 != 0 {
		ch.trigger()
	}
}

// trigger initializes the channel to a playable state: enable, reload an
// expired length counter to its maximum, reload the envelope, and reset
// the waveform phase via Sink.Start.
func (ch *PulseChannel) trigger() {
	ch.enabled = true
	if ch.lengthCounter == 0 {
		ch.lengthCounter = 64
	}
	ch.envelopeTimer = ch.envelopePeriod
	ch.volume = ch.startingVolume
	ch.checkInvariants()

	ch.sink.SetWaveformIndex(ch.duty)
	ch.pushFrequency()
	ch.pushAmplitude()
	ch.sink.Start()
}

// lengthTick advances the 256 Hz length clock.
func (ch *PulseChannel) lengthTick() {
	if ch.lengthEnable && ch.lengthCounter > 0 {
		ch.lengthCounter--
		if ch.lengthCounter == 0 {
			ch.disable()
		}
	}
}

// sweepTick advances the 128 Hz sweep clock. A computed frequency above
// the 11-bit range disables the channel without a frequency push; the
// overflow check runs a second time against the updated frequency.
func (ch *PulseChannel) sweepTick() {
	if !ch.hasSweep || ch.sweepPeriod == 0 || ch.sweepShift == 0 {
		return
	}
	calculated := ch.sweepTarget(ch.frequency)
	if calculated > 0x7FF {
		ch.disable()
		return
	}
	ch.frequency = calculated
	ch.pushFrequency()
	if ch.sweepTarget(ch.frequency) > 0x7FF {
		ch.disable()
	}
}

func (ch *PulseChannel) sweepTarget(frequency uint16) uint16 {
	delta := frequency >> ch.sweepShift
	if ch.sweepNegate {
		return frequency - delta
	}
	return frequency + delta
}

// envelopeTick advances the 64 Hz envelope clock: on period-counter
// underflow the volume steps by one toward its bound.
func (ch *PulseChannel) envelopeTick() {
	if ch.envelopePeriod == 0 {
		return
	}
	if ch.envelopeTimer > 0 {
		ch.envelopeTimer--
	}
	if ch.envelopeTimer == 0 {
		ch.envelopeTimer = ch.envelopePeriod
		if ch.envelopeAddMode && ch.volume < maxVolume {
			ch.volume++
			ch.pushAmplitude()
		} else if !ch.envelopeAddMode && ch.volume > 0 {
			ch.volume--
			ch.pushAmplitude()
		}
		ch.checkInvariants()
	}
}

// disable silences the channel but retains its parameters so a
// re-trigger resumes cleanly.
func (ch *PulseChannel) disable() {
	ch.enabled = false
	ch.sink.SetAmplitude(0)
}

func (ch *PulseChannel) pushAmplitude() {
	if !ch.enabled {
		ch.sink.SetAmplitude(0)
		return
	}
	ch.sink.SetAmplitude(float64(ch.volume) / maxVolume)
}

func (ch *PulseChannel) pushFrequency() {
	// 11-bit period to Hz, the pulse channels' documented conversion
	ch.sink.SetFrequency(131072.0 / float64(2048-ch.frequency))
}

// checkInvariants asserts the declared parameter ranges. Violations can
// only come from internal bugs, so they are fatal in debug.
func (ch *PulseChannel) checkInvariants() {
	if !ch.debug {
		return
	}
	if ch.duty > 3 {
		panic(fmt.Sprintf("apu: duty %d out of range", ch.duty))
	}
	if ch.lengthCounter > 64 {
		panic(fmt.Sprintf("apu: length counter %d out of range", ch.lengthCounter))
	}
	if ch.volume > maxVolume {
		panic(fmt.Sprintf("apu: volume %d out of range", ch.volume))
	}
}
