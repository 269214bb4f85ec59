// Package audio provides audio sink implementations for the APU's pulse
// channels: a discarding sink, an SDL square-wave synthesizer and a
// WAV-file renderer.
package audio

import (
	"github.com/thelolagemann/go-z80/internal/apu"
)

// Nil is a sink that discards every update. Useful for headless runs
// and benchmarks.
type Nil struct{}

var _ apu.Sink = Nil{}

func (Nil) SetAmplitude(float64)   {}
func (Nil) SetFrequency(float64)   {}
func (Nil) SetWaveformIndex(uint8) {}
func (Nil) Start()                 {}
func (Nil) Stop()                  {}

// dutyRatios maps the four waveform indices to the fraction of each
// period the wave is high.
var dutyRatios = [4]float64{0.125, 0.25, 0.5, 0.75}
