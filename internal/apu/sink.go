package apu

// Sink consumes the derived audio parameters of a single channel. The
// APU owns no synthesis; it pushes amplitude, frequency and waveform
// updates into the sink as channel state changes. An amplitude of 0
// must yield silence indistinguishable from Stop.
//
// Channels hold a non-owning handle: stop the APU before tearing the
// sink down.
type Sink interface {
	// SetAmplitude sets the output amplitude in [0, 1].
	SetAmplitude(amplitude float64)
	// SetFrequency sets the tone frequency in Hz. Always > 0.
	SetFrequency(hz float64)
	// SetWaveformIndex selects one of the four fixed pulse waveforms
	// (12.5%, 25%, 50%, 75% duty).
	SetWaveformIndex(index uint8)
	// Start begins playback, resetting the waveform phase where the
	// backend can express that.
	Start()
	// Stop ends playback.
	Stop()
}

// nullSink discards every update. It stands in when a channel has no
// sink attached.
type nullSink struct{}

func (nullSink) SetAmplitude(float64)   {}
func (nullSink) SetFrequency(float64)   {}
func (nullSink) SetWaveformIndex(uint8) {}
func (nullSink) Start()                 {}
func (nullSink) Stop()                  {}
