package audio

import (
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/thelolagemann/go-z80/internal/apu"
)

const wavSampleRate = 44100

// WAVWriter renders a channel's output to a WAV file. Samples are
// buffered in memory in their entirety and written on Close, so it is
// mostly suitable for testing and capture runs.
//
// The core owns no clock, so the host paces rendering: call Render with
// the number of samples elapsed between parameter changes.
type WAVWriter struct {
	filename string

	amplitude float64
	frequency float64
	duty      float64
	playing   bool
	phase     float64

	buffer []int
}

var _ apu.Sink = (*WAVWriter)(nil)

// NewWAVWriter returns a WAVWriter that will write to filename on
// Close.
func NewWAVWriter(filename string) *WAVWriter {
	return &WAVWriter{
		filename:  filename,
		duty:      0.5,
		frequency: 64,
	}
}

// SetAmplitude implements apu.Sink.
func (w *WAVWriter) SetAmplitude(amplitude float64) {
	w.amplitude = amplitude
}

// SetFrequency implements apu.Sink.
func (w *WAVWriter) SetFrequency(hz float64) {
	w.frequency = hz
}

// SetWaveformIndex implements apu.Sink.
func (w *WAVWriter) SetWaveformIndex(index uint8) {
	w.duty = dutyRatios[index&0x3]
}

// Start implements apu.Sink. The waveform phase restarts.
func (w *WAVWriter) Start() {
	w.phase = 0
	w.playing = true
}

// Stop implements apu.Sink.
func (w *WAVWriter) Stop() {
	w.playing = false
}

// Render appends n samples synthesized from the current parameters.
func (w *WAVWriter) Render(n int) {
	step := w.frequency / wavSampleRate
	for i := 0; i < n; i++ {
		if !w.playing || w.amplitude == 0 {
			w.buffer = append(w.buffer, 0)
			continue
		}
		level := int(w.amplitude * 127)
		if w.phase >= w.duty {
			level = -level
		}
		w.buffer = append(w.buffer, level)
		w.phase += step
		for w.phase >= 1 {
			w.phase--
		}
	}
}

// Samples returns the number of samples rendered so far.
func (w *WAVWriter) Samples() int {
	return len(w.buffer)
}

// Close writes the rendered samples to disk.
func (w *WAVWriter) Close() (rerr error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return errors.Wrap(err, "audio: creating wav file")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "audio: closing wav file")
		}
	}()

	enc := wav.NewEncoder(f, wavSampleRate, 8, 1, 1)
	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: 1,
			SampleRate:  wavSampleRate,
		},
		Data:           w.buffer,
		SourceBitDepth: 8,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "audio: encoding wav")
	}
	return errors.Wrap(enc.Close(), "audio: finishing wav")
}
