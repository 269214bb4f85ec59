package audio

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/thelolagemann/go-z80/internal/apu"
)

const (
	sdlSampleRate = 44100

	// sdlBufferLength balances latency against the cost of refilling
	// the device queue. The precise value is not critical.
	sdlBufferLength = 512
)

// SDL synthesizes a square wave on an SDL audio device from the
// parameters the channel pushes into it. The host drives synthesis by
// calling Queue from its pacing loop.
type SDL struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	mu        sync.Mutex
	amplitude float64
	frequency float64
	duty      float64
	playing   bool

	// phase advances through [0, 1) per waveform period
	phase float64

	buffer []uint8
}

var _ apu.Sink = (*SDL)(nil)

// NewSDL opens an SDL audio device for a single channel.
func NewSDL() (*SDL, error) {
	s := &SDL{
		duty:      0.5,
		frequency: 64,
		buffer:    make([]uint8, sdlBufferLength),
	}

	spec := &sdl.AudioSpec{
		Freq:     sdlSampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  sdlBufferLength,
	}

	var err error
	var actual sdl.AudioSpec
	s.id, err = sdl.OpenAudioDevice("", false, spec, &actual, 0)
	if err != nil {
		return nil, errors.Wrap(err, "audio: opening SDL device")
	}
	s.spec = actual

	return s, nil
}

// SetAmplitude implements apu.Sink.
func (s *SDL) SetAmplitude(amplitude float64) {
	s.mu.Lock()
	s.amplitude = amplitude
	s.mu.Unlock()
}

// SetFrequency implements apu.Sink.
func (s *SDL) SetFrequency(hz float64) {
	s.mu.Lock()
	s.frequency = hz
	s.mu.Unlock()
}

// SetWaveformIndex implements apu.Sink.
func (s *SDL) SetWaveformIndex(index uint8) {
	s.mu.Lock()
	s.duty = dutyRatios[index&0x3]
	s.mu.Unlock()
}

// Start implements apu.Sink. The waveform phase restarts.
func (s *SDL) Start() {
	s.mu.Lock()
	s.phase = 0
	s.playing = true
	s.mu.Unlock()
	sdl.PauseAudioDevice(s.id, false)
}

// Stop implements apu.Sink.
func (s *SDL) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
	sdl.PauseAudioDevice(s.id, true)
}

// Queue synthesizes one buffer's worth of samples from the current
// parameters and hands it to the device. Call it from the host's pacing
// loop, roughly sampleRate/bufferLength times per second.
func (s *SDL) Queue() error {
	s.mu.Lock()
	amplitude, frequency, duty, playing := s.amplitude, s.frequency, s.duty, s.playing
	s.mu.Unlock()

	silence := s.spec.Silence
	if !playing || amplitude == 0 {
		for i := range s.buffer {
			s.buffer[i] = silence
		}
		return errors.Wrap(sdl.QueueAudio(s.id, s.buffer), "audio: queueing")
	}

	step := frequency / sdlSampleRate
	level := uint8(amplitude * 127)
	for i := range s.buffer {
		if s.phase < duty {
			s.buffer[i] = silence + level
		} else {
			s.buffer[i] = silence - level
		}
		s.phase += step
		for s.phase >= 1 {
			s.phase--
		}
	}
	return errors.Wrap(sdl.QueueAudio(s.id, s.buffer), "audio: queueing")
}

// Close stops playback and releases the device.
func (s *SDL) Close() {
	s.Stop()
	sdl.CloseAudioDevice(s.id)
}
