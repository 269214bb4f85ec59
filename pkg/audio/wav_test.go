package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/go-z80/internal/apu"
)

func TestWAVWriter_RendersAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulse.wav")
	w := NewWAVWriter(path)

	a := apu.NewAPU(apu.WithSinks(w, Nil{}))
	a.Write(apu.NR12, 0xF0) // full volume
	a.Write(apu.NR13, 0x00)
	a.Write(apu.NR14, 0x87) // trigger at frequency 0x700

	w.Render(wavSampleRate / 10)
	if w.Samples() != wavSampleRate/10 {
		t.Fatalf("expected %d samples, got %d", wavSampleRate/10, w.Samples())
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= 44 {
		t.Errorf("expected more than a WAV header, got %d bytes", info.Size())
	}
}

func TestWAVWriter_SilenceBeforeStart(t *testing.T) {
	w := NewWAVWriter(filepath.Join(t.TempDir(), "silent.wav"))
	w.SetAmplitude(1)
	w.SetFrequency(440)

	w.Render(100)
	for i, s := range w.buffer[:100] {
		if s != 0 {
			t.Fatalf("expected silence before Start, sample %d = %d", i, s)
		}
	}
}
