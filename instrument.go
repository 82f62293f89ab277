package wavetable

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-wavetable/internal/simdops"
	"github.com/tphakala/go-wavetable/internal/synth"
)

// Instrument is the host-facing facade: frequency and waveform controls on
// one side, Populate on the other.
//
// Control methods may be called from any goroutine. Populate and
// PopulateFloat32 belong to the audio callback and must not be called
// concurrently with each other; they never allocate, block or lock.
type Instrument struct {
	engine *Engine
	voices []*synth.Oscillator

	// control side only
	mu    sync.Mutex
	bank  *Bank
	index int

	// render side only
	blockSize int
	scratch   []Sample
	acc       []uint32
	fixed     []Sample
}

func newInstrument(e *Engine, b *Bank, voices, blockSize int) *Instrument {
	w := b.wavetables[0]
	in := &Instrument{
		engine:    e,
		voices:    make([]*synth.Oscillator, voices),
		bank:      b,
		blockSize: blockSize,
		scratch:   make([]Sample, blockSize),
		fixed:     make([]Sample, blockSize),
	}
	if voices > 1 {
		in.acc = make([]uint32, blockSize)
	}
	for i := range in.voices {
		in.voices[i] = synth.NewOscillator(w)
	}
	return in
}

// Voices returns the number of oscillators.
func (in *Instrument) Voices() int {
	return len(in.voices)
}

// SetFrequency sets every voice to hz. Values are clamped to [0, Nyquist];
// NaN becomes 0.
func (in *Instrument) SetFrequency(hz float32) {
	for _, v := range in.voices {
		v.SetFrequency(hz)
	}
}

// SetVoiceFrequency sets one voice to hz.
func (in *Instrument) SetVoiceFrequency(voice int, hz float32) error {
	if voice < 0 || voice >= len(in.voices) {
		return fmt.Errorf("%w: voice %d of %d", ErrIndexOutOfRange, voice, len(in.voices))
	}
	in.voices[voice].SetFrequency(hz)
	return nil
}

// Frequency returns the frequency of the first voice.
func (in *Instrument) Frequency() float32 {
	return in.voices[0].Frequency()
}

// VoiceFrequency returns the frequency of one voice.
func (in *Instrument) VoiceFrequency(voice int) (float32, error) {
	if voice < 0 || voice >= len(in.voices) {
		return 0, fmt.Errorf("%w: voice %d of %d", ErrIndexOutOfRange, voice, len(in.voices))
	}
	return in.voices[voice].Frequency(), nil
}

// Bank returns the active bank.
func (in *Instrument) Bank() *Bank {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.bank
}

// Selected returns the index of the active wavetable within the bank.
func (in *Instrument) Selected() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.index
}

// SelectWavetable switches every voice to wavetable i of the active bank.
// Phase is kept, so the switch takes effect on the next Populate call
// without a restart.
func (in *Instrument) SelectWavetable(i int) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	w, err := in.bank.wavetable(i)
	if err != nil {
		return err
	}
	in.index = i
	in.setWavetable(w)
	return nil
}

// SelectBank switches to the named bank. The wavetable index is kept when
// the new bank is large enough and reset to 0 otherwise.
func (in *Instrument) SelectBank(name string) error {
	b, err := in.engine.Bank(name)
	if err != nil {
		return err
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if in.index >= b.Len() {
		in.index = 0
	}
	in.bank = b
	in.setWavetable(b.wavetables[in.index])
	return nil
}

func (in *Instrument) setWavetable(w *synth.Wavetable) {
	for _, v := range in.voices {
		v.SetWavetable(w)
	}
}

// Populate fills buf with the next samples. With several voices the output
// is their average.
func (in *Instrument) Populate(buf []Sample) {
	if len(in.voices) == 1 {
		in.voices[0].Populate(buf)
		return
	}

	n := uint32(len(in.voices))
	for start := 0; start < len(buf); start += in.blockSize {
		end := min(start+in.blockSize, len(buf))
		out := buf[start:end]
		acc := in.acc[:len(out)]
		scratch := in.scratch[:len(out)]

		clear(acc)
		for _, v := range in.voices {
			v.Populate(scratch)
			for i, s := range scratch {
				acc[i] += uint32(s)
			}
		}
		for i, sum := range acc {
			out[i] = Sample(sum / n)
		}
	}
}

// PopulateFloat32 fills buf with the next samples as float32 in [-1, 1),
// the format most audio drivers expect.
func (in *Instrument) PopulateFloat32(buf []float32) {
	ops := simdops.Float32Ops()

	for start := 0; start < len(buf); start += in.blockSize {
		end := min(start+in.blockSize, len(buf))
		out := buf[start:end]
		fixed := in.fixed[:len(out)]

		in.Populate(fixed)
		for i, s := range fixed {
			out[i] = float32(s) - floatOffset
		}
		ops.Scale(out, out, floatScale)
	}
}
