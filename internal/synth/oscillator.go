package synth

import (
	"math"
	"sync/atomic"
)

// Oscillator is a phase accumulator driving a Wavetable.
//
// Frequency and wavetable are written from a control goroutine and read by
// the render goroutine through atomic cells; each Populate call sees the
// most recent values. Phase belongs to the render goroutine alone.
type Oscillator struct {
	frequency atomic.Uint32 // float32 bits
	wavetable atomic.Pointer[Wavetable]

	phase float32
}

// NewOscillator creates a silent oscillator at phase zero.
func NewOscillator(w *Wavetable) *Oscillator {
	o := &Oscillator{}
	o.wavetable.Store(w)
	return o
}

// SetFrequency sets the frequency in Hz, clamped to [0, Nyquist]. NaN
// becomes 0.
func (o *Oscillator) SetFrequency(hz float32) {
	nyquist := o.wavetable.Load().Nyquist()
	switch {
	case !(hz > 0):
		hz = 0
	case hz > nyquist:
		hz = nyquist
	}
	o.frequency.Store(math.Float32bits(hz))
}

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float32 {
	return math.Float32frombits(o.frequency.Load())
}

// SetWavetable switches the waveform. A nil wavetable is ignored.
func (o *Oscillator) SetWavetable(w *Wavetable) {
	if w != nil {
		o.wavetable.Store(w)
	}
}

// Wavetable returns the current wavetable.
func (o *Oscillator) Wavetable() *Wavetable {
	return o.wavetable.Load()
}

// Phase returns the current phase in [0, 1). Only the render goroutine may
// call it while audio is running.
func (o *Oscillator) Phase() float32 {
	return o.phase
}

// Populate fills buf with consecutive samples. Frequency and wavetable are
// read once, so the whole buffer is rendered from one band.
func (o *Oscillator) Populate(buf []uint16) {
	w := o.wavetable.Load()
	frequency := math.Float32frombits(o.frequency.Load())
	band := w.Band(frequency)
	step := frequency / w.sampleRate

	phase := o.phase
	for i := range buf {
		buf[i] = band.Read(phase)
		phase += step
		if phase >= 1 {
			phase -= 1
		}
	}
	o.phase = phase
}
