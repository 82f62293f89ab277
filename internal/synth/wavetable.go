package synth

import (
	"fmt"
)

// Wavetable binds a pyramid to the sample rate it is played at.
type Wavetable struct {
	pyramid    *Pyramid
	sampleRate float32
	nyquist    float32
}

// NewWavetable creates a Wavetable. sampleRate is used exactly as given.
func NewWavetable(p *Pyramid, sampleRate float64) (*Wavetable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("invalid sample rate %g", sampleRate)
	}
	return &Wavetable{
		pyramid:    p,
		sampleRate: float32(sampleRate),
		nyquist:    float32(sampleRate / 2),
	}, nil
}

// Pyramid returns the underlying pyramid.
func (w *Wavetable) Pyramid() *Pyramid {
	return w.pyramid
}

// SampleRate returns the sample rate the wavetable was created for.
func (w *Wavetable) SampleRate() float32 {
	return w.sampleRate
}

// Nyquist returns half the sample rate.
func (w *Wavetable) Nyquist() float32 {
	return w.nyquist
}

// Band selects the two levels to play frequency from and the cross-fade
// between them.
func (w *Wavetable) Band(frequency float32) Band {
	levels := w.pyramid.Levels
	level, mix := factorAndMix(frequency, w.nyquist, len(levels))

	higher := equilibrium
	if level > 0 {
		higher = levels[level-1]
	}

	return Band{
		level:     level,
		lower:     levels[level],
		lowerLen:  float32(len(levels[level])),
		higher:    higher,
		higherLen: float32(len(higher)),
		mix:       mix,
	}
}

// factorAndMix finds the level for frequency and how far frequency has
// moved toward the next, more filtered level.
//
// Level i covers [nyquist/2^(i+1), nyquist/2^i). Frequencies below the
// range of the last level use it unmixed; frequencies at or above Nyquist
// fade fully into equilibrium. The loop runs at most levels times.
func factorAndMix(frequency, nyquist float32, levels int) (int, float32) {
	top := levels - 1
	if !(frequency > 0) {
		return top, 0
	}

	level := 0
	block := nyquist / 2
	for frequency < block {
		if level == top {
			return top, 0
		}
		block /= 2
		level++
	}

	mix := (frequency - block) / block
	if mix > 1 {
		mix = 1
	}
	return level, mix
}
