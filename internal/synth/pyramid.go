// Package synth is the real-time side of the synthesizer: band selection
// over a pyramid, interpolated cross-faded reads and the phase-accumulating
// oscillator. Nothing on the render path allocates, blocks or locks.
package synth

import (
	"errors"
	"fmt"
)

// ErrInvalidPyramid is returned for pyramids the renderer cannot play.
var ErrInvalidPyramid = errors.New("invalid pyramid")

// equilibrium is the one-sample flat waveform the most filtered level fades
// into as the frequency approaches Nyquist.
var equilibrium = []uint16{1 << 15}

// Pyramid is an ordered set of levels of one waveform. Level 0 is the most
// filtered. A Pyramid is immutable once handed to a Wavetable.
type Pyramid struct {
	Name   string
	Levels [][]uint16
}

// Validate checks that every level holds at least one sample.
func (p *Pyramid) Validate() error {
	if p == nil || len(p.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidPyramid)
	}
	for i, level := range p.Levels {
		if len(level) == 0 {
			return fmt.Errorf("%w: level %d is empty", ErrInvalidPyramid, i)
		}
	}
	return nil
}

// Len returns the number of levels.
func (p *Pyramid) Len() int {
	return len(p.Levels)
}
