package wavetable

import (
	"fmt"

	"github.com/tphakala/go-wavetable/internal/synth"
)

// Bank is a named, ordered set of pyramids together with the runtime
// wavetables built from them. A Bank is immutable and safe to share
// between goroutines.
type Bank struct {
	name       string
	pyramids   []*Pyramid
	wavetables []*synth.Wavetable
}

func newBank(name string, pyramids []*Pyramid, sampleRate float64) (*Bank, error) {
	if len(pyramids) == 0 {
		return nil, fmt.Errorf("%w: bank %q has no waveforms", ErrInvalidWaveform, name)
	}

	b := &Bank{
		name:       name,
		pyramids:   pyramids,
		wavetables: make([]*synth.Wavetable, len(pyramids)),
	}
	for i, p := range pyramids {
		w, err := synth.NewWavetable(p, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w: bank %q waveform %d: %w", ErrInvalidWaveform, name, i, err)
		}
		b.wavetables[i] = w
	}
	return b, nil
}

// Name returns the bank name.
func (b *Bank) Name() string {
	return b.name
}

// Len returns the number of wavetables in the bank.
func (b *Bank) Len() int {
	return len(b.pyramids)
}

// Pyramid returns the pyramid at index i.
func (b *Bank) Pyramid(i int) (*Pyramid, error) {
	if i < 0 || i >= len(b.pyramids) {
		return nil, fmt.Errorf("%w: wavetable %d of %d", ErrIndexOutOfRange, i, len(b.pyramids))
	}
	return b.pyramids[i], nil
}

// Index returns the position of the named waveform, or -1.
func (b *Bank) Index(name string) int {
	for i, p := range b.pyramids {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (b *Bank) wavetable(i int) (*synth.Wavetable, error) {
	if i < 0 || i >= len(b.wavetables) {
		return nil, fmt.Errorf("%w: wavetable %d of %d", ErrIndexOutOfRange, i, len(b.wavetables))
	}
	return b.wavetables[i], nil
}
