// Package asset supplies raw single-cycle waveforms: band-limited seed
// waveforms computed by additive synthesis, the built-in banks, and import
// and export of 16-bit mono WAV files.
package asset

import (
	"errors"
	"fmt"
)

// ErrFormat is returned for audio files that cannot hold a single cycle.
var ErrFormat = errors.New("unsupported audio format")

// ErrParameter is returned for invalid generator parameters.
var ErrParameter = errors.New("invalid waveform parameter")

// Waveform is one named raw cycle in unsigned 16-bit storage format.
type Waveform struct {
	Name    string
	Samples []uint16
}

// Bank is a named, ordered set of waveforms.
type Bank struct {
	Name      string
	Waveforms []Waveform
}

// Validate checks that the bank has waveforms of the given length.
func (b Bank) Validate(length int) error {
	if b.Name == "" {
		return fmt.Errorf("%w: bank has no name", ErrParameter)
	}
	if len(b.Waveforms) == 0 {
		return fmt.Errorf("%w: bank %q is empty", ErrParameter, b.Name)
	}
	for _, w := range b.Waveforms {
		if len(w.Samples) != length {
			return fmt.Errorf("%w: waveform %q has %d samples, want %d",
				ErrParameter, w.Name, len(w.Samples), length)
		}
	}
	return nil
}
