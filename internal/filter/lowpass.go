// Package filter provides the anti-aliasing low-pass strategies used to
// build pyramid levels. Every strategy treats its input as exactly one
// period of a periodic signal.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-wavetable/internal/mathutil"
)

// ErrInvalidCutoff is returned for cutoffs outside (0, 1].
var ErrInvalidCutoff = errors.New("invalid cutoff")

// ErrEmptyBuffer is returned when there is nothing to filter.
var ErrEmptyBuffer = errors.New("empty buffer")

// LowPass removes harmonic content above cutoff, expressed as a fraction of
// the buffer's Nyquist frequency in (0, 1]. The input is not modified.
type LowPass interface {
	LowPass(buf []float64, cutoff float64) ([]float64, error)
	Name() string
}

// Kind selects a LowPass strategy.
type Kind int

const (
	// KindFFT zeroes frequency bins above the cutoff (brick wall).
	KindFFT Kind = iota

	// KindCascade runs a resonant state variable low-pass repeatedly.
	KindCascade

	// KindKaiser applies a Kaiser-windowed sinc FIR circularly.
	KindKaiser
)

var kindNames = map[Kind]string{
	KindFFT:     "fft",
	KindCascade: "cascade",
	KindKaiser:  "kaiser",
}

// String returns the strategy name used on command lines.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a strategy name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q (want fft, cascade or kaiser)", s)
}

// New returns the strategy for kind.
func New(kind Kind) (LowPass, error) {
	switch kind {
	case KindFFT:
		return NewFFT(), nil
	case KindCascade:
		return NewCascade(), nil
	case KindKaiser:
		return NewKaiser(), nil
	default:
		return nil, fmt.Errorf("unsupported filter kind %d", int(kind))
	}
}

// checkInput validates the shared LowPass preconditions.
func checkInput(buf []float64, cutoff float64) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}
	if !(cutoff > 0 && cutoff <= 1) {
		return fmt.Errorf("%w: %g (must be in (0, 1])", ErrInvalidCutoff, cutoff)
	}
	return nil
}

// belowMinimum reports whether cutoff keeps fewer harmonics than any
// strategy can resolve for a buffer of length n.
func belowMinimum(n int, cutoff float64) bool {
	return cutoff*float64(n)/windowNormalizationFactor < minCutoffHarmonics
}

// sine returns one cycle of a unit sine of length n.
func sine(n int) []float64 {
	out := make([]float64, n)
	mathutil.SineCycle(out)
	return out
}
