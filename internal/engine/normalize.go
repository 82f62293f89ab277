package engine

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-wavetable/internal/simdops"
)

// ErrDegenerate is returned when a cycle has no amplitude left to normalize,
// typically a flat raw waveform or a filter that removed everything.
var ErrDegenerate = errors.New("degenerate waveform")

// Peak returns max(|x|) over buf, or zero for an empty buffer.
func Peak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return math.Max(math.Max(floats.Max(buf), 0), -math.Min(floats.Min(buf), 0))
}

// Normalize scales buf in place so that its peak absolute value is 1.
func Normalize(buf []float64) error {
	if floats.HasNaN(buf) {
		return fmt.Errorf("%w: NaN sample", ErrDegenerate)
	}
	peak := Peak(buf)
	if peak == 0 || math.IsInf(peak, 0) {
		return fmt.Errorf("%w: peak %g", ErrDegenerate, peak)
	}
	simdops.Float64Ops().Scale(buf, buf, 1/peak)
	return nil
}
