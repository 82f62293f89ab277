// Package testutil provides reusable test helper functions for wavetable tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	WindowTolerance  = 1e-10
	DBTolerance      = 0.01
)

// fixedPointScale matches the unsigned 16-bit storage convention.
const fixedPointScale = 1 << 15

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertOddLength verifies that a slice has an odd length.
func AssertOddLength(t *testing.T, s []float64) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%halfDivisor, "slice length %d is not odd", len(s))
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertPeak verifies that max(|x|) equals want within tolerance.
func AssertPeak(t *testing.T, s []float64, want, tolerance float64) bool {
	t.Helper()
	var peak float64
	for _, v := range s {
		peak = math.Max(peak, math.Abs(v))
	}
	return assert.InDelta(t, want, peak, tolerance, "peak = %f, want %f", peak, want)
}

// Dequantize converts fixed-point samples back to floats in [-1, 1].
func Dequantize(samples []uint16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)/fixedPointScale - 1
	}
	return out
}

// Harmonics returns the magnitude of each harmonic of a single cycle,
// index k being the k-th harmonic. Magnitudes are scaled so that a unit
// sine yields 1.0 at its harmonic.
func Harmonics(cycle []float64) []float64 {
	n := len(cycle)
	coeffs := fourier.NewFFT(n).Coefficients(nil, cycle)
	mags := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mags[k] = cmplx.Abs(c) * 2 / float64(n)
	}
	return mags
}

// AssertBandLimited verifies that every harmonic above maxHarmonic is
// quieter than floor (linear magnitude relative to a unit sine).
func AssertBandLimited(t *testing.T, cycle []float64, maxHarmonic int, floor float64) bool {
	t.Helper()
	mags := Harmonics(cycle)
	for k := maxHarmonic + 1; k < len(mags); k++ {
		if mags[k] > floor {
			return assert.Fail(t, "harmonic above cutoff",
				"harmonic %d magnitude %e exceeds %e (cutoff harmonic %d)", k, mags[k], floor, maxHarmonic)
		}
	}
	return true
}
