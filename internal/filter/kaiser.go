package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-wavetable/internal/mathutil"
	"github.com/tphakala/go-wavetable/internal/simdops"
)

// KaiserWindow generates a Kaiser window of the specified length and β.
//
//	w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
//
// The window is symmetric: w[i] = w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = sincCenterTap
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}

	return window
}

// FilterParams holds parameters for filter design.
type FilterParams struct {
	// NumTaps is the filter length. Odd lengths give a symmetric,
	// zero-phase kernel when centered.
	NumTaps int

	// CutoffFreq is the normalized cutoff frequency, 0.5 being Nyquist.
	CutoffFreq float64

	// Attenuation is the desired stopband attenuation in dB.
	Attenuation float64

	// Gain is the passband gain.
	Gain float64
}

// Validate checks if filter parameters are valid.
func (fp *FilterParams) Validate() error {
	if fp.NumTaps < minFilterTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", fp.NumTaps, minFilterTaps)
	}

	if fp.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", fp.NumTaps, maxFilterTaps)
	}

	if fp.CutoffFreq <= 0 || fp.CutoffFreq >= 0.5 {
		return fmt.Errorf("%w: normalized %f (must be in (0, 0.5))", ErrInvalidCutoff, fp.CutoffFreq)
	}

	if fp.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", fp.Attenuation)
	}

	if fp.Gain <= 0 {
		return fmt.Errorf("invalid gain: %f (must be positive)", fp.Gain)
	}

	return nil
}

// DesignLowPassFilter designs a Kaiser-windowed sinc FIR normalized to
// params.Gain at DC.
func DesignLowPassFilter(params FilterParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ops := simdops.Float64Ops()
	window := KaiserWindow(params.NumTaps, mathutil.KaiserBeta(params.Attenuation))

	coeffs := make([]float64, params.NumTaps)
	center := float64(params.NumTaps-1) / windowNormalizationFactor

	for n := range params.NumTaps {
		x := float64(n) - center

		// sin(2πfc·x) / (πx), which tends to 2fc at the center tap.
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = windowNormalizationFactor * params.CutoffFreq
		} else {
			arg := windowNormalizationFactor * sincPiMultiplier * params.CutoffFreq * x
			sinc = math.Sin(arg) / (sincPiMultiplier * x)
		}

		coeffs[n] = sinc * window[n]
	}

	if sum := ops.Sum(coeffs); math.Abs(sum) > sincZeroThreshold {
		ops.Scale(coeffs, coeffs, params.Gain/sum)
	}

	return coeffs, nil
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64
}

// ComputeFrequencyResponse evaluates the DTFT magnitude of a FIR at
// numPoints frequencies from DC up to Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = 512
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(windowNormalizationFactor*numPoints)
		response.Frequencies[k] = freq

		var re, im float64
		omega := windowNormalizationFactor * sincPiMultiplier * freq
		for n, h := range coeffs {
			angle := omega * float64(n)
			re += h * math.Cos(angle)
			im -= h * math.Sin(angle)
		}

		response.Magnitude[k] = math.Hypot(re, im)
	}

	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0
	)

	return dbMultiplier * math.Log10(math.Max(magnitude, minMagnitude))
}

// Kaiser is the windowed-sinc strategy. The kernel is applied circularly so
// the filtered cycle stays seamless at its wrap point.
type Kaiser struct {
	attenuation float64
}

// NewKaiser creates the Kaiser FIR strategy.
func NewKaiser() *Kaiser {
	return &Kaiser{attenuation: kaiserAttenuation}
}

// Name implements LowPass.
func (*Kaiser) Name() string { return KindKaiser.String() }

// LowPass implements LowPass.
func (k *Kaiser) LowPass(buf []float64, cutoff float64) ([]float64, error) {
	if err := checkInput(buf, cutoff); err != nil {
		return nil, err
	}
	n := len(buf)
	if belowMinimum(n, cutoff) {
		return sine(n), nil
	}
	if cutoff >= 1 {
		out := make([]float64, n)
		copy(out, buf)
		return out, nil
	}

	// Normalized to the sample rate, so Nyquist is 0.5.
	fc := cutoff / windowNormalizationFactor
	taps := mathutil.EstimateFilterLength(k.attenuation, fc*kaiserTransitionRatio)

	// A kernel longer than the cycle would wrap onto itself.
	if taps >= n {
		taps = n - 1
		if taps%2 == 0 {
			taps--
		}
	}

	kernel, err := DesignLowPassFilter(FilterParams{
		NumTaps:     taps,
		CutoffFreq:  fc,
		Attenuation: k.attenuation,
		Gain:        kaiserGain,
	})
	if err != nil {
		return nil, err
	}

	return circularConvolve(buf, kernel), nil
}

// circularConvolve applies a symmetric odd-length kernel to one period of
// a periodic signal, keeping the output aligned with the input.
func circularConvolve(buf, kernel []float64) []float64 {
	n := len(buf)
	half := (len(kernel) - 1) / 2

	extended := make([]float64, n+len(kernel)-1)
	copy(extended, buf[n-half:])
	copy(extended[half:], buf)
	copy(extended[half+n:], buf[:half])

	out := make([]float64, n)
	simdops.Float64Ops().ConvolveValid(out, extended, kernel)
	return out
}
