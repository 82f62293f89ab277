package filter

import "math"

const (
	// Filter design constants
	minFilterTaps = 3
	maxFilterTaps = 8191

	// Window normalization
	windowNormalizationFactor = 2.0

	// Sinc function constants
	sincCenterTap     = 1.0
	sincPiMultiplier  = math.Pi
	sincZeroThreshold = 1e-10
)

// Below this many harmonics every strategy synthesizes a sine instead of
// filtering. At such low cutoffs the resonant filter loses numerical
// precision and the FIR would need more taps than the cycle holds.
const minCutoffHarmonics = 2.0

// Cascaded SVF parameters.
const (
	cascadeQ = 0.7

	// Passes that only settle the filter state on the periodic input.
	cascadePrimingPasses = 3

	// The filter runs at this multiple of the buffer length, which places
	// the cutoff an extra octave below the requested fraction of Nyquist.
	cascadeRateMultiplier = 2.0
)

// Kaiser strategy parameters.
const (
	kaiserAttenuation = 96.0 // dB, one bit below the 16-bit floor
	kaiserGain        = 1.0

	// Transition band width relative to the cutoff frequency.
	kaiserTransitionRatio = 0.5
)
