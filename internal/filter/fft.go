package filter

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT is the brick-wall strategy. It transforms the cycle, clears every bin
// above the cutoff and transforms back.
type FFT struct{}

// NewFFT creates the FFT strategy.
func NewFFT() *FFT {
	return &FFT{}
}

// Name implements LowPass.
func (*FFT) Name() string { return KindFFT.String() }

// LowPass implements LowPass.
//
// The inverse transform reuses the forward one: swapping real and imaginary
// parts before and after a forward FFT yields N times the inverse.
func (*FFT) LowPass(buf []float64, cutoff float64) ([]float64, error) {
	if err := checkInput(buf, cutoff); err != nil {
		return nil, err
	}
	n := len(buf)
	if belowMinimum(n, cutoff) {
		return sine(n), nil
	}

	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, x := range buf {
		seq[i] = complex(x, 0)
	}
	coeffs := fft.Coefficients(nil, seq)

	// Clear positive and negative frequencies alike so the result stays real.
	keep := int(cutoff * float64(n) / windowNormalizationFactor)
	for k := keep + 1; k < n-keep; k++ {
		coeffs[k] = 0
	}

	swap(coeffs)
	fft.Coefficients(seq, coeffs)
	swap(seq)

	out := make([]float64, n)
	scale := 1 / float64(n)
	for i, c := range seq {
		out[i] = real(c) * scale
	}
	return out, nil
}

func swap(s []complex128) {
	for i, c := range s {
		s[i] = complex(imag(c), real(c))
	}
}
