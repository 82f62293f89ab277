package filter

import (
	"math"
)

// SVF is a zero-delay-feedback state variable low-pass (trapezoidal
// integrators, Simper topology).
type SVF struct {
	g float64 // pre-warped frequency coefficient
	k float64 // damping, 1/Q

	ic1eq float64
	ic2eq float64
}

// NewSVF creates a low-pass SVF tuned to frequency at sampleRate.
func NewSVF(sampleRate, frequency, q float64) *SVF {
	return &SVF{
		g: math.Tan(math.Pi * frequency / sampleRate),
		k: 1 / q,
	}
}

// Reset clears the integrator state.
func (s *SVF) Reset() {
	s.ic1eq = 0
	s.ic2eq = 0
}

// Tick filters one sample and returns the low-pass output.
func (s *SVF) Tick(input float64) float64 {
	a1 := 1 / (1 + s.g*(s.g+s.k))
	a2 := s.g * a1
	a3 := s.g * a2

	v3 := input - s.ic2eq
	v1 := a1*s.ic1eq + a2*v3
	v2 := s.ic2eq + a2*s.ic1eq + a3*v3

	s.ic1eq = 2*v1 - s.ic1eq
	s.ic2eq = 2*v2 - s.ic2eq

	return v2
}

// Pass runs buf through the filter, discarding the output.
func (s *SVF) Pass(buf []float64) {
	for _, x := range buf {
		s.Tick(x)
	}
}

// Process filters buf in place.
func (s *SVF) Process(buf []float64) {
	for i, x := range buf {
		buf[i] = s.Tick(x)
	}
}

// Cascade is the resonant strategy. The cycle is fed through one SVF
// several times so the filter settles into its periodic steady state, then
// a final pass captures the output.
type Cascade struct {
	q       float64
	priming int
}

// NewCascade creates the cascaded SVF strategy.
func NewCascade() *Cascade {
	return &Cascade{q: cascadeQ, priming: cascadePrimingPasses}
}

// Name implements LowPass.
func (*Cascade) Name() string { return KindCascade.String() }

// LowPass implements LowPass.
func (c *Cascade) LowPass(buf []float64, cutoff float64) ([]float64, error) {
	if err := checkInput(buf, cutoff); err != nil {
		return nil, err
	}
	n := len(buf)
	if belowMinimum(n, cutoff) {
		return sine(n), nil
	}

	rate := float64(n) * cascadeRateMultiplier
	svf := NewSVF(rate, cutoff*float64(n)/windowNormalizationFactor, c.q)
	for range c.priming {
		svf.Pass(buf)
	}

	out := make([]float64, n)
	copy(out, buf)
	svf.Process(out)
	return out, nil
}
