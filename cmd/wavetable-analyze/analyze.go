package main

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-wavetable/internal/engine"
	"github.com/tphakala/go-wavetable/internal/filter"
	"github.com/tphakala/go-wavetable/internal/mathutil"
)

const (
	kaiserAttenuation     = 96.0
	kaiserTransitionRatio = 0.5
)

// levelReport summarizes the spectrum of one pyramid level.
type levelReport struct {
	level  int
	length int
	cutoff float64
	keeps  int // highest harmonic the level is meant to keep

	highest   int     // highest harmonic above the floor
	leakageDB float64 // loudest harmonic above keeps
}

// analyzePyramid builds raw with lp and measures every level.
func analyzePyramid(lp filter.LowPass, raw []uint16, floorDB float64) ([]levelReport, error) {
	b, err := engine.NewBuilder(engine.BuilderConfig{Filter: lp})
	if err != nil {
		return nil, err
	}
	levels, err := b.Build(raw)
	if err != nil {
		return nil, err
	}

	floor := math.Pow(10, floorDB/20)
	reports := make([]levelReport, len(levels))
	for i, spec := range b.Levels() {
		cycle := make([]float64, len(levels[i]))
		engine.Dequantize(cycle, levels[i])
		mags := harmonics(cycle)

		r := levelReport{
			level:     spec.Index,
			length:    spec.Length,
			cutoff:    spec.Cutoff,
			keeps:     spec.MaxHarmonic(b.WorkingLength()),
			leakageDB: math.Inf(-1),
		}
		for k := 1; k < len(mags); k++ {
			if mags[k] > floor {
				r.highest = k
			}
		}
		if r.keeps+1 < len(mags) {
			r.leakageDB = filter.MagnitudeDB(floats.Max(mags[r.keeps+1:]))
		}
		reports[i] = r
	}
	return reports, nil
}

// harmonics returns per-harmonic magnitudes scaled so that a unit sine
// reads 1.
func harmonics(cycle []float64) []float64 {
	n := len(cycle)
	coeffs := fourier.NewFFT(n).Coefficients(nil, cycle)
	mags := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mags[k] = cmplx.Abs(c) * 2 / float64(n)
	}
	return mags
}

// kernelReport describes the Kaiser kernel used for one level.
type kernelReport struct {
	level      int
	taps       int
	dcGain     float64
	stopbandDB float64
}

// analyzeKaiser designs the kernel of every filtered level the way the
// Kaiser strategy does and measures it.
func analyzeKaiser(workingLength int) []kernelReport {
	var reports []kernelReport
	for _, spec := range engine.DefaultLevels() {
		// Levels this narrow are synthesized as sines.
		if spec.MaxHarmonic(workingLength) < 2 {
			continue
		}
		fc := spec.Cutoff / 2
		taps := mathutil.EstimateFilterLength(kaiserAttenuation, fc*kaiserTransitionRatio)
		if taps >= workingLength {
			taps = workingLength - 1
		}

		coeffs, err := filter.DesignLowPassFilter(filter.FilterParams{
			NumTaps:     taps,
			CutoffFreq:  fc,
			Attenuation: kaiserAttenuation,
			Gain:        1,
		})
		if err != nil {
			continue
		}

		resp := filter.ComputeFrequencyResponse(coeffs, responsePoints)
		stop := math.Inf(-1)
		for i, f := range resp.Frequencies {
			if f >= fc*(1+kaiserTransitionRatio) {
				stop = math.Max(stop, filter.MagnitudeDB(resp.Magnitude[i]))
			}
		}

		reports = append(reports, kernelReport{
			level:      spec.Index,
			taps:       len(coeffs),
			dcGain:     floats.Sum(coeffs),
			stopbandDB: stop,
		})
	}
	return reports
}
