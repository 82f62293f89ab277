package asset

import (
	"fmt"
	"math"

	"github.com/tphakala/go-wavetable/internal/engine"
	"github.com/tphakala/go-wavetable/internal/simdops"
)

// Shape selects a seed waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSaw
	ShapeTriangle
	ShapeSquare
	ShapePulse
)

var shapeNames = map[Shape]string{
	ShapeSine:     "sine",
	ShapeSaw:      "saw",
	ShapeTriangle: "triangle",
	ShapeSquare:   "square",
	ShapePulse:    "pulse",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape parses a shape name as printed by Shape.String.
func ParseShape(name string) (Shape, error) {
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrParameter, name)
}

// coefficients returns the sine and cosine amplitude of harmonic k >= 1.
type coefficients func(k int) (sin, cos float64)

func shapeCoefficients(shape Shape, width float64) (coefficients, error) {
	switch shape {
	case ShapeSine:
		return func(k int) (float64, float64) {
			if k == 1 {
				return 1, 0
			}
			return 0, 0
		}, nil
	case ShapeSaw:
		return func(k int) (float64, float64) {
			sign := 1.0
			if k%2 == 0 {
				sign = -1
			}
			return sign / float64(k), 0
		}, nil
	case ShapeTriangle:
		return func(k int) (float64, float64) {
			if k%2 == 0 {
				return 0, 0
			}
			sign := 1.0
			if (k/2)%2 == 1 {
				sign = -1
			}
			return sign / float64(k*k), 0
		}, nil
	case ShapeSquare:
		return func(k int) (float64, float64) {
			if k%2 == 0 {
				return 0, 0
			}
			return 1 / float64(k), 0
		}, nil
	case ShapePulse:
		if !(width > 0 && width < 1) {
			return nil, fmt.Errorf("%w: pulse width %g outside (0, 1)", ErrParameter, width)
		}
		return func(k int) (float64, float64) {
			return 0, math.Sin(math.Pi*float64(k)*width) / float64(k)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape %d", ErrParameter, int(shape))
	}
}

// Generate synthesizes one band-limited cycle of length samples containing
// every harmonic the length can represent. width is the duty cycle of
// ShapePulse and ignored otherwise. The result is peak-normalized.
func Generate(shape Shape, length int, width float64) ([]uint16, error) {
	if length < 4 {
		return nil, fmt.Errorf("%w: length %d too short", ErrParameter, length)
	}
	coeff, err := shapeCoefficients(shape, width)
	if err != nil {
		return nil, err
	}

	harmonics := (length - 1) / 2
	sinAmps := make([]float64, harmonics)
	cosAmps := make([]float64, harmonics)
	for k := 1; k <= harmonics; k++ {
		sinAmps[k-1], cosAmps[k-1] = coeff(k)
	}

	ops := simdops.Float64Ops()
	sinBasis := make([]float64, harmonics)
	cosBasis := make([]float64, harmonics)
	cycle := make([]float64, length)
	for i := range cycle {
		theta := 2 * math.Pi * float64(i) / float64(length)
		for k := 1; k <= harmonics; k++ {
			sinBasis[k-1], cosBasis[k-1] = math.Sincos(theta * float64(k))
		}
		cycle[i] = ops.DotProductUnsafe(sinAmps, sinBasis) + ops.DotProductUnsafe(cosAmps, cosBasis)
	}

	// A pulse carries DC; remove it so the cycle swings around equilibrium.
	if mean := ops.Sum(cycle) / float64(length); mean != 0 {
		for i := range cycle {
			cycle[i] -= mean
		}
	}

	if err := engine.Normalize(cycle); err != nil {
		return nil, fmt.Errorf("%s: %w", shape, err)
	}

	raw := make([]uint16, length)
	engine.Quantize(raw, cycle)
	return raw, nil
}

// Fit converts a raw cycle of any length to length samples by periodic
// linear interpolation.
func Fit(raw []uint16, length int) []uint16 {
	if len(raw) == length {
		out := make([]uint16, length)
		copy(out, raw)
		return out
	}

	cycle := make([]float64, len(raw))
	engine.Dequantize(cycle, raw)
	resized := engine.Resize(cycle, length)

	out := make([]uint16, length)
	engine.Quantize(out, resized)
	return out
}
