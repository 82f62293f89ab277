package engine

import "math"

// Quantize converts normalized floats to fixed point:
// round((x + 1) * 2^15), clamped to the 16-bit range.
func Quantize(dst []uint16, src []float64) {
	for i, x := range src {
		v := math.Round((x + 1) * fixedPointScale)
		switch {
		case v <= 0 || math.IsNaN(v):
			dst[i] = 0
		case v >= maxSample:
			dst[i] = maxSample
		default:
			dst[i] = uint16(v)
		}
	}
}

// Dequantize converts fixed point samples back to floats in [-1, 1).
func Dequantize(dst []float64, src []uint16) {
	for i, s := range src {
		dst[i] = float64(s)/fixedPointScale - 1
	}
}
