// Package engine builds mip pyramids: it converts raw fixed-point cycles to
// floats, filters, normalizes and resizes them per level, and quantizes the
// result back to fixed point.
package engine

// Resize converts one period of a periodic signal to n samples by linear
// interpolation. Interpolation wraps from the last sample to the first, so
// the output is seamless at its loop point.
func Resize(src []float64, n int) []float64 {
	out := make([]float64, n)
	if len(src) == 0 || n == 0 {
		return out
	}

	srcLen := len(src)
	step := float64(srcLen) / float64(n)
	for i := range out {
		position := float64(i) * step
		index := int(position)
		if index >= srcLen {
			index = srcLen - 1
		}
		next := index + 1
		if next == srcLen {
			next = 0
		}
		frac := position - float64(index)
		out[i] = src[index] + (src[next]-src[index])*frac
	}
	return out
}
