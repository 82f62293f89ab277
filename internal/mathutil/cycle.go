package mathutil

import "math"

// SineCycle fills dst with exactly one period of a unit sine starting at
// phase zero.
func SineCycle(dst []float64) {
	n := float64(len(dst))
	for i := range dst {
		dst[i] = math.Sin(twoPi * float64(i) / n)
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// WrapIndex maps any integer onto [0, n).
func WrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
