package synth

import "fmt"

// Band is a view of two adjacent pyramid levels and the cross-fade between
// them. It is computed per buffer and never stored.
type Band struct {
	level     int
	lower     []uint16
	lowerLen  float32
	higher    []uint16
	higherLen float32
	mix       float32
}

// Level returns the index of the lower level.
func (b Band) Level() int { return b.level }

// Mix returns the weight of the higher level in [0, 1].
func (b Band) Mix() float32 { return b.mix }

// Read returns the cross-faded sample at phase in [0, 1). Both levels are
// interpolated and mixed in float32; only the result is truncated.
func (b Band) Read(phase float32) uint16 {
	x := interpolate(b.lower, b.lowerLen, phase)
	y := interpolate(b.higher, b.higherLen, phase)
	return uint16(crossFade(x, y, b.mix))
}

// interpolate reads data at phase by linear interpolation, wrapping from the
// last sample to the first.
func interpolate(data []uint16, length, phase float32) float32 {
	n := len(data)
	position := phase * length
	index := int(position)
	remainder := position - float32(index)
	if index >= n {
		index -= n
	}
	next := index + 1
	if next == n {
		next = 0
	}

	value := float32(data[index])
	return value + (float32(data[next])-value)*remainder
}

// crossFade mixes a into b. mix outside [0, 1] is a programming error.
func crossFade(a, b, mix float32) float32 {
	if !(mix >= 0 && mix <= 1) {
		panic(fmt.Sprintf("synth: cross-fade mix %v outside [0, 1]", mix))
	}
	return a*(1-mix) + b*mix
}
