package synth

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampWaveform has a local upward slope at phase zero.
var rampWaveform = []uint16{8, 10, 12, 14, 0, 2, 4, 6}

func newTestWavetable(t testing.TB, levels [][]uint16, sampleRate float64) *Wavetable {
	t.Helper()
	w, err := NewWavetable(&Pyramid{Name: "test", Levels: levels}, sampleRate)
	require.NoError(t, err)
	return w
}

// stepPyramid returns n levels where level i is a constant 1000*(i+1).
func stepPyramid(n int) [][]uint16 {
	levels := make([][]uint16, n)
	for i := range levels {
		levels[i] = []uint16{uint16(1000 * (i + 1)), uint16(1000 * (i + 1))}
	}
	return levels
}

func TestFactorAndMix(t *testing.T) {
	tests := []struct {
		name      string
		frequency float32
		nyquist   float32
		levels    int
		wantLevel int
		wantMix   float32
	}{
		{"top octave", 7, 8, 11, 0, 0.75},
		{"second octave", 3, 8, 11, 1, 0.5},
		{"level boundary", 4, 8, 11, 0, 0},
		{"at nyquist", 8, 8, 11, 0, 1},
		{"above nyquist", 100, 8, 11, 0, 1},
		{"zero", 0, 8, 11, 10, 0},
		{"negative", -5, 8, 11, 10, 0},
		{"below last level", 0.001, 8, 11, 10, 0},
		{"single level", 1, 4, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, mix := factorAndMix(tt.frequency, tt.nyquist, tt.levels)
			assert.Equal(t, tt.wantLevel, level)
			assert.InDelta(t, tt.wantMix, mix, 1e-6)
		})
	}

	level, mix := factorAndMix(float32(math.NaN()), 8, 11)
	assert.Equal(t, 10, level)
	assert.Zero(t, mix)
}

func TestFactorAndMix_MixInRangeAndContinuous(t *testing.T) {
	const nyquist = 24000
	w := newTestWavetable(t, stepPyramid(11), 2*nyquist)

	// Level 0 fades into equilibrium, far from the step values; stop below it.
	prev := w.Band(1).Read(0)
	for f := float32(1); f < nyquist/2; f *= 1.001 {
		band := w.Band(f)
		require.GreaterOrEqual(t, band.Mix(), float32(0), "f=%v", f)
		require.LessOrEqual(t, band.Mix(), float32(1), "f=%v", f)
		require.Less(t, band.Level(), 11)

		// Output of the constant step pyramid moves smoothly with frequency,
		// including across level boundaries.
		v := band.Read(0)
		assert.InDelta(t, float64(prev), float64(v), 12, "jump at f=%v", f)
		prev = v
	}

	for f := float32(nyquist / 2); f <= 1.5*nyquist; f += 100 {
		band := w.Band(f)
		assert.Equal(t, 0, band.Level())
		assert.GreaterOrEqual(t, band.Mix(), float32(0))
		assert.LessOrEqual(t, band.Mix(), float32(1))
	}
}

func TestCrossFade(t *testing.T) {
	assert.Equal(t, float32(8), crossFade(8, 4, 0))
	assert.Equal(t, float32(4), crossFade(8, 4, 1))
	assert.Equal(t, float32(6), crossFade(8, 4, 0.5))
	assert.InDelta(t, 12.0, float64(crossFade(10, 20, 0.2)), 1e-5)
}

func TestCrossFade_PanicsOutsideRange(t *testing.T) {
	assert.Panics(t, func() { crossFade(1, 2, -0.01) })
	assert.Panics(t, func() { crossFade(1, 2, 1.01) })
	assert.Panics(t, func() { crossFade(1, 2, float32(math.NaN())) })
}

func TestBand_ReadFollowsSlope(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{rampWaveform}, 8)
	band := w.Band(1)

	assert.Less(t, band.Read(0), band.Read(0.1))
	assert.Equal(t, uint16(8), band.Read(0))
}

func TestBand_ReadWrapsAtEnd(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{rampWaveform}, 8)
	band := w.Band(1)

	// Halfway between the last sample (6) and the first (8).
	assert.Equal(t, uint16(7), band.Read(15.0/16))
	assert.NotPanics(t, func() { band.Read(math.Nextafter32(1, 0)) })
}

func TestBand_FadesIntoEquilibrium(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{{0, 0}, {0, 0}}, 8)

	band := w.Band(4)
	assert.Equal(t, 0, band.Level())
	assert.Equal(t, uint16(1<<15), band.Read(0.3), "at Nyquist only equilibrium remains")

	band = w.Band(3)
	assert.Equal(t, uint16(1<<14), band.Read(0.3))
}

func TestNewWavetable_Invalid(t *testing.T) {
	_, err := NewWavetable(&Pyramid{}, 48000)
	assert.ErrorIs(t, err, ErrInvalidPyramid)

	_, err = NewWavetable(&Pyramid{Levels: [][]uint16{{1}, {}}}, 48000)
	assert.ErrorIs(t, err, ErrInvalidPyramid)

	_, err = NewWavetable(nil, 48000)
	assert.ErrorIs(t, err, ErrInvalidPyramid)

	_, err = NewWavetable(&Pyramid{Levels: [][]uint16{{1}}}, 0)
	assert.Error(t, err)
}

func TestOscillator_Populate(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{rampWaveform}, 8)
	osc := NewOscillator(w)
	osc.SetFrequency(1)

	buf := make([]uint16, 8)
	osc.Populate(buf)

	assert.Equal(t, rampWaveform, buf, "one cycle per 8 samples reads every stored sample")
	assert.InDelta(t, 0, float64(osc.Phase()), 1e-6)
}

func TestOscillator_ZeroFrequencyIsConstant(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{rampWaveform}, 8)
	osc := NewOscillator(w)

	buf := make([]uint16, 64)
	require.NotPanics(t, func() { osc.Populate(buf) })

	for _, v := range buf {
		assert.Equal(t, buf[0], v)
	}
	assert.Zero(t, osc.Phase())
}

func TestOscillator_SetFrequencyClamps(t *testing.T) {
	w := newTestWavetable(t, [][]uint16{rampWaveform}, 48000)
	osc := NewOscillator(w)

	osc.SetFrequency(440)
	assert.Equal(t, float32(440), osc.Frequency())

	osc.SetFrequency(-3)
	assert.Zero(t, osc.Frequency())

	osc.SetFrequency(float32(math.NaN()))
	assert.Zero(t, osc.Frequency())

	osc.SetFrequency(1e6)
	assert.Equal(t, float32(24000), osc.Frequency())
}

func TestOscillator_PhaseStaysInUnitRange(t *testing.T) {
	w := newTestWavetable(t, stepPyramid(11), 48000)
	osc := NewOscillator(w)
	osc.SetFrequency(24000)

	buf := make([]uint16, 1000)
	for range 10 {
		osc.Populate(buf)
		assert.GreaterOrEqual(t, osc.Phase(), float32(0))
		assert.Less(t, osc.Phase(), float32(1))
	}
}

func TestOscillator_SetWavetable(t *testing.T) {
	a := newTestWavetable(t, [][]uint16{{100, 100}}, 8)
	b := newTestWavetable(t, [][]uint16{{200, 200}}, 8)
	osc := NewOscillator(a)

	buf := make([]uint16, 4)
	osc.Populate(buf)
	assert.Equal(t, uint16(100), buf[0])

	osc.SetWavetable(nil)
	assert.Same(t, a, osc.Wavetable())

	osc.SetWavetable(b)
	osc.Populate(buf)
	assert.Equal(t, uint16(200), buf[0])
}

// Run with -race: control writes and render reads share only atomic cells.
func TestOscillator_ConcurrentControl(t *testing.T) {
	a := newTestWavetable(t, stepPyramid(11), 48000)
	b := newTestWavetable(t, stepPyramid(11), 48000)
	osc := NewOscillator(a)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 2000 {
			osc.SetFrequency(float32(i))
			if i%100 == 0 {
				osc.SetWavetable(b)
			}
		}
	}()

	buf := make([]uint16, 64)
	for range 500 {
		osc.Populate(buf)
	}
	wg.Wait()
}

func TestOscillator_PopulateDoesNotAllocate(t *testing.T) {
	w := newTestWavetable(t, stepPyramid(11), 48000)
	osc := NewOscillator(w)
	osc.SetFrequency(440)
	buf := make([]uint16, 256)

	allocs := testing.AllocsPerRun(100, func() { osc.Populate(buf) })
	assert.Zero(t, allocs)
}

func BenchmarkOscillatorPopulate(b *testing.B) {
	w := newTestWavetable(b, stepPyramid(11), 48000)
	osc := NewOscillator(w)
	osc.SetFrequency(440)
	buf := make([]uint16, 256)

	b.ReportAllocs()
	for b.Loop() {
		osc.Populate(buf)
	}
}
