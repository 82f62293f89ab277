package wavetable

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstrument(t *testing.T, voices int) (*Engine, *Instrument) {
	t.Helper()
	e := newTestEngine(t, func(c *Config) {
		c.Voices = voices
		c.BlockSize = 64
	})
	_, err := e.AddBuiltinBank(BankPerfect)
	require.NoError(t, err)
	inst, err := e.NewInstrument(BankPerfect)
	require.NoError(t, err)
	return e, inst
}

func TestNewInstrumentUnknownBank(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.NewInstrument("missing")
	assert.ErrorIs(t, err, ErrUnknownBank)
}

func TestInstrumentSilentAtZero(t *testing.T) {
	_, inst := newTestInstrument(t, 1)

	out := make([]Sample, 256)
	inst.Populate(out)
	for i := 1; i < len(out); i++ {
		require.Equal(t, out[0], out[i], "zero frequency must not advance the phase")
	}
}

func TestInstrumentFrequencyClamp(t *testing.T) {
	_, inst := newTestInstrument(t, 1)
	nyquist := float32(RateDAT / 2)

	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"normal", 440, 440},
		{"negative", -10, 0},
		{"nan", float32(math.NaN()), 0},
		{"above nyquist", 1e6, nyquist},
		{"nyquist", nyquist, nyquist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst.SetFrequency(tt.in)
			assert.Equal(t, tt.want, inst.Frequency())
		})
	}
}

func TestInstrumentSelectWavetable(t *testing.T) {
	_, inst := newTestInstrument(t, 1)

	require.NoError(t, inst.SelectWavetable(3))
	assert.Equal(t, 3, inst.Selected())

	assert.ErrorIs(t, inst.SelectWavetable(4), ErrIndexOutOfRange)
	assert.ErrorIs(t, inst.SelectWavetable(-1), ErrIndexOutOfRange)
	assert.Equal(t, 3, inst.Selected(), "failed selection keeps the previous one")
}

func TestInstrumentSelectBank(t *testing.T) {
	e, inst := newTestInstrument(t, 1)
	_, err := e.AddBuiltinBank(BankPulse)
	require.NoError(t, err)

	require.NoError(t, inst.SelectWavetable(2))
	require.NoError(t, inst.SelectBank(BankPulse))
	assert.Equal(t, BankPulse, inst.Bank().Name())
	assert.Equal(t, 2, inst.Selected())

	assert.ErrorIs(t, inst.SelectBank("missing"), ErrUnknownBank)
	assert.Equal(t, BankPulse, inst.Bank().Name())
}

func TestInstrumentSelectBankResetsIndex(t *testing.T) {
	e, inst := newTestInstrument(t, 1)

	raw := make(RawWaveform, e.Config().WaveformLength)
	for i := range raw {
		raw[i] = Sample(i * 64)
	}
	_, err := e.AddBank("single", []Source{{Name: "ramp", Raw: raw}})
	require.NoError(t, err)

	require.NoError(t, inst.SelectWavetable(3))
	require.NoError(t, inst.SelectBank("single"))
	assert.Equal(t, 0, inst.Selected())
}

func TestInstrumentVoiceFrequency(t *testing.T) {
	_, inst := newTestInstrument(t, 3)
	assert.Equal(t, 3, inst.Voices())

	require.NoError(t, inst.SetVoiceFrequency(1, 550))
	hz, err := inst.VoiceFrequency(1)
	require.NoError(t, err)
	assert.InDelta(t, 550, hz, 1e-3)

	assert.ErrorIs(t, inst.SetVoiceFrequency(3, 100), ErrIndexOutOfRange)
	_, err = inst.VoiceFrequency(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

// TestInstrumentVoicesAverage checks that identical voices average to the
// single-voice output, across several internal blocks.
func TestInstrumentVoicesAverage(t *testing.T) {
	_, single := newTestInstrument(t, 1)
	_, multi := newTestInstrument(t, 4)

	single.SetFrequency(523.25)
	multi.SetFrequency(523.25)

	want := make([]Sample, 1000)
	got := make([]Sample, 1000)
	single.Populate(want)
	multi.Populate(got)
	assert.Equal(t, want, got)
}

func TestInstrumentDetunedVoicesStayInRange(t *testing.T) {
	_, inst := newTestInstrument(t, 2)
	require.NoError(t, inst.SelectWavetable(3))
	require.NoError(t, inst.SetVoiceFrequency(0, 220))
	require.NoError(t, inst.SetVoiceFrequency(1, 221.5))

	out := make([]Sample, 4096)
	inst.Populate(out)

	lo, hi := out[0], out[0]
	for _, s := range out {
		lo, hi = min(lo, s), max(hi, s)
	}
	assert.Less(t, lo, Equilibrium)
	assert.Greater(t, hi, Equilibrium)
}

func TestInstrumentPopulateFloat32(t *testing.T) {
	for _, voices := range []int{1, 3} {
		_, fixed := newTestInstrument(t, voices)
		_, float := newTestInstrument(t, voices)
		fixed.SetFrequency(880)
		float.SetFrequency(880)

		want := make([]Sample, 300)
		got := make([]float32, 300)
		fixed.Populate(want)
		float.PopulateFloat32(got)

		for i := range want {
			expected := (float32(want[i]) - 32768) / 32768
			require.InDelta(t, expected, got[i], 1e-6, "voices %d sample %d", voices, i)
			require.GreaterOrEqual(t, got[i], float32(-1))
			require.Less(t, got[i], float32(1))
		}
	}
}

func TestInstrumentPopulateNoAllocs(t *testing.T) {
	_, inst := newTestInstrument(t, 4)
	inst.SetFrequency(440)

	buf := make([]Sample, 512)
	fbuf := make([]float32, 512)
	allocs := testing.AllocsPerRun(100, func() {
		inst.Populate(buf)
		inst.PopulateFloat32(fbuf)
	})
	assert.Zero(t, allocs)
}

// TestInstrumentConcurrentControl drives controls from several goroutines
// while rendering. Run with -race.
func TestInstrumentConcurrentControl(t *testing.T) {
	e, inst := newTestInstrument(t, 2)
	_, err := e.AddBuiltinBank(BankPulse)
	require.NoError(t, err)

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for hz := float32(20); ; hz *= 1.01 {
			select {
			case <-done:
				return
			default:
			}
			if hz > 30000 {
				hz = 20
			}
			inst.SetFrequency(hz)
		}
	}()
	go func() {
		defer wg.Done()
		banks := []string{BankPerfect, BankPulse}
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			_ = inst.SelectBank(banks[i%2])
			_ = inst.SelectWavetable(i % 4)
		}
	}()

	buf := make([]Sample, 128)
	for range 500 {
		inst.Populate(buf)
	}
	close(done)
	wg.Wait()
}

func BenchmarkInstrumentPopulate(b *testing.B) {
	for _, voices := range []int{1, 4, 16} {
		config := DefaultConfig(RateDAT)
		config.Voices = voices
		e, err := NewEngine(&config)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := e.AddBuiltinBank(BankPerfect); err != nil {
			b.Fatal(err)
		}
		inst, err := e.NewInstrument(BankPerfect)
		if err != nil {
			b.Fatal(err)
		}
		inst.SetFrequency(440)

		buf := make([]Sample, 256)
		b.Run(fmt.Sprintf("voices=%d", voices), func(b *testing.B) {
			b.SetBytes(int64(len(buf) * 2))
			for range b.N {
				inst.Populate(buf)
			}
		})
	}
}
