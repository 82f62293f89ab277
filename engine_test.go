package wavetable

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-wavetable/internal/asset"
	"github.com/tphakala/go-wavetable/internal/store"
)

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	config := DefaultConfig(RateDAT)
	if mutate != nil {
		mutate(&config)
	}
	e, err := NewEngine(&config)
	require.NoError(t, err)
	return e
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"cd rate", func(c *Config) { c.SampleRate = RateCD }, false},
		{"driver reported rate", func(c *Config) { c.SampleRate = 47999.7 }, false},
		{"zero rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"huge rate", func(c *Config) { c.SampleRate = 1e7 }, true},
		{"cascade filter", func(c *Config) { c.Filter = FilterCascade }, false},
		{"kaiser filter", func(c *Config) { c.Filter = FilterKaiser }, false},
		{"unknown filter", func(c *Config) { c.Filter = FilterKind(42) }, true},
		{"working 4096", func(c *Config) { c.WorkingLength = 4096 }, false},
		{"working not power of two", func(c *Config) { c.WorkingLength = 3000 }, true},
		{"working too short", func(c *Config) { c.WorkingLength = 1024 }, true},
		{"waveform too short", func(c *Config) { c.WaveformLength = 1 }, true},
		{"no voices", func(c *Config) { c.Voices = 0 }, true},
		{"too many voices", func(c *Config) { c.Voices = maxVoices + 1 }, true},
		{"max voices", func(c *Config) { c.Voices = maxVoices }, false},
		{"block too small", func(c *Config) { c.BlockSize = 1 }, true},
		{"block too large", func(c *Config) { c.BlockSize = maxBlockSize + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig(RateDAT)
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewEngineNilConfig(t *testing.T) {
	_, err := NewEngine(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseFilterKind(t *testing.T) {
	for _, kind := range []FilterKind{FilterFFT, FilterCascade, FilterKaiser} {
		parsed, err := ParseFilterKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseFilterKind("butterworth")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "FilterKind(9)", FilterKind(9).String())
}

func TestBuildPyramid(t *testing.T) {
	e := newTestEngine(t, nil)
	raw, err := asset.Generate(asset.ShapeSaw, e.Config().WaveformLength, 0)
	require.NoError(t, err)

	p, err := e.BuildPyramid(Source{Name: "saw", Raw: raw})
	require.NoError(t, err)

	assert.Equal(t, "saw", p.Name)
	require.Len(t, p.Levels, LevelCount)
	assert.Len(t, p.Levels[0], 64)
	assert.Len(t, p.Levels[LevelCount-1], 1024)

	again, err := e.BuildPyramid(Source{Name: "saw", Raw: raw})
	require.NoError(t, err)
	assert.Equal(t, p.Levels, again.Levels, "building must be deterministic")
}

func TestBuildPyramidWrongLength(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.BuildPyramid(Source{Name: "short", Raw: make(RawWaveform, 10)})
	assert.ErrorIs(t, err, ErrInvalidWaveform)
}

func TestBuildPyramidConvenience(t *testing.T) {
	raw, err := asset.Generate(asset.ShapeSquare, 256, 0)
	require.NoError(t, err)

	for _, kind := range []FilterKind{FilterFFT, FilterCascade, FilterKaiser} {
		t.Run(kind.String(), func(t *testing.T) {
			p, err := BuildPyramid("square", raw, kind)
			require.NoError(t, err)
			assert.Len(t, p.Levels, LevelCount)
		})
	}
}

// TestAddBankParallel checks that concurrent and sequential builds of the
// same bank are bit-identical.
func TestAddBankParallel(t *testing.T) {
	seq := newTestEngine(t, func(c *Config) { c.EnableParallel = false })
	par := newTestEngine(t, func(c *Config) { c.EnableParallel = true })

	bankSeq, err := seq.AddBuiltinBank(BankPulse)
	require.NoError(t, err)
	bankPar, err := par.AddBuiltinBank(BankPulse)
	require.NoError(t, err)

	require.Equal(t, bankSeq.Len(), bankPar.Len())
	for i := range bankSeq.Len() {
		a, err := bankSeq.Pyramid(i)
		require.NoError(t, err)
		b, err := bankPar.Pyramid(i)
		require.NoError(t, err)
		assert.Equal(t, a, b, "pyramid %d", i)
	}
}

func TestAddBankErrors(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.AddBank("empty", nil)
	require.ErrorIs(t, err, ErrInvalidWaveform)

	good := make(RawWaveform, e.Config().WaveformLength)
	for i := range good {
		good[i] = Sample(i * 100)
	}
	_, err = e.AddBank("mixed", []Source{
		{Name: "good", Raw: good},
		{Name: "bad", Raw: make(RawWaveform, 3)},
	})
	require.ErrorIs(t, err, ErrInvalidWaveform)

	_, err = e.Bank("mixed")
	assert.ErrorIs(t, err, ErrUnknownBank, "failed banks must not be registered")
}

func TestAddBankFlatWaveform(t *testing.T) {
	e := newTestEngine(t, nil)
	flat := make(RawWaveform, e.Config().WaveformLength)
	for i := range flat {
		flat[i] = Equilibrium
	}
	_, err := e.AddBank("flat", []Source{{Name: "flat", Raw: flat}})
	assert.ErrorIs(t, err, ErrInvalidWaveform)
}

func TestBuiltinBanks(t *testing.T) {
	e := newTestEngine(t, nil)

	perfect, err := e.AddBuiltinBank(BankPerfect)
	require.NoError(t, err)
	assert.Equal(t, BankPerfect, perfect.Name())
	assert.Equal(t, 4, perfect.Len())
	assert.Equal(t, 1, perfect.Index("sine"))
	assert.Equal(t, -1, perfect.Index("noise"))

	_, err = e.AddBuiltinBank(BankPulse)
	require.NoError(t, err)
	assert.Equal(t, []string{BankPerfect, BankPulse}, e.Banks())

	_, err = e.AddBuiltinBank("organ")
	assert.ErrorIs(t, err, ErrUnknownBank)

	_, err = perfect.Pyramid(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = perfect.Pyramid(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestAddBankReplaces(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.AddBuiltinBank(BankPerfect)
	require.NoError(t, err)
	_, err = e.AddBuiltinBank(BankPerfect)
	require.NoError(t, err)
	assert.Equal(t, []string{BankPerfect}, e.Banks())
}

func TestSaveLoadBank(t *testing.T) {
	src := newTestEngine(t, nil)
	orig, err := src.AddBuiltinBank(BankPerfect)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.SaveBank(&buf, BankPerfect))

	dst := newTestEngine(t, func(c *Config) { c.SampleRate = RateCD })
	loaded, err := dst.LoadBank(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.Name(), loaded.Name())
	require.Equal(t, orig.Len(), loaded.Len())
	for i := range orig.Len() {
		a, _ := orig.Pyramid(i)
		b, _ := loaded.Pyramid(i)
		assert.Equal(t, a, b)
	}

	inst, err := dst.NewInstrument(BankPerfect)
	require.NoError(t, err)
	inst.SetFrequency(1000)
	out := make([]Sample, 128)
	inst.Populate(out)
	assert.NotEqual(t, out[0], out[10])
}

func TestSaveUnknownBank(t *testing.T) {
	e := newTestEngine(t, nil)
	var buf bytes.Buffer
	assert.ErrorIs(t, e.SaveBank(&buf, "missing"), ErrUnknownBank)
}

func TestLoadBankWrongLevelCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, store.Write(&buf, store.Bank{
		Name: "short",
		Pyramids: []store.Pyramid{
			{Name: "two", Levels: [][]uint16{{1, 2}, {3, 4}}},
		},
	}))

	e := newTestEngine(t, nil)
	_, err := e.LoadBank(&buf)
	assert.ErrorIs(t, err, ErrInvalidWaveform)
}

func TestLoadBankCorrupt(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.LoadBank(bytes.NewReader([]byte("WTBK garbage")))
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestNewDefaultEngine(t *testing.T) {
	e, err := NewDefaultEngine(RateCD)
	require.NoError(t, err)
	assert.Equal(t, []string{BankPerfect}, e.Banks())

	_, err = NewDefaultEngine(-1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func BenchmarkAddBank(b *testing.B) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			config := DefaultConfig(RateDAT)
			config.EnableParallel = parallel
			e, err := NewEngine(&config)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for range b.N {
				if _, err := e.AddBuiltinBank(BankPerfect); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
