package wavetable

// NewDefaultEngine creates an engine with the default configuration at
// sampleRate and the built-in "perfect" bank loaded.
func NewDefaultEngine(sampleRate float64) (*Engine, error) {
	config := DefaultConfig(sampleRate)
	e, err := NewEngine(&config)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddBuiltinBank(BankPerfect); err != nil {
		return nil, err
	}
	return e, nil
}

// BuildPyramid builds one pyramid from raw with the default configuration
// and the given filter. It is a shortcut for build-time tools.
func BuildPyramid(name string, raw RawWaveform, kind FilterKind) (*Pyramid, error) {
	config := DefaultConfig(RateDAT)
	config.Filter = kind
	config.WaveformLength = len(raw)

	e, err := NewEngine(&config)
	if err != nil {
		return nil, err
	}
	return e.BuildPyramid(Source{Name: name, Raw: raw})
}
