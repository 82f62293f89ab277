package wavetable

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavetable/internal/engine"
	"github.com/tphakala/go-wavetable/internal/filter"
	"github.com/tphakala/go-wavetable/internal/mathutil"
	"github.com/tphakala/go-wavetable/internal/synth"
)

// Sample is one fixed-point audio sample: unsigned 16-bit, with
// [Equilibrium] representing zero amplitude.
type Sample = uint16

// Equilibrium is the sample value of silence.
const Equilibrium Sample = engine.Equilibrium

// LevelCount is the number of levels in every pyramid.
const LevelCount = engine.LevelCount

// RawWaveform is one full cycle of a waveform in storage format. It is
// treated as immutable once handed to an Engine.
type RawWaveform []Sample

// Source is a named raw waveform to build a pyramid from.
type Source struct {
	Name string
	Raw  RawWaveform
}

// Pyramid is an ordered set of band-limited copies of one waveform. Level
// 0 is a pure sine played near Nyquist; the last level keeps the most
// harmonics and is played at the lowest frequencies.
type Pyramid = synth.Pyramid

// FilterKind selects the anti-aliasing strategy used to build pyramids.
type FilterKind int

const (
	// FilterFFT clears frequency bins above the cutoff. Default.
	FilterFFT FilterKind = iota

	// FilterCascade runs a resonant state variable low-pass to steady state.
	FilterCascade

	// FilterKaiser applies a Kaiser-windowed sinc FIR.
	FilterKaiser
)

func (k FilterKind) internal() (filter.Kind, error) {
	switch k {
	case FilterFFT:
		return filter.KindFFT, nil
	case FilterCascade:
		return filter.KindCascade, nil
	case FilterKaiser:
		return filter.KindKaiser, nil
	default:
		return 0, fmt.Errorf("%w: unknown filter kind %d", ErrInvalidConfig, int(k))
	}
}

// String returns the filter name used on command lines.
func (k FilterKind) String() string {
	kind, err := k.internal()
	if err != nil {
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
	return kind.String()
}

// ParseFilterKind parses "fft", "cascade" or "kaiser".
func ParseFilterKind(s string) (FilterKind, error) {
	kind, err := filter.ParseKind(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch kind {
	case filter.KindCascade:
		return FilterCascade, nil
	case filter.KindKaiser:
		return FilterKaiser, nil
	default:
		return FilterFFT, nil
	}
}

// Config holds engine configuration.
type Config struct {
	// SampleRate is the output rate in Hz exactly as the audio driver
	// reports it. It drives band selection and phase increments.
	SampleRate float64

	// Filter is the anti-aliasing strategy for pyramid construction.
	Filter FilterKind

	// WorkingLength is the high-resolution buffer length every level is
	// derived from. A power of two longer than the longest level (1024).
	WorkingLength int

	// WaveformLength is the required length of every RawWaveform.
	WaveformLength int

	// Voices is the number of oscillators per Instrument. Their outputs
	// are averaged.
	Voices int

	// BlockSize bounds the scratch buffers an Instrument mixes voices in.
	// Longer buffers are rendered in chunks.
	BlockSize int

	// EnableParallel builds the pyramids of a bank concurrently.
	EnableParallel bool
}

// Common errors returned by the engine.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid wavetable configuration")

	// ErrInvalidWaveform indicates a raw waveform that cannot be built.
	ErrInvalidWaveform = errors.New("invalid waveform")

	// ErrUnknownBank indicates a bank name the engine does not hold.
	ErrUnknownBank = errors.New("unknown bank")

	// ErrIndexOutOfRange indicates a wavetable or voice index outside its
	// collection.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// DefaultConfig returns the default configuration at the given sample rate.
func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate:     sampleRate,
		Filter:         FilterFFT,
		WorkingLength:  engine.DefaultWorkingLength,
		WaveformLength: engine.DefaultWaveformLength,
		Voices:         defaultVoices,
		BlockSize:      defaultBlockSize,
		EnableParallel: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.SampleRate >= minSampleRate && c.SampleRate <= maxSampleRate) {
		return fmt.Errorf("%w: sample rate %g outside [%g, %g]", ErrInvalidConfig, c.SampleRate, minSampleRate, maxSampleRate)
	}

	if _, err := c.Filter.internal(); err != nil {
		return err
	}

	if !mathutil.IsPowerOfTwo(c.WorkingLength) || c.WorkingLength <= engine.DefaultWorkingLength/2 {
		return fmt.Errorf("%w: working length %d must be a power of two above %d",
			ErrInvalidConfig, c.WorkingLength, engine.DefaultWorkingLength/2)
	}

	if c.WaveformLength < 2 {
		return fmt.Errorf("%w: waveform length %d too short", ErrInvalidConfig, c.WaveformLength)
	}

	if c.Voices < 1 || c.Voices > maxVoices {
		return fmt.Errorf("%w: voices must be 1-%d", ErrInvalidConfig, maxVoices)
	}

	if c.BlockSize < minBlockSize || c.BlockSize > maxBlockSize {
		return fmt.Errorf("%w: block size must be %d-%d", ErrInvalidConfig, minBlockSize, maxBlockSize)
	}

	return nil
}
