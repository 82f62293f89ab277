package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavetable/internal/filter"
	"github.com/tphakala/go-wavetable/internal/mathutil"
	"github.com/tphakala/go-wavetable/internal/pipeline"
)

// ErrInvalidLength is returned when a raw waveform has the wrong length.
var ErrInvalidLength = errors.New("invalid waveform length")

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Filter is the low-pass strategy. Defaults to the FFT strategy.
	Filter filter.LowPass

	// WorkingLength is the high-resolution buffer length; a power of two
	// longer than every level.
	WorkingLength int

	// WaveformLength is the required raw waveform length.
	WaveformLength int

	// Levels is the level table. Defaults to DefaultLevels.
	Levels []LevelSpec
}

// Builder turns raw single-cycle waveforms into pyramids. A Builder holds
// no mutable state and is safe for concurrent use.
type Builder struct {
	lp             filter.LowPass
	workingLength  int
	waveformLength int
	levels         []LevelSpec
	chains         [][]pipeline.Stage
}

// NewBuilder validates cfg and plans the stage chain of every level.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if cfg.Filter == nil {
		cfg.Filter = filter.NewFFT()
	}
	if cfg.WorkingLength == 0 {
		cfg.WorkingLength = DefaultWorkingLength
	}
	if cfg.WaveformLength == 0 {
		cfg.WaveformLength = DefaultWaveformLength
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = DefaultLevels()
	}

	if !mathutil.IsPowerOfTwo(cfg.WorkingLength) {
		return nil, fmt.Errorf("working length %d is not a power of two", cfg.WorkingLength)
	}
	if cfg.WaveformLength < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, cfg.WaveformLength)
	}

	b := &Builder{
		lp:             cfg.Filter,
		workingLength:  cfg.WorkingLength,
		waveformLength: cfg.WaveformLength,
		levels:         cfg.Levels,
		chains:         make([][]pipeline.Stage, len(cfg.Levels)),
	}

	for i, level := range cfg.Levels {
		if level.Length >= cfg.WorkingLength {
			return nil, fmt.Errorf("level %d: length %d must be shorter than working length %d",
				i, level.Length, cfg.WorkingLength)
		}
		p, err := pipeline.BuildPipeline(level.Params(), cfg.WorkingLength)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		for _, spec := range p.GetStages() {
			stage, err := createStage(spec, cfg.Filter)
			if err != nil {
				return nil, fmt.Errorf("level %d: %w", i, err)
			}
			b.chains[i] = append(b.chains[i], stage)
		}
	}

	return b, nil
}

// Levels returns the level table the builder produces.
func (b *Builder) Levels() []LevelSpec {
	return b.levels
}

// WorkingLength returns the high-resolution buffer length.
func (b *Builder) WorkingLength() int {
	return b.workingLength
}

// WaveformLength returns the raw waveform length the builder accepts.
func (b *Builder) WaveformLength() int {
	return b.waveformLength
}

// FilterName returns the name of the low-pass strategy.
func (b *Builder) FilterName() string {
	return b.lp.Name()
}

// Build converts raw into one fixed-point slice per level, indexed like
// Levels. Identical input always yields identical output.
func (b *Builder) Build(raw []uint16) ([][]uint16, error) {
	if len(raw) != b.waveformLength {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidLength, len(raw), b.waveformLength)
	}

	cycle := make([]float64, len(raw))
	Dequantize(cycle, raw)
	working := Resize(cycle, b.workingLength)

	levels := make([][]uint16, len(b.chains))
	for i, chain := range b.chains {
		out, err := pipeline.Run(working, chain...)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		levels[i] = make([]uint16, len(out))
		Quantize(levels[i], out)
	}

	return levels, nil
}
