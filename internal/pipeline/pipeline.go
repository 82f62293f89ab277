// Package pipeline plans the per-level stage chain that turns the
// high-resolution working cycle into one pyramid level. Every level of
// every waveform goes through the same parametrized chain; only the cutoff
// and the target length change.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned for level parameters the chain cannot satisfy.
var ErrInvalidLevel = errors.New("invalid level")

// Stage represents a single processing step in the chain.
type Stage interface {
	// Process transforms one cycle into another. Implementations must not
	// modify input.
	Process(input []float64) ([]float64, error)

	// Name identifies the stage in errors and logs.
	Name() string
}

// StageType identifies the type of processing stage.
type StageType int

const (
	// StageSine replaces the cycle with a directly computed sine.
	StageSine StageType = iota

	// StageFilter removes harmonics above the level cutoff.
	StageFilter

	// StageNormalize scales the cycle to a peak of exactly 1.
	StageNormalize

	// StageResize converts the cycle to the level length by linear
	// interpolation.
	StageResize
)

// String returns a short stage name.
func (t StageType) String() string {
	switch t {
	case StageSine:
		return "sine"
	case StageFilter:
		return "filter"
	case StageNormalize:
		return "normalize"
	case StageResize:
		return "resize"
	default:
		return fmt.Sprintf("stage(%d)", int(t))
	}
}

// StageSpec specifies parameters for creating a stage.
type StageSpec struct {
	Type   StageType
	Cutoff float64 // StageFilter: fraction of the working Nyquist
	Length int     // StageSine, StageResize: output length
}

// LevelParams describes one pyramid level.
type LevelParams struct {
	// Length is the number of samples stored for the level.
	Length int

	// Cutoff is the highest frequency kept, as a fraction of the working
	// buffer's Nyquist. Zero requests a pure sine.
	Cutoff float64
}

// Pipeline is the planned stage chain for one level.
type Pipeline struct {
	level  LevelParams
	stages []StageSpec
}

// BuildPipeline plans the stage chain for level given the working buffer
// length the chain will be fed with.
func BuildPipeline(level LevelParams, workingLength int) (*Pipeline, error) {
	if workingLength < minWorkingLength || workingLength > maxWorkingLength {
		return nil, fmt.Errorf("%w: working length %d outside [%d, %d]",
			ErrInvalidLevel, workingLength, minWorkingLength, maxWorkingLength)
	}
	if level.Length < 1 || level.Length > workingLength {
		return nil, fmt.Errorf("%w: length %d outside [1, %d]", ErrInvalidLevel, level.Length, workingLength)
	}
	if !(level.Cutoff >= sineCutoff && level.Cutoff <= maxCutoff) {
		return nil, fmt.Errorf("%w: cutoff %g outside [0, 1]", ErrInvalidLevel, level.Cutoff)
	}

	p := &Pipeline{
		level:  level,
		stages: make([]StageSpec, 0, defaultStageCapacity),
	}

	// No filter improves on an exact sinusoid, and a sine synthesized at the
	// target length needs neither normalization nor resizing.
	if level.Cutoff == sineCutoff {
		p.stages = append(p.stages, StageSpec{Type: StageSine, Length: level.Length})
		return p, nil
	}

	// Filtering changes the peak, so normalization always follows it.
	p.stages = append(p.stages,
		StageSpec{Type: StageFilter, Cutoff: level.Cutoff},
		StageSpec{Type: StageNormalize},
	)

	if level.Length != workingLength {
		p.stages = append(p.stages, StageSpec{Type: StageResize, Length: level.Length})
	}

	return p, nil
}

// GetStages returns the pipeline stages.
func (p *Pipeline) GetStages() []StageSpec {
	return p.stages
}

// GetLevel returns the level the pipeline was planned for.
func (p *Pipeline) GetLevel() LevelParams {
	return p.level
}

// Run feeds input through stages in order.
func Run(input []float64, stages ...Stage) ([]float64, error) {
	out := input
	for _, stage := range stages {
		var err error
		out, err = stage.Process(out)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return out, nil
}
