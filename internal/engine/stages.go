package engine

import (
	"fmt"

	"github.com/tphakala/go-wavetable/internal/filter"
	"github.com/tphakala/go-wavetable/internal/mathutil"
	"github.com/tphakala/go-wavetable/internal/pipeline"
)

type sineStage struct {
	length int
}

func (s *sineStage) Process([]float64) ([]float64, error) {
	out := make([]float64, s.length)
	mathutil.SineCycle(out)
	return out, nil
}

func (s *sineStage) Name() string { return "sine" }

type filterStage struct {
	lp     filter.LowPass
	cutoff float64
}

func (s *filterStage) Process(input []float64) ([]float64, error) {
	return s.lp.LowPass(input, s.cutoff)
}

func (s *filterStage) Name() string { return "filter/" + s.lp.Name() }

type normalizeStage struct{}

func (normalizeStage) Process(input []float64) ([]float64, error) {
	out := make([]float64, len(input))
	copy(out, input)
	if err := Normalize(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (normalizeStage) Name() string { return "normalize" }

type resizeStage struct {
	length int
}

func (s *resizeStage) Process(input []float64) ([]float64, error) {
	return Resize(input, s.length), nil
}

func (s *resizeStage) Name() string { return "resize" }

// createStage instantiates the Stage described by spec.
func createStage(spec pipeline.StageSpec, lp filter.LowPass) (pipeline.Stage, error) {
	switch spec.Type {
	case pipeline.StageSine:
		return &sineStage{length: spec.Length}, nil
	case pipeline.StageFilter:
		return &filterStage{lp: lp, cutoff: spec.Cutoff}, nil
	case pipeline.StageNormalize:
		return normalizeStage{}, nil
	case pipeline.StageResize:
		return &resizeStage{length: spec.Length}, nil
	default:
		return nil, fmt.Errorf("unknown stage type: %s", spec.Type)
	}
}
