package engine

import (
	"math"

	"github.com/tphakala/go-wavetable/internal/pipeline"
)

// LevelSpec describes one pyramid level. Index 0 is the most filtered
// level, played at the highest frequencies; index LevelCount-1 keeps the
// most harmonics and is played at the lowest frequencies.
type LevelSpec struct {
	Index  int
	Length int

	// Cutoff is a fraction of the working buffer's Nyquist. Zero means the
	// level is a pure sine.
	Cutoff float64
}

// Params converts the level to pipeline parameters.
func (l LevelSpec) Params() pipeline.LevelParams {
	return pipeline.LevelParams{Length: l.Length, Cutoff: l.Cutoff}
}

// MaxHarmonic returns the highest harmonic the level keeps for a working
// buffer of the given length.
func (l LevelSpec) MaxHarmonic(workingLength int) int {
	if l.Cutoff == 0 {
		return 1
	}
	return int(l.Cutoff * float64(workingLength) / 2)
}

// DefaultLevels returns the standard level table.
//
// Level i is played between nyquist/2^(i+1) and nyquist/2^i, where only
// harmonics below 2^i fit under Nyquist. It keeps harmonics up to
// 2^(i-1), one octave of headroom, so the cross-fade toward the next
// level never brings aliased content in. Lengths halve from 1024 with each
// level down to a floor of 64 samples.
func DefaultLevels() []LevelSpec {
	levels := make([]LevelSpec, LevelCount)
	top := LevelCount - 1
	for i := range levels {
		distance := top - i
		levels[i] = LevelSpec{
			Index:  i,
			Length: max(maxLevelLength>>distance, minLevelLength),
			Cutoff: topLevelCutoff / math.Pow(2, float64(distance)),
		}
	}
	levels[0].Cutoff = 0
	return levels
}
