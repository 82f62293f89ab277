package engine

// Fixed-point storage format: unsigned 16-bit, 2^15 is zero amplitude.
const (
	fixedPointScale = 1 << 15
	maxSample       = 1<<16 - 1

	// Equilibrium is the stored value of zero amplitude.
	Equilibrium uint16 = fixedPointScale
)

// Pyramid geometry.
const (
	// LevelCount is the number of levels in every pyramid.
	LevelCount = 11

	// DefaultWorkingLength is the high-resolution buffer every level is
	// derived from. It must exceed the longest level.
	DefaultWorkingLength = 2048

	// DefaultWaveformLength is the length of a raw single-cycle waveform.
	DefaultWaveformLength = 600

	maxLevelLength = 1024
	minLevelLength = 64

	// The top level keeps harmonics up to half the working Nyquist; each
	// level below keeps one octave less.
	topLevelCutoff = 0.5
)
