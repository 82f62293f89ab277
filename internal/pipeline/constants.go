package pipeline

// Pipeline stage capacities.
const (
	defaultStageCapacity = 4 // filter, normalize, resize and a spare
)

// Cutoff bounds, as a fraction of the working buffer's Nyquist frequency.
const (
	sineCutoff = 0.0 // a level with this cutoff is synthesized, not filtered
	maxCutoff  = 1.0
)

// Working buffer limits.
const (
	minWorkingLength = 4
	maxWorkingLength = 1 << 16
)
