package wavetable

import "github.com/tphakala/go-wavetable/internal/asset"

// Common sample rates.
const (
	// RateCD is the CD quality sample rate.
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate and the default.
	RateDAT = 48000
)

// Sample range limits
const (
	minSampleRate = 8.0       // Hz
	maxSampleRate = 768_000.0 // Hz
)

// Voice and block limits
const (
	defaultVoices    = 1
	maxVoices        = 16
	defaultBlockSize = 256
	minBlockSize     = 16
	maxBlockSize     = 8192
)

// Fixed-point conversion for float hosts
const (
	floatScale  = 1.0 / (1 << 15)
	floatOffset = 1 << 15
)

// Built-in bank names.
const (
	// BankPerfect holds triangle, sine, square and saw in that order.
	BankPerfect = asset.BankPerfect

	// BankPulse holds pulse waves of narrowing width.
	BankPulse = asset.BankPulse
)
