package main

// Default command-line flag values
const (
	defaultRate     = 48000 // DAT/DVD sample rate
	defaultFromHz   = 55.0  // A1
	defaultToHz     = 7040.0
	defaultDuration = 4.0 // seconds
	defaultBlock    = 256 // samples per simulated audio callback
	defaultVoices   = 1
	defaultDetune   = 7.0 // cents between adjacent voices
)

// Output format
const (
	outputBitDepth = 16
	outputChannels = 1
	pcmFormat      = 1
	signedOffset   = 1 << 15
)

// Pitch conversion
const (
	centsPerOctave = 1200.0
)
