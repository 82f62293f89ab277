// Package wavetable provides a band-limited wavetable synthesizer in pure Go.
//
// A raw single-cycle waveform is turned once, at startup or build time, into
// a pyramid of progressively low-passed copies. At run time an oscillator
// picks the two pyramid levels bracketing its frequency and cross-fades
// between them, so every note plays with as many harmonics as the sample
// rate allows and none that would alias.
//
// # Features
//
//   - Eleven-level pyramids from a 64-sample sine up to a 1024-sample table
//   - Three anti-aliasing filters: FFT bin clearing, a cascaded state
//     variable filter and a Kaiser windowed sinc
//   - Allocation-free, lock-free render path suitable for audio callbacks
//   - Built-in banks synthesized additively, WAV import and export
//   - Compact persisted bank format so hosts can skip the build step
//   - Optional SIMD acceleration via github.com/tphakala/simd
//
// # Quick Start
//
//	e, err := wavetable.NewDefaultEngine(48000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := e.NewInstrument(wavetable.BankPerfect)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst.SetFrequency(440)
//
//	// In the audio callback:
//	inst.Populate(buf)
//
// # Samples
//
// Samples are unsigned 16-bit fixed point with [Equilibrium] (32768) as
// silence. [Instrument.PopulateFloat32] converts to float32 for drivers
// that want it.
//
// # Levels
//
// Level 0 is the most filtered and is played just below Nyquist, where it
// fades into silence. Each higher level doubles the number of harmonics
// and covers the octave below. Frequencies low enough to pass the top
// level play the top level unmixed.
//
// # Thread Safety
//
// [Engine] and [Bank] are safe for concurrent use. Instrument control
// methods ([Instrument.SetFrequency], [Instrument.SelectWavetable], ...)
// may be called from any goroutine while the audio callback runs
// [Instrument.Populate]; each Populate call renders the whole buffer from
// the most recent settings. Populate itself must not run concurrently with
// another Populate on the same instrument.
package wavetable
