// Command wavetable-render renders an exponential frequency glide through a
// wavetable into a WAV file, driving the instrument exactly like an audio
// callback would.
//
// Usage:
//
//	wavetable-render -wave saw out.wav
//	wavetable-render -bank strings.wtbk -wave cello -from 65 -to 4000 out.wav
//	wavetable-render -builtin pulse -wave 3 -voices 3 -detune 12 out.wav
//
// A glide to Nyquist makes aliasing easy to hear: a band-limited table
// thins out to a sine and fades to silence instead of folding back.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tphakala/go-wavetable"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		bankPath = flag.String("bank", "", "Bank file written by wavetable-build")
		builtin  = flag.String("builtin", wavetable.BankPerfect, "Built-in bank used when -bank is empty: perfect, pulse")
		filter   = flag.String("filter", "fft", "Anti-aliasing filter for built-in banks: fft, cascade, kaiser")
		wave     = flag.String("wave", "0", "Waveform name or index within the bank")
		rate     = flag.Int("rate", defaultRate, "Output sample rate in Hz")
		fromHz   = flag.Float64("from", defaultFromHz, "Glide start frequency in Hz")
		toHz     = flag.Float64("to", defaultToHz, "Glide end frequency in Hz")
		duration = flag.Float64("duration", defaultDuration, "Duration in seconds")
		block    = flag.Int("block", defaultBlock, "Samples per render call")
		voices   = flag.Int("voices", defaultVoices, "Number of voices")
		detune   = flag.Float64("detune", defaultDetune, "Detune between adjacent voices in cents")
		verbose  = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}
	outputPath := args[0]

	kind, err := wavetable.ParseFilterKind(*filter)
	if err != nil {
		return err
	}

	config := wavetable.DefaultConfig(float64(*rate))
	config.Filter = kind
	config.Voices = *voices
	config.BlockSize = *block

	inst, err := newInstrument(&config, *bankPath, *builtin, *wave)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Bank: %s, waveform %d", inst.Bank().Name(), inst.Selected())
		log.Printf("Glide: %.1f Hz -> %.1f Hz over %.2fs", *fromHz, *toHz, *duration)
		log.Printf("Rate: %d Hz, block %d, voices %d", *rate, *block, *voices)
	}

	g := glide{
		from:    *fromHz,
		to:      *toHz,
		frames:  int(*duration * float64(*rate)),
		detune:  *detune,
		voices:  *voices,
		block:   *block,
		verbose: *verbose,
	}

	start := time.Now()
	frames, err := renderToFile(outputPath, inst, g, *rate)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Rendered %s\n", filepath.Base(outputPath))
	fmt.Printf("  %d samples at %d Hz (%.2fs)\n", frames, *rate, float64(frames)/float64(*rate))
	fmt.Printf("  Speed: %.1fx realtime\n", float64(frames)/float64(*rate)/elapsed.Seconds())

	return nil
}
