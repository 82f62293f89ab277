// Command wavetable-build turns single-cycle waveforms into a persisted
// wavetable bank.
//
// Usage:
//
//	wavetable-build -o strings.wtbk -bank strings cello.wav viola.wav
//	wavetable-build -o perfect.wtbk -builtin perfect
//	wavetable-build -o pads.wtbk -fit -filter kaiser pad1.wav pad2.wav
//	wavetable-build -o perfect.wtbk -builtin perfect -export-dir levels/
//
// Inputs must hold exactly one cycle. Use -fit to stretch cycles of other
// lengths to the waveform length.
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

const (
	// CLI defaults
	defaultBankName   = "custom"
	defaultExportRate = wavetable.RateDAT
	defaultLength     = 600
	defaultWorking    = 2048

	// Build-time sample rate; pyramids do not depend on it.
	buildSampleRate = wavetable.RateDAT
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	output := flag.String("o", "", "Output bank file (required)")
	bankName := flag.String("bank", defaultBankName, "Bank name for WAV inputs")
	builtin := flag.String("builtin", "", "Build a built-in bank instead of WAV inputs: perfect, pulse")
	filterName := flag.String("filter", "fft", "Anti-aliasing filter: fft, cascade, kaiser")
	working := flag.Int("working", defaultWorking, "Working buffer length (power of two)")
	length := flag.Int("length", defaultLength, "Waveform length in samples")
	fit := flag.Bool("fit", false, "Stretch inputs of other lengths to -length")
	parallel := flag.Bool("parallel", true, "Build pyramids concurrently")
	exportDir := flag.String("export-dir", "", "Also write every pyramid level as a WAV file into this directory")
	exportRate := flag.Int("export-rate", defaultExportRate, "Sample rate written into exported level WAVs")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if *output == "" || (*builtin == "" && len(args) == 0) {
		fmt.Fprintf(os.Stderr, "Usage: %s -o bank.wtbk [options] (input.wav ... | -builtin name)\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -o perfect.wtbk -builtin perfect\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o mine.wtbk -bank mine -fit a.wav b.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	if *builtin != "" && len(args) > 0 {
		return fmt.Errorf("-builtin cannot be combined with WAV inputs")
	}

	kind, err := wavetable.ParseFilterKind(*filterName)
	if err != nil {
		return err
	}

	config := wavetable.DefaultConfig(buildSampleRate)
	config.Filter = kind
	config.WorkingLength = *working
	config.WaveformLength = *length
	config.EnableParallel = *parallel

	e, err := wavetable.NewEngine(&config)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Output: %s", *output)
		log.Printf("Filter: %s", kind)
		log.Printf("Working length: %d, waveform length: %d", *working, *length)
		if *parallel {
			log.Printf("Parallel: enabled")
		} else {
			log.Printf("Parallel: disabled")
		}
	}

	start := time.Now()

	var bank *wavetable.Bank
	if *builtin != "" {
		bank, err = e.AddBuiltinBank(*builtin)
	} else {
		var sources []wavetable.Source
		sources, err = loadSources(args, *length, *fit, *verbose)
		if err != nil {
			return err
		}
		bank, err = e.AddBank(*bankName, sources)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := writeBankFile(*output, e, bank.Name()); err != nil {
		return err
	}

	exported := 0
	if *exportDir != "" {
		exported, err = exportLevels(*exportDir, bank, *exportRate, *verbose)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Built bank %q -> %s\n", bank.Name(), filepath.Base(*output))
	fmt.Printf("  %d waveforms x %d levels, filter %s\n", bank.Len(), wavetable.LevelCount, kind)
	fmt.Printf("  Build time: %.1fms\n", float64(elapsed.Microseconds())/1000)
	if exported > 0 {
		fmt.Printf("  Exported %d level files to %s\n", exported, *exportDir)
	}

	return nil
}
