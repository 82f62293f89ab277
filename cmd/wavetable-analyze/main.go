// Command wavetable-analyze reports how well each anti-aliasing filter
// band-limits the pyramid levels of a test waveform.
//
// Usage:
//
//	wavetable-analyze
//	wavetable-analyze -shape square -filter kaiser
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tphakala/go-wavetable/internal/asset"
	"github.com/tphakala/go-wavetable/internal/engine"
	"github.com/tphakala/go-wavetable/internal/filter"
)

const (
	// Harmonics quieter than this are treated as absent.
	defaultFloorDB = -80.0

	// Points of the Kaiser kernel frequency response.
	responsePoints = 1024
)

func main() {
	shapeName := flag.String("shape", "saw", "Test waveform: sine, saw, triangle, square, pulse")
	width := flag.Float64("width", 0.25, "Pulse width for -shape pulse")
	filterName := flag.String("filter", "", "Analyze only this filter: fft, cascade, kaiser")
	floorDB := flag.Float64("floor", defaultFloorDB, "Harmonic floor in dB relative to a full-scale sine")
	flag.Parse()

	shape, err := asset.ParseShape(*shapeName)
	if err != nil {
		log.Fatal(err)
	}
	raw, err := asset.Generate(shape, engine.DefaultWaveformLength, *width)
	if err != nil {
		log.Fatal(err)
	}

	kinds := []filter.Kind{filter.KindFFT, filter.KindCascade, filter.KindKaiser}
	if *filterName != "" {
		kind, err := filter.ParseKind(*filterName)
		if err != nil {
			log.Fatal(err)
		}
		kinds = []filter.Kind{kind}
	}

	for _, kind := range kinds {
		lp, err := filter.New(kind)
		if err != nil {
			log.Fatal(err)
		}
		rows, err := analyzePyramid(lp, raw, *floorDB)
		if err != nil {
			log.Fatalf("%s: %v", kind, err)
		}

		fmt.Printf("=== %s filter, %s ===\n", kind, shape)
		fmt.Printf("  %5s %6s %9s %6s %8s %12s\n", "level", "length", "cutoff", "keeps", "highest", "leakage dB")
		for _, r := range rows {
			fmt.Printf("  %5d %6d %9.6f %6d %8d %12.1f\n",
				r.level, r.length, r.cutoff, r.keeps, r.highest, r.leakageDB)
		}
		fmt.Println()
	}

	if *filterName == "" || *filterName == filter.KindKaiser.String() {
		fmt.Println("=== Kaiser kernels ===")
		fmt.Printf("  %5s %6s %10s %14s\n", "level", "taps", "DC gain", "stopband dB")
		for _, k := range analyzeKaiser(engine.DefaultWorkingLength) {
			fmt.Printf("  %5d %6d %10.6f %14.1f\n", k.level, k.taps, k.dcGain, k.stopbandDB)
		}
	}
}
