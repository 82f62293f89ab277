package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tphakala/go-wavetable"
	"github.com/tphakala/go-wavetable/internal/asset"
)

// loadSources decodes every WAV input into a source of length samples.
func loadSources(paths []string, length int, fit, verbose bool) ([]wavetable.Source, error) {
	sources := make([]wavetable.Source, 0, len(paths))
	for _, path := range paths {
		w, err := asset.LoadWAV(path)
		if err != nil {
			return nil, err
		}

		if len(w.Samples) != length {
			if !fit {
				return nil, fmt.Errorf("%s: %d samples, want %d (use -fit to stretch)",
					path, len(w.Samples), length)
			}
			if verbose {
				log.Printf("Fitting %s: %d -> %d samples", w.Name, len(w.Samples), length)
			}
			w.Samples = asset.Fit(w.Samples, length)
		}

		if verbose {
			log.Printf("Loaded %s (%d samples)", w.Name, len(w.Samples))
		}
		sources = append(sources, wavetable.Source{Name: w.Name, Raw: w.Samples})
	}
	return sources, nil
}

// writeBankFile persists the named bank to path.
func writeBankFile(path string, e *wavetable.Engine, name string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Capture close errors on the success path.
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return e.SaveBank(f, name)
}

// levelFileName names the export file of one level.
func levelFileName(waveform string, level int) string {
	return fmt.Sprintf("%s_L%02d.wav", waveform, level)
}

// exportLevels writes every level of every pyramid in bank as a WAV file
// and returns the number of files written.
func exportLevels(dir string, bank *wavetable.Bank, sampleRate int, verbose bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	written := 0
	for i := range bank.Len() {
		p, err := bank.Pyramid(i)
		if err != nil {
			return written, err
		}
		for level, samples := range p.Levels {
			path := filepath.Join(dir, levelFileName(p.Name, level))
			if err := asset.SaveWAV(path, samples, sampleRate); err != nil {
				return written, err
			}
			written++
		}
		if verbose {
			log.Printf("Exported %s (%d levels)", p.Name, len(p.Levels))
		}
	}
	return written, nil
}
