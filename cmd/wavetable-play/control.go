package main

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/tphakala/go-wavetable"
)

const centsPerOctave = 1200.0

// sweep moves the instrument back and forth between two frequencies on an
// exponential curve, optionally stepping through the bank's waveforms at
// every turn.
type sweep struct {
	from, to  float64
	period    time.Duration // one full low-high-low cycle
	voices    int
	detune    float64 // cents between adjacent voices
	cycleWave bool
	verbose   bool
}

// frequencyAt returns the sweep frequency elapsed into the sweep.
func (s sweep) frequencyAt(elapsed time.Duration) float64 {
	if s.period <= 0 || s.from <= 0 || s.to <= 0 {
		return s.from
	}
	phase := math.Mod(elapsed.Seconds()/s.period.Seconds(), 1)
	// Triangle from 0 to 1 and back.
	t := 1 - math.Abs(2*phase-1)
	return s.from * math.Pow(s.to/s.from, t)
}

// voiceRatio returns the detune ratio of voice v, spreading the voices
// symmetrically around the sweep frequency.
func (s sweep) voiceRatio(v int) float64 {
	offset := float64(v) - float64(s.voices-1)/2
	return math.Exp2(offset * s.detune / centsPerOctave)
}

// apply sets every voice for base frequency hz.
func (s sweep) apply(inst *wavetable.Instrument, hz float64) {
	if s.voices <= 1 {
		inst.SetFrequency(float32(hz))
		return
	}
	for v := range s.voices {
		_ = inst.SetVoiceFrequency(v, float32(hz*s.voiceRatio(v)))
	}
}

// run drives inst until ctx is done. It is the only writer of the
// instrument controls.
func (s sweep) run(ctx context.Context, inst *wavetable.Instrument, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	turns := int64(0)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			s.apply(inst, s.frequencyAt(elapsed))

			if !s.cycleWave || s.period <= 0 {
				continue
			}
			if turn := int64(elapsed / s.period); turn != turns {
				turns = turn
				next := (inst.Selected() + 1) % inst.Bank().Len()
				if err := inst.SelectWavetable(next); err != nil {
					log.Printf("select waveform %d: %v", next, err)
					continue
				}
				if s.verbose {
					log.Printf("Waveform %d", next)
				}
			}
		}
	}
}
