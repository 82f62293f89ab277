package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-wavetable"
)

// newInstrument builds the engine, loads the bank and selects wave, given
// as a name or an index.
func newInstrument(config *wavetable.Config, bankPath, builtin, wave string) (*wavetable.Instrument, error) {
	e, err := wavetable.NewEngine(config)
	if err != nil {
		return nil, err
	}

	var bank *wavetable.Bank
	if bankPath != "" {
		f, err := os.Open(bankPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open bank file: %w", err)
		}
		bank, err = e.LoadBank(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bankPath, err)
		}
	} else {
		bank, err = e.AddBuiltinBank(builtin)
		if err != nil {
			return nil, err
		}
	}

	index, err := waveIndex(bank, wave)
	if err != nil {
		return nil, err
	}

	inst, err := e.NewInstrument(bank.Name())
	if err != nil {
		return nil, err
	}
	if err := inst.SelectWavetable(index); err != nil {
		return nil, err
	}
	return inst, nil
}

// waveIndex resolves a waveform name, falling back to a numeric index.
func waveIndex(bank *wavetable.Bank, wave string) (int, error) {
	if i := bank.Index(wave); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(wave)
	if err != nil {
		return 0, fmt.Errorf("%w: no waveform %q in bank %q", wavetable.ErrIndexOutOfRange, wave, bank.Name())
	}
	if i < 0 || i >= bank.Len() {
		return 0, fmt.Errorf("%w: waveform %d of %d", wavetable.ErrIndexOutOfRange, i, bank.Len())
	}
	return i, nil
}

// glide describes an exponential sweep rendered block by block.
type glide struct {
	from, to float64
	frames   int
	detune   float64 // cents between adjacent voices
	voices   int
	block    int
	verbose  bool
}

// frequencyAt returns the sweep frequency after frame frames.
func (g glide) frequencyAt(frame int) float64 {
	if g.frames <= 1 || g.from <= 0 || g.to <= 0 {
		return g.from
	}
	t := float64(frame) / float64(g.frames-1)
	return g.from * math.Pow(g.to/g.from, t)
}

// voiceRatio returns the detune ratio of voice v, spreading the voices
// symmetrically around the base frequency.
func (g glide) voiceRatio(v int) float64 {
	offset := float64(v) - float64(g.voices-1)/2
	return math.Exp2(offset * g.detune / centsPerOctave)
}

// apply sets the instrument controls for the block starting at frame.
func (g glide) apply(inst *wavetable.Instrument, frame int) {
	hz := g.frequencyAt(frame)
	if g.voices <= 1 {
		inst.SetFrequency(float32(hz))
		return
	}
	for v := range g.voices {
		_ = inst.SetVoiceFrequency(v, float32(hz*g.voiceRatio(v)))
	}
}

// renderToFile renders g into a mono 16-bit WAV at path and returns the
// number of frames written.
func renderToFile(path string, inst *wavetable.Instrument, g glide, sampleRate int) (frames int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, outputBitDepth, outputChannels, pcmFormat)

	samples := make([]wavetable.Sample, g.block)
	out := &audio.IntBuffer{
		Data:           make([]int, g.block),
		Format:         &audio.Format{NumChannels: outputChannels, SampleRate: sampleRate},
		SourceBitDepth: outputBitDepth,
	}

	lastReport := 0
	for frames < g.frames {
		n := min(g.block, g.frames-frames)
		g.apply(inst, frames)
		inst.Populate(samples[:n])

		out.Data = out.Data[:n]
		for i, s := range samples[:n] {
			out.Data[i] = int(s) - signedOffset
		}
		if err := encoder.Write(out); err != nil {
			return frames, fmt.Errorf("failed to write audio data: %w", err)
		}
		frames += n

		if g.verbose && frames-lastReport >= sampleRate {
			log.Printf("%.1fs rendered, %.1f Hz", float64(frames)/float64(sampleRate), g.frequencyAt(frames))
			lastReport = frames
		}
	}

	if err := encoder.Close(); err != nil {
		return frames, fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return frames, nil
}
