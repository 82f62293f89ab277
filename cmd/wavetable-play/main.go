// Command wavetable-play plays a wavetable through the default audio
// device, sweeping its frequency from a control goroutine while the audio
// driver pulls samples.
//
// Usage:
//
//	wavetable-play
//	wavetable-play -wave square -from 40 -to 12000 -period 8s
//	wavetable-play -builtin pulse -cycle -voices 3 -detune 10
//	wavetable-play -bank strings.wtbk -wave cello -duration 30s
//
// Stop with Ctrl-C.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tphakala/go-wavetable"
)

const (
	// CLI defaults
	defaultRate     = 48000
	defaultFromHz   = 55.0
	defaultToHz     = 3520.0
	defaultPeriod   = 10 * time.Second
	defaultVolume   = 0.5
	defaultVoices   = 1
	defaultDetune   = 7.0 // cents
	defaultBlock    = 512
	defaultBufferMS = 40

	// Control rate of the sweep goroutine.
	controlTick = 5 * time.Millisecond

)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		rate     = flag.Int("rate", defaultRate, "Output sample rate in Hz")
		bankPath = flag.String("bank", "", "Bank file written by wavetable-build")
		builtin  = flag.String("builtin", wavetable.BankPerfect, "Built-in bank used when -bank is empty: perfect, pulse")
		filter   = flag.String("filter", "fft", "Anti-aliasing filter for built-in banks: fft, cascade, kaiser")
		wave     = flag.String("wave", "saw", "Waveform name or index within the bank")
		fromHz   = flag.Float64("from", defaultFromHz, "Lowest sweep frequency in Hz")
		toHz     = flag.Float64("to", defaultToHz, "Highest sweep frequency in Hz")
		period   = flag.Duration("period", defaultPeriod, "Duration of one up-and-down sweep")
		cycle    = flag.Bool("cycle", false, "Step to the next waveform after every sweep")
		volume   = flag.Float64("volume", defaultVolume, "Linear output volume")
		voices   = flag.Int("voices", defaultVoices, "Number of voices")
		detune   = flag.Float64("detune", defaultDetune, "Detune between adjacent voices in cents")
		duration = flag.Duration("duration", 0, "Stop after this long (0 plays until interrupted)")
		bufferMS = flag.Int("buffer", defaultBufferMS, "Driver buffer in milliseconds")
		verbose  = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	kind, err := wavetable.ParseFilterKind(*filter)
	if err != nil {
		return err
	}

	config := wavetable.DefaultConfig(float64(*rate))
	config.Filter = kind
	config.Voices = *voices
	config.BlockSize = defaultBlock

	e, err := wavetable.NewEngine(&config)
	if err != nil {
		return err
	}
	bank, err := loadBank(e, *bankPath, *builtin)
	if err != nil {
		return err
	}
	inst, err := e.NewInstrument(bank.Name())
	if err != nil {
		return err
	}
	if err := selectWave(inst, bank, *wave); err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: outputChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(*bufferMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	src := newSource(inst, defaultBlock)
	src.SetVolume(float32(*volume))
	player := otoCtx.NewPlayer(src)
	defer func() { _ = player.Close() }()

	if *verbose {
		log.Printf("Bank: %s, waveform %d of %d", bank.Name(), inst.Selected(), bank.Len())
		log.Printf("Sweep: %.1f Hz <-> %.1f Hz every %s", *fromHz, *toHz, *period)
		log.Printf("Rate: %d Hz, voices %d, buffer %dms", *rate, *voices, *bufferMS)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, *duration)
		defer cancel()
	}

	s := sweep{
		from:      *fromHz,
		to:        *toHz,
		period:    *period,
		voices:    *voices,
		detune:    *detune,
		cycleWave: *cycle,
		verbose:   *verbose,
	}

	s.apply(inst, *fromHz)
	player.Play()
	fmt.Printf("Playing %s/%d at %d Hz, Ctrl-C to stop\n", bank.Name(), inst.Selected(), *rate)
	s.run(runCtx, inst, controlTick)

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

func loadBank(e *wavetable.Engine, path, builtin string) (*wavetable.Bank, error) {
	if path == "" {
		return e.AddBuiltinBank(builtin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return e.LoadBank(f)
}

// selectWave selects wave, given as a name or an index.
func selectWave(inst *wavetable.Instrument, bank *wavetable.Bank, wave string) error {
	if i := bank.Index(wave); i >= 0 {
		return inst.SelectWavetable(i)
	}
	i, err := strconv.Atoi(wave)
	if err != nil {
		return fmt.Errorf("%w: no waveform %q in bank %q", wavetable.ErrIndexOutOfRange, wave, bank.Name())
	}
	return inst.SelectWavetable(i)
}
