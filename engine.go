package wavetable

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/tphakala/go-wavetable/internal/asset"
	"github.com/tphakala/go-wavetable/internal/engine"
	"github.com/tphakala/go-wavetable/internal/filter"
	"github.com/tphakala/go-wavetable/internal/store"
)

// Engine owns every pyramid and wavetable of a session. It is created once
// at startup and passed to whatever drives the audio callback.
//
// Building and bank management are safe for concurrent use. Banks are
// immutable once added.
type Engine struct {
	config  Config
	builder *engine.Builder

	mu    sync.RWMutex
	banks map[string]*Bank
	order []string
}

// NewEngine creates an engine from config.
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	kind, err := config.Filter.internal()
	if err != nil {
		return nil, err
	}
	lp, err := filter.New(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	builder, err := engine.NewBuilder(engine.BuilderConfig{
		Filter:         lp,
		WorkingLength:  config.WorkingLength,
		WaveformLength: config.WaveformLength,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Engine{
		config:  *config,
		builder: builder,
		banks:   make(map[string]*Bank),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// BuildPyramid converts one raw waveform into a pyramid of LevelCount
// levels. The same source always yields the same pyramid.
func (e *Engine) BuildPyramid(src Source) (*Pyramid, error) {
	levels, err := e.builder.Build(src.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidWaveform, src.Name, err)
	}
	return &Pyramid{Name: src.Name, Levels: levels}, nil
}

// AddBank builds a pyramid for every source and registers the result under
// name, replacing any bank of the same name. Pyramids are built
// concurrently when EnableParallel is set.
func (e *Engine) AddBank(name string, sources []Source) (*Bank, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: bank %q has no waveforms", ErrInvalidWaveform, name)
	}

	pyramids, err := e.buildAll(sources)
	if err != nil {
		return nil, fmt.Errorf("bank %q: %w", name, err)
	}

	bank, err := newBank(name, pyramids, e.config.SampleRate)
	if err != nil {
		return nil, err
	}
	e.register(bank)
	return bank, nil
}

// buildAll builds one pyramid per source, preserving order.
func (e *Engine) buildAll(sources []Source) ([]*Pyramid, error) {
	pyramids := make([]*Pyramid, len(sources))

	if !e.config.EnableParallel || len(sources) <= 1 {
		for i, src := range sources {
			p, err := e.BuildPyramid(src)
			if err != nil {
				return nil, fmt.Errorf("waveform %d: %w", i, err)
			}
			pyramids[i] = p
		}
		return pyramids, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(sources))

	for i := range sources {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			p, err := e.BuildPyramid(sources[idx])
			if err != nil {
				errChan <- fmt.Errorf("waveform %d: %w", idx, err)
				return
			}
			pyramids[idx] = p
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return pyramids, nil
}

// AddBuiltinBank synthesizes one of the built-in banks ("perfect" or
// "pulse") at the configured waveform length and adds it.
func (e *Engine) AddBuiltinBank(name string) (*Bank, error) {
	b, err := asset.Builtin(name, e.config.WaveformLength)
	if err != nil {
		if errors.Is(err, asset.ErrParameter) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBank, name)
		}
		return nil, err
	}
	return e.AddBank(b.Name, sourcesFromAsset(b))
}

func sourcesFromAsset(b asset.Bank) []Source {
	sources := make([]Source, len(b.Waveforms))
	for i, w := range b.Waveforms {
		sources[i] = Source{Name: w.Name, Raw: w.Samples}
	}
	return sources
}

// Bank returns the named bank.
func (e *Engine) Bank(name string) (*Bank, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, ok := e.banks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, name)
	}
	return b, nil
}

// Banks returns the bank names in the order they were first added.
func (e *Engine) Banks() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.order)
}

func (e *Engine) register(b *Bank) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.banks[b.name]; !ok {
		e.order = append(e.order, b.name)
	}
	e.banks[b.name] = b
}

// SaveBank writes the named bank in the persisted bank format.
func (e *Engine) SaveBank(w io.Writer, name string) error {
	b, err := e.Bank(name)
	if err != nil {
		return err
	}

	stored := store.Bank{Name: b.name, Pyramids: make([]store.Pyramid, len(b.pyramids))}
	for i, p := range b.pyramids {
		stored.Pyramids[i] = store.Pyramid{Name: p.Name, Levels: p.Levels}
	}
	return store.Write(w, stored)
}

// LoadBank reads a persisted bank and registers it without rebuilding.
func (e *Engine) LoadBank(r io.Reader) (*Bank, error) {
	stored, err := store.Read(r)
	if err != nil {
		return nil, err
	}

	pyramids := make([]*Pyramid, len(stored.Pyramids))
	for i, p := range stored.Pyramids {
		if len(p.Levels) != LevelCount {
			return nil, fmt.Errorf("%w: pyramid %q has %d levels, want %d",
				ErrInvalidWaveform, p.Name, len(p.Levels), LevelCount)
		}
		pyramids[i] = &Pyramid{Name: p.Name, Levels: p.Levels}
	}

	bank, err := newBank(stored.Name, pyramids, e.config.SampleRate)
	if err != nil {
		return nil, err
	}
	e.register(bank)
	return bank, nil
}

// NewInstrument creates an instrument playing the first wavetable of the
// named bank.
func (e *Engine) NewInstrument(bankName string) (*Instrument, error) {
	b, err := e.Bank(bankName)
	if err != nil {
		return nil, err
	}
	return newInstrument(e, b, e.config.Voices, e.config.BlockSize), nil
}
