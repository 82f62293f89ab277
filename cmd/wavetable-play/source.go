package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/tphakala/go-wavetable"
	"github.com/tphakala/go-wavetable/internal/simdops"
)

const (
	outputChannels = 2
	bytesPerSample = 4 // float32
	bytesPerFrame  = outputChannels * bytesPerSample
)

// source adapts an Instrument to the io.Reader oto pulls audio from. The
// audio goroutine is the only caller of Read.
type source struct {
	inst   *wavetable.Instrument
	volume atomic.Uint32 // float32 bits

	mono   []float32
	stereo []float32
}

func newSource(inst *wavetable.Instrument, maxFrames int) *source {
	s := &source{
		inst:   inst,
		mono:   make([]float32, maxFrames),
		stereo: make([]float32, maxFrames*outputChannels),
	}
	s.SetVolume(1)
	return s
}

// SetVolume sets the linear output gain; safe from any goroutine.
func (s *source) SetVolume(v float32) {
	s.volume.Store(math.Float32bits(max(v, 0)))
}

// Volume returns the linear output gain.
func (s *source) Volume() float32 {
	return math.Float32frombits(s.volume.Load())
}

// Read fills p with interleaved stereo float32 little endian frames.
func (s *source) Read(p []byte) (int, error) {
	ops := simdops.Float32Ops()
	volume := s.Volume()

	frames := len(p) / bytesPerFrame
	written := 0
	for written < frames {
		n := min(frames-written, len(s.mono))
		mono := s.mono[:n]
		stereo := s.stereo[:n*outputChannels]

		s.inst.PopulateFloat32(mono)
		ops.Scale(mono, mono, volume)
		ops.Interleave2(stereo, mono, mono)

		out := p[written*bytesPerFrame:]
		for i, v := range stereo {
			binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(v))
		}
		written += n
	}
	return frames * bytesPerFrame, nil
}
