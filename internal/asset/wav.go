package asset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	storageBitDepth = 16
	pcmFormat       = 1
	signedOffset    = 1 << 15
	maxUnsigned     = 1<<16 - 1
)

// Decode reads a PCM WAV holding one waveform cycle and returns it in
// unsigned 16-bit storage format. Multi-channel files contribute their
// first channel; other bit depths are rescaled to 16 bits.
func Decode(r io.ReadSeeker) ([]uint16, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrFormat)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode PCM: %w", err)
	}

	channels := buf.Format.NumChannels
	bitDepth := int(decoder.BitDepth)
	if channels < 1 || bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d-bit", ErrFormat, channels, bitDepth)
	}

	frames := len(buf.Data) / channels
	if frames < 2 {
		return nil, fmt.Errorf("%w: %d frames", ErrFormat, frames)
	}

	samples := make([]uint16, frames)
	for i := range samples {
		v := buf.Data[i*channels]
		switch {
		case bitDepth == 8:
			// 8-bit WAV is already unsigned.
			v = (v - 128) << 8
		case bitDepth > storageBitDepth:
			v >>= bitDepth - storageBitDepth
		case bitDepth < storageBitDepth:
			v <<= storageBitDepth - bitDepth
		}
		samples[i] = uint16(min(max(v+signedOffset, 0), maxUnsigned))
	}

	return samples, nil
}

// LoadWAV decodes the WAV file at path. The waveform is named after the
// file without its extension.
func LoadWAV(path string) (Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	samples, err := Decode(f)
	if err != nil {
		return Waveform{}, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Base(path)
	return Waveform{
		Name:    strings.TrimSuffix(base, filepath.Ext(base)),
		Samples: samples,
	}, nil
}

// Encode writes samples as a mono 16-bit PCM WAV.
func Encode(w io.WriteSeeker, samples []uint16, sampleRate int) error {
	encoder := wav.NewEncoder(w, sampleRate, storageBitDepth, 1, pcmFormat)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s) - signedOffset
	}

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: storageBitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("encode WAV: %w", err)
	}
	return encoder.Close()
}

// SaveWAV writes samples to a new WAV file at path.
func SaveWAV(path string, samples []uint16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, samples, sampleRate); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
