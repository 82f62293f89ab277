package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() Bank {
	return Bank{
		Name: "perfect",
		Pyramids: []Pyramid{
			{Name: "sine", Levels: [][]uint16{{32768, 65535, 32768, 0}, {1, 2}}},
			{Name: "saw", Levels: [][]uint16{{0, 16384, 32768, 49152}}},
		},
	}
}

func encode(t *testing.T, bank Bank) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, bank))
	return buf.Bytes()
}

func TestWriteRead_RoundTrip(t *testing.T) {
	data := encode(t, testBank())
	assert.Equal(t, []byte("WTBK"), data[:4])

	got, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, testBank(), got)
}

func TestWrite_Deterministic(t *testing.T) {
	assert.Equal(t, encode(t, testBank()), encode(t, testBank()))
}

func TestRead_Corrupt(t *testing.T) {
	good := encode(t, testBank())

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"empty", func([]byte) []byte { return nil }},
		{"flipped sample bit", func(b []byte) []byte { b[len(b)-8] ^= 0x01; return b }},
		{"flipped checksum", func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }},
		{"truncated", func(b []byte) []byte { return b[:len(b)-10] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), good...))
			_, err := Read(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestRead_ValidChecksumBadBody(t *testing.T) {
	// A well-formed trailer over a body with the wrong magic.
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Bank{Name: "x"}))
	data := buf.Bytes()
	data[0] = 'X'

	body := data[:len(data)-crcSize]
	fixed := appendCRC(body)

	_, err := Read(bytes.NewReader(fixed))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "magic")
}

func TestWrite_RejectsOversizedCounts(t *testing.T) {
	bank := Bank{Name: "big", Pyramids: make([]Pyramid, 1<<16)}
	err := Write(&bytes.Buffer{}, bank)
	assert.Error(t, err)
}

func appendCRC(body []byte) []byte {
	var buf bytes.Buffer
	buf.Write(body)
	enc := encoder{w: &buf}
	enc.u32(checksum(body))
	return buf.Bytes()
}
