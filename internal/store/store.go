// Package store persists built banks in a compact binary form so a host
// can load pyramids without rebuilding them.
//
// Layout, all integers little endian:
//
//	magic    "WTBK"
//	version  u16
//	name     u16 length + bytes
//	count    u16 pyramids
//	per pyramid:
//	  name   u16 length + bytes
//	  levels u16
//	  per level: u32 length + length × u16 samples
//	crc32    u32 IEEE over everything before it
package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

// Version is the format version written by Write.
const Version = 1

const (
	maxLevelLength = 1 << 20
	crcSize        = 4
)

var magic = [4]byte{'W', 'T', 'B', 'K'}

// ErrCorrupt is returned for data that is not a valid bank file.
var ErrCorrupt = errors.New("corrupt bank file")

// Pyramid is one stored waveform pyramid.
type Pyramid struct {
	Name   string
	Levels [][]uint16
}

// Bank is the stored form of a bank.
type Bank struct {
	Name     string
	Pyramids []Pyramid
}

// Write encodes bank to w.
func Write(w io.Writer, bank Bank) error {
	var buf bytes.Buffer
	enc := encoder{w: &buf}

	enc.bytes(magic[:])
	enc.u16(Version)
	enc.str(bank.Name)
	enc.count(len(bank.Pyramids))
	for _, p := range bank.Pyramids {
		enc.str(p.Name)
		enc.count(len(p.Levels))
		for _, level := range p.Levels {
			if len(level) > maxLevelLength {
				return fmt.Errorf("pyramid %q: level of %d samples exceeds %d", p.Name, len(level), maxLevelLength)
			}
			enc.u32(uint32(len(level)))
			enc.samples(level)
		}
	}
	if enc.err != nil {
		return enc.err
	}

	crc := checksum(buf.Bytes())
	enc.u32(crc)
	if enc.err != nil {
		return enc.err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Read decodes a bank written by Write.
func Read(r io.Reader) (Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bank{}, err
	}
	if len(data) < len(magic)+crcSize {
		return Bank{}, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(data))
	}

	body, trailer := data[:len(data)-crcSize], data[len(data)-crcSize:]
	if want, got := binary.LittleEndian.Uint32(trailer), checksum(body); want != got {
		return Bank{}, fmt.Errorf("%w: checksum %08x, want %08x", ErrCorrupt, got, want)
	}

	dec := decoder{data: body}
	if !bytes.Equal(dec.next(len(magic)), magic[:]) {
		return Bank{}, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := dec.u16(); dec.err == nil && v != Version {
		return Bank{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}

	bank := Bank{Name: dec.str()}
	count := int(dec.u16())
	for range count {
		if dec.err != nil {
			break
		}
		p := Pyramid{Name: dec.str()}
		levels := int(dec.u16())
		for range levels {
			n := dec.u32()
			if n > maxLevelLength {
				dec.fail("level of %d samples", n)
			}
			if dec.err != nil {
				break
			}
			p.Levels = append(p.Levels, dec.samples(int(n)))
		}
		bank.Pyramids = append(bank.Pyramids, p)
	}
	if dec.err != nil {
		return Bank{}, dec.err
	}
	if len(dec.data) != 0 {
		return Bank{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(dec.data))
	}

	return bank, nil
}

func checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

type encoder struct {
	w   *bytes.Buffer
	err error
}

func (e *encoder) bytes(b []byte) {
	e.w.Write(b)
}

func (e *encoder) u16(v uint16) {
	e.w.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func (e *encoder) u32(v uint32) {
	e.w.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (e *encoder) count(n int) {
	if n > math.MaxUint16 {
		e.err = fmt.Errorf("count %d exceeds %d", n, math.MaxUint16)
		return
	}
	e.u16(uint16(n))
}

func (e *encoder) str(s string) {
	e.count(len(s))
	e.w.WriteString(s)
}

func (e *encoder) samples(s []uint16) {
	if err := binary.Write(e.w, binary.LittleEndian, s); err != nil && e.err == nil {
		e.err = err
	}
}

type decoder struct {
	data []byte
	err  error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
	}
}

func (d *decoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > len(d.data) {
		d.fail("truncated, need %d bytes, have %d", n, len(d.data))
		return nil
	}
	b := d.data[:n]
	d.data = d.data[n:]
	return b
}

func (d *decoder) u16() uint16 {
	b := d.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *decoder) u32() uint32 {
	b := d.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) str() string {
	n := int(d.u16())
	return string(d.next(n))
}

func (d *decoder) samples(n int) []uint16 {
	b := d.next(2 * n)
	if b == nil {
		return nil
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out
}
