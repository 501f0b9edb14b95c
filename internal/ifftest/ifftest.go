// Package ifftest builds IFF container streams for tests.
package ifftest

import (
	"bytes"
	"encoding/binary"
)

// Chunk describes one chunk to write. When Size is nil the declared size is
// the length of Data.
type Chunk struct {
	ID   string
	Data []byte
	Size *uint32
}

// New returns a chunk with a matching declared size.
func New(id string, data []byte) Chunk {
	return Chunk{ID: id, Data: data}
}

// Lying returns a chunk that declares size but carries data.
func Lying(id string, size uint32, data []byte) Chunk {
	return Chunk{ID: id, Data: data, Size: &size}
}

func name(id string) []byte {
	var b [4]byte
	copy(b[:], id)
	for i := len(id); i < len(b); i++ {
		b[i] = ' '
	}
	return b[:]
}

func (c Chunk) write(b *bytes.Buffer) {
	b.Write(name(c.ID))
	size := uint32(len(c.Data))
	if c.Size != nil {
		size = *c.Size
	}
	_ = binary.Write(b, binary.BigEndian, size)
	b.Write(c.Data)
	if len(c.Data)&1 != 0 {
		b.WriteByte(0)
	}
}

// Build returns a stream with a container chunk named form holding tag,
// followed by chunks.
func Build(form, tag string, chunks ...Chunk) []byte {
	body := new(bytes.Buffer)
	for _, c := range chunks {
		c.write(body)
	}

	b := new(bytes.Buffer)
	b.Write(name(form))
	_ = binary.Write(b, binary.BigEndian, uint32(body.Len()+4))
	b.Write(name(tag))
	b.Write(body.Bytes())
	return b.Bytes()
}

// Header returns a 20 byte BMHD record.
func Header(width, height uint16, planes, mask, compression uint8, transparent uint16) []byte {
	b := make([]byte, 20)
	binary.BigEndian.PutUint16(b[0:], width)
	binary.BigEndian.PutUint16(b[2:], height)
	b[8] = planes
	b[9] = mask
	b[10] = compression
	binary.BigEndian.PutUint16(b[12:], transparent)
	b[14] = 10
	b[15] = 11
	binary.BigEndian.PutUint16(b[16:], width)
	binary.BigEndian.PutUint16(b[18:], height)
	return b
}

// Palette returns a CMAP payload of n grey levels.
func Palette(n int) []byte {
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		v := byte(i * 255 / max(n-1, 1))
		b = append(b, v, v, v)
	}
	return b
}
