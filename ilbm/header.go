package ilbm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the BMHD record.
const HeaderSize = 20

// Dimension limits
const (
	MaxWidth  = 1024
	MaxHeight = 768
)

// Mask describes how transparency is stored.
type Mask uint8

const (
	MaskNone Mask = iota
	MaskPlane
	MaskTransparentColor
	MaskLasso
)

func (m Mask) String() string {
	switch m {
	case MaskNone:
		return "none"
	case MaskPlane:
		return "mask plane"
	case MaskTransparentColor:
		return "transparent color"
	case MaskLasso:
		return "lasso"
	}
	return fmt.Sprintf("#%d", m)
}

// Compression of the BODY chunk.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionByteRun1
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionByteRun1:
		return "ByteRun1"
	}
	return fmt.Sprintf("#%d", c)
}

// Header is the decoded BMHD record.
type Header struct {
	Width       uint16
	Height      uint16
	X           int16
	Y           int16
	Planes      uint8
	Mask        Mask
	Compression Compression
	Pad         uint8
	Transparent uint16
	XAspect     uint8
	YAspect     uint8
	PageWidth   int16
	PageHeight  int16
}

// parseHeader decodes b as a BMHD record. Bytes missing from a short record
// read as zero.
func parseHeader(b []byte) Header {
	var tmp [HeaderSize]byte
	copy(tmp[:], b)

	var h Header
	// Cannot fail, the record is always complete
	_ = binary.Read(bytes.NewReader(tmp[:]), binary.BigEndian, &h)
	return h
}

