/*
Package iff implements a tolerant reader for the EA IFF 85 chunk container
used by Amiga ILBM and PBM images.

Every chunk is written as a 4 byte name, a 4 byte big-endian content length
and the content itself, padded with a single byte whenever the content length
is odd. The first chunk of a file is the container: its length field holds the
size of the whole file and its first 4 content bytes name the form type, such
as "ILBM" or "PBM ". The reader only knows this framing, what the chunks mean
is left to the caller.
*/
package iff

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// Well known chunk names.
var (
	FORM = ID{'F', 'O', 'R', 'M'}
	BMHD = ID{'B', 'M', 'H', 'D'}
	BODY = ID{'B', 'O', 'D', 'Y'}
	CMAP = ID{'C', 'M', 'A', 'P'}
)

// ID is the raw 4 byte name of a chunk. It is not necessarily printable.
type ID [4]byte

// String renders the ID as ISO-8859-1 text, replacing control characters
// with a dot so the name always fits on one line.
func (id ID) String() string {
	b := make([]byte, len(id))
	for i, c := range id {
		if c < 0x20 || (c >= 0x7f && c < 0xa0) {
			c = '.'
		}
		b[i] = c
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte{'.'}))
	}
	return string(s)
}

// Chunk is a single record read from a container stream.
type Chunk struct {
	ID ID

	// Offset is the position of the name field in the stream
	Offset int64

	// Size is the content length as declared in the stream
	Size uint32

	Content []byte
}

// Tag returns the first 4 content bytes, which for a container chunk is the
// form type.
func (c *Chunk) Tag() ID {
	var id ID
	copy(id[:], c.Content)
	return id
}
