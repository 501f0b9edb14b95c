package iff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// TagSize is the content length of the first chunk in a stream regardless of
// its declared size, which holds the length of the whole file instead.
const TagSize = 4

var (
	ErrShortSize    = errors.New("iff: short chunk size")
	ErrShortContent = errors.New("iff: short chunk content")
	ErrPadSeek      = errors.New("iff: cannot skip pad byte")
)

// ReadError is returned when a chunk cannot be read completely.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Reader reads chunks sequentially from a seekable stream.
type Reader struct {
	rs    io.ReadSeeker
	pos   int64
	end   int64
	first bool
}

// NewReader returns a Reader starting at the current position of rs. The
// stream is measured once so that declared chunk sizes can be checked
// against the bytes actually available.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	return &Reader{
		rs:    rs,
		pos:   pos,
		end:   end,
		first: true,
	}, nil
}

// Offset returns the position of the next chunk.
func (r *Reader) Offset() int64 {
	return r.pos
}

func (r *Reader) fault(offset int64, err error) error {
	return &ReadError{Offset: offset, Err: err}
}

// ReadChunk returns the next chunk in the stream. It returns io.EOF when
// fewer than 4 bytes remain, which is the normal end of a stream. Any other
// short read is reported as a *ReadError.
func (r *Reader) ReadChunk() (*Chunk, error) {
	c := &Chunk{Offset: r.pos}

	n, err := io.ReadFull(r.rs, c.ID[:])
	r.pos += int64(n)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return nil, io.EOF
	default:
		return nil, r.fault(c.Offset, err)
	}

	var size [4]byte
	n, err = io.ReadFull(r.rs, size[:])
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrShortSize
		}
		return nil, r.fault(c.Offset, err)
	}
	c.Size = binary.BigEndian.Uint32(size[:])

	length := int64(c.Size)
	if r.first {
		length = TagSize
		r.first = false
	}

	if length > r.end-r.pos {
		return nil, r.fault(c.Offset, ErrShortContent)
	}

	c.Content = make([]byte, length)
	n, err = io.ReadFull(r.rs, c.Content)
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrShortContent
		}
		return nil, r.fault(c.Offset, err)
	}

	// Chunks are word aligned
	if length&1 != 0 && r.pos < r.end {
		if _, err := r.rs.Seek(1, io.SeekCurrent); err != nil {
			return nil, r.fault(c.Offset, fmt.Errorf("%w: %v", ErrPadSeek, err))
		}
		r.pos++
	}

	return c, nil
}
