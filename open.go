package libilbm

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/opencontainers/go-digest"
	"github.com/saschaklick/libilbm/ilbm"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var errTooLarge = errors.New("libilbm: decompressed file too large")

// File is a decoded image file.
type File struct {
	Path string
	// Digest of the file as stored, before any decompression
	Digest digest.Digest
	// Image is nil when the file could not be read
	Image *ilbm.Image

	err error
}

// Err returns the error reading the file, or else the decode error of the
// image, if any.
func (f *File) Err() error {
	if f.err != nil {
		return f.err
	}
	return f.Image.Err()
}

func decompress(b []byte) ([]byte, error) {
	var r io.ReadCloser
	switch {
	case bytes.HasPrefix(b, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		r = zr
	case bytes.HasPrefix(b, zstdMagic):
		zr, err := zstd.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		r = zr.IOReadCloser()
	default:
		return b, nil
	}
	defer r.Close()

	b, err := ioutil.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxFileSize {
		return nil, errTooLarge
	}
	return b, nil
}

// Open reads and decodes file. An error is only returned when the file
// cannot be read or decompressed; decode failures are reported through the
// Code of the returned image.
func Open(file string, opts ...ilbm.Option) (*File, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	f := &File{
		Path:   file,
		Digest: digest.FromBytes(b),
	}

	if b, err = decompress(b); err != nil {
		return nil, err
	}

	f.Image, _ = ilbm.Read(bytes.NewReader(b), opts...)

	return f, nil
}
