package ilbm

import (
	"image"
	"image/color"

	"github.com/saschaklick/libilbm/iff"
)

// Image is the result of Read. Check Code, or the error returned by Read,
// before trusting anything other than the fields already populated when
// decoding stopped.
type Image struct {
	Format Format
	Header Header

	Width  int
	Height int

	// Pixels holds one palette index per pixel, row by row
	Pixels []byte

	ColorCount int
	// Palette holds ColorCount RGB triples
	Palette []byte

	// Alpha is 0xff for opaque and 0x00 for transparent pixels. It is nil
	// unless the header selects a transparent color.
	Alpha []byte

	// Chunks following the container chunk, in file order
	Chunks iff.Catalog

	// Chunks chosen for each role
	Form *iff.Chunk
	BMHD *iff.Chunk
	Body *iff.Chunk
	CMAP *iff.Chunk

	Code     ErrorCode
	Warnings Warnings

	// Next is reserved for streams holding more than one image. Read
	// decodes exactly one image and always leaves it nil.
	Next *Image

	// read fault that ended chunk collection early
	cause error
}

// Size returns the number of pixels.
func (m *Image) Size() int {
	return m.Width * m.Height
}

// Err returns a *DecodeError when Code is not OK.
func (m *Image) Err() error {
	if m.Code == OK {
		return nil
	}
	return &DecodeError{Code: m.Code, Cause: m.cause}
}

// Tag returns the form type of the container, such as "ILBM".
func (m *Image) Tag() string {
	if m.Form == nil {
		return ""
	}
	return m.Form.Tag().String()
}

// MaxIndex returns the largest palette index used by any pixel.
func (m *Image) MaxIndex() uint8 {
	var max uint8
	for _, p := range m.Pixels {
		if p > max {
			max = p
		}
	}
	return max
}

// Color returns the palette entry at index i, or opaque black when the
// palette is too short.
func (m *Image) Color(i int) color.NRGBA {
	if i < 0 || i >= m.ColorCount {
		return color.NRGBA{0, 0, 0, 0xff}
	}
	return color.NRGBA{m.Palette[i*3], m.Palette[i*3+1], m.Palette[i*3+2], 0xff}
}

// Transparent reports whether the pixel at offset i is transparent.
func (m *Image) Transparent(i int) bool {
	return m.Alpha != nil && m.Alpha[i] == 0
}

// Paletted returns the image as an *image.Paletted. The palette is padded
// with black so every pixel resolves, and when a transparent color is set
// its entry is fully transparent.
func (m *Image) Paletted() *image.Paletted {
	n := m.ColorCount
	if used := int(m.MaxIndex()) + 1; used > n {
		n = used
	}
	t := int(m.Header.Transparent)
	if m.Alpha != nil && t < 256 && t >= n {
		n = t + 1
	}
	// Indices are bytes so nothing beyond 256 entries is reachable
	if n > 256 {
		n = 256
	}

	p := make(color.Palette, n)
	for i := range p {
		p[i] = m.Color(i)
	}
	if m.Alpha != nil && t < n {
		c := m.Color(t)
		c.A = 0
		p[t] = c
	}

	dst := image.NewPaletted(image.Rect(0, 0, m.Width, m.Height), p)
	copy(dst.Pix, m.Pixels)
	return dst
}

// Mask returns the transparency mask, or nil when the image has none.
func (m *Image) Mask() *image.Alpha {
	if m.Alpha == nil {
		return nil
	}
	dst := image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
	copy(dst.Pix, m.Alpha)
	return dst
}
