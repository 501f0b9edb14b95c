package ilbm

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePaletted(t *testing.T) {
	m := &Image{
		Width:      2,
		Height:     2,
		Pixels:     []byte{0, 1, 3, 1},
		ColorCount: 2,
		Palette:    []byte{10, 20, 30, 40, 50, 60},
	}

	p := m.Paletted()
	require.Len(t, p.Palette, 4)
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, p.Palette[0])
	assert.Equal(t, color.NRGBA{40, 50, 60, 0xff}, p.Palette[1])
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, p.Palette[3])
	assert.Equal(t, image.Rect(0, 0, 2, 2), p.Bounds())
	assert.Equal(t, uint8(3), p.ColorIndexAt(0, 1))
	assert.Nil(t, m.Mask())
}

func TestImageTransparentColor(t *testing.T) {
	m := &Image{
		Header:     Header{Mask: MaskTransparentColor, Transparent: 5},
		Width:      2,
		Height:     1,
		Pixels:     []byte{0, 1},
		ColorCount: 2,
		Palette:    []byte{10, 20, 30, 40, 50, 60},
		Alpha:      []byte{0xff, 0xff},
	}

	p := m.Paletted()
	require.Len(t, p.Palette, 6)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, p.Palette[5])

	m.Header.Transparent = 1
	m.Alpha = []byte{0xff, 0x00}
	p = m.Paletted()
	require.Len(t, p.Palette, 2)
	assert.Equal(t, color.NRGBA{40, 50, 60, 0}, p.Palette[1])

	mask := m.Mask()
	require.NotNil(t, mask)
	assert.Equal(t, []byte{0xff, 0x00}, mask.Pix)
	assert.True(t, m.Transparent(1))
	assert.False(t, m.Transparent(0))
}

func TestImageColor(t *testing.T) {
	m := &Image{ColorCount: 1, Palette: []byte{1, 2, 3}}
	assert.Equal(t, color.NRGBA{1, 2, 3, 0xff}, m.Color(0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, m.Color(1))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, m.Color(-1))
}

func TestImageErr(t *testing.T) {
	assert.NoError(t, (&Image{}).Err())

	err := (&Image{Code: HeaderMissing}).Err()
	assert.ErrorIs(t, err, &DecodeError{Code: HeaderMissing})
	assert.NotErrorIs(t, err, &DecodeError{Code: BodyMissing})
}
