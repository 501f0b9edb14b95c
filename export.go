package libilbm

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/saschaklick/libilbm/ilbm"
	"golang.org/x/image/bmp"
)

// Export kinds
const (
	KindPNG = "png"
	KindGIF = "gif"
	KindBMP = "bmp"
)

const maxGIFColors = 256

var (
	errUnknownKind = errors.New("libilbm: unknown export kind")
	errNotDecoded  = errors.New("libilbm: image not decoded")
)

// KindOf returns the export kind matching the extension of file.
func KindOf(file string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
}

// reduce returns m with a palette of at most colors entries.
func reduce(m *image.Paletted, colors int) *image.Paletted {
	if colors <= 0 || len(m.Palette) <= colors {
		return m
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Export encodes m to w as kind, one of KindPNG, KindGIF or KindBMP. When
// colors is positive the palette is first reduced to at most that many
// entries.
func Export(w io.Writer, m *ilbm.Image, kind string, colors int) error {
	if m == nil || m.Code != ilbm.OK {
		return errNotDecoded
	}

	pm := m.Paletted()

	switch kind {
	case KindPNG:
		return png.Encode(w, reduce(pm, colors))
	case KindGIF:
		if colors <= 0 || colors > maxGIFColors {
			colors = maxGIFColors
		}
		return gif.Encode(w, reduce(pm, colors), nil)
	case KindBMP:
		return bmp.Encode(w, reduce(pm, colors))
	}

	return errUnknownKind
}
