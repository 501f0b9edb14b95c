/*
Package preview renders decoded ILBM and PBM images as framed character art.

Each sampled pixel is converted to an intensity, the mean of its palette
color's red, green and blue components, and mapped onto a ramp of characters
ordered from darkest to brightest. Transparent pixels are always darkest.
Wide images are scaled down to fit the requested number of columns and rows
are further squeezed by the aspect ratio of a terminal character cell.
*/
package preview

import (
	"bufio"
	"errors"
	"io"
	"math"

	"github.com/saschaklick/libilbm/ilbm"
)

// Character ramps, darkest first
var charsets = []string{
	" .:-=+*#%@",
	" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$",
	" .`:,;'_^\"></-!~\\=)(|j?}{ ][ti+l7v1%yrfcJ32uIC$zwo96sngaT5qpkYVOL40&mG8*xhedbZUSAQPFDXWK#RNEHBM@",
}

// Defaults used for zero Options fields
const (
	DefaultColumns = 120
	DefaultAspect  = 2.0
)

var errUnusable = errors.New("preview: image not decoded")

// Options controls the size and character set of the preview.
type Options struct {
	// Columns is the widest the picture may be, excluding the frame
	Columns int
	// Aspect is the height of a character cell divided by its width
	Aspect float64
	// Charset selects one of the character ramps, wrapping around
	Charset int
}

func (o Options) withDefaults() Options {
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.Aspect <= 0 {
		o.Aspect = DefaultAspect
	}
	if o.Charset < 0 {
		o.Charset = -o.Charset
	}
	return o
}

// Charsets returns the number of available character ramps.
func Charsets() int {
	return len(charsets)
}

// Intensity returns the brightness of the pixel at offset i from 0 to 255.
func Intensity(m *ilbm.Image, i int) int {
	if m.Transparent(i) {
		return 0
	}
	c := m.Color(int(m.Pixels[i]))
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// Size returns the number of columns and rows Render draws inside the frame.
func Size(m *ilbm.Image, opts Options) (int, int) {
	opts = opts.withDefaults()
	fx, fy := factors(m, opts)
	return steps(float64(m.Width) * fx), steps(float64(m.Height) * fy)
}

func factors(m *ilbm.Image, opts Options) (float64, float64) {
	fx := 1.0
	if m.Width > opts.Columns {
		fx = float64(opts.Columns) / float64(m.Width)
	}
	return fx, fx / opts.Aspect
}

// steps counts the integers n with n < limit.
func steps(limit float64) int {
	return int(math.Ceil(limit))
}

func clamp(v, n int) int {
	if v >= n {
		return n - 1
	}
	return v
}

// Render writes m to w.
func Render(w io.Writer, m *ilbm.Image, opts Options) error {
	if m == nil || m.Code != ilbm.OK || len(m.Pixels) < m.Size() {
		return errUnusable
	}

	opts = opts.withDefaults()
	ramp := charsets[opts.Charset%len(charsets)]
	fx, fy := factors(m, opts)
	cols, rows := Size(m, opts)

	bw := bufio.NewWriter(w)

	border := func(left, right string) {
		bw.WriteString(left)
		for i := 0; i < cols; i++ {
			bw.WriteByte('-')
		}
		bw.WriteString(right)
		bw.WriteByte('\n')
	}

	border(".-", "-.")
	for row := 0; row < rows; row++ {
		bw.WriteString(": ")
		y := clamp(int(float64(row)/fy), m.Height)
		for col := 0; col < cols; col++ {
			x := clamp(int(float64(col)/fx), m.Width)
			bw.WriteByte(ramp[(len(ramp)-1)*Intensity(m, y*m.Width+x)/255])
		}
		bw.WriteString(" :\n")
	}
	border("`-", "-'")

	return bw.Flush()
}
