package ilbm

// ByteRun1 op codes
const (
	opRepeatMin = 129
	opEnd       = 128
)

// cursor walks a BODY chunk and the pixel buffer it fills. It can be driven
// one byte or one run at a time.
type cursor struct {
	body []byte
	pos  int

	pixels []byte
	width  int
	height int

	// rows hold this many planes, an explicit mask plane is not decoded
	planes int

	row   int
	col   int
	plane int

	// chunky is set when every byte is one pixel
	chunky bool
}

func newCursor(body, pixels []byte, width, height int, h Header, f Format) *cursor {
	c := &cursor{
		body:   body,
		pixels: pixels,
		width:  width,
		height: height,
		planes: int(h.Planes),
		chunky: f == FormatPBM,
	}
	return c
}

// done reports whether every row has been written.
func (c *cursor) done() bool {
	if c.row >= c.height {
		return true
	}
	if c.row < c.height-1 || c.col < c.width {
		return false
	}
	return c.chunky || c.plane >= c.planes-1
}

func (c *cursor) put(b byte) {
	if c.chunky {
		c.linear(b)
	} else {
		c.planar(b)
	}
}

// eob reports whether the body is exhausted.
func (c *cursor) eob() bool {
	return c.pos >= len(c.body)
}

func (c *cursor) next() (byte, bool) {
	if c.eob() {
		return 0, false
	}
	b := c.body[c.pos]
	c.pos++
	return b, true
}

// planar spreads the 8 bits of b over the next 8 columns of the current
// plane, most significant bit first. Bits past the end of the row are
// dropped.
func (c *cursor) planar(b byte) {
	if c.col >= c.width {
		c.col = 0
		c.plane++
		if c.plane >= c.planes {
			c.plane = 0
			c.row++
		}
	}
	if c.done() {
		return
	}

	n := c.width - c.col
	if n > 8 {
		n = 8
	}

	// Planes beyond 8 bits do not fit a pixel
	if c.plane < 8 {
		bit := byte(1) << uint(c.plane)
		i := c.row*c.width + c.col
		for x, p := range c.pixels[i : i+n] {
			if b&(0x80>>uint(x)) != 0 {
				c.pixels[i+x] = p | bit
			}
		}
	}
	c.col += n
}

// linear stores b as the index of the next pixel.
func (c *cursor) linear(b byte) {
	if c.col >= c.width {
		c.col = 0
		c.row++
	}
	if c.done() {
		return
	}
	c.pixels[c.row*c.width+c.col] = b
	c.col++
}

// raw unpacks the remaining body without compression.
func (c *cursor) raw() {
	for !c.done() {
		b, ok := c.next()
		if !ok {
			return
		}
		c.put(b)
	}
}

// literal unpacks the next n body bytes.
func (c *cursor) literal(n int) ErrorCode {
	for i := 0; i < n; i++ {
		b, ok := c.next()
		if !ok {
			return BodyShortLiteral
		}
		c.put(b)
	}
	return OK
}

// repeat unpacks the next body byte n times.
func (c *cursor) repeat(n int) ErrorCode {
	b, ok := c.next()
	if !ok {
		return BodyShortRepeat
	}
	for i := 0; i < n; i++ {
		c.put(b)
	}
	return OK
}

// run decodes one ByteRun1 op. It returns false once the end op is read or
// the body is exhausted.
func (c *cursor) run() (bool, ErrorCode) {
	op, ok := c.next()
	if !ok {
		return false, OK
	}
	switch {
	case op < opEnd:
		code := c.literal(int(op) + 1)
		return code == OK, code
	case op >= opRepeatMin:
		code := c.repeat(257 - int(op))
		return code == OK, code
	}
	return false, OK
}

// byteRun1 decodes the remaining body as ByteRun1 until the image is
// complete, the body ends or a run is cut short. trace, if not nil, is
// called before each op.
func (c *cursor) byteRun1(trace func(*cursor)) ErrorCode {
	for !c.done() && !c.eob() {
		if trace != nil {
			trace(c)
		}
		more, code := c.run()
		if code != OK || !more {
			return code
		}
	}
	return OK
}
