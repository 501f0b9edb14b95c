package ilbm

import (
	"bytes"
	"errors"
	"image"
	"io"
	"io/ioutil"

	"github.com/saschaklick/libilbm/iff"
)

func init() {
	image.RegisterFormat("ilbm", "FORM????ILBM", Decode, DecodeConfig)
	image.RegisterFormat("pbm", "FORM????PBM ", Decode, DecodeConfig)
}

var pbmTag = iff.ID{'P', 'B', 'M', ' '}

var errNilStream = errors.New("ilbm: nil stream")

type decoder struct {
	opts options
	img  *Image
}

func (d *decoder) fail(code ErrorCode) {
	d.img.Code = code
}

func (d *decoder) readChunks(rs io.ReadSeeker) error {
	if rs == nil {
		d.opts.logf(LevelError, "%v", errNilStream)
		d.img.cause = errNilStream
		return errNilStream
	}

	r, err := iff.NewReader(rs)
	if err != nil {
		d.opts.logf(LevelError, "stream not seekable: %v", err)
		d.img.cause = err
		return err
	}

	form, err := r.ReadChunk()
	if err != nil {
		if err != io.EOF {
			d.opts.logf(LevelError, "container chunk: %v", err)
			d.img.cause = err
		}
		d.fail(FormMissing)
		return err
	}
	d.img.Form = form

	if form.ID != iff.FORM {
		d.img.Warnings.set(WarnFormByPosition)
	}

	switch d.opts.format {
	case FormatAuto:
		if form.Tag() == pbmTag {
			d.img.Format = FormatPBM
		} else {
			d.img.Format = FormatILBM
		}
	default:
		d.img.Format = d.opts.format
	}

	for {
		c, err := r.ReadChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep what was read so far, a truncated file may still
			// hold a usable image
			d.opts.logf(LevelError, "chunk %d: %v", len(d.img.Chunks), err)
			d.img.cause = err
			break
		}
		d.opts.logf(LevelInfo, "chunk %2d: %q offset: %d size: %d", len(d.img.Chunks), c.ID.String(), c.Offset, c.Size)
		d.img.Chunks = append(d.img.Chunks, c)
	}

	return nil
}

func (d *decoder) logHeader(h Header) {
	if !d.opts.enabled(LevelInfo) {
		return
	}
	d.opts.logf(LevelInfo, "format      : %s", d.img.Format)
	d.opts.logf(LevelInfo, "width       : %d", h.Width)
	d.opts.logf(LevelInfo, "height      : %d", h.Height)
	d.opts.logf(LevelInfo, "origin      : %d,%d", h.X, h.Y)
	d.opts.logf(LevelInfo, "planes      : %d", h.Planes)
	d.opts.logf(LevelInfo, "mask        : %s", h.Mask)
	d.opts.logf(LevelInfo, "compression : %s", h.Compression)
	d.opts.logf(LevelInfo, "transparent : %d", h.Transparent)
	d.opts.logf(LevelInfo, "aspect      : %d:%d", h.XAspect, h.YAspect)
	d.opts.logf(LevelInfo, "page        : %dx%d", h.PageWidth, h.PageHeight)
}

func (d *decoder) decodeBody() ErrorCode {
	m := d.img
	c := newCursor(m.Body.Content, m.Pixels, m.Width, m.Height, m.Header, m.Format)

	if m.Header.Compression == CompressionNone {
		c.raw()
		return OK
	}

	var trace func(*cursor)
	if d.opts.enabled(LevelDebug) {
		trace = func(c *cursor) {
			op := c.body[c.pos]
			switch {
			case op < opEnd:
				d.opts.logf(LevelDebug, "literal %3d at %d r: %3d c: %3d p: %d", int(op)+1, c.pos, c.row, c.col, c.plane)
			case op > opEnd:
				d.opts.logf(LevelDebug, "repeat  %3d at %d r: %3d c: %3d p: %d", 257-int(op), c.pos, c.row, c.col, c.plane)
			default:
				d.opts.logf(LevelDebug, "end at %d r: %3d c: %3d p: %d", c.pos, c.row, c.col, c.plane)
			}
		}
	}
	return c.byteRun1(trace)
}

func (d *decoder) decode(rs io.ReadSeeker) {
	m := d.img

	d.opts.logf(LevelInfo, "libilbm %s", Version)

	if err := d.readChunks(rs); err != nil {
		d.fail(FormMissing)
		return
	}

	if len(m.Chunks) < minChunks {
		d.fail(NoChunks)
		return
	}

	m.BMHD = resolveHeader(m.Chunks, &m.Warnings)
	if m.BMHD == nil {
		d.fail(HeaderMissing)
		return
	}

	m.Header = parseHeader(m.BMHD.Content)
	d.logHeader(m.Header)

	m.Width = int(m.Header.Width)
	m.Height = int(m.Header.Height)

	if m.Width == 0 || m.Width > MaxWidth {
		d.fail(IllegalWidth)
		return
	}
	if m.Height == 0 || m.Height > MaxHeight {
		d.fail(IllegalHeight)
		return
	}

	m.Body = resolveBody(m.Chunks, m.BMHD, &m.Warnings)
	if m.Body == nil {
		d.fail(BodyMissing)
		return
	}

	m.Pixels = make([]byte, m.Size())
	if code := d.decodeBody(); code != OK {
		d.fail(code)
		return
	}

	if m.Header.Mask == MaskTransparentColor {
		m.Alpha = bytes.Repeat([]byte{0xff}, m.Size())
		for i, p := range m.Pixels {
			if uint16(p) == m.Header.Transparent {
				m.Alpha[i] = 0x00
			}
		}
	}

	m.CMAP = resolvePalette(m.Chunks, m.BMHD, m.Header.Planes, m.MaxIndex(), &m.Warnings)
	if m.CMAP == nil {
		d.fail(PaletteMissing)
		return
	}

	m.ColorCount = len(m.CMAP.Content) / 3
	m.Palette = make([]byte, m.ColorCount*3)
	copy(m.Palette, m.CMAP.Content)

	if d.opts.enabled(LevelWarn) {
		for _, w := range m.Warnings.List() {
			d.opts.logf(LevelWarn, "%s", m.WarningText(w))
		}
	}
}

// Read decodes one image from rs. The returned Image is never nil; when it
// is unusable the error is a *DecodeError carrying the same code as the
// Image. A nil rs fails with FormMissing.
func Read(rs io.ReadSeeker, opts ...Option) (*Image, error) {
	d := decoder{
		opts: newOptions(opts),
		img:  &Image{Format: FormatILBM},
	}
	d.decode(rs)
	return d.img, d.img.Err()
}

func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if r == nil {
		return nil, errNilStream
	}
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Decode reads an ILBM or PBM image from r and returns it as an
// *image.Paletted.
func Decode(r io.Reader) (image.Image, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}
	m, err := Read(rs)
	if err != nil {
		return nil, err
	}
	return m.Paletted(), nil
}

// DecodeConfig returns the color model and dimensions of an ILBM or PBM
// image. The palette can only be resolved once the body is decoded so this
// decodes the whole image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return image.Config{}, err
	}
	m, err := Read(rs)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: m.Paletted().Palette,
		Width:      m.Width,
		Height:     m.Height,
	}, nil
}
