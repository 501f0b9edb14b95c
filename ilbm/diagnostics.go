package ilbm

import (
	"fmt"
	"strings"

	"github.com/saschaklick/libilbm/iff"
)

// Bullet starts every line of a Report.
const Bullet = "•"

func chunkName(c *iff.Chunk) string {
	if c == nil {
		return "????"
	}
	return c.ID.String()
}

// WarningText returns a one line description of w naming the chunk that was
// substituted, or #n for flags this package does not know.
func (m *Image) WarningText(w Warning) string {
	switch w {
	case WarnFormByPosition:
		return fmt.Sprintf("First chunk %q used in place of \"FORM\"", chunkName(m.Form))
	case WarnHeaderByPosition:
		return fmt.Sprintf("Header chunk %q used in place of \"BMHD\"", chunkName(m.BMHD))
	case WarnHeaderSizeMismatch:
		if m.BMHD != nil {
			return fmt.Sprintf("Header chunk %q is %d bytes instead of %d", chunkName(m.BMHD), m.BMHD.Size, HeaderSize)
		}
		return "Header chunk has an unexpected size"
	case WarnBodyBySize:
		return fmt.Sprintf("Largest chunk %q used in place of \"BODY\"", chunkName(m.Body))
	case WarnPaletteByExactSize:
		return fmt.Sprintf("Palette chunk %q used in place of \"CMAP\"", chunkName(m.CMAP))
	case WarnPaletteByMinSize:
		return fmt.Sprintf("Oversized chunk %q used in place of \"CMAP\"", chunkName(m.CMAP))
	}
	return w.String()
}

// Diagnostics returns one line for the error, if any, followed by one line
// per warning.
func (m *Image) Diagnostics() []string {
	var lines []string
	if m.Code != OK {
		lines = append(lines, m.Code.String())
	}
	for _, w := range m.Warnings.List() {
		lines = append(lines, m.WarningText(w))
	}
	return lines
}

// Report formats Diagnostics as a bulleted list, one sentence per line. It
// returns an empty string for a clean image.
func (m *Image) Report() string {
	var b strings.Builder
	for _, line := range m.Diagnostics() {
		fmt.Fprintf(&b, "%s %s.\n", Bullet, line)
	}
	return b.String()
}
