package libilbm

import (
	"fmt"

	"github.com/saschaklick/libilbm/ilbm"
)

// Category groups decode outcomes by the stage that failed. A nil image is
// a file that could not be read.
func Category(m *ilbm.Image) string {
	if m == nil {
		return "unreadable"
	}
	switch m.Code {
	case ilbm.OK:
		switch n := len(m.Warnings.List()); n {
		case 0:
			return "ok"
		case 1:
			return "ok, 1 warning"
		default:
			return fmt.Sprintf("ok, %d warnings", n)
		}
	case ilbm.FormMissing:
		return "container"
	case ilbm.NoChunks, ilbm.HeaderMissing:
		return "structure"
	case ilbm.IllegalWidth, ilbm.IllegalHeight:
		return "dimensions"
	case ilbm.BodyMissing, ilbm.BodyShortRepeat, ilbm.BodyShortLiteral:
		return "body"
	case ilbm.PaletteMissing:
		return "palette"
	}
	return m.Code.String()
}

// Summary returns a one line description of the image read from path.
func Summary(path string, m *ilbm.Image) string {
	if m == nil {
		return fmt.Sprintf("%s: 0x0 [????] %s", path, Category(m))
	}
	tag := m.Tag()
	if tag == "" {
		tag = "????"
	}
	return fmt.Sprintf("%s: %dx%d [%s] %s", path, m.Width, m.Height, tag, Category(m))
}
