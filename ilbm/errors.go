package ilbm

import (
	"fmt"
	"strings"
)

// ErrorCode classifies why an image could not be decoded.
type ErrorCode int

const (
	OK ErrorCode = iota
	IllegalWidth
	IllegalHeight
	NoChunks
	FormMissing
	HeaderMissing
	BodyMissing
	PaletteMissing
	BodyShortRepeat
	BodyShortLiteral
)

var errorText = map[ErrorCode]string{
	OK:               "OK",
	IllegalWidth:     "Image width out of range",
	IllegalHeight:    "Image height out of range",
	NoChunks:         "Too few chunks for an image",
	FormMissing:      `Container chunk "FORM" missing`,
	HeaderMissing:    `Header chunk "BMHD" missing`,
	BodyMissing:      `Bitmap chunk "BODY" missing`,
	PaletteMissing:   `Palette chunk "CMAP" missing`,
	BodyShortRepeat:  "Body ends inside a repeat run",
	BodyShortLiteral: "Body ends inside a literal run",
}

// String returns a one line description of the code, or #n for codes this
// package does not know.
func (c ErrorCode) String() string {
	if s, ok := errorText[c]; ok {
		return s
	}
	return fmt.Sprintf("#%d", int(c))
}

// DecodeError is returned by Read when the image is unusable.
type DecodeError struct {
	Code  ErrorCode
	Cause error
}

func (e *DecodeError) Error() string {
	s := "ilbm: " + strings.ToLower(e.Code.String())
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *DecodeError with the same code.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Code == e.Code
}

// Warning flags a heuristic substitution made while decoding.
type Warning uint

const (
	WarnFormByPosition Warning = 1 << iota
	WarnHeaderByPosition
	WarnHeaderSizeMismatch
	WarnBodyBySize
	WarnPaletteByExactSize
	WarnPaletteByMinSize

	warnEnd
)

var warningName = map[Warning]string{
	WarnFormByPosition:     "form by position",
	WarnHeaderByPosition:   "header by position",
	WarnHeaderSizeMismatch: "header size mismatch",
	WarnBodyBySize:         "body by size",
	WarnPaletteByExactSize: "palette by exact size",
	WarnPaletteByMinSize:   "palette by minimum size",
}

func (w Warning) String() string {
	if s, ok := warningName[w]; ok {
		return s
	}
	return fmt.Sprintf("#%d", uint(w))
}

// Warnings is a set of Warning flags.
type Warnings uint

// Has reports whether w is set.
func (ws Warnings) Has(w Warning) bool {
	return uint(ws)&uint(w) != 0
}

func (ws *Warnings) set(w Warning) {
	*ws |= Warnings(w)
}

// List returns the set flags in ascending order.
func (ws Warnings) List() []Warning {
	var l []Warning
	for w := Warning(1); w < warnEnd; w <<= 1 {
		if ws.Has(w) {
			l = append(l, w)
		}
	}
	return l
}

func (ws Warnings) String() string {
	l := ws.List()
	if len(l) == 0 {
		return "none"
	}
	s := make([]string, len(l))
	for i, w := range l {
		s[i] = w.String()
	}
	return strings.Join(s, ", ")
}
