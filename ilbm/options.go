package ilbm

import (
	"io/ioutil"
	"log"
)

// Level selects which diagnostics are written to the Logger.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelPrefix = map[Level]string{
	LevelError: "[ERROR] ",
	LevelWarn:  "[WARN] ",
	LevelInfo:  "[INFO] ",
	LevelDebug: "[DEBUG] ",
}

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Format selects how BODY bytes map to pixels.
type Format int

const (
	// FormatAuto picks FormatPBM for "PBM " forms and FormatILBM otherwise
	FormatAuto Format = iota
	// FormatILBM stores pixels as interleaved bitplanes
	FormatILBM
	// FormatPBM stores one byte per pixel
	FormatPBM
)

func (f Format) String() string {
	switch f {
	case FormatILBM:
		return "ILBM"
	case FormatPBM:
		return "PBM"
	}
	return "auto"
}

type options struct {
	format Format
	logger Logger
	level  Level
}

// Option configures Read.
type Option func(*options)

// WithFormat overrides the body format detected from the form type.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLogger writes diagnostics up to level to l.
func WithLogger(l Logger, level Level) Option {
	return func(o *options) {
		o.logger = l
		o.level = level
	}
}

func newOptions(opts []Option) options {
	o := options{
		format: FormatAuto,
		logger: log.New(ioutil.Discard, "", 0),
		level:  LevelSilent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.level = LevelSilent
	}
	return o
}

func (o options) enabled(level Level) bool {
	return level <= o.level
}

func (o options) logf(level Level, format string, v ...interface{}) {
	if !o.enabled(level) {
		return
	}
	o.logger.Printf(levelPrefix[level]+format, v...)
}
