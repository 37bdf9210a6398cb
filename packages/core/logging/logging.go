// Package logging builds the zerolog logger used for hitcurl's debug output.
// Diagnostic logs go to stderr and never mix with the response on stdout.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level   string
	Verbose bool
	NoColor bool
	JSON    bool
}

// ParseLevel maps a level name to a zerolog level, falling back to warn.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// New returns a logger writing to w. Verbose forces debug level.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
