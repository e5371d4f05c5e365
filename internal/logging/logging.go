// Package logging builds the zerolog loggers used across clientbook.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a logger writing to w at the given level. format is
// FormatConsole for human-readable output or FormatJSON for one JSON object
// per line. Unknown levels and formats are errors.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}

	out := w
	switch strings.ToLower(format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (valid: %s, %s)", format, FormatConsole, FormatJSON)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// WithRunID tags every event of l with a fresh UUID v7 run identifier so that
// the lines of one invocation can be grouped.
func WithRunID(l zerolog.Logger) zerolog.Logger {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return l.With().Str("run_id", id.String()).Logger()
}
