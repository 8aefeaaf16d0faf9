// Package logging builds the zerolog logger shared by utilmon components.
// Records go to the error stream so they never interleave with the graphs
// drawn on stdout.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug-level records when set to any non-empty value.
const DebugEnv = "UTILMON_DEBUG"

// New returns a human-readable logger writing to w.
func New(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv(DebugEnv) != "" {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
