//go:build !linux

package sampler

import "github.com/rs/zerolog"

// New returns the counter source for the running platform.
func New(log zerolog.Logger) CounterSource { return NewPsutilSource(log) }
