package config

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the command line does not override them.
const (
	DefaultSamples     = 20
	DefaultDelayMicros = 500000
)

// RunConfig carries runtime options for utilmon.
type RunConfig struct {
	Samples    int
	Interval   time.Duration
	ShowMemory bool
	ShowCPU    bool
	ShowCores  bool
	Live       bool
}

func Default() RunConfig {
	return RunConfig{
		Samples:    DefaultSamples,
		Interval:   DefaultDelayMicros * time.Microsecond,
		ShowMemory: true,
		ShowCPU:    true,
		ShowCores:  true,
	}
}

// DelayMicros returns the interval in whole microseconds.
func (c RunConfig) DelayMicros() int64 { return c.Interval.Microseconds() }

// Parse reads the command line (without the program name):
//
//	[samples] [tdelay] [--memory] [--cpu] [--cores] [--samples=N] [--tdelay=N] [--live]
//
// The two positional values are only recognised in leading position. Naming
// any of --memory, --cpu or --cores enables just the named categories;
// naming none enables all three. Unrecognised arguments are ignored.
func Parse(args []string) RunConfig {
	cfg := Default()
	delay := DefaultDelayMicros

	pos := 0
	if pos < len(args) && !strings.HasPrefix(args[pos], "-") {
		cfg.Samples = atoi(args[pos])
		pos++
	}
	if pos < len(args) && !strings.HasPrefix(args[pos], "-") {
		delay = atoi(args[pos])
		pos++
	}

	var memory, cpu, cores, found bool
	for _, arg := range args[pos:] {
		switch {
		case strings.HasPrefix(arg, "--memory"):
			memory, found = true, true
		case strings.HasPrefix(arg, "--cpu"):
			cpu, found = true, true
		case strings.HasPrefix(arg, "--cores"):
			cores, found = true, true
		case strings.HasPrefix(arg, "--samples="):
			cfg.Samples = atoi(strings.TrimPrefix(arg, "--samples="))
		case strings.HasPrefix(arg, "--tdelay="):
			delay = atoi(strings.TrimPrefix(arg, "--tdelay="))
		case arg == "--live":
			cfg.Live = true
		}
	}
	if found {
		cfg.ShowMemory, cfg.ShowCPU, cfg.ShowCores = memory, cpu, cores
	}

	if delay < 0 {
		delay = 0
	}
	cfg.Interval = time.Duration(delay) * time.Microsecond
	return cfg
}

// atoi converts the leading decimal digits of s, returning 0 when there are
// none. Values outside the 32-bit range saturate.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return int(n)
}
