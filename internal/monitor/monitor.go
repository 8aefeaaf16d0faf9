// Package monitor runs the sampling loop: sleep, sample, compute, append and
// render, once per configured sample, followed by a summary of averages.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/utilmon/internal/config"
	apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"
	"github.com/Dicklesworthstone/utilmon/internal/model"
	"github.com/Dicklesworthstone/utilmon/internal/sampler"
	"github.com/Dicklesworthstone/utilmon/internal/ui"
)

// ErrComplete is returned by Step once every configured sample is taken.
var ErrComplete = errors.New("monitor: all samples collected")

// Monitor owns one sampling run. Its metric series are allocated by Start
// and only grow through Step.
type Monitor struct {
	cfg   config.RunConfig
	src   sampler.CounterSource
	log   zerolog.Logger
	sleep func(context.Context, time.Duration) error

	// mu serialises Step with Summary when a live view drives the run.
	mu       sync.Mutex
	started  bool
	index    int
	memory   *model.Series
	cpu      *model.Series
	prev     model.CPUTicks
	totalGB  float64
	selfMB   float64
	topology model.CoreTopology
}

// Option customises a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used for read failures.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithSleep replaces the pause between samples.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(m *Monitor) { m.sleep = fn }
}

func New(cfg config.RunConfig, src sampler.CounterSource, opts ...Option) *Monitor {
	m := &Monitor{cfg: cfg, src: src, log: zerolog.Nop(), sleep: sleepContext}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start allocates the series of each enabled metric, reads the values that
// stay fixed for the run and takes the baseline CPU snapshot. Any error
// means sampling must not begin.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.cfg.ShowMemory {
		if m.memory, err = model.NewSeries("memory", m.cfg.Samples); err != nil {
			return err
		}
	}
	if m.cfg.ShowCPU {
		if m.cpu, err = model.NewSeries("cpu", m.cfg.Samples); err != nil {
			return err
		}
	}
	if m.cfg.ShowMemory {
		m.totalGB = m.src.TotalMemoryGB()
	}
	if m.cfg.ShowCores {
		m.topology = m.src.CoreTopology()
	}
	if m.cfg.ShowCPU {
		if m.prev, err = m.src.CPUTicks(); err != nil {
			return fmt.Errorf("baseline cpu sample: %w", err)
		}
	}
	m.started = true
	return nil
}

// Done reports whether every configured sample has been taken.
func (m *Monitor) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index >= m.cfg.Samples
}

// Step waits for the interval, takes one sample of each enabled metric and
// returns the frame to draw. A CPU read failure is returned without
// appending anything; the run should then go straight to the summary.
func (m *Monitor) Step(ctx context.Context) (model.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return model.Frame{}, errors.New("monitor: Step before Start")
	}
	if m.index >= m.cfg.Samples {
		return model.Frame{}, ErrComplete
	}
	if err := m.sleep(ctx, m.cfg.Interval); err != nil {
		return model.Frame{}, err
	}

	var cpuPct, memGB float64
	if m.cfg.ShowCPU {
		curr, err := m.src.CPUTicks()
		if err != nil {
			return model.Frame{}, err
		}
		cpuPct = sampler.CPUPercent(m.prev, curr)
		m.prev = curr
	}
	if m.cfg.ShowMemory {
		memGB = m.src.MemoryUsedGB()
		m.selfMB = m.src.SelfResidentMB()
	}

	frame := model.Frame{
		Index:      m.index,
		Samples:    m.cfg.Samples,
		Interval:   m.cfg.Interval,
		ShowMemory: m.cfg.ShowMemory,
		ShowCPU:    m.cfg.ShowCPU,
		ShowCores:  m.cfg.ShowCores,
		SelfRSSMB:  m.selfMB,
		MemTotalGB: m.totalGB,
		Topology:   m.topology,
	}
	if m.cpu != nil {
		m.cpu.Append(cpuPct)
		frame.CPUPercent = cpuPct
		frame.CPU = slices.Clone(m.cpu.Values())
	}
	if m.memory != nil {
		m.memory.Append(memGB)
		frame.MemUsedGB = memGB
		frame.Memory = slices.Clone(m.memory.Values())
	}
	m.index++
	return frame, nil
}

// Summary returns the average of each enabled metric that collected at
// least one sample. Averages divide by the configured sample count, not by
// the number collected.
func (m *Monitor) Summary() model.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s model.Summary
	if m.memory != nil && m.memory.Len() > 0 {
		s.HasMemory = true
		s.MemoryGB = m.memory.Average(m.cfg.Samples)
	}
	if m.cpu != nil && m.cpu.Len() > 0 {
		s.HasCPU = true
		s.CPU = m.cpu.Average(m.cfg.Samples)
	}
	return s
}

// Run executes the whole run, redrawing out after every sample and printing
// the summary at the end. Only startup failures are returned; a read
// failure mid-run is logged and cuts sampling short.
func (m *Monitor) Run(ctx context.Context, out io.Writer) error {
	if err := m.Start(); err != nil {
		return err
	}
	r := ui.NewRenderer(out)
	for !m.Done() {
		frame, err := m.Step(ctx)
		if err != nil {
			m.logStop(err)
			break
		}
		fmt.Fprint(out, ui.ClearScreen+r.Frame(frame))
	}
	fmt.Fprint(out, r.Summary(m.Summary()))
	return nil
}

// RunLive is Run with a Bubble Tea view instead of full-screen redraws.
func (m *Monitor) RunLive(ctx context.Context, out io.Writer, opts ...tea.ProgramOption) error {
	if err := m.Start(); err != nil {
		return err
	}
	r := ui.NewRenderer(out)
	if err := ui.RunLive(ctx, m, r, append(opts, tea.WithOutput(out))...); err != nil {
		m.logStop(err)
	}
	fmt.Fprint(out, r.Summary(m.Summary()))
	return nil
}

func (m *Monitor) logStop(err error) {
	switch {
	case errors.Is(err, context.Canceled):
	case apperrors.IsReadError(err):
		m.log.Error().Err(err).Msg("Error reading CPU sample")
	default:
		m.log.Error().Err(err).Msg("sampling stopped")
	}
}

// sleepContext pauses for d or until ctx is done. The pause is best-effort:
// it may run longer than requested.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
