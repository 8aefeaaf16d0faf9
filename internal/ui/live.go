package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// Stepper advances a sampling run by one iteration.
type Stepper interface {
	Step(ctx context.Context) (model.Frame, error)
	Done() bool
}

// Model renders a sampling run live. At most one Step is in flight at a
// time, so sampling stays sequential while Bubble Tea owns the terminal.
type Model struct {
	stepper   Stepper
	renderer  *Renderer
	ctx       context.Context
	ctxCancel context.CancelFunc

	frame   model.Frame
	started bool
	err     error
}

func NewModel(ctx context.Context, s Stepper, r *Renderer) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{stepper: s, renderer: r, ctx: ctx, ctxCancel: cancel}
}

// Messages
type (
	frameMsg   model.Frame
	stepErrMsg struct{ err error }
)

func (m *Model) stepCmd() tea.Cmd {
	return func() tea.Msg {
		f, err := m.stepper.Step(m.ctx)
		if err != nil {
			return stepErrMsg{err}
		}
		return frameMsg(f)
	}
}

func (m *Model) Init() tea.Cmd {
	if m.stepper.Done() {
		return tea.Quit
	}
	return m.stepCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctxCancel()
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = model.Frame(msg)
		m.started = true
		if m.stepper.Done() {
			return m, tea.Quit
		}
		return m, m.stepCmd()
	case stepErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.started {
		return m.renderer.header.Render("Collecting first sample...") + "\n"
	}
	return m.renderer.Frame(m.frame)
}

// Err returns the read failure that ended sampling, if any. Stopping the run
// from the keyboard is not an error.
func (m *Model) Err() error {
	if errors.Is(m.err, context.Canceled) {
		return nil
	}
	return m.err
}

// Stop cancels any in-flight step.
func (m *Model) Stop() { m.ctxCancel() }

// RunLive drives s to completion in a Bubble Tea program and returns the
// first read failure, if any.
func RunLive(ctx context.Context, s Stepper, r *Renderer, opts ...tea.ProgramOption) error {
	m := NewModel(ctx, s, r)
	defer m.Stop()
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return m.Err()
}
