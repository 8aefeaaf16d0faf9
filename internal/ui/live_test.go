package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// scriptedStepper hands out a fixed number of frames, then optionally fails.
type scriptedStepper struct {
	remaining int
	err       error
	steps     int
}

func (s *scriptedStepper) Step(ctx context.Context) (model.Frame, error) {
	if err := ctx.Err(); err != nil {
		return model.Frame{}, err
	}
	if s.remaining == 0 && s.err != nil {
		return model.Frame{}, s.err
	}
	s.remaining--
	s.steps++
	return model.Frame{Index: s.steps - 1, Samples: 3, ShowCPU: true, CPU: make([]float64, s.steps)}, nil
}

func (s *scriptedStepper) Done() bool { return s.remaining == 0 && s.err == nil }

// drive feeds the model the result of each command until it quits.
func drive(t *testing.T, m *Model) {
	t.Helper()
	cmd := m.Init()
	for i := 0; cmd != nil && i < 100; i++ {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func TestModel_RunsToCompletion(t *testing.T) {
	s := &scriptedStepper{remaining: 3}
	m := NewModel(context.Background(), s, plainRenderer())

	assert.Contains(t, m.View(), "Collecting first sample")
	drive(t, m)

	assert.Equal(t, 3, s.steps)
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "CPU Utilization Graph (%):")
	assert.Equal(t, 2, m.frame.Index)
}

func TestModel_StopsOnReadError(t *testing.T) {
	readErr := errors.New("stat unreadable")
	s := &scriptedStepper{remaining: 1, err: readErr}
	m := NewModel(context.Background(), s, plainRenderer())

	drive(t, m)

	assert.Equal(t, 1, s.steps)
	require.Error(t, m.Err())
	assert.ErrorIs(t, m.Err(), readErr)
}

func TestModel_QuitKeyCancels(t *testing.T) {
	s := &scriptedStepper{remaining: 5}
	m := NewModel(context.Background(), s, plainRenderer())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	_, err := s.Step(m.ctx)
	assert.ErrorIs(t, err, context.Canceled)

	m.err = err
	assert.NoError(t, m.Err(), "keyboard stop is not a failure")
}
