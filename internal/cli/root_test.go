package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"
	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// stubSource yields a steadily advancing tick counter.
type stubSource struct {
	calls uint64
	fail  bool
}

func (s *stubSource) CPUTicks() (model.CPUTicks, error) {
	if s.fail {
		return model.CPUTicks{}, apperrors.ReadError{Source: "/proc/stat", Cause: errors.New("missing")}
	}
	s.calls++
	return model.CPUTicks{Idle: s.calls * 75, Total: s.calls * 100}, nil
}

func (s *stubSource) MemoryUsedGB() float64            { return 1.5 }
func (s *stubSource) TotalMemoryGB() float64           { return 4 }
func (s *stubSource) SelfResidentMB() float64          { return 3 }
func (s *stubSource) CoreTopology() model.CoreTopology { return model.CoreTopology{Cores: 2, MaxFreqMHz: 1000} }

func execute(t *testing.T, src *stubSource, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(src, zerolog.Nop())
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_CPUOnly(t *testing.T) {
	out, err := execute(t, &stubSource{}, "9", "0", "--cpu", "--samples=2", "--unknown")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "CPU Utilization Graph (%):"))
	assert.Contains(t, out, "  Samples: 2\n")
	assert.Contains(t, out, "  Delay: 0 microseconds\n")
	assert.NotContains(t, out, "Memory Utilization Graph")
	assert.NotContains(t, out, "Cores Diagram")
	assert.True(t, strings.HasSuffix(out, "Average CPU Usage: 25.00%\n"), out)
}

func TestRootCommand_DefaultsEnableEverything(t *testing.T) {
	out, err := execute(t, &stubSource{}, "1", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Monitoring Tool Memory Usage: 3.00 MB")
	assert.Contains(t, out, "Memory Usage: Current used: 1.50 GB (Total: 4.00 GB)")
	assert.Contains(t, out, "CPU Usage: Current: 25.00%")
	assert.Contains(t, out, "Cores: 2, Max Frequency: 1000.00 MHz")
	assert.Contains(t, out, "Average Memory Usage: 1.50 GB")
}

func TestRootCommand_StartupFailures(t *testing.T) {
	_, err := execute(t, &stubSource{}, "--samples=-4")
	require.Error(t, err)
	assert.True(t, apperrors.IsAllocationError(err))
	assert.Equal(t, apperrors.ExitFailure, apperrors.ExitCode(err))

	out, err := execute(t, &stubSource{fail: true}, "3", "0", "--cpu")
	require.Error(t, err)
	assert.True(t, apperrors.IsReadError(err))
	assert.Empty(t, out)
}
