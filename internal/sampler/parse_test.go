package sampler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

func TestParseCPUTicks(t *testing.T) {
	tests := []struct {
		name    string
		stat    string
		want    model.CPUTicks
		wantErr bool
	}{
		{
			name: "full eight fields",
			stat: `cpu  100 10 50 800 20 5 5 10 0 0
cpu0 50 5 25 400 10 2 3 5 0 0`,
			want: model.CPUTicks{Idle: 820, Total: 1000},
		},
		{
			name: "minimum four fields",
			stat: "cpu  10 0 10 80\n",
			want: model.CPUTicks{Idle: 80, Total: 100},
		},
		{
			name: "guest columns ignored",
			stat: "cpu  1 1 1 1 1 1 1 1 999 999\n",
			want: model.CPUTicks{Idle: 2, Total: 8},
		},
		{
			name:    "three fields is malformed",
			stat:    "cpu  10 20 30\n",
			wantErr: true,
		},
		{
			name:    "non-numeric field",
			stat:    "cpu  invalid data here\n",
			wantErr: true,
		},
		{
			name:    "per-core line first",
			stat:    "cpu0 1 2 3 4 5 6 7 8\n",
			wantErr: true,
		},
		{
			name:    "empty",
			stat:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCPUTicks(strings.NewReader(tt.stat))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMeminfo(t *testing.T) {
	t.Run("total and available", func(t *testing.T) {
		info, err := ParseMeminfo(strings.NewReader(`MemTotal:        8000000 kB
MemFree:          1000000 kB
MemAvailable:     4000000 kB
Buffers:           100000 kB`))
		require.NoError(t, err)
		assert.Equal(t, 8000000.0, info.TotalKB)
		assert.Equal(t, 4000000.0, info.AvailableKB)
		assert.InDelta(t, 3.8147, info.UsedGB(), 1e-4)
		assert.InDelta(t, 7.6294, info.TotalGB(), 1e-4)
	})

	t.Run("missing available reads as zero", func(t *testing.T) {
		info, err := ParseMeminfo(strings.NewReader("MemTotal: 1048576 kB\n"))
		require.NoError(t, err)
		assert.Equal(t, 0.0, info.AvailableKB)
		assert.InDelta(t, 1.0, info.UsedGB(), 1e-9)
	})

	t.Run("missing total", func(t *testing.T) {
		_, err := ParseMeminfo(strings.NewReader("MemAvailable: 1000 kB\n"))
		assert.Error(t, err)
	})
}

func TestParseVmRSS(t *testing.T) {
	kb, err := ParseVmRSS(strings.NewReader(`Name:	utilmon
VmPeak:	   12000 kB
VmRSS:	    2048 kB
Threads:	1`))
	require.NoError(t, err)
	assert.Equal(t, 2048.0, kb)

	_, err = ParseVmRSS(strings.NewReader("Name:\tkthreadd\n"))
	assert.Error(t, err)
}

func TestParseMaxFreqKHz(t *testing.T) {
	khz, err := ParseMaxFreqKHz(strings.NewReader("3600000\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(3600000), khz)

	_, err = ParseMaxFreqKHz(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseMaxFreqKHz(strings.NewReader("fast\n"))
	assert.Error(t, err)
}

func TestParseCPUInfoMHz(t *testing.T) {
	cpuinfo := `processor	: 0
model name	: Example CPU
cpu MHz		: 2399.998
cache size	: 512 KB

processor	: 1
cpu MHz		: 3100.250

processor	: 2
cpu MHz		: garbage
`
	mhz, err := ParseCPUInfoMHz(strings.NewReader(cpuinfo))
	require.NoError(t, err)
	assert.InDelta(t, 3100.25, mhz, 1e-9)

	mhz, err = ParseCPUInfoMHz(strings.NewReader("processor\t: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, mhz)
}
