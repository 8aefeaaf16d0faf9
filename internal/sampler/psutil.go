package sampler

import (
	"errors"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"
	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// psutilTickHz converts gopsutil's CPU seconds back into USER_HZ ticks.
const psutilTickHz = 100

const (
	bytesPerGB = 1 << 30
	bytesPerMB = 1 << 20
)

// PsutilSource reads counters through gopsutil, for platforms without
// procfs.
type PsutilSource struct {
	log zerolog.Logger
}

func NewPsutilSource(log zerolog.Logger) *PsutilSource {
	return &PsutilSource{log: log}
}

func (s *PsutilSource) CPUTicks() (model.CPUTicks, error) {
	times, err := cpu.Times(false)
	if err == nil && len(times) == 0 {
		err = errors.New("no aggregate cpu times")
	}
	if err != nil {
		return model.CPUTicks{}, apperrors.ReadError{Source: "cpu.Times", Cause: err}
	}
	t := times[0]
	idle := ticks(t.Idle) + ticks(t.Iowait)
	return model.CPUTicks{
		Idle:  idle,
		Total: ticks(t.User) + ticks(t.Nice) + ticks(t.System) + idle + ticks(t.Irq) + ticks(t.Softirq) + ticks(t.Steal),
	}, nil
}

func (s *PsutilSource) MemoryUsedGB() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		s.log.Debug().Err(err).Msg("memory info unavailable")
		return 0
	}
	return (float64(vm.Total) - float64(vm.Available)) / bytesPerGB
}

func (s *PsutilSource) TotalMemoryGB() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		s.log.Debug().Err(err).Msg("memory info unavailable")
		return 0
	}
	return float64(vm.Total) / bytesPerGB
}

func (s *PsutilSource) SelfResidentMB() float64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.log.Debug().Err(err).Msg("self memory unavailable")
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil {
		s.log.Debug().Err(err).Msg("self memory unavailable")
		return 0
	}
	return float64(info.RSS) / bytesPerMB
}

func (s *PsutilSource) CoreTopology() model.CoreTopology {
	topo := model.CoreTopology{Cores: onlineCores()}
	infos, err := cpu.Info()
	if err != nil {
		s.log.Debug().Err(err).Msg("core frequency unavailable")
		return topo
	}
	for _, info := range infos {
		if info.Mhz > topo.MaxFreqMHz {
			topo.MaxFreqMHz = info.Mhz
		}
	}
	return topo
}

func ticks(seconds float64) uint64 {
	return uint64(math.Round(seconds * psutilTickHz))
}
