package sampler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"

	apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"
	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// ProcSource reads counters straight from procfs and sysfs.
type ProcSource struct {
	ProcRoot string // usually /proc
	SysRoot  string // usually /sys

	// CountCores returns the number of online processors.
	CountCores func() int

	log zerolog.Logger
}

// NewProcSource returns a ProcSource over the live /proc and /sys trees.
func NewProcSource(log zerolog.Logger) *ProcSource {
	return &ProcSource{
		ProcRoot:   "/proc",
		SysRoot:    "/sys",
		CountCores: onlineCores,
		log:        log,
	}
}

func (p *ProcSource) CPUTicks() (model.CPUTicks, error) {
	path := filepath.Join(p.ProcRoot, "stat")
	var snap model.CPUTicks
	err := p.parseFile(path, func(r io.Reader) (err error) {
		snap, err = ParseCPUTicks(r)
		return err
	})
	if err != nil {
		return model.CPUTicks{}, apperrors.ReadError{Source: path, Cause: err}
	}
	return snap, nil
}

func (p *ProcSource) MemoryUsedGB() float64 {
	info, ok := p.meminfo()
	if !ok {
		return 0
	}
	return info.UsedGB()
}

func (p *ProcSource) TotalMemoryGB() float64 {
	info, ok := p.meminfo()
	if !ok {
		return 0
	}
	return info.TotalGB()
}

func (p *ProcSource) SelfResidentMB() float64 {
	path := filepath.Join(p.ProcRoot, "self", "status")
	var kb float64
	err := p.parseFile(path, func(r io.Reader) (err error) {
		kb, err = ParseVmRSS(r)
		return err
	})
	if err != nil {
		p.log.Debug().Err(err).Str("source", path).Msg("self memory unavailable")
		return 0
	}
	return kb / kbPerMB
}

// CoreTopology takes the highest cpuinfo_max_freq across online cores and
// falls back to the "cpu MHz" entries of /proc/cpuinfo when no core exposes
// one.
func (p *ProcSource) CoreTopology() model.CoreTopology {
	topo := model.CoreTopology{Cores: p.CountCores()}
	for i := 0; i < topo.Cores; i++ {
		path := filepath.Join(p.SysRoot, "devices", "system", "cpu",
			fmt.Sprintf("cpu%d", i), "cpufreq", "cpuinfo_max_freq")
		var khz int64
		err := p.parseFile(path, func(r io.Reader) (err error) {
			khz, err = ParseMaxFreqKHz(r)
			return err
		})
		if err != nil {
			continue
		}
		if mhz := float64(khz) / 1000; mhz > topo.MaxFreqMHz {
			topo.MaxFreqMHz = mhz
		}
	}
	if topo.MaxFreqMHz > 0 {
		return topo
	}

	path := filepath.Join(p.ProcRoot, "cpuinfo")
	err := p.parseFile(path, func(r io.Reader) (err error) {
		topo.MaxFreqMHz, err = ParseCPUInfoMHz(r)
		return err
	})
	if err != nil {
		p.log.Debug().Err(err).Str("source", path).Msg("core frequency unavailable")
	}
	return topo
}

func (p *ProcSource) meminfo() (Meminfo, bool) {
	path := filepath.Join(p.ProcRoot, "meminfo")
	var info Meminfo
	err := p.parseFile(path, func(r io.Reader) (err error) {
		info, err = ParseMeminfo(r)
		return err
	})
	if err != nil {
		p.log.Debug().Err(err).Str("source", path).Msg("memory info unavailable")
		return Meminfo{}, false
	}
	return info, true
}

func (p *ProcSource) parseFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return parse(f)
}

// onlineCores asks gopsutil for the logical processor count and falls back
// to the scheduler's view.
func onlineCores() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
