package sampler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// minCPUFields is user, nice, system and idle.
const minCPUFields = 4

// Meminfo holds the /proc/meminfo figures utilmon uses, in kB.
type Meminfo struct {
	TotalKB     float64
	AvailableKB float64
}

// UsedGB returns total minus available, in GB.
func (m Meminfo) UsedGB() float64 { return (m.TotalKB - m.AvailableKB) / kbPerGB }

// TotalGB returns the total, in GB.
func (m Meminfo) TotalGB() float64 { return m.TotalKB / kbPerGB }

// ParseCPUTicks parses the aggregate line at the top of /proc/stat:
//
//	cpu  user nice system idle iowait irq softirq steal ...
//
// Categories after steal are ignored; missing ones after idle count as 0.
func ParseCPUTicks(r io.Reader) (model.CPUTicks, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return model.CPUTicks{}, fmt.Errorf("error scanning stat: %w", err)
		}
		return model.CPUTicks{}, errors.New("empty stat")
	}
	line := sc.Text()
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "cpu" {
		return model.CPUTicks{}, fmt.Errorf("invalid stat cpu line: %q", line)
	}

	var ticks [8]uint64
	n := 0
	for _, f := range fields[1:] {
		if n == len(ticks) {
			break
		}
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			break
		}
		ticks[n] = v
		n++
	}
	if n < minCPUFields {
		return model.CPUTicks{}, fmt.Errorf("stat cpu line has %d numeric fields, want at least %d", n, minCPUFields)
	}

	// user nice system idle iowait irq softirq steal
	snap := model.CPUTicks{Idle: ticks[3] + ticks[4]}
	for _, v := range ticks {
		snap.Total += v
	}
	return snap, nil
}

// ParseMeminfo extracts MemTotal and MemAvailable. MemTotal is required;
// a missing MemAvailable reads as 0.
func ParseMeminfo(r io.Reader) (Meminfo, error) {
	var info Meminfo
	var haveTotal, haveAvail bool
	sc := bufio.NewScanner(r)
	for !(haveTotal && haveAvail) && sc.Scan() {
		key, val, ok := kbField(sc.Text())
		if !ok {
			continue
		}
		switch key {
		case "MemTotal":
			info.TotalKB, haveTotal = val, true
		case "MemAvailable":
			info.AvailableKB, haveAvail = val, true
		}
	}
	if err := sc.Err(); err != nil {
		return Meminfo{}, fmt.Errorf("error scanning meminfo: %w", err)
	}
	if !haveTotal {
		return Meminfo{}, errors.New("MemTotal not found in meminfo")
	}
	return info, nil
}

// ParseVmRSS returns the VmRSS field of a process status file, in kB.
func ParseVmRSS(r io.Reader) (float64, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, val, ok := kbField(sc.Text())
		if ok && key == "VmRSS" {
			return val, nil
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("error scanning status: %w", err)
	}
	return 0, errors.New("VmRSS not found in status")
}

// ParseMaxFreqKHz reads the single integer held by a cpuinfo_max_freq file.
func ParseMaxFreqKHz(r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return 0, errors.New("empty frequency file")
	}
	return strconv.ParseInt(fields[0], 10, 64)
}

// ParseCPUInfoMHz returns the highest "cpu MHz" value in /proc/cpuinfo, or 0
// if there is none.
func ParseCPUInfoMHz(r io.Reader) (float64, error) {
	var best float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}
		_, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			continue
		}
		if mhz > best {
			best = mhz
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("error scanning cpuinfo: %w", err)
	}
	return best, nil
}

// kbField splits a "Key:   123 kB" line.
func kbField(line string) (key string, val float64, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 || !strings.HasSuffix(parts[0], ":") {
		return "", 0, false
	}
	v, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSuffix(parts[0], ":"), v, true
}
