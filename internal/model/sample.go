package model

import "time"

// CPUTicks is an aggregate CPU tick snapshot.
type CPUTicks struct {
	Idle  uint64 // idle + iowait
	Total uint64 // sum of every tick category
}

// CoreTopology describes the processor layout; read once at startup.
type CoreTopology struct {
	Cores      int
	MaxFreqMHz float64
}

// Frame is everything needed to draw one iteration of the monitor.
type Frame struct {
	Index    int // 0-based iteration
	Samples  int
	Interval time.Duration

	ShowMemory bool
	ShowCPU    bool
	ShowCores  bool

	SelfRSSMB  float64
	MemUsedGB  float64
	MemTotalGB float64
	CPUPercent float64

	Memory   []float64 // memory history, len == Index+1 when ShowMemory
	CPU      []float64 // cpu history, len == Index+1 when ShowCPU
	Topology CoreTopology
}

// Summary carries the end-of-run averages. A metric is reported only when
// its Has flag is set.
type Summary struct {
	HasMemory bool
	MemoryGB  float64
	HasCPU    bool
	CPU       float64
}
