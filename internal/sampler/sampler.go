// Package sampler reads raw platform counters and turns them into the
// normalized metrics plotted by utilmon.
package sampler

import "github.com/Dicklesworthstone/utilmon/internal/model"

// kbPerGB converts kB figures from procfs to GB; kbPerMB converts kB to MB.
const (
	kbPerGB = 1024 * 1024
	kbPerMB = 1024
)

// CounterSource is the capability the run loop samples from. Only CPUTicks
// reports failure; the memory-family reads degrade to 0 and topology falls
// back to whatever could be determined.
type CounterSource interface {
	CPUTicks() (model.CPUTicks, error)
	MemoryUsedGB() float64
	TotalMemoryGB() float64
	SelfResidentMB() float64
	CoreTopology() model.CoreTopology
}

// CPUPercent returns the busy share of the ticks elapsed between prev and
// curr. Deltas use wrapping uint64 arithmetic so counter rollover behaves
// like the kernel's own unsigned counters. No ticks elapsed yields 0. The
// result is not clamped.
func CPUPercent(prev, curr model.CPUTicks) float64 {
	dIdle := curr.Idle - prev.Idle
	dTotal := curr.Total - prev.Total
	if dTotal == 0 {
		return 0
	}
	return 100 * float64(dTotal-dIdle) / float64(dTotal)
}
