package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// ClearScreen erases the terminal and homes the cursor before a redraw.
const ClearScreen = "\033[2J\033[H"

// Renderer turns frames into text. Styling follows the capabilities of the
// writer it was built for, so output to a pipe or buffer is plain ASCII.
type Renderer struct {
	title  lipgloss.Style
	header lipgloss.Style
}

// NewRenderer returns a Renderer styled for w.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		header: r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// MemoryGraph charts memory use against the machine's total, in GB.
func (r *Renderer) MemoryGraph(values []float64, totalGB float64) string {
	return r.chart(memoryGraph(totalGB), values)
}

// CPUGraph charts CPU utilization on a 0-100% scale.
func (r *Renderer) CPUGraph(values []float64) string {
	return r.chart(cpuGraph(), values)
}

// Cores renders the core topology block.
func (r *Renderer) Cores(topo model.CoreTopology) string {
	var b strings.Builder
	coresDiagram(&b, topo)
	return b.String()
}

func (r *Renderer) chart(g graph, values []float64) string {
	var b strings.Builder
	b.WriteString(r.title.Render(g.title) + "\n")
	g.plot(&b, values)
	return b.String()
}

// Frame renders one iteration: the run parameters followed by each enabled
// block in the order memory, CPU, cores.
func (r *Renderer) Frame(f model.Frame) string {
	var b strings.Builder
	b.WriteString(r.header.Render("Running parameters:") + "\n")
	fmt.Fprintf(&b, "  Samples: %d\n", f.Samples)
	fmt.Fprintf(&b, "  Delay: %d microseconds\n", f.Interval.Microseconds())
	if f.ShowMemory {
		fmt.Fprintf(&b, "  Monitoring Tool Memory Usage: %.2f MB\n", f.SelfRSSMB)
	}
	b.WriteString("\n")

	if f.ShowMemory {
		fmt.Fprintf(&b, "Memory Usage: Current used: %.2f GB (Total: %.2f GB)\n", f.MemUsedGB, f.MemTotalGB)
		b.WriteString(r.MemoryGraph(f.Memory, f.MemTotalGB))
		b.WriteString("\n")
	}
	if f.ShowCPU {
		fmt.Fprintf(&b, "CPU Usage: Current: %.2f%%\n", f.CPUPercent)
		b.WriteString(r.CPUGraph(f.CPU))
		b.WriteString("\n")
	}
	if f.ShowCores {
		b.WriteString(r.Cores(f.Topology))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders the end-of-run averages.
func (r *Renderer) Summary(s model.Summary) string {
	var b strings.Builder
	if s.HasMemory {
		fmt.Fprintf(&b, "Average Memory Usage: %.2f GB\n", s.MemoryGB)
	}
	if s.HasCPU {
		fmt.Fprintf(&b, "Average CPU Usage: %.2f%%\n", s.CPU)
	}
	return b.String()
}
