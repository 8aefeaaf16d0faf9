package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/utilmon/internal/model"
)

// GraphHeight is the number of rows above the baseline row.
const GraphHeight = 10

// minLabelWidth fits "100.0%", the widest CPU label.
const minLabelWidth = 6

// graph describes one time-series chart.
type graph struct {
	title string
	glyph byte
	top   float64 // value at the top row
	label func(threshold float64) string
}

func memoryGraph(totalGB float64) graph {
	return graph{
		title: "Memory Utilization Graph (GB):",
		glyph: '#',
		top:   totalGB,
		label: func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
}

func cpuGraph() graph {
	return graph{
		title: "CPU Utilization Graph (%):",
		glyph: ':',
		top:   100,
		label: func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}
}

func (g graph) threshold(row int) float64 {
	return g.top * float64(row) / GraphHeight
}

// labelled reports whether row carries a threshold label: top, middle and
// baseline.
func labelled(row int) bool {
	return row == GraphHeight || row == GraphHeight/2 || row == 0
}

// plot draws values as columns of glyphs, one column per sample. A cell is
// filled when the sample reaches the row's threshold.
func (g graph) plot(b *strings.Builder, values []float64) {
	width := minLabelWidth
	for row := GraphHeight; row >= 0; row-- {
		if labelled(row) {
			width = max(width, len(g.label(g.threshold(row))))
		}
	}
	pad := strings.Repeat(" ", width)

	for row := GraphHeight; row >= 0; row-- {
		t := g.threshold(row)
		if labelled(row) {
			fmt.Fprintf(b, "%*s | ", width, g.label(t))
		} else {
			b.WriteString(pad + " | ")
		}
		for _, v := range values {
			if v >= t {
				b.WriteByte(g.glyph)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(pad + " +" + strings.Repeat("-", len(values)) + "\n")
	b.WriteString(pad + "  ")
	for i := range values {
		if i%10 == 0 {
			b.WriteString(strconv.Itoa(i / 10))
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('\n')
}

// coresDiagram lists the core count, peak frequency and one tag per core.
func coresDiagram(b *strings.Builder, topo model.CoreTopology) {
	fmt.Fprintf(b, "Cores: %d, Max Frequency: %.2f MHz\n", topo.Cores, topo.MaxFreqMHz)
	b.WriteString("Cores Diagram:\n")
	for i := 0; i < topo.Cores; i++ {
		fmt.Fprintf(b, "[CPU%d] ", i)
	}
	b.WriteByte('\n')
}
