// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// ChartColors defines colors for chart elements.
var (
	ChartMindColor    = lipgloss.Color("#af87ff")
	ChartBodyColor    = lipgloss.Color("#87d787")
	ChartPrimaryColor = lipgloss.Color("#7D56F4")
)

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// SeriesWithGaps converts optional bucket averages into a plottable series.
// Hours or days without readings become NaN, which asciigraph renders as gaps.
func SeriesWithGaps(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}

func allNaN(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// seriesMax returns the largest non-NaN value, or 1 so callers can
// divide by it unconditionally.
func seriesMax(data []float64) float64 {
	max := 0.0
	for _, v := range data {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// blockIndex maps a value in [0, max] onto an index into a palette of n
// glyphs.
func blockIndex(v, max float64, n int) int {
	idx := int((v / max) * float64(n-1))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// asciigraph misbehaves below a handful of cells.
func clampChartDims(width, height int) (int, int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	return width, height
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 || allNaN(data) {
		return styles.HelpStyle.Render("No data available")
	}
	width, height = clampChartDims(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderDualLineChart creates a two-series chart for mind vs body energy.
// Either series may contain NaN for unrecorded stretches; a series that is
// entirely missing drops the chart back to a single line.
func RenderDualLineChart(mind, body []float64, width, height int, caption string) string {
	mindEmpty := len(mind) == 0 || allNaN(mind)
	bodyEmpty := len(body) == 0 || allNaN(body)

	switch {
	case mindEmpty && bodyEmpty:
		return styles.HelpStyle.Render("No data available")
	case bodyEmpty:
		return RenderLineChart(mind, width, height, caption)
	case mindEmpty:
		return RenderLineChart(body, width, height, caption)
	}

	width, height = clampChartDims(width, height)

	// PlotMany wants equal lengths; pad the shorter series with gaps,
	// not zeros, so the chart floor stays honest.
	maxLen := len(mind)
	if len(body) > maxLen {
		maxLen = len(body)
	}
	mindData := make([]float64, maxLen)
	bodyData := make([]float64, maxLen)
	for i := range mindData {
		mindData[i] = math.NaN()
		bodyData[i] = math.NaN()
	}
	copy(mindData, mind)
	copy(bodyData, body)

	return asciigraph.PlotMany([][]float64{mindData, bodyData},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Magenta,
			asciigraph.Green,
		),
	)
}

// RenderBarChart creates a simple horizontal bar chart. NaN values render
// as a dash instead of a bar.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := seriesMax(values)

	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	// Leave room for the label column and the printed value.
	barWidth := width - labelWidth - 10
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		row := fmt.Sprintf("%*s │", labelWidth, label)

		if math.IsNaN(v) {
			lines = append(lines, row+styles.HelpStyle.Render("-"))
			continue
		}

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}
		lines = append(lines, row+strings.Repeat("█", barLen)+fmt.Sprintf(" %.1f", v))
	}

	return strings.Join(lines, "\n")
}

// RenderHourlyHeatmap creates a 24-hour check-in activity heatmap.
func RenderHourlyHeatmap(patterns []float64) string {
	if len(patterns) != 24 {
		padded := make([]float64, 24)
		copy(padded, patterns)
		patterns = padded
	}

	maxVal := seriesMax(patterns)

	intensityStyles := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(styles.Subtle),
		lipgloss.NewStyle().Foreground(styles.Info),
		lipgloss.NewStyle().Foreground(styles.Warning),
		lipgloss.NewStyle().Foreground(styles.Primary),
	}

	var b strings.Builder
	b.WriteString("00 ")
	for i, v := range patterns {
		idx := blockIndex(v, maxVal, len(HeatmapBlocks))
		b.WriteString(intensityStyles[idx].Render(string(HeatmapBlocks[idx])))

		// Gap at noon for readability.
		if i == 11 {
			b.WriteString(" ")
		}
	}
	b.WriteString(" 23")
	return b.String()
}

// RenderWeeklyPattern creates a Monday-first weekday visualization.
func RenderWeeklyPattern(patterns []float64, dayNames []string) string {
	if len(patterns) != 7 {
		padded := make([]float64, 7)
		copy(padded, patterns)
		patterns = padded
	}
	if len(dayNames) != 7 {
		dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	}

	maxVal := seriesMax(patterns)

	parts := make([]string, 0, 7)
	for i, v := range patterns {
		parts = append(parts, fmt.Sprintf("%s %c", dayNames[i], sparkBlocks[blockIndex(v, maxVal, len(sparkBlocks))]))
	}
	return strings.Join(parts, " ")
}

// RenderColoredSparkline creates a sparkline colored by energy level,
// downsampling the series to fit the given width.
func RenderColoredSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := seriesMax(values)

	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		if math.IsNaN(val) {
			b.WriteString(" ")
			continue
		}
		block := sparkBlocks[blockIndex(val, maxVal, len(sparkBlocks))]
		b.WriteString(styles.GetEnergyStyle(val).Render(string(block)))
	}
	return b.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		swatch := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", swatch, item.Label))
	}
	return strings.Join(parts, "  ")
}
