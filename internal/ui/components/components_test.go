package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestLoadingSpinner(t *testing.T) {
	s := NewSpinner("Init")
	if s.label != "Init" {
		t.Errorf("label = %q, want Init", s.label)
	}

	s.SetLabel("Loading")
	if !strings.Contains(s.ViewWithLabel(), "Loading") {
		t.Error("ViewWithLabel should include the label")
	}

	if s.Init() == nil {
		t.Error("Init should return the tick command")
	}

	// The spinner only advances on its own tick messages.
	if _, cmd := s.Update(spinner.TickMsg{ID: s.spinner.ID()}); cmd == nil {
		t.Error("Update should schedule the next tick")
	}

	if RenderSpinnerCentered(s, 20, 5) == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestSeriesWithGaps(t *testing.T) {
	v1 := 50.0
	v2 := 80.0
	got := SeriesWithGaps([]*float64{&v1, nil, &v2})

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != 50.0 {
		t.Errorf("got[0] = %f, want 50.0", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Error("nil bucket should become NaN")
	}
	if got[2] != 80.0 {
		t.Errorf("got[2] = %f, want 80.0", got[2])
	}
}

// The chart renderers are exercised for non-empty output here; the gap
// and fallback behaviors get their own tests below.
func TestChartRenderers(t *testing.T) {
	charts := map[string]string{
		"line":      RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test"),
		"dual":      RenderDualLineChart([]float64{40, 55, 70}, []float64{60, 50, 45}, 20, 5, "Title"),
		"bars":      RenderBarChart([]float64{10, 20}, []string{"Mon", "Tue"}, 20),
		"heatmap":   RenderHourlyHeatmap(make([]float64, 24)),
		"sparkline": RenderColoredSparkline([]float64{20, 50, 90}, 10),
	}
	for name, rendered := range charts {
		if rendered == "" {
			t.Errorf("%s chart rendered empty", name)
		}
	}
}

func TestRenderLineChart_AllGaps(t *testing.T) {
	data := []float64{math.NaN(), math.NaN()}
	s := RenderLineChart(data, 20, 5, "Test")
	if !strings.Contains(s, "No data") {
		t.Error("All-gap series should render the empty message")
	}
}

func TestRenderDualLineChart_OneSeriesMissing(t *testing.T) {
	mind := []float64{40, 55, 70}
	s := RenderDualLineChart(mind, nil, 20, 5, "Title")
	if s == "" {
		t.Error("RenderDualLineChart should fall back to single series")
	}

	s = RenderDualLineChart(nil, nil, 20, 5, "Title")
	if !strings.Contains(s, "No data") {
		t.Error("Both series missing should render the empty message")
	}
}

func TestRenderBarChart_GapRow(t *testing.T) {
	values := []float64{10, math.NaN()}
	labels := []string{"Mon", "Tue"}
	s := RenderBarChart(values, labels, 30)

	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[1], "█") {
		t.Error("Gap row should not draw a bar")
	}
}

func TestRenderWeeklyPattern(t *testing.T) {
	data := make([]float64, 7)
	s := RenderWeeklyPattern(data, nil)
	if !strings.HasPrefix(s, "Mon") {
		t.Error("RenderWeeklyPattern should default to Monday-first labels")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "Mind", Color: ChartMindColor},
		{Label: "Body", Color: ChartBodyColor},
	}
	s := RenderLegend(items)
	if !strings.Contains(s, "Mind") || !strings.Contains(s, "Body") {
		t.Error("RenderLegend missing labels")
	}
}
