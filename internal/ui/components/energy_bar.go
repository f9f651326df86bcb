// Package components provides reusable UI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

const barLabelWidth = 15

// rowLabel renders the left-hand label column shared by all bar rows.
func rowLabel(label string) string {
	return styles.ProgressLabelStyle.Width(barLabelWidth).Render(label)
}

// fitBarWidth reserves columns for the label and value and keeps the bar
// from collapsing on narrow terminals.
func fitBarWidth(width, reserved int) int {
	w := width - reserved
	if w < 10 {
		w = 10
	}
	return w
}

// EnergyBar renders a 0-100 energy reading as a progress bar with label.
type EnergyBar struct {
	progress progress.Model
}

// NewEnergyBar creates a new energy bar with gradient colors.
func NewEnergyBar() EnergyBar {
	return EnergyBar{progress: progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)}
}

// View renders the energy bar with value and label.
func (e EnergyBar) View(value float64, label string, width int) string {
	e.progress.Width = fitBarWidth(width, 30)

	valueStr := styles.GetEnergyStyle(value).
		Width(6).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f", value))

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		rowLabel(label),
		e.progress.ViewAs(value/100),
		" ",
		valueStr,
	)
}

// ViewMissing renders a series with no readings. An absent reading is not
// a zero, so the bar stays empty with an explicit marker.
func (e EnergyBar) ViewMissing(label string, width int) string {
	emptyBar := lipgloss.NewStyle().
		Foreground(styles.Subtle).
		Render(strings.Repeat("░", fitBarWidth(width, 30)))

	statusStr := styles.MoodUnknownStyle.
		Width(12).
		Align(lipgloss.Right).
		Render("NO READING")

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		rowLabel(label),
		emptyBar,
		" ",
		statusStr,
	)
}

// DayBar renders progress through the current UTC day.
type DayBar struct {
	progress progress.Model
}

// NewDayBar creates a new day bar for visualizing how far the day has run.
func NewDayBar() DayBar {
	return DayBar{progress: progress.New(
		progress.WithScaledGradient("#ffd93d", "#6c5ce7"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)}
}

// ViewWithLabel renders the day bar in a labeled row that lines up under
// the energy bars. The bar fills as the UTC day elapses; the caption shows
// time remaining.
func (d DayBar) ViewWithLabel(now time.Time, label string, width int) string {
	const dayInSeconds int64 = 86400

	now = now.UTC()
	elapsed := int64(now.Sub(now.Truncate(24*time.Hour)) / time.Second)
	remaining := dayInSeconds - elapsed

	percent := float64(elapsed) / float64(dayInSeconds)
	percent = min(max(percent, 0), 1)

	timeStr := fmt.Sprintf("%dh %02dm", remaining/3600, (remaining%3600)/60)

	const timeWidth = 8
	d.progress.Width = fitBarWidth(width, barLabelWidth+timeWidth+2)

	timeStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(timeWidth).
		Align(lipgloss.Right)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		rowLabel(label), d.progress.ViewAs(percent), " ", timeStyle.Render(timeStr))
}

// SimpleEnergyBarLoading renders a shimmering placeholder while readings load.
// The highlight sweeps back and forth with smoothstep easing so it slows at
// the edges instead of bouncing.
func SimpleEnergyBarLoading(label string, width int, frame int) string {
	const (
		indentWidth = 4
		valueWidth  = 6
		trailWidth  = 20
		cycle       = 120
	)

	barWidth := fitBarWidth(width, indentWidth+valueWidth+trailWidth+4)

	accentColor := styles.Primary
	switch {
	case strings.Contains(strings.ToLower(label), "mind"):
		accentColor = styles.Mind
	case strings.Contains(strings.ToLower(label), "body"):
		accentColor = styles.Body
	}

	t := float64(frame%cycle) / float64(cycle)
	p := t * 2
	if t >= 0.5 {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(barWidth))

	coreStyle := lipgloss.NewStyle().Foreground(accentColor)
	edgeStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	restStyle := lipgloss.NewStyle().Foreground(styles.BgLight)

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		dist := shimmerPos - i
		if dist < 0 {
			dist = -dist
		}
		switch {
		case dist < 3:
			bar.WriteString(coreStyle.Render("▓"))
		case dist < 5:
			bar.WriteString(edgeStyle.Render("▒"))
		default:
			bar.WriteString(restStyle.Render("░"))
		}
	}

	dots := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	loadingStr := lipgloss.NewStyle().
		Width(valueWidth).
		Align(lipgloss.Right).
		Foreground(accentColor).
		Render(dots[(frame/2)%len(dots)])

	return lipgloss.JoinHorizontal(lipgloss.Left,
		strings.Repeat(" ", indentWidth),
		bar.String(),
		" ",
		loadingStr,
		" ",
		lipgloss.NewStyle().Width(trailWidth).Render(""),
	)
}
