// Package models defines data structures and domain types.
package models

import "time"

// TimeRange represents the selected trends time range.
type TimeRange int

const (
	// TimeRange7Days shows data from the last 7 days.
	TimeRange7Days TimeRange = iota
	// TimeRange30Days shows data from the last 30 days.
	TimeRange30Days
	// TimeRange90Days shows data from the last 90 days.
	TimeRange90Days
	// TimeRangeAllTime shows all recorded check-ins.
	TimeRangeAllTime
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange7Days:
		return "7 Days"
	case TimeRange30Days:
		return "30 Days"
	case TimeRange90Days:
		return "90 Days"
	case TimeRangeAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Days returns the number of days for the time range (0 = unlimited).
func (t TimeRange) Days() int {
	switch t {
	case TimeRange7Days:
		return 7
	case TimeRange30Days:
		return 30
	case TimeRange90Days:
		return 90
	case TimeRangeAllTime:
		return 0
	default:
		return 30
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 4
}

// Mood label values derived from a day's blended score.
const (
	MoodPositive = "positive"
	MoodNeutral  = "neutral"
	MoodNegative = "negative"
)

// HourlyBucket holds per-series averages for one hour of day. A nil average
// means the series had no readings in that hour; Count is the combined number
// of mind and body readings, so an hour touched by only one series still
// registers activity.
type HourlyBucket struct {
	Mind  *float64
	Body  *float64
	Hour  int // 0-23
	Count int
}

// WeekdayBucket holds per-series averages and extremes for one weekday.
// Weekday is Monday-first (0 = Monday, 6 = Sunday).
type WeekdayBucket struct {
	Mind    *float64
	Body    *float64
	MinMind *float64
	MaxMind *float64
	MinBody *float64
	MaxBody *float64
	Day     string
	Weekday int
	Count   int
}

// DailyBucket is the rollup for one calendar day (UTC). Blended is the mean
// of the day's mind and body averages and exists only when both do; MoodLabel
// is derived from Blended and is empty when Blended is nil.
type DailyBucket struct {
	Mind      *float64
	Body      *float64
	Blended   *float64
	Date      string // YYYY-MM-DD
	MoodLabel string
	Count     int
}

// MoodStats is the fixed set of summary statistics over a window of entries.
// Day fields hold YYYY-MM-DD keys and are empty when no day qualifies.
type MoodStats struct {
	MostVolatileDay string
	BestDay         string
	AvgMind         float64
	AvgBody         float64
	DeltaAvg        float64
	StreakDays      int
}

// MoodHistoryStats bundles every derived view for one time range, as the
// trends tab loads it in a single call.
type MoodHistoryStats struct {
	FirstEntryAt time.Time
	LastEntryAt  time.Time
	LastUpdated  time.Time
	Hourly       []HourlyBucket
	Weekday      []WeekdayBucket
	Daily        []DailyBucket
	Stats        MoodStats
	TotalEntries int
	TimeRange    TimeRange
}

// HasData returns true if any check-ins fell inside the range.
func (m *MoodHistoryStats) HasData() bool {
	return m.TotalEntries > 0
}

// PeakHour returns the hour of day with the most readings.
func (m *MoodHistoryStats) PeakHour() (peakHour int, peakCount int) {
	if len(m.Hourly) == 0 {
		return 0, 0
	}
	peakHour = 0
	peakCount = 0
	for _, b := range m.Hourly {
		if b.Count > peakCount {
			peakCount = b.Count
			peakHour = b.Hour
		}
	}
	return peakHour, peakCount
}

// PeakWeekday returns the weekday with the most readings.
func (m *MoodHistoryStats) PeakWeekday() (peakDay string, peakCount int) {
	if len(m.Weekday) == 0 {
		return "Unknown", 0
	}
	peakDay = ""
	peakCount = 0
	for _, b := range m.Weekday {
		if b.Count > peakCount {
			peakCount = b.Count
			peakDay = b.Day
		}
	}
	return peakDay, peakCount
}
