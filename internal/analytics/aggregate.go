// Package analytics turns raw mood entries into the derived views the
// dashboard renders: hourly and weekday profiles, daily rollups, and
// summary statistics. Every function is a pure fold over its input
// collection and never assumes the entries arrive sorted.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m-sarratt/moodline-tui/internal/models"
)

// dayKeyFormat is the calendar-day key used by the daily rollup.
// Lexicographic order on keys of this shape equals chronological order.
const dayKeyFormat = "2006-01-02"

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// InvalidEntryError reports an entry whose timestamp cannot place it in
// any bucket.
type InvalidEntryError struct {
	EntryID string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("mood entry %q: missing or invalid createdAt timestamp", e.EntryID)
}

// seriesAcc accumulates one energy series within a single bucket. The
// zero value is an empty accumulator.
type seriesAcc struct {
	sum   float64
	min   float64
	max   float64
	count int
}

func (a *seriesAcc) add(v float64) {
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.count++
}

// avg returns the arithmetic mean of the accumulated values, or nil
// when nothing contributed. Absent is never coerced to zero.
func (a *seriesAcc) avg() *float64 {
	if a.count == 0 {
		return nil
	}
	v := a.sum / float64(a.count)
	return &v
}

func (a *seriesAcc) minVal() *float64 {
	if a.count == 0 {
		return nil
	}
	v := a.min
	return &v
}

func (a *seriesAcc) maxVal() *float64 {
	if a.count == 0 {
		return nil
	}
	v := a.max
	return &v
}

// BucketByHour groups entries into 24 fixed hour-of-day buckets and
// averages each series per bucket. All 24 hours are always present; an
// hour with no contributing values reports nil averages and count 0.
// Mind and body keep independent counts, and a bucket's Count is the
// sum of both, so a hit from only one series still registers as
// activity at that hour.
func BucketByHour(entries []models.MoodEntry) ([]models.HourlyBucket, error) {
	mind := make([]seriesAcc, 24)
	body := make([]seriesAcc, 24)

	for i := range entries {
		e := &entries[i]
		if e.CreatedAt.IsZero() {
			return nil, &InvalidEntryError{EntryID: e.ID}
		}
		hour := e.CreatedAt.UTC().Hour()
		if e.HasMind() {
			mind[hour].add(*e.MindEnergy)
		}
		if e.HasBody() {
			body[hour].add(*e.BodyEnergy)
		}
	}

	buckets := make([]models.HourlyBucket, 24)
	for h := 0; h < 24; h++ {
		buckets[h] = models.HourlyBucket{
			Hour:  h,
			Mind:  mind[h].avg(),
			Body:  body[h].avg(),
			Count: mind[h].count + body[h].count,
		}
	}
	return buckets, nil
}

// BucketByWeekday groups entries into 7 fixed weekday buckets, Monday
// first, tracking per-series min and max alongside the averages. All 7
// days are always present; min and max are nil for a series with zero
// contributions in that bucket.
func BucketByWeekday(entries []models.MoodEntry) ([]models.WeekdayBucket, error) {
	mind := make([]seriesAcc, 7)
	body := make([]seriesAcc, 7)

	for i := range entries {
		e := &entries[i]
		if e.CreatedAt.IsZero() {
			return nil, &InvalidEntryError{EntryID: e.ID}
		}
		// time.Weekday is Sunday-based; shift so Monday lands on 0.
		day := (int(e.CreatedAt.UTC().Weekday()) + 6) % 7
		if e.HasMind() {
			mind[day].add(*e.MindEnergy)
		}
		if e.HasBody() {
			body[day].add(*e.BodyEnergy)
		}
	}

	buckets := make([]models.WeekdayBucket, 7)
	for d := 0; d < 7; d++ {
		buckets[d] = models.WeekdayBucket{
			Weekday: d,
			Day:     weekdayNames[d],
			Mind:    mind[d].avg(),
			Body:    body[d].avg(),
			MinMind: mind[d].minVal(),
			MaxMind: mind[d].maxVal(),
			MinBody: body[d].minVal(),
			MaxBody: body[d].maxVal(),
			Count:   mind[d].count + body[d].count,
		}
	}
	return buckets, nil
}

// BucketByMonthDay groups entries into calendar-day buckets keyed by
// YYYY-MM-DD on the UTC calendar, sorted ascending by date. Only days
// with at least one entry appear; no empty day is synthesized. A day's
// blended score is the mean of its mind and body averages and exists
// only when both averages do, and the mood label is derived from it.
func BucketByMonthDay(entries []models.MoodEntry) ([]models.DailyBucket, error) {
	mind := make(map[string]*seriesAcc)
	body := make(map[string]*seriesAcc)

	for i := range entries {
		e := &entries[i]
		if e.CreatedAt.IsZero() {
			return nil, &InvalidEntryError{EntryID: e.ID}
		}
		key := e.CreatedAt.UTC().Format(dayKeyFormat)
		if _, ok := mind[key]; !ok {
			mind[key] = &seriesAcc{}
			body[key] = &seriesAcc{}
		}
		if e.HasMind() {
			mind[key].add(*e.MindEnergy)
		}
		if e.HasBody() {
			body[key].add(*e.BodyEnergy)
		}
	}

	keys := make([]string, 0, len(mind))
	for key := range mind {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]models.DailyBucket, 0, len(keys))
	for _, key := range keys {
		b := models.DailyBucket{
			Date:  key,
			Mind:  mind[key].avg(),
			Body:  body[key].avg(),
			Count: mind[key].count + body[key].count,
		}
		if b.Mind != nil && b.Body != nil {
			blended := (*b.Mind + *b.Body) / 2
			b.Blended = &blended
			b.MoodLabel = labelForBlended(blended)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// labelForBlended maps a blended score to its three-level mood label.
func labelForBlended(blended float64) string {
	switch {
	case blended >= 67:
		return models.MoodPositive
	case blended >= 33:
		return models.MoodNeutral
	default:
		return models.MoodNegative
	}
}

// CalcStats computes the global summary statistics over the given
// entries. An empty collection yields the zero MoodStats with both day
// fields empty; missing series and single entries are handled without
// error.
func CalcStats(entries []models.MoodEntry) (models.MoodStats, error) {
	stats := models.MoodStats{}
	if len(entries) == 0 {
		return stats, nil
	}

	days, err := BucketByMonthDay(entries)
	if err != nil {
		return stats, err
	}

	var mindSum, bodySum float64
	var mindCount, bodyCount int
	for i := range entries {
		e := &entries[i]
		if e.HasMind() {
			mindSum += *e.MindEnergy
			mindCount++
		}
		if e.HasBody() {
			bodySum += *e.BodyEnergy
			bodyCount++
		}
	}
	if mindCount > 0 {
		stats.AvgMind = round2(mindSum / float64(mindCount))
	}
	if bodyCount > 0 {
		stats.AvgBody = round2(bodySum / float64(bodyCount))
	}
	stats.DeltaAvg = round2(math.Abs(stats.AvgMind - stats.AvgBody))

	// Largest |mind - body| among days carrying both series. Starting
	// below zero lets a perfectly balanced day still qualify; ties keep
	// the earliest date.
	maxDiff := -1.0
	for _, d := range days {
		if d.Mind == nil || d.Body == nil {
			continue
		}
		diff := math.Abs(*d.Mind - *d.Body)
		if diff > maxDiff {
			maxDiff = diff
			stats.MostVolatileDay = d.Date
		}
	}

	// Highest blended score wins, ties keep the earliest date. The
	// baseline is zero with a strict comparison, so a day blended at
	// exactly 0 is never selected.
	bestBlended := 0.0
	for _, d := range days {
		if d.Blended == nil {
			continue
		}
		if *d.Blended > bestBlended {
			bestBlended = *d.Blended
			stats.BestDay = d.Date
		}
	}

	stats.StreakDays = longestStreak(days)

	return stats, nil
}

// longestStreak returns the length of the longest run of calendar-
// adjacent days in the ascending daily buckets. A single isolated day
// is a streak of 1; any gap wider than one day resets the run.
func longestStreak(days []models.DailyBucket) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	prev, _ := time.Parse(dayKeyFormat, days[0].Date)
	for _, d := range days[1:] {
		cur, _ := time.Parse(dayKeyFormat, d.Date)
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = cur
	}
	return longest
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize computes every aggregate view over the given entries and
// returns them bundled for the dashboard. The caller owns the result;
// nothing is cached between calls.
func Summarize(entries []models.MoodEntry) (*models.MoodHistoryStats, error) {
	stats := &models.MoodHistoryStats{
		TotalEntries: len(entries),
		LastUpdated:  time.Now(),
	}

	hourly, err := BucketByHour(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket by hour: %w", err)
	}
	stats.Hourly = hourly

	weekday, err := BucketByWeekday(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket by weekday: %w", err)
	}
	stats.Weekday = weekday

	daily, err := BucketByMonthDay(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket by day: %w", err)
	}
	stats.Daily = daily

	moodStats, err := CalcStats(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stats: %w", err)
	}
	stats.Stats = moodStats

	for i := range entries {
		t := entries[i].CreatedAt
		if stats.FirstEntryAt.IsZero() || t.Before(stats.FirstEntryAt) {
			stats.FirstEntryAt = t
		}
		if t.After(stats.LastEntryAt) {
			stats.LastEntryAt = t
		}
	}

	return stats, nil
}
