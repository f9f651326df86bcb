// Package insights derives mood trends from stored check-ins and caches
// them per time range.
package insights

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/m-sarratt/moodline-tui/internal/analytics"
	"github.com/m-sarratt/moodline-tui/internal/db"
	"github.com/m-sarratt/moodline-tui/internal/models"
)

// Service computes hourly, weekday, and daily mood views on demand. Results
// are cached per range until Invalidate is called after the store changes.
type Service struct {
	mu sync.RWMutex
	db *db.DB

	cache map[models.TimeRange]*models.MoodHistoryStats
}

func New(database *db.DB) *Service {
	return &Service{
		db:    database,
		cache: make(map[models.TimeRange]*models.MoodHistoryStats),
	}
}

// History returns the derived views for a time range, computing them on a
// cache miss.
func (s *Service) History(rng models.TimeRange) (*models.MoodHistoryStats, error) {
	s.mu.RLock()
	cached := s.cache[rng]
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}
	return s.Refresh(rng)
}

// Refresh recomputes a time range, bypassing the cache.
func (s *Service) Refresh(rng models.TimeRange) (*models.MoodHistoryStats, error) {
	entries, err := s.db.GetEntriesSince(rng.Days())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	stats, err := analytics.Summarize(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize entries: %w", err)
	}
	stats.TimeRange = rng

	s.mu.Lock()
	s.cache[rng] = stats
	s.mu.Unlock()

	return stats, nil
}

// Cached returns the cached stats for a range without computing. May be nil.
func (s *Service) Cached(rng models.TimeRange) *models.MoodHistoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[rng]
}

// Invalidate drops every cached range. Call after entries change.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[models.TimeRange]*models.MoodHistoryStats)
}

// Today returns today's rollup (UTC), or nil when nothing was recorded yet.
func (s *Service) Today() (*models.DailyBucket, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	entries, err := s.db.GetEntriesBetween(start, start.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load today's entries: %w", err)
	}

	days, err := analytics.BucketByMonthDay(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up today: %w", err)
	}

	key := start.Format("2006-01-02")
	for i := range days {
		if days[i].Date == key {
			return &days[i], nil
		}
	}
	return nil, nil
}

// DescribeTrend compares a window's blended average against the all-time
// average and returns a short display line.
func DescribeTrend(window, allTime models.MoodStats) string {
	cur := blendedAvg(window)
	ref := blendedAvg(allTime)

	if ref <= 0 {
		return "Building history..."
	}
	diff := ((cur - ref) / ref) * 100
	if math.Abs(diff) < 10 {
		return "Typical for you"
	} else if diff > 0 {
		return fmt.Sprintf("%.0f%% above your usual", diff)
	}
	return fmt.Sprintf("%.0f%% below your usual", -diff)
}

// DescribeBalance returns a short line about the mind/body gap.
func DescribeBalance(stats models.MoodStats) string {
	if stats.AvgMind == 0 && stats.AvgBody == 0 {
		return "No readings yet"
	}
	diff := stats.AvgMind - stats.AvgBody
	switch {
	case math.Abs(diff) < 5:
		return "Mind and body in step"
	case diff > 0:
		return fmt.Sprintf("Mind ahead by %.0f", diff)
	default:
		return fmt.Sprintf("Body ahead by %.0f", -diff)
	}
}

func blendedAvg(stats models.MoodStats) float64 {
	if stats.AvgMind > 0 && stats.AvgBody > 0 {
		return (stats.AvgMind + stats.AvgBody) / 2
	}
	if stats.AvgMind > 0 {
		return stats.AvgMind
	}
	return stats.AvgBody
}
