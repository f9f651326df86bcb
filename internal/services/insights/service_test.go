package insights

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-sarratt/moodline-tui/internal/db"
	"github.com/m-sarratt/moodline-tui/internal/models"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return New(database), database
}

func seedEntry(t *testing.T, database *db.DB, id string, at time.Time, mind, body float64) {
	t.Helper()
	entry := &models.MoodEntry{
		ID:         id,
		CreatedAt:  at,
		MindEnergy: models.FloatPtr(mind),
		BodyEnergy: models.FloatPtr(body),
	}
	if _, err := database.InsertEntry(entry); err != nil {
		t.Fatalf("InsertEntry(%s) failed: %v", id, err)
	}
}

func TestNew(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	if svc == nil {
		t.Fatal("Expected non-nil service")
	}
}

func TestHistory_Empty(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	stats, err := svc.History(models.TimeRangeAllTime)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}

	if stats.HasData() {
		t.Error("HasData() = true for empty store")
	}
	if len(stats.Hourly) != 24 {
		t.Errorf("len(Hourly) = %d, want 24", len(stats.Hourly))
	}
	if len(stats.Weekday) != 7 {
		t.Errorf("len(Weekday) = %d, want 7", len(stats.Weekday))
	}
	if len(stats.Daily) != 0 {
		t.Errorf("len(Daily) = %d, want 0", len(stats.Daily))
	}
	if stats.TimeRange != models.TimeRangeAllTime {
		t.Errorf("TimeRange = %v, want TimeRangeAllTime", stats.TimeRange)
	}
}

func TestHistory_WithData(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	// Noon anchors keep the two calendar days stable around midnight
	now := time.Now().UTC()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	seedEntry(t, database, "e1", noon.Add(-24*time.Hour), 70, 60)
	seedEntry(t, database, "e2", noon, 80, 50)
	seedEntry(t, database, "e3", noon.Add(time.Hour), 60, 40)

	stats, err := svc.History(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}

	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if len(stats.Daily) != 2 {
		t.Errorf("len(Daily) = %d, want 2", len(stats.Daily))
	}
	if stats.Stats.AvgMind != 70 {
		t.Errorf("AvgMind = %v, want 70", stats.Stats.AvgMind)
	}
}

func TestHistory_RangeFilter(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	now := time.Now().UTC()
	seedEntry(t, database, "old", now.Add(-100*24*time.Hour), 50, 50)
	seedEntry(t, database, "new", now.Add(-time.Hour), 70, 70)

	week, err := svc.History(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("History(7d) failed: %v", err)
	}
	if week.TotalEntries != 1 {
		t.Errorf("7d TotalEntries = %d, want 1", week.TotalEntries)
	}

	all, err := svc.History(models.TimeRangeAllTime)
	if err != nil {
		t.Fatalf("History(all) failed: %v", err)
	}
	if all.TotalEntries != 2 {
		t.Errorf("all-time TotalEntries = %d, want 2", all.TotalEntries)
	}
}

func TestHistory_CachesResult(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	now := time.Now().UTC()
	seedEntry(t, database, "e1", now.Add(-time.Hour), 70, 60)

	first, err := svc.History(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if first.TotalEntries != 1 {
		t.Fatalf("TotalEntries = %d, want 1", first.TotalEntries)
	}

	// New entry lands behind the cache
	seedEntry(t, database, "e2", now.Add(-30*time.Minute), 80, 50)

	second, err := svc.History(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if second.TotalEntries != 1 {
		t.Errorf("cached TotalEntries = %d, want 1", second.TotalEntries)
	}

	svc.Invalidate()

	third, err := svc.History(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if third.TotalEntries != 2 {
		t.Errorf("TotalEntries after Invalidate = %d, want 2", third.TotalEntries)
	}
}

func TestRefresh_BypassesCache(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	now := time.Now().UTC()
	seedEntry(t, database, "e1", now.Add(-time.Hour), 70, 60)

	if _, err := svc.History(models.TimeRange7Days); err != nil {
		t.Fatalf("History() failed: %v", err)
	}

	seedEntry(t, database, "e2", now.Add(-30*time.Minute), 80, 50)

	stats, err := svc.Refresh(models.TimeRange7Days)
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", stats.TotalEntries)
	}
}

func TestCached(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	if svc.Cached(models.TimeRange7Days) != nil {
		t.Error("Cached() should be nil before first History()")
	}

	if _, err := svc.History(models.TimeRange7Days); err != nil {
		t.Fatalf("History() failed: %v", err)
	}

	if svc.Cached(models.TimeRange7Days) == nil {
		t.Error("Cached() should be non-nil after History()")
	}
	if svc.Cached(models.TimeRange30Days) != nil {
		t.Error("Cached() for an uncomputed range should be nil")
	}
}

func TestToday(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	now := time.Now().UTC()
	seedEntry(t, database, "yesterday", now.Add(-25*time.Hour), 20, 20)
	seedEntry(t, database, "today", now, 80, 60)

	day, err := svc.Today()
	if err != nil {
		t.Fatalf("Today() failed: %v", err)
	}
	if day == nil {
		t.Fatal("Today() returned nil, want today's rollup")
	}

	if day.Date != now.Format("2006-01-02") {
		t.Errorf("Date = %q, want %q", day.Date, now.Format("2006-01-02"))
	}
	if day.Blended == nil || *day.Blended != 70 {
		t.Errorf("Blended = %v, want 70", day.Blended)
	}
	if day.MoodLabel != models.MoodPositive {
		t.Errorf("MoodLabel = %q, want %q", day.MoodLabel, models.MoodPositive)
	}
}

func TestToday_NoEntries(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	day, err := svc.Today()
	if err != nil {
		t.Fatalf("Today() failed: %v", err)
	}
	if day != nil {
		t.Errorf("Today() = %+v, want nil for empty store", day)
	}
}

func TestDescribeTrend(t *testing.T) {
	tests := []struct {
		name    string
		window  models.MoodStats
		allTime models.MoodStats
		want    string
	}{
		{
			"NoHistory",
			models.MoodStats{AvgMind: 70, AvgBody: 70},
			models.MoodStats{},
			"Building history...",
		},
		{
			"Typical",
			models.MoodStats{AvgMind: 52, AvgBody: 52},
			models.MoodStats{AvgMind: 50, AvgBody: 50},
			"Typical for you",
		},
		{
			"Above",
			models.MoodStats{AvgMind: 75, AvgBody: 75},
			models.MoodStats{AvgMind: 50, AvgBody: 50},
			"50% above your usual",
		},
		{
			"Below",
			models.MoodStats{AvgMind: 25, AvgBody: 25},
			models.MoodStats{AvgMind: 50, AvgBody: 50},
			"50% below your usual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeTrend(tt.window, tt.allTime); got != tt.want {
				t.Errorf("DescribeTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeBalance(t *testing.T) {
	tests := []struct {
		name  string
		stats models.MoodStats
		want  string
	}{
		{"NoReadings", models.MoodStats{}, "No readings yet"},
		{"InStep", models.MoodStats{AvgMind: 60, AvgBody: 58}, "Mind and body in step"},
		{"MindAhead", models.MoodStats{AvgMind: 70, AvgBody: 50}, "Mind ahead by 20"},
		{"BodyAhead", models.MoodStats{AvgMind: 40, AvgBody: 65}, "Body ahead by 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeBalance(tt.stats); got != tt.want {
				t.Errorf("DescribeBalance() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlendedAvg(t *testing.T) {
	tests := []struct {
		name  string
		stats models.MoodStats
		want  float64
	}{
		{"Both", models.MoodStats{AvgMind: 60, AvgBody: 40}, 50},
		{"MindOnly", models.MoodStats{AvgMind: 60}, 60},
		{"BodyOnly", models.MoodStats{AvgBody: 40}, 40},
		{"Neither", models.MoodStats{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blendedAvg(tt.stats); got != tt.want {
				t.Errorf("blendedAvg() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistory_ConcurrentAccess(t *testing.T) {
	svc, database := newTestService(t)
	defer database.Close()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		seedEntry(t, database, fmt.Sprintf("e%d", i), now.Add(time.Duration(-i)*time.Hour), 50, 50)
	}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		rng := models.TimeRange(i % 4)
		go func() {
			_, err := svc.History(rng)
			done <- err
		}()
	}

	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("History() failed: %v", err)
		}
	}
}
