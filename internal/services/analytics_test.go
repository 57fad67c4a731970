package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
)

func TestBuildAnalyticsEmpty(t *testing.T) {
	analytics := BuildAnalytics(nil, nil, time.Now())

	assert.Empty(t, analytics.WeeklyWatchTime)
	assert.Empty(t, analytics.GenreDistribution)
	assert.Empty(t, analytics.DailyActivity)

	// Device usage keeps a fixed shape so charts render.
	require.Len(t, analytics.DeviceUsage, 3)
	for _, usage := range analytics.DeviceUsage {
		assert.Zero(t, usage.Count)
		assert.Zero(t, usage.Percentage)
	}
}

func TestWeeklyWatchTimeBucketsAndCutoff(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	entries := []models.WatchHistoryEntry{
		{WatchDuration: 60, WatchedAt: now.Add(-1 * time.Hour)},
		{WatchDuration: 90, WatchedAt: now.Add(-2 * time.Hour)},
		{WatchDuration: 30, WatchedAt: now.Add(-8 * 24 * time.Hour)},
		// Older than the 7-week window.
		{WatchDuration: 500, WatchedAt: now.Add(-10 * 7 * 24 * time.Hour)},
	}

	analytics := BuildAnalytics(entries, nil, now)
	require.Len(t, analytics.WeeklyWatchTime, 2)

	// Buckets are chronological; the current week holds two entries.
	current := analytics.WeeklyWatchTime[1]
	assert.Equal(t, 2, current.Count)
	assert.Equal(t, 3, current.Time) // 150 minutes rounds to 3 hours

	previous := analytics.WeeklyWatchTime[0]
	assert.Equal(t, 1, previous.Count)
	assert.Equal(t, 1, previous.Time)
}

func TestTypeDistributionFromFavorites(t *testing.T) {
	favorites := []models.Favorite{
		{MediaType: constants.MediaTypeMovie},
		{MediaType: constants.MediaTypeMovie},
		{MediaType: constants.MediaTypeTV},
	}

	analytics := BuildAnalytics(nil, favorites, time.Now())
	require.Len(t, analytics.GenreDistribution, 2)
	assert.Equal(t, models.TypeCount{Type: "Movies", Count: 2}, analytics.GenreDistribution[0])
	assert.Equal(t, models.TypeCount{Type: "TV Shows", Count: 1}, analytics.GenreDistribution[1])
}

func TestDeviceUsagePercentages(t *testing.T) {
	now := time.Now()
	entries := []models.WatchHistoryEntry{
		{WatchedAt: now, DeviceInfo: models.DeviceInfo{DeviceType: "Desktop"}},
		{WatchedAt: now, DeviceInfo: models.DeviceInfo{DeviceType: "Desktop"}},
		{WatchedAt: now, DeviceInfo: models.DeviceInfo{DeviceType: "Desktop"}},
		{WatchedAt: now, DeviceInfo: models.DeviceInfo{DeviceType: "Mobile"}},
	}

	analytics := BuildAnalytics(entries, nil, now)
	require.Len(t, analytics.DeviceUsage, 2)

	byDevice := make(map[string]models.DeviceUsage)
	for _, usage := range analytics.DeviceUsage {
		byDevice[usage.Device] = usage
	}
	assert.Equal(t, 75, byDevice["Desktop"].Percentage)
	assert.Equal(t, 3, byDevice["Desktop"].Count)
	assert.Equal(t, 25, byDevice["Mobile"].Percentage)
}

func TestDailyActivityLabelsAndCutoff(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	entries := []models.WatchHistoryEntry{
		{WatchDuration: 120, WatchedAt: time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)},
		{WatchDuration: 30, WatchedAt: time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC)},
		{WatchDuration: 60, WatchedAt: time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC)},
		// Outside the 30-day window.
		{WatchDuration: 300, WatchedAt: now.Add(-45 * 24 * time.Hour)},
	}

	analytics := BuildAnalytics(entries, nil, now)
	require.Len(t, analytics.DailyActivity, 2)

	assert.Equal(t, "8/5", analytics.DailyActivity[0].Date)
	assert.Equal(t, 1, analytics.DailyActivity[0].Time)

	assert.Equal(t, "8/27", analytics.DailyActivity[1].Date)
	assert.Equal(t, 3, analytics.DailyActivity[1].Time) // 150 minutes
	assert.Equal(t, 2, analytics.DailyActivity[1].Count)
}
