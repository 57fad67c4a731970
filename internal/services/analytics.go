package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
)

// BuildAnalytics derives the dashboard chart blocks from the user's history
// rows and favorites: weekly watch time over the last 7 weeks, media-type
// distribution of favorites, device usage with percentages, and daily
// activity over the last 30 days. Times are reported in hours.
func BuildAnalytics(entries []models.WatchHistoryEntry, favorites []models.Favorite, now time.Time) *models.Analytics {
	return &models.Analytics{
		WeeklyWatchTime:   weeklyWatchTime(entries, now),
		GenreDistribution: typeDistribution(favorites),
		DeviceUsage:       deviceUsage(entries),
		DailyActivity:     dailyActivity(entries, now),
	}
}

type activityBucket struct {
	minutes int
	count   int
}

func weeklyWatchTime(entries []models.WatchHistoryEntry, now time.Time) []models.WeekActivity {
	cutoff := now.Add(-time.Duration(constants.WeeklyActivityWeeks) * 7 * 24 * time.Hour)

	buckets := make(map[string]*activityBucket)
	for _, entry := range entries {
		if entry.WatchedAt.Before(cutoff) {
			continue
		}
		year, week := entry.WatchedAt.ISOWeek()
		key := fmt.Sprintf("%04d-%02d", year, week)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &activityBucket{}
			buckets[key] = bucket
		}
		bucket.minutes += entry.WatchDuration
		bucket.count++
	}

	keys := sortedKeys(buckets)
	if len(keys) > constants.WeeklyActivityWeeks {
		keys = keys[:constants.WeeklyActivityWeeks]
	}

	result := make([]models.WeekActivity, 0, len(keys))
	for _, key := range keys {
		var year, week int
		fmt.Sscanf(key, "%d-%d", &year, &week)
		result = append(result, models.WeekActivity{
			Week:  fmt.Sprintf("Week %d", week),
			Time:  minutesToHours(buckets[key].minutes),
			Count: buckets[key].count,
		})
	}
	return result
}

func typeDistribution(favorites []models.Favorite) []models.TypeCount {
	counts := make(map[string]int)
	for _, favorite := range favorites {
		counts[favorite.MediaType]++
	}

	result := make([]models.TypeCount, 0, len(counts))
	for _, mediaType := range []string{constants.MediaTypeMovie, constants.MediaTypeTV} {
		if counts[mediaType] == 0 {
			continue
		}
		label := "Movies"
		if mediaType == constants.MediaTypeTV {
			label = "TV Shows"
		}
		result = append(result, models.TypeCount{Type: label, Count: counts[mediaType]})
	}
	return result
}

func deviceUsage(entries []models.WatchHistoryEntry) []models.DeviceUsage {
	counts := make(map[string]int)
	total := 0
	for _, entry := range entries {
		deviceType := entry.DeviceInfo.DeviceType
		if deviceType == "" {
			deviceType = "Unknown"
		}
		counts[deviceType]++
		total++
	}

	if total == 0 {
		// Default structure so charts render with empty data.
		return []models.DeviceUsage{
			{Device: "Desktop"},
			{Device: "Mobile"},
			{Device: "Tablet"},
		}
	}

	devices := make([]string, 0, len(counts))
	for deviceType := range counts {
		devices = append(devices, deviceType)
	}
	sort.Strings(devices)

	result := make([]models.DeviceUsage, 0, len(devices))
	for _, deviceType := range devices {
		result = append(result, models.DeviceUsage{
			Device:     deviceType,
			Percentage: int(math.Round(float64(counts[deviceType]) / float64(total) * 100)),
			Count:      counts[deviceType],
		})
	}
	return result
}

func dailyActivity(entries []models.WatchHistoryEntry, now time.Time) []models.DayActivity {
	cutoff := now.Add(-time.Duration(constants.DailyActivityDays) * 24 * time.Hour)

	buckets := make(map[string]*activityBucket)
	for _, entry := range entries {
		if entry.WatchedAt.Before(cutoff) {
			continue
		}
		key := entry.WatchedAt.Format("2006-01-02")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &activityBucket{}
			buckets[key] = bucket
		}
		bucket.minutes += entry.WatchDuration
		bucket.count++
	}

	keys := sortedKeys(buckets)
	if len(keys) > constants.DailyActivityDays {
		keys = keys[:constants.DailyActivityDays]
	}

	result := make([]models.DayActivity, 0, len(keys))
	for _, key := range keys {
		day, _ := time.Parse("2006-01-02", key)
		result = append(result, models.DayActivity{
			Date:  fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			Time:  minutesToHours(buckets[key].minutes),
			Count: buckets[key].count,
		})
	}
	return result
}

func sortedKeys(buckets map[string]*activityBucket) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func minutesToHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60))
}
