package services

import (
	"fmt"
	"math"
	"time"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/models"
)

// Stats derives the dashboard counters from the watch history rows. The
// backing store has no server-side aggregation, so counting is a fold over
// the user's rows.
type Stats struct {
	db database.Database
}

// NewStats creates the aggregator.
func NewStats(db database.Database) *Stats {
	return &Stats{db: db}
}

// EnsureCurrentMonth lazily resets the user's monthly counters when the
// stored month key is stale. The reset is read-triggered; a user who never
// opens the dashboard keeps the stale key until their next watch event.
func (s *Stats) EnsureCurrentMonth(user *models.User) error {
	monthKey := time.Now().Format(constants.MonthKeyFormat)
	if user.MonthlyStats.CurrentMonth == monthKey {
		return nil
	}

	err := s.db.MutateUser(user.ID, func(stored *models.User) error {
		if stored.MonthlyStats.CurrentMonth != monthKey {
			stored.MonthlyStats = models.MonthlyStats{CurrentMonth: monthKey}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset monthly stats: %w", err)
	}

	user.MonthlyStats = models.MonthlyStats{CurrentMonth: monthKey}
	return nil
}

// Compute folds the user's history rows into the aggregate counter block.
// Unique counts apply the 10-minute minimum; the lifetime total does not.
func (s *Stats) Compute(user *models.User, entries []models.WatchHistoryEntry, favoritesCount, reviewsCount int) *models.Stats {
	uniqueMovies := make(map[string]struct{})
	uniqueShows := make(map[string]struct{})
	uniqueEpisodes := make(map[string]struct{})

	totalWatchTime := 0
	completedMovies := 0
	completedEpisodes := 0

	for _, entry := range entries {
		totalWatchTime += entry.WatchDuration

		switch entry.MediaType {
		case constants.MediaTypeMovie:
			if entry.WatchDuration >= constants.MinimumWatchMinutes {
				uniqueMovies[entry.MediaID] = struct{}{}
			}
			if entry.WatchDuration >= constants.MovieCompletedMinutes {
				completedMovies++
			}
		case constants.MediaTypeTV:
			if entry.WatchDuration >= constants.MinimumWatchMinutes {
				uniqueShows[entry.MediaID] = struct{}{}
				uniqueEpisodes[fmt.Sprintf("%s|%d|%d", entry.MediaID, entry.SeasonNumber, entry.EpisodeNumber)] = struct{}{}
			}
			if entry.WatchDuration >= constants.EpisodeCompletedMinutes {
				completedEpisodes++
			}
		}
	}

	return &models.Stats{
		MoviesWatched:       len(uniqueMovies),
		TVShowsWatched:      len(uniqueShows),
		TVEpisodesWatched:   len(uniqueEpisodes),
		FavoritesCount:      favoritesCount,
		ReviewsWritten:      reviewsCount,
		TotalWatchTime:      totalWatchTime,
		CompletedMovies:     completedMovies,
		CompletedTVEpisodes: completedEpisodes,
		MonthlyStats:        user.MonthlyStats,
		CompletionRate:      completionRate(user.MonthlyStats),
	}
}

// completionRate splits the monthly counters into movie/series percentages.
func completionRate(monthly models.MonthlyStats) models.CompletionRate {
	total := monthly.MoviesWatched + monthly.TVSeriesWatched
	if total == 0 {
		return models.CompletionRate{}
	}
	return models.CompletionRate{
		Movies:   roundPercent(monthly.MoviesWatched, total),
		TVSeries: roundPercent(monthly.TVSeriesWatched, total),
	}
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
