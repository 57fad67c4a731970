package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/database"
	apperrors "github.com/zetflix/zetflix-api/internal/errors"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

// OngoingTracker maintains the bounded per-user list of in-progress TV series
// and reconciles it against the catalog to detect newly aired episodes.
type OngoingTracker struct {
	db     database.Database
	tmdb   TMDBService
	logger logger.Logger
}

// NewOngoingTracker creates the tracker.
func NewOngoingTracker(db database.Database, tmdb TMDBService, log logger.Logger) *OngoingTracker {
	return &OngoingTracker{db: db, tmdb: tmdb, logger: log}
}

// RecordEpisode updates the tracked entry for the event's series, creating it
// when absent, then evicts beyond the 10-entry cap (oldest lastUpdated first).
func (t *OngoingTracker) RecordEpisode(userID string, req *models.WatchEventRequest) error {
	now := time.Now()

	return t.db.MutateUser(userID, func(user *models.User) error {
		lastWatched := models.LastWatchedEpisode{
			Number:      req.EpisodeNumber,
			ImageURL:    req.MediaPoster,
			ReleaseDate: now,
			WatchedDate: now,
		}

		found := false
		for i := range user.OngoingTvSeries {
			if user.OngoingTvSeries[i].MediaID != req.MediaID {
				continue
			}
			entry := &user.OngoingTvSeries[i]
			entry.CurrentSeason = req.SeasonNumber
			entry.WatchedEpisodes++
			entry.LastWatchedEpisode = lastWatched
			entry.LastUpdated = now
			found = true
			break
		}

		if !found {
			user.OngoingTvSeries = append(user.OngoingTvSeries, models.OngoingSeriesEntry{
				MediaID:            req.MediaID,
				Title:              req.MediaTitle,
				PosterURL:          req.MediaPoster,
				CurrentSeason:      req.SeasonNumber,
				TotalEpisodes:      constants.DefaultEpisodeEstimate,
				WatchedEpisodes:    1,
				LastWatchedEpisode: lastWatched,
				LastUpdated:        now,
			})
		}

		user.OngoingTvSeries = capOngoingSeries(user.OngoingTvSeries)
		return nil
	})
}

// capOngoingSeries sorts most-recently-updated first and truncates to the cap.
// Evicted entries are dropped without persistence.
func capOngoingSeries(series []models.OngoingSeriesEntry) []models.OngoingSeriesEntry {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].LastUpdated.After(series[j].LastUpdated)
	})
	if len(series) > constants.MaxOngoingSeries {
		series = series[:constants.MaxOngoingSeries]
	}
	return series
}

// CheckForNewEpisodes re-fetches the current season of each tracked series
// and flags entries with episodes aired since the last watched one. Per-series
// catalog failures leave that entry unchanged.
func (t *OngoingTracker) CheckForNewEpisodes(userID string) (*models.EpisodeCheckResponse, error) {
	user, err := t.db.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if len(user.OngoingTvSeries) == 0 {
		return &models.EpisodeCheckResponse{Message: "No ongoing TV series found"}, nil
	}

	now := time.Now()
	hasUpdates := false
	updated := make([]models.OngoingSeriesEntry, 0, len(user.OngoingTvSeries))

	for _, series := range user.OngoingTvSeries {
		season, err := t.tmdb.GetSeasonDetails(series.MediaID, series.CurrentSeason)
		if err != nil {
			t.logger.Warnf("[OngoingTracker] episode check failed for series %s: %v", series.MediaID, err)
			updated = append(updated, series)
			continue
		}

		hasNew := hasNewEpisode(season.Episodes, series.LastWatchedEpisode, now)
		if hasNew != series.HasNewEpisode {
			hasUpdates = true
		}

		series.HasNewEpisode = hasNew
		if hasNew {
			series.LastUpdated = now
		}
		updated = append(updated, series)
	}

	if hasUpdates {
		err := t.db.MutateUser(userID, func(user *models.User) error {
			user.OngoingTvSeries = updated
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to persist episode check: %w", err)
		}
	}

	newCount := 0
	for _, series := range updated {
		if series.HasNewEpisode {
			newCount++
		}
	}

	return &models.EpisodeCheckResponse{
		Message:         "Episode check completed",
		NewEpisodeCount: newCount,
		HasUpdates:      hasUpdates,
	}, nil
}

// hasNewEpisode reports whether any episode beyond the last watched one aired
// between the last watch and now.
func hasNewEpisode(episodes []models.TMDBEpisode, lastWatched models.LastWatchedEpisode, now time.Time) bool {
	for _, episode := range episodes {
		if episode.EpisodeNumber <= lastWatched.Number {
			continue
		}
		aired, ok := episode.AirTime()
		if !ok {
			continue
		}
		if !aired.After(now) && aired.After(lastWatched.WatchedDate) {
			return true
		}
	}
	return false
}

// MarkNotificationSeen clears the new-episode flag for one tracked series.
func (t *OngoingTracker) MarkNotificationSeen(userID, mediaID string) error {
	user, err := t.db.GetUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}

	return t.db.MutateUser(userID, func(user *models.User) error {
		for i := range user.OngoingTvSeries {
			if user.OngoingTvSeries[i].MediaID == mediaID {
				user.OngoingTvSeries[i].HasNewEpisode = false
				return nil
			}
		}
		return apperrors.NewNotFoundError("TV series not found in ongoing list")
	})
}
