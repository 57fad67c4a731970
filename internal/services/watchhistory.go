package services

import (
	"fmt"
	"time"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/device"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

// WatchHistory records client-reported watch sessions.
//
// Each report carries the total session time for one media item, not a delta:
// per-row durations are reduced via max across reports, while the user's
// lifetime TotalWatchTime sums every report as-is. The two policies disagree
// on repeated resume/pause reporting; that asymmetry is inherited behavior
// the clients depend on.
type WatchHistory struct {
	db      database.Database
	ongoing *OngoingTracker
	logger  logger.Logger
}

// NewWatchHistory creates the watch-event recorder.
func NewWatchHistory(db database.Database, ongoing *OngoingTracker, log logger.Logger) *WatchHistory {
	return &WatchHistory{db: db, ongoing: ongoing, logger: log}
}

// RecordEvent upserts the history row for the event's composite key and
// applies the side effects: lifetime watch time always, monthly stats and
// ongoing-series tracking only for first-time watches of at least 10 minutes.
// Stat and tracker failures are logged, never surfaced to the caller.
func (s *WatchHistory) RecordEvent(userID string, req *models.WatchEventRequest, userAgent string) (*models.WatchEventResponse, error) {
	meetsMinimum := req.WatchDuration >= constants.MinimumWatchMinutes

	key := database.WatchKey(userID, req.MediaID, req.MediaType, req.SeasonNumber, req.EpisodeNumber)
	existing, err := s.db.GetWatchEntry(key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up watch entry: %w", err)
	}

	isFirstTimeWatch := existing == nil
	isCompleted := completionReached(req.MediaType, req.WatchDuration)

	// Consulted before the episode row lands, otherwise a first episode of a
	// new series would count the series as already known.
	firstSeriesWatch := false
	if req.MediaType == constants.MediaTypeTV && isFirstTimeWatch {
		seen, err := s.db.HasSeriesWatch(userID, req.MediaID)
		if err != nil {
			return nil, fmt.Errorf("failed to check series history: %w", err)
		}
		firstSeriesWatch = !seen
	}

	now := time.Now()
	if existing != nil {
		existing.WatchedAt = now
		if req.WatchDuration > existing.WatchDuration {
			existing.WatchDuration = req.WatchDuration
		}
		existing.LastWatchSession = req.WatchDuration
		existing.IsCompleted = existing.IsCompleted || isCompleted
		if req.MediaTitle != "" {
			existing.MediaTitle = req.MediaTitle
		}
		if req.MediaPoster != "" {
			existing.MediaPoster = req.MediaPoster
		}
		if existing.DeviceInfo.UserAgent == "" {
			existing.DeviceInfo = device.Detect(userAgent)
		}

		if err := s.db.UpsertWatchEntry(existing); err != nil {
			return nil, fmt.Errorf("failed to update watch entry: %w", err)
		}
	} else {
		entry := &models.WatchHistoryEntry{
			ID:               key,
			UserID:           userID,
			MediaID:          req.MediaID,
			MediaType:        req.MediaType,
			MediaTitle:       req.MediaTitle,
			MediaPoster:      req.MediaPoster,
			SeasonNumber:     req.SeasonNumber,
			EpisodeNumber:    req.EpisodeNumber,
			WatchDuration:    req.WatchDuration,
			LastWatchSession: req.WatchDuration,
			IsCompleted:      isCompleted,
			DeviceInfo:       device.Detect(userAgent),
			WatchedAt:        now,
		}
		if err := s.db.UpsertWatchEntry(entry); err != nil {
			return nil, fmt.Errorf("failed to insert watch entry: %w", err)
		}
	}

	// Lifetime total counts every report, deduplicated or not.
	if req.WatchDuration > 0 {
		if err := s.db.AddWatchTime(userID, req.WatchDuration); err != nil {
			return nil, fmt.Errorf("failed to add watch time: %w", err)
		}
	}

	if meetsMinimum && isFirstTimeWatch {
		if err := s.updateMonthlyStats(userID, req, firstSeriesWatch); err != nil {
			s.logger.Errorf("[WatchHistory] failed to update monthly stats for user %s: %v", userID, err)
		}

		if req.MediaType == constants.MediaTypeTV && req.SeasonNumber > 0 && req.EpisodeNumber > 0 {
			if err := s.ongoing.RecordEpisode(userID, req); err != nil {
				s.logger.Errorf("[WatchHistory] failed to update ongoing series for user %s: %v", userID, err)
			}
		}
	}

	return &models.WatchEventResponse{
		Message:               "Added to watch history",
		IsFirstTimeWatch:      isFirstTimeWatch,
		MediaType:             req.MediaType,
		MediaTitle:            req.MediaTitle,
		MeetsMinimumWatchTime: meetsMinimum,
	}, nil
}

func (s *WatchHistory) updateMonthlyStats(userID string, req *models.WatchEventRequest, firstSeriesWatch bool) error {
	monthKey := time.Now().Format(constants.MonthKeyFormat)

	return s.db.MutateUser(userID, func(user *models.User) error {
		if user.MonthlyStats.CurrentMonth != monthKey {
			user.MonthlyStats = models.MonthlyStats{CurrentMonth: monthKey}
		}

		user.MonthlyStats.TotalWatchTime += req.WatchDuration

		switch req.MediaType {
		case constants.MediaTypeMovie:
			user.MonthlyStats.MoviesWatched++
		case constants.MediaTypeTV:
			// Series counter tracks unique series, not episodes.
			if firstSeriesWatch {
				user.MonthlyStats.TVSeriesWatched++
			}
		}
		return nil
	})
}

// ClearHistory removes every history row for the user and resets the lifetime
// total. Favorites and reviews are untouched.
func (s *WatchHistory) ClearHistory(userID string) error {
	if err := s.db.ClearWatchHistory(userID); err != nil {
		return fmt.Errorf("failed to clear watch history: %w", err)
	}

	return s.db.MutateUser(userID, func(user *models.User) error {
		user.TotalWatchTime = 0
		return nil
	})
}

// RecentHistory returns the user's most recent rows.
func (s *WatchHistory) RecentHistory(userID string, limit int) ([]models.WatchHistoryEntry, error) {
	return s.db.ListWatchHistory(userID, limit)
}

func completionReached(mediaType string, duration int) bool {
	switch mediaType {
	case constants.MediaTypeMovie:
		return duration >= constants.MovieCompletedMinutes
	case constants.MediaTypeTV:
		return duration >= constants.EpisodeCompletedMinutes
	default:
		return false
	}
}
