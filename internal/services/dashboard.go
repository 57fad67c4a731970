package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/database"
	apperrors "github.com/zetflix/zetflix-api/internal/errors"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

// Dashboard assembles the full dashboard payload for one user. Reads are
// independent point-in-time snapshots issued in parallel; no cross-query
// consistency is attempted.
type Dashboard struct {
	db     database.Database
	tmdb   TMDBService
	stats  *Stats
	logger logger.Logger
}

// NewDashboard creates the composer.
func NewDashboard(db database.Database, tmdb TMDBService, stats *Stats, log logger.Logger) *Dashboard {
	return &Dashboard{db: db, tmdb: tmdb, stats: stats, logger: log}
}

// Build composes the dashboard response. A user with no history gets zeroed
// stats and empty lists, not an error.
func (d *Dashboard) Build(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	user, err := d.db.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if err := d.stats.EnsureCurrentMonth(user); err != nil {
		return nil, err
	}

	var (
		allHistory []models.WatchHistoryEntry
		favorites  []models.Favorite
		reviews    []models.Review
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allHistory, err = d.db.ListWatchHistory(userID, 0)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = d.db.ListFavorites(userID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = d.db.ListReviews(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	ongoing := d.enrichOngoingSeries(aggregateOngoingSeries(allHistory))
	stats := d.stats.Compute(user, allHistory, len(favorites), len(reviews))
	analytics := BuildAnalytics(allHistory, favorites, time.Now())

	return &models.DashboardResponse{
		User:               user,
		RecentWatchHistory: headHistory(allHistory, constants.RecentHistoryLimit),
		RecentFavorites:    headFavorites(favorites, constants.RecentFavoritesLimit),
		RecentReviews:      headReviews(reviews, constants.RecentReviewsLimit),
		AllFavorites:       favorites,
		AllReviews:         reviews,
		OngoingSeries:      ongoing,
		OngoingTvSeries:    user.OngoingTvSeries,
		Stats:              stats,
		Analytics:          analytics,
	}, nil
}

// aggregateOngoingSeries groups the user's TV rows by series, most recently
// watched first, capped at 10.
func aggregateOngoingSeries(entries []models.WatchHistoryEntry) []models.OngoingSeriesSummary {
	type seriesAgg struct {
		summary models.OngoingSeriesSummary
		seasons map[int]struct{}
	}

	bySeries := make(map[string]*seriesAgg)
	for _, entry := range entries {
		if entry.MediaType != constants.MediaTypeTV {
			continue
		}

		agg, ok := bySeries[entry.MediaID]
		if !ok {
			agg = &seriesAgg{
				summary: models.OngoingSeriesSummary{
					MediaID:     entry.MediaID,
					MediaTitle:  entry.MediaTitle,
					MediaPoster: entry.MediaPoster,
				},
				seasons: make(map[int]struct{}),
			}
			bySeries[entry.MediaID] = agg
		}

		agg.summary.WatchedEpisodes++
		agg.summary.TotalWatchTime += entry.WatchDuration
		agg.seasons[entry.SeasonNumber] = struct{}{}
		if entry.WatchedAt.After(agg.summary.LastWatched) {
			agg.summary.LastWatched = entry.WatchedAt
		}
	}

	summaries := make([]models.OngoingSeriesSummary, 0, len(bySeries))
	for _, agg := range bySeries {
		agg.summary.SeasonsCount = len(agg.seasons)
		summaries = append(summaries, agg.summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastWatched.After(summaries[j].LastWatched)
	})
	if len(summaries) > constants.MaxOngoingSeries {
		summaries = summaries[:constants.MaxOngoingSeries]
	}
	return summaries
}

// enrichOngoingSeries fills completion percentages from catalog episode
// counts, falling back to a conservative estimate (watched out of watched*2)
// when the catalog lookup fails.
func (d *Dashboard) enrichOngoingSeries(summaries []models.OngoingSeriesSummary) []models.OngoingSeriesSummary {
	var wg sync.WaitGroup
	for i := range summaries {
		wg.Add(1)
		go func(summary *models.OngoingSeriesSummary) {
			defer wg.Done()

			details, err := d.tmdb.GetTVDetails(summary.MediaID)
			if err != nil {
				d.logger.Warnf("[Dashboard] catalog lookup failed for series %s: %v", summary.MediaID, err)
				summary.TotalEpisodes = summary.WatchedEpisodes * 2
				summary.TotalSeasons = summary.SeasonsCount
				summary.CompletionPercentage = completionPercent(summary.WatchedEpisodes, summary.TotalEpisodes)
				summary.Status = "Unknown"
				return
			}

			summary.TotalEpisodes = details.TotalEpisodes()
			summary.TotalSeasons = details.NumberOfSeasons
			summary.CompletionPercentage = completionPercent(summary.WatchedEpisodes, summary.TotalEpisodes)
			if details.Status != "" {
				summary.Status = details.Status
			} else {
				summary.Status = "Unknown"
			}
		}(&summaries[i])
	}
	wg.Wait()
	return summaries
}

// completionPercent clamps to 100; zero totals yield zero.
func completionPercent(watched, total int) int {
	if total <= 0 {
		return 0
	}
	percent := int(math.Round(float64(watched) / float64(total) * 100))
	if percent > 100 {
		percent = 100
	}
	return percent
}

func headHistory(entries []models.WatchHistoryEntry, limit int) []models.WatchHistoryEntry {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func headFavorites(favorites []models.Favorite, limit int) []models.Favorite {
	if len(favorites) > limit {
		favorites = favorites[:limit]
	}
	return favorites
}

func headReviews(reviews []models.Review, limit int) []models.Review {
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews
}
