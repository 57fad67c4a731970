// Package services implements the application's business logic and provides
// a dependency injection container for it.
package services

import (
	"github.com/zetflix/zetflix-api/internal/cache"
	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Auth         *Auth
	TMDB         TMDBService
	WatchHistory *WatchHistory
	Stats        *Stats
	Ongoing      *OngoingTracker
	Dashboard    *Dashboard
	Cache        *cache.LRUCache
	DB           database.Database
	Logger       logger.Logger
}

// TMDBService defines the interface for catalog API operations.
type TMDBService interface {
	// GetTVDetails fetches show-level metadata including per-season episode
	// counts.
	GetTVDetails(mediaID string) (*models.TMDBTVDetails, error)
	// GetSeasonDetails fetches the episode list of one season, including air
	// dates.
	GetSeasonDetails(mediaID string, season int) (*models.TMDBSeasonDetails, error)
}
