// Package database provides data persistence using BoltDB.
package database

import (
	"strconv"
	"strings"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
)

// Database defines the interface for data persistence operations.
type Database interface {
	// Users
	CreateUser(user *models.User) error
	// GetUser retrieves a user by ID. Returns nil if not found, without error.
	GetUser(id string) (*models.User, error)
	// GetUserByUsername retrieves a user by username. Returns nil if not found.
	GetUserByUsername(username string) (*models.User, error)
	// AddWatchTime atomically increments the user's lifetime watch time.
	AddWatchTime(userID string, minutes int) error
	// MutateUser applies fn to the stored user inside a single write
	// transaction, so concurrent updates cannot interleave.
	MutateUser(userID string, fn func(user *models.User) error) error

	// Watch history
	// GetWatchEntry retrieves a history row by composite key. Returns nil if
	// not found, without error.
	GetWatchEntry(key string) (*models.WatchHistoryEntry, error)
	UpsertWatchEntry(entry *models.WatchHistoryEntry) error
	// ListWatchHistory returns a user's rows sorted by WatchedAt descending.
	// A non-positive limit returns all rows.
	ListWatchHistory(userID string, limit int) ([]models.WatchHistoryEntry, error)
	// HasSeriesWatch reports whether any episode row exists for the series.
	HasSeriesWatch(userID, mediaID string) (bool, error)
	ClearWatchHistory(userID string) error

	// Favorites
	UpsertFavorite(favorite *models.Favorite) error
	GetFavorite(id string) (*models.Favorite, error)
	DeleteFavorite(id string) error
	ListFavorites(userID string) ([]models.Favorite, error)

	// Reviews
	AddReview(review *models.Review) error
	GetReview(id string) (*models.Review, error)
	DeleteReview(id string) error
	ListReviews(userID string) ([]models.Review, error)

	// Close closes the database connection
	Close() error
}

// WatchKey builds the composite key of a history row. Movies collapse all
// sessions into one row; TV keys include season and episode.
func WatchKey(userID, mediaID, mediaType string, season, episode int) string {
	if mediaType == constants.MediaTypeTV {
		return strings.Join([]string{userID, mediaID, mediaType, strconv.Itoa(season), strconv.Itoa(episode)}, "|")
	}
	return strings.Join([]string{userID, mediaID, constants.MediaTypeMovie}, "|")
}

// FavoriteKey builds the composite key of a favorite row.
func FavoriteKey(userID, mediaID, mediaType string) string {
	return strings.Join([]string{userID, mediaID, mediaType}, "|")
}
