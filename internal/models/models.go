// Package models defines the domain, API and catalog wire types.
package models

import "time"

// User is an account holder. Password material is never serialized.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	DisplayName      string    `json:"displayName"`
	Email            string    `json:"email,omitempty"`
	PasswordHash     string    `json:"-"`
	Salt             string    `json:"-"`
	AuthProvider     string    `json:"authProvider"`
	GoogleID         string    `json:"-"`
	ProfileImage     string    `json:"profileImage"`
	ProfileImagePath string    `json:"profileImagePath"`
	LastLoginDate    time.Time `json:"lastLoginDate"`
	IsFirstLogin     bool      `json:"isFirstLogin"`

	// TotalWatchTime accumulates every reported session duration, in minutes.
	// It deliberately counts repeat reports for the same media; per-row
	// durations do not.
	TotalWatchTime int `json:"totalWatchTime"`

	MonthlyStats    MonthlyStats         `json:"monthlyStats"`
	OngoingTvSeries []OngoingSeriesEntry `json:"ongoingTvSeries"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MonthlyStats are per-month counters stored on the user record. They are
// reset lazily when the stored month key no longer matches the current month.
type MonthlyStats struct {
	CurrentMonth    string `json:"currentMonth"` // YYYY-MM
	MoviesWatched   int    `json:"moviesWatched"`
	TVSeriesWatched int    `json:"tvSeriesWatched"`
	TotalWatchTime  int    `json:"totalWatchTime"`
}

// OngoingSeriesEntry tracks one in-progress TV series on the user record.
// The list is capped at 10 entries, most recently updated first.
type OngoingSeriesEntry struct {
	MediaID            string             `json:"mediaId"`
	Title              string             `json:"title"`
	PosterURL          string             `json:"posterUrl"`
	CurrentSeason      int                `json:"currentSeason"`
	TotalEpisodes      int                `json:"totalEpisodes"`
	WatchedEpisodes    int                `json:"watchedEpisodes"`
	LastWatchedEpisode LastWatchedEpisode `json:"lastWatchedEpisode"`
	HasNewEpisode      bool               `json:"hasNewEpisode"`
	LastUpdated        time.Time          `json:"lastUpdated"`
}

// LastWatchedEpisode records the most recent episode watched for a series.
type LastWatchedEpisode struct {
	Number      int       `json:"number"`
	ImageURL    string    `json:"imageUrl"`
	ReleaseDate time.Time `json:"releaseDate"`
	WatchedDate time.Time `json:"watchedDate"`
}

// WatchHistoryEntry is one history row. Movies collapse into a single row per
// (user, media); TV episodes each get their own row.
type WatchHistoryEntry struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	MediaID       string `json:"mediaId"`
	MediaType     string `json:"mediaType"` // "movie" or "tv"
	MediaTitle    string `json:"mediaTitle"`
	MediaPoster   string `json:"mediaPoster"`
	SeasonNumber  int    `json:"seasonNumber,omitempty"`
	EpisodeNumber int    `json:"episodeNumber,omitempty"`

	// WatchDuration holds the maximum session duration reported for this row,
	// in minutes. Reports are reduced via max, never summed.
	WatchDuration    int        `json:"watchDuration"`
	LastWatchSession int        `json:"lastWatchSession"`
	IsCompleted      bool       `json:"isCompleted"`
	DeviceInfo       DeviceInfo `json:"deviceInfo"`
	WatchedAt        time.Time  `json:"watchedAt"`
}

// DeviceInfo is a coarse classification of the reporting client.
type DeviceInfo struct {
	UserAgent  string `json:"userAgent,omitempty"`
	DeviceType string `json:"deviceType"` // Desktop, Mobile, Tablet, Unknown
	Browser    string `json:"browser"`
	OS         string `json:"os"`
}

// Favorite marks one media item as a favorite of one user.
type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MediaID     string    `json:"mediaId"`
	MediaType   string    `json:"mediaType"`
	MediaTitle  string    `json:"mediaTitle"`
	MediaPoster string    `json:"mediaPoster"`
	MediaRate   float64   `json:"mediaRate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is a user-written review of one media item.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MediaID     string    `json:"mediaId"`
	MediaType   string    `json:"mediaType"`
	MediaTitle  string    `json:"mediaTitle"`
	MediaPoster string    `json:"mediaPoster"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
